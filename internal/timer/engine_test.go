package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/study-hours/internal/models"
)

func runningState(startedAt time.Time, focusSeconds int) *models.RoomState {
	return &models.RoomState{
		Phase:        models.PhaseFocus,
		Running:      true,
		StartedAt:    &startedAt,
		FocusSeconds: focusSeconds,
		BreakSeconds: models.DefaultBreakSeconds,
	}
}

func TestRemaining_Stopped(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name  string
		state *models.RoomState
		want  int
	}{
		{
			name: "stopped focus shows full focus duration",
			state: &models.RoomState{
				Phase:        models.PhaseFocus,
				Running:      false,
				FocusSeconds: 1500,
				BreakSeconds: 300,
			},
			want: 1500,
		},
		{
			name: "stopped break shows full break duration",
			state: &models.RoomState{
				Phase:        models.PhaseBreak,
				Running:      false,
				FocusSeconds: 1500,
				BreakSeconds: 300,
			},
			want: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(tt.state, now))
		})
	}
}

func TestRemaining_Running(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	state := runningState(t0, 1500)

	assert.Equal(t, 1500, Remaining(state, t0))
	assert.Equal(t, 1499, Remaining(state, t0.Add(time.Second)))
	assert.Equal(t, 900, Remaining(state, t0.Add(10*time.Minute)))
	assert.Equal(t, 0, Remaining(state, t0.Add(1500*time.Second)))

	// За нулём остаток не уходит в минус
	assert.Equal(t, 0, Remaining(state, t0.Add(2*time.Hour)))
}

func TestRemaining_FlooredToWholeSeconds(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	state := runningState(t0, 100)

	// Доля секунды не списывается, пока не пройдёт целая
	assert.Equal(t, 100, Remaining(state, t0.Add(900*time.Millisecond)))
	assert.Equal(t, 99, Remaining(state, t0.Add(1100*time.Millisecond)))
}

func TestRemaining_MonotonicallyNonIncreasing(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	state := runningState(t0, 1500)

	prev := Remaining(state, t0)
	for i := 1; i <= 1600; i += 7 {
		cur := Remaining(state, t0.Add(time.Duration(i)*time.Second))
		require.LessOrEqual(t, cur, prev, "remaining grew at +%ds", i)
		prev = cur
	}
}

func TestRemaining_StartedAtInFuture(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	state := runningState(t0.Add(time.Minute), 1500)

	assert.Equal(t, 1500, Remaining(state, t0))
}

func TestExpired(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	state := runningState(t0, 1500)

	assert.False(t, Expired(state, t0.Add(1499*time.Second)))
	assert.True(t, Expired(state, t0.Add(1500*time.Second)))

	stopped := &models.RoomState{Phase: models.PhaseFocus, FocusSeconds: 1500}
	assert.False(t, Expired(stopped, t0.Add(time.Hour)))
}

// Running и StartedAt меняются только парой — иначе нарушился бы
// инвариант started_at != nil <=> running
func TestFieldSets_PreserveInvariant(t *testing.T) {
	now := time.Now().UTC()

	start := StartFields(now)
	assert.Equal(t, true, start["running"])
	assert.Equal(t, now, start["started_at"])

	stop := StopFields()
	assert.Equal(t, false, stop["running"])
	assert.Nil(t, stop["started_at"])

	sw := SwitchPhaseFields(models.PhaseBreak)
	assert.Equal(t, models.PhaseBreak, sw["phase"])
	assert.Equal(t, false, sw["running"])
	assert.Nil(t, sw["started_at"])
}
