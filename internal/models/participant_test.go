package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSeen time.Time
		want     bool
	}{
		{"только что", now, true},
		{"минуту назад", now.Add(-time.Minute), true},
		{"на границе окна", now.Add(-PresenceWindow), false},
		{"чуть внутри окна", now.Add(-PresenceWindow + time.Second), true},
		{"давно", now.Add(-time.Hour), false},
		{"нет heartbeat", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Participant{LastSeen: tt.lastSeen}
			assert.Equal(t, tt.want, p.ActiveAt(now))
		})
	}
}

func TestSortForDisplay_CurrentFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := Participant{ID: uuid.New(), Name: "first", CreatedAt: base}
	second := Participant{ID: uuid.New(), Name: "second", CreatedAt: base.Add(time.Minute)}
	current := Participant{ID: uuid.New(), Name: "me", CreatedAt: base.Add(2 * time.Minute)}

	got := SortForDisplay([]Participant{first, second, current}, current.ID)

	assert.Equal(t, current.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, second.ID, got[2].ID)
}

func TestSortForDisplay_TieBreakByID(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a := Participant{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), CreatedAt: created}
	b := Participant{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), CreatedAt: created}

	got := SortForDisplay([]Participant{b, a}, uuid.New())

	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
}

func TestSortForDisplay_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	late := Participant{ID: uuid.New(), CreatedAt: base.Add(time.Hour)}
	early := Participant{ID: uuid.New(), CreatedAt: base}
	in := []Participant{late, early}

	SortForDisplay(in, early.ID)

	assert.Equal(t, late.ID, in[0].ID)
	assert.Equal(t, early.ID, in[1].ID)
}
