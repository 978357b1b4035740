package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPhaseSeconds(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, MinPhaseSeconds},
		{59, MinPhaseSeconds},
		{60, 60},
		{1500, 1500},
		{MaxPhaseSeconds, MaxPhaseSeconds},
		{MaxPhaseSeconds + 1, MaxPhaseSeconds},
		{-100, MinPhaseSeconds},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPhaseSeconds(tt.in), "clamp(%d)", tt.in)
	}
}

func TestPhaseSeconds(t *testing.T) {
	state := &RoomState{
		Phase:        PhaseFocus,
		FocusSeconds: 1500,
		BreakSeconds: 300,
	}
	assert.Equal(t, 1500, state.PhaseSeconds())

	state.Phase = PhaseBreak
	assert.Equal(t, 300, state.PhaseSeconds())
}

func TestNextPhase(t *testing.T) {
	state := &RoomState{Phase: PhaseFocus}
	assert.Equal(t, PhaseBreak, state.NextPhase())

	state.Phase = PhaseBreak
	assert.Equal(t, PhaseFocus, state.NextPhase())
}

func TestIsValidBackground(t *testing.T) {
	assert.True(t, IsValidBackground(DefaultBackgroundID))
	for _, bg := range Backgrounds {
		assert.True(t, IsValidBackground(bg.ID))
	}
	assert.False(t, IsValidBackground("video-99"))
	assert.False(t, IsValidBackground(""))
}
