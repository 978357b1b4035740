package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thereayou/study-hours/internal/models"
)

func msgAt(created time.Time, msgType string) models.Message {
	return models.Message{
		Content:     "msg",
		MessageType: msgType,
		CreatedAt:   created,
	}
}

func TestVisibleMessages_NoFilterWithoutDnd(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []models.Message{
		msgAt(now, models.MessageTypeUser),
		msgAt(now.Add(time.Second), models.MessageTypeSystem),
	}

	assert.Equal(t, messages, VisibleMessages(messages, nil))

	viewer := &models.Participant{DoNotDisturb: false}
	assert.Equal(t, messages, VisibleMessages(messages, viewer))
}

func TestVisibleMessages_HidesFromEnableMark(t *testing.T) {
	enabledAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	viewer := &models.Participant{
		DoNotDisturb: true,
		DndEnabledAt: &enabledAt,
	}

	before := msgAt(enabledAt.Add(-time.Second), models.MessageTypeUser)
	atMark := msgAt(enabledAt, models.MessageTypeUser)
	after := msgAt(enabledAt.Add(time.Second), models.MessageTypeUser)

	got := VisibleMessages([]models.Message{before, atMark, after}, viewer)

	assert.Equal(t, []models.Message{before}, got)
}

func TestVisibleMessages_SystemAlwaysVisible(t *testing.T) {
	enabledAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	viewer := &models.Participant{
		DoNotDisturb: true,
		DndEnabledAt: &enabledAt,
	}

	system := msgAt(enabledAt.Add(time.Minute), models.MessageTypeSystem)
	user := msgAt(enabledAt.Add(time.Minute), models.MessageTypeUser)

	got := VisibleMessages([]models.Message{system, user}, viewer)

	assert.Equal(t, []models.Message{system}, got)
}

func TestVisibleMessages_DisableRestoresEverything(t *testing.T) {
	enabledAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []models.Message{
		msgAt(enabledAt.Add(time.Minute), models.MessageTypeUser),
	}

	// Выключенный DND оставляет метку, но фильтр больше не действует
	viewer := &models.Participant{
		DoNotDisturb: false,
		DndEnabledAt: &enabledAt,
	}

	assert.Equal(t, messages, VisibleMessages(messages, viewer))
}
