package handlers

import (
	"github.com/thereayou/study-hours/internal/models"
)

// VisibleMessages применяет фильтр «не беспокоить» к списку сообщений.
// Пока DND включён, от зрителя прячутся несистемные сообщения, созданные
// в момент включения или позже; более ранние остаются видимыми. Сообщения
// не удаляются — после выключения DND фильтр исчезает целиком.
func VisibleMessages(messages []models.Message, viewer *models.Participant) []models.Message {
	if viewer == nil || !viewer.DoNotDisturb || viewer.DndEnabledAt == nil {
		return messages
	}

	enabledAt := *viewer.DndEnabledAt
	visible := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if !m.IsSystem() && !m.CreatedAt.Before(enabledAt) {
			continue
		}
		visible = append(visible, m)
	}
	return visible
}
