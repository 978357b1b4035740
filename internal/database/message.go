package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/study-hours/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// GetRoomMessages получает страницу сообщений комнаты. Запрашиваем от новых
// к старым, затем разворачиваем в хронологический порядок. before != nil —
// страница строго старше этой отметки (пагинация вверх).
func (d *Database) GetRoomMessages(roomID uuid.UUID, limit int, before *time.Time) ([]models.Message, error) {
	var messages []models.Message

	query := d.db.Where("room_id = ?", roomID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
