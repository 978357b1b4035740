package models

import (
	"time"

	"github.com/google/uuid"
)

// Task — пункт списка дел участника. Редактирует только владелец,
// видят все в комнате. SortOrder задаёт ручной порядок (drag-and-drop).
type Task struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomID        uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;index" json:"participant_id"`
	Content       string    `gorm:"not null" json:"content"`
	Done          bool      `gorm:"not null;default:false" json:"done"`
	SortOrder     int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
}
