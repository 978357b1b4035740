package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы сообщений
const (
	MessageTypeUser   = "user"
	MessageTypeSystem = "system"
)

// Message — сообщение чата, append-only. Системные сообщения
// («Timer started…») записываются от имени участника-инициатора.
type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomID        uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null" json:"participant_id"`
	Content       string    `gorm:"not null" json:"content"`
	MessageType   string    `gorm:"not null;default:'user';check:message_type IN ('user','system')" json:"message_type"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// IsSystem сообщает, системное ли это сообщение
func (m *Message) IsSystem() bool {
	return m.MessageType == MessageTypeSystem
}
