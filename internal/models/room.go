package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Связи
	Participants []Participant `gorm:"foreignKey:RoomID" json:"-"`
	Messages     []Message     `gorm:"foreignKey:RoomID" json:"-"`
}

// Фазы таймера
const (
	PhaseFocus = "focus"
	PhaseBreak = "break"
)

// Допустимая длительность фазы: от 1 до 180 минут
const (
	MinPhaseSeconds = 60
	MaxPhaseSeconds = 180 * 60
)

const (
	DefaultFocusSeconds = 25 * 60
	DefaultBreakSeconds = 5 * 60
)

// RoomState — общее состояние таймера комнаты, одна строка на комнату.
// Инвариант: StartedAt != nil тогда и только тогда, когда Running == true.
// Оставшееся время всегда выводится из (StartedAt, длительность фазы),
// накопительного счётчика нет — все клиенты считают одно и то же.
type RoomState struct {
	RoomID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"room_id"`
	Phase        string     `gorm:"not null;default:'focus';check:phase IN ('focus','break')" json:"phase"`
	Running      bool       `gorm:"not null;default:false" json:"running"`
	StartedAt    *time.Time `json:"started_at"`
	FocusSeconds int        `gorm:"not null;default:1500" json:"focus_seconds"`
	BreakSeconds int        `gorm:"not null;default:300" json:"break_seconds"`
	BackgroundID string     `gorm:"not null;default:'video-1'" json:"background_id"`
}

// PhaseSeconds возвращает полную длительность текущей фазы
func (s *RoomState) PhaseSeconds() int {
	if s.Phase == PhaseBreak {
		return s.BreakSeconds
	}
	return s.FocusSeconds
}

// NextPhase возвращает фазу, следующую за текущей
func (s *RoomState) NextPhase() string {
	if s.Phase == PhaseFocus {
		return PhaseBreak
	}
	return PhaseFocus
}

// ClampPhaseSeconds приводит длительность к допустимому диапазону
func ClampPhaseSeconds(seconds int) int {
	if seconds < MinPhaseSeconds {
		return MinPhaseSeconds
	}
	if seconds > MaxPhaseSeconds {
		return MaxPhaseSeconds
	}
	return seconds
}
