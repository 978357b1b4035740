package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// PresenceWindow — окно «онлайн»: участник считается активным,
// если его last_seen свежее этого окна
const PresenceWindow = 2 * time.Minute

// Participant — членство пользователя в комнате, привязанное к устройству.
// Строки никогда не удаляются: выход из комнаты ставит IsActive=false,
// повторный вход с того же устройства реактивирует ту же строку.
type Participant struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"room_id"`
	UserID       *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	DoNotDisturb bool       `gorm:"not null;default:false" json:"do_not_disturb"`
	DndEnabledAt *time.Time `json:"dnd_enabled_at"`
	LastSeen     time.Time  `gorm:"not null" json:"last_seen"`
	CreatedAt    time.Time  `json:"created_at"`

	// Связи
	Tasks []Task `gorm:"foreignKey:ParticipantID" json:"-"`
}

// ActiveAt сообщает, жив ли участник на момент now по его heartbeat
func (p *Participant) ActiveAt(now time.Time) bool {
	if p.LastSeen.IsZero() {
		return false
	}
	return now.Sub(p.LastSeen) < PresenceWindow
}

// SortForDisplay упорядочивает участников для отображения: текущий первым,
// остальные по (created_at, id) — составной ключ даёт стабильный порядок
// при равных временных метках.
func SortForDisplay(participants []Participant, currentID uuid.UUID) []Participant {
	out := make([]Participant, len(participants))
	copy(out, participants)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ID == currentID {
			return out[j].ID != currentID
		}
		if out[j].ID == currentID {
			return false
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out
}
