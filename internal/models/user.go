package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User — учётная запись. Гости аккаунта не имеют: их идентичность —
// имя участника плюс id, сохранённый на устройстве.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	LastSeenAt   time.Time `json:"last_seen_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName — имя для показа в комнате: username, иначе часть email до «@»
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
