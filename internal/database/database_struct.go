package database

import (
	"errors"

	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// Ошибки слоя хранения
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrNotTaskOwner        = errors.New("task belongs to another participant")
)

// IsNotFound сообщает, означает ли ошибка отсутствие строки
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, ErrTaskNotFound)
}
