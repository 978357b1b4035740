package database

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/study-hours/internal/models"
)

// CreateRoomWithState создает комнату и её начальное состояние таймера
// в одной транзакции, чтобы между созданием и инициализацией не было окна
func (d *Database) CreateRoomWithState(code string, name *string) (*models.Room, *models.RoomState, error) {
	room := &models.Room{
		Code:      strings.ToLower(code),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	state := &models.RoomState{
		Phase:        models.PhaseFocus,
		Running:      false,
		FocusSeconds: models.DefaultFocusSeconds,
		BreakSeconds: models.DefaultBreakSeconds,
		BackgroundID: models.DefaultBackgroundID,
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		state.RoomID = room.ID
		return tx.Create(state).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return room, state, nil
}

// GetRoomByCode ищет комнату по короткому коду (код нечувствителен к регистру)
func (d *Database) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	err := d.db.Where("code = ?", strings.ToLower(code)).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Database) GetRoom(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := d.db.First(&room, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateRoomName меняет название комнаты и возвращает свежую строку
func (d *Database) UpdateRoomName(id uuid.UUID, name *string) (*models.Room, error) {
	cmd := d.db.Model(&models.Room{}).Where("id = ?", id).Update("name", name)
	if cmd.Error != nil {
		return nil, cmd.Error
	}
	if cmd.RowsAffected == 0 {
		return nil, ErrRoomNotFound
	}
	return d.GetRoom(id)
}

func (d *Database) GetRoomState(roomID uuid.UUID) (*models.RoomState, error) {
	var state models.RoomState
	err := d.db.First(&state, "room_id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// UpdateRoomState пишет только переданные поля (field-scoped last-write-wins)
// и возвращает строку целиком — подписчики получают её без слияния
func (d *Database) UpdateRoomState(roomID uuid.UUID, fields map[string]interface{}) (*models.RoomState, error) {
	cmd := d.db.Model(&models.RoomState{}).Where("room_id = ?", roomID).Updates(fields)
	if cmd.Error != nil {
		return nil, cmd.Error
	}
	if cmd.RowsAffected == 0 {
		return nil, ErrRoomNotFound
	}
	return d.GetRoomState(roomID)
}
