package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/study-hours/internal/models"
)

func (d *Database) CreateParticipant(p *models.Participant) error {
	return d.db.Create(p).Error
}

func (d *Database) GetParticipant(id uuid.UUID) (*models.Participant, error) {
	var p models.Participant
	err := d.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetParticipantInRoom ищет участника по id устройства строго в этой комнате —
// сохранённый id из другой комнаты не подходит
func (d *Database) GetParticipantInRoom(id, roomID uuid.UUID) (*models.Participant, error) {
	var p models.Participant
	err := d.db.Where("id = ? AND room_id = ?", id, roomID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ReactivateParticipant возвращает участника в комнату: is_active, свежий
// last_seen, привязка к аккаунту, если она появилась. Имя в комнате не трогаем.
func (d *Database) ReactivateParticipant(id uuid.UUID, userID *uuid.UUID) (*models.Participant, error) {
	fields := map[string]interface{}{
		"is_active": true,
		"last_seen": time.Now().UTC(),
	}
	if userID != nil {
		fields["user_id"] = *userID
	}

	if err := d.db.Model(&models.Participant{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return d.GetParticipant(id)
}

// DeactivateParticipant — мягкий выход: строка остаётся, флаг снимается
func (d *Database) DeactivateParticipant(id uuid.UUID) (*models.Participant, error) {
	err := d.db.Model(&models.Participant{}).Where("id = ?", id).Update("is_active", false).Error
	if err != nil {
		return nil, err
	}
	return d.GetParticipant(id)
}

// TouchParticipant — heartbeat, обновляет last_seen
func (d *Database) TouchParticipant(id uuid.UUID) error {
	cmd := d.db.Model(&models.Participant{}).Where("id = ?", id).Update("last_seen", time.Now().UTC())
	if cmd.Error != nil {
		return cmd.Error
	}
	if cmd.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// UpdateParticipant пишет только переданные поля и возвращает свежую строку
func (d *Database) UpdateParticipant(id uuid.UUID, fields map[string]interface{}) (*models.Participant, error) {
	if err := d.db.Model(&models.Participant{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return d.GetParticipant(id)
}

// ListActiveParticipants — активные участники комнаты в стабильном порядке
func (d *Database) ListActiveParticipants(roomID uuid.UUID) ([]models.Participant, error) {
	var participants []models.Participant
	err := d.db.
		Where("room_id = ? AND is_active = ?", roomID, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}
