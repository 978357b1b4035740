package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/study-hours/internal/models"
)

// CreateTask вставляет задачу, подставляя следующий sort_order
// в рамках списка участника (max+1, либо 0 для пустого списка)
func (d *Database) CreateTask(task *models.Task) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder *int
		err := tx.Model(&models.Task{}).
			Where("participant_id = ?", task.ParticipantID).
			Select("MAX(sort_order)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		if maxOrder != nil {
			task.SortOrder = *maxOrder + 1
		} else {
			task.SortOrder = 0
		}

		return tx.Create(task).Error
	})
}

func (d *Database) GetTask(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := d.db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask пишет только переданные поля и возвращает свежую строку
func (d *Database) UpdateTask(id uuid.UUID, fields map[string]interface{}) (*models.Task, error) {
	if err := d.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return d.GetTask(id)
}

// ToggleTask переключает done от сохранённого значения, не от кэша клиента —
// при устаревшем кэше инверсия от клиента дала бы неверный результат
func (d *Database) ToggleTask(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		task.Done = !task.Done
		return tx.Model(&models.Task{}).Where("id = ?", id).Update("done", task.Done).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (d *Database) DeleteTask(id uuid.UUID) error {
	return d.db.Delete(&models.Task{}, "id = ?", id).Error
}

// ListRoomTasks — все задачи комнаты в порядке (sort_order, created_at)
func (d *Database) ListRoomTasks(roomID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := d.db.
		Where("room_id = ?", roomID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ReorderTasks переписывает sort_order задач участника по индексу в orderedIDs.
// Применяется в одной транзакции; порядок других участников не меняется.
func (d *Database) ReorderTasks(participantID uuid.UUID, orderedIDs []uuid.UUID) ([]models.Task, error) {
	var reordered []models.Task

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var owned []models.Task
		if err := tx.Where("participant_id = ?", participantID).Find(&owned).Error; err != nil {
			return err
		}

		reordered = reorderPlan(owned, orderedIDs)
		for i := range reordered {
			err := tx.Model(&models.Task{}).
				Where("id = ?", reordered[i].ID).
				Update("sort_order", reordered[i].SortOrder).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reordered, nil
}

// reorderPlan сопоставляет задачам участника новый sort_order — индекс их id
// в присланной перестановке. Чужие и неизвестные id пропускаются.
func reorderPlan(owned []models.Task, orderedIDs []uuid.UUID) []models.Task {
	ownedSet := make(map[uuid.UUID]models.Task, len(owned))
	for _, t := range owned {
		ownedSet[t.ID] = t
	}

	plan := make([]models.Task, 0, len(orderedIDs))
	for idx, id := range orderedIDs {
		task, ok := ownedSet[id]
		if !ok {
			continue
		}
		task.SortOrder = idx
		plan = append(plan, task)
	}
	return plan
}
