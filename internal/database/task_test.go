package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/thereayou/study-hours/internal/models"
)

func ownedTasks(n int) []models.Task {
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = models.Task{ID: uuid.New(), SortOrder: i}
	}
	return tasks
}

func TestReorderPlan_AssignsIndexAsSortOrder(t *testing.T) {
	owned := ownedTasks(3)
	ordered := []uuid.UUID{owned[2].ID, owned[0].ID, owned[1].ID}

	plan := reorderPlan(owned, ordered)

	assert.Len(t, plan, 3)
	for idx, task := range plan {
		assert.Equal(t, ordered[idx], task.ID)
		assert.Equal(t, idx, task.SortOrder)
	}
}

func TestReorderPlan_SkipsForeignIDs(t *testing.T) {
	owned := ownedTasks(2)
	foreign := uuid.New()
	ordered := []uuid.UUID{owned[1].ID, foreign, owned[0].ID}

	plan := reorderPlan(owned, ordered)

	assert.Len(t, plan, 2)
	assert.Equal(t, owned[1].ID, plan[0].ID)
	assert.Equal(t, 0, plan[0].SortOrder)
	assert.Equal(t, owned[0].ID, plan[1].ID)
	assert.Equal(t, 1, plan[1].SortOrder)
}

func TestReorderPlan_EmptyOrderTouchesNothing(t *testing.T) {
	plan := reorderPlan(ownedTasks(3), nil)
	assert.Empty(t, plan)
}
