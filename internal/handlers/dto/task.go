package dto

type AddTaskRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateTaskRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReorderTasksRequest — новый порядок задач участника: перестановка их id,
// sort_order каждой задачи становится её индексом в списке
type ReorderTasksRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required"`
}
