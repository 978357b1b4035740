package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/study-hours/internal/database"
	"github.com/thereayou/study-hours/internal/handlers/dto"
	"github.com/thereayou/study-hours/internal/models"
	ws "github.com/thereayou/study-hours/internal/websocket"
)

type TaskHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewTaskHandler(db *database.Database, hub *ws.Hub) *TaskHandler {
	return &TaskHandler{db: db, hub: hub}
}

// List отдаёт все задачи комнаты в порядке (sort_order, created_at)
func (h *TaskHandler) List(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	tasks, err := h.db.ListRoomTasks(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Add создаёт задачу в конце списка участника
func (h *TaskHandler) Add(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	participantID, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	var req dto.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task content is empty"})
		return
	}

	if _, err := h.db.GetParticipantInRoom(participantID, roomID); err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found in room"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add task"})
		return
	}

	task := &models.Task{
		RoomID:        roomID,
		ParticipantID: participantID,
		Content:       content,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.db.CreateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add task"})
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventInsert, ws.TableTasks, task)
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// Toggle переключает отметку «сделано». Новое значение считается от
// сохранённой строки: устаревший кэш клиента не может инвертировать
// задачу в неверное состояние.
func (h *TaskHandler) Toggle(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}

	updated, err := h.db.ToggleTask(task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle task"})
		return
	}

	h.hub.BroadcastEvent(updated.RoomID, ws.EventUpdate, ws.TableTasks, updated)
	c.JSON(http.StatusOK, gin.H{"task": updated})
}

// Update редактирует текст задачи
func (h *TaskHandler) Update(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task content is empty"})
		return
	}

	updated, err := h.db.UpdateTask(task.ID, map[string]interface{}{"content": content})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	h.hub.BroadcastEvent(updated.RoomID, ws.EventUpdate, ws.TableTasks, updated)
	c.JSON(http.StatusOK, gin.H{"task": updated})
}

// Delete удаляет задачу владельца
func (h *TaskHandler) Delete(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}

	if err := h.db.DeleteTask(task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	h.hub.BroadcastEvent(task.RoomID, ws.EventDelete, ws.TableTasks, task)
	c.Status(http.StatusNoContent)
}

// Reorder переписывает порядок задач участника: sort_order каждой задачи
// становится её индексом в присланной перестановке. Задачи других
// участников не затрагиваются.
func (h *TaskHandler) Reorder(c *gin.Context) {
	participantID, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	var req dto.ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderedIDs := make([]uuid.UUID, 0, len(req.OrderedIDs))
	for _, raw := range req.OrderedIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id: " + raw})
			return
		}
		orderedIDs = append(orderedIDs, id)
	}

	reordered, err := h.db.ReorderTasks(participantID, orderedIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reorder tasks"})
		return
	}

	for i := range reordered {
		h.hub.BroadcastEvent(reordered[i].RoomID, ws.EventUpdate, ws.TableTasks, &reordered[i])
	}

	c.JSON(http.StatusOK, gin.H{"tasks": reordered})
}

// ownedTask достаёт задачу и проверяет, что её меняет владелец
func (h *TaskHandler) ownedTask(c *gin.Context) (*models.Task, bool) {
	taskID, err := uuid.Parse(c.Param("taskID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return nil, false
	}

	participantID, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return nil, false
	}

	task, err := h.db.GetTask(taskID)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return nil, false
	}

	if task.ParticipantID != participantID {
		c.JSON(http.StatusForbidden, gin.H{"error": "task belongs to another participant"})
		return nil, false
	}

	return task, true
}
