package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/study-hours/internal/database"
	"github.com/thereayou/study-hours/internal/handlers/dto"
	"github.com/thereayou/study-hours/internal/middleware"
	"github.com/thereayou/study-hours/internal/models"
	"github.com/thereayou/study-hours/internal/timer"
	ws "github.com/thereayou/study-hours/internal/websocket"
	"github.com/thereayou/study-hours/pkg/shortcode"
)

// RoomStore — срез хранилища, нужный обработчику комнат
type RoomStore interface {
	CreateRoomWithState(code string, name *string) (*models.Room, *models.RoomState, error)
	GetRoomByCode(code string) (*models.Room, error)
	GetRoomState(roomID uuid.UUID) (*models.RoomState, error)
	UpdateRoomName(id uuid.UUID, name *string) (*models.Room, error)
	UpdateRoomState(roomID uuid.UUID, fields map[string]interface{}) (*models.RoomState, error)
	GetUser(id string) (*models.User, error)
	CreateParticipant(p *models.Participant) error
	GetParticipantInRoom(id, roomID uuid.UUID) (*models.Participant, error)
	ReactivateParticipant(id uuid.UUID, userID *uuid.UUID) (*models.Participant, error)
	DeactivateParticipant(id uuid.UUID) (*models.Participant, error)
	ListActiveParticipants(roomID uuid.UUID) ([]models.Participant, error)
}

type RoomHandler struct {
	db      RoomStore
	hub     *ws.Hub
	watcher *timer.Watcher
}

func NewRoomHandler(db RoomStore, hub *ws.Hub, watcher *timer.Watcher) *RoomHandler {
	return &RoomHandler{db: db, hub: hub, watcher: watcher}
}

// CreateRoom создает комнату вместе с её начальным состоянием таймера.
// Код генерируется заново при коллизии.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var room *models.Room
	var state *models.RoomState

	for attempt := 0; attempt < 3; attempt++ {
		code, err := shortcode.Generate()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate room code"})
			return
		}

		room, state, err = h.db.CreateRoomWithState(code, req.Name)
		if err == nil {
			break
		}
		room, state = nil, nil
		logrus.WithError(err).Warn("Room creation attempt failed")
	}

	if room == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room": room, "state": state})
}

// GetRoomByCode разрешает код комнаты для стартовой страницы
func (h *RoomHandler) GetRoomByCode(c *gin.Context) {
	code := shortcode.Normalize(c.Param("code"))

	room, err := h.db.GetRoomByCode(code)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"room": room})
}

// JoinRoom — вход в комнату по коду. Если клиент прислал сохранённый
// participant_id этой комнаты, прежняя строка реактивируется — вторая
// строка для того же устройства не создаётся. Повторный вход идемпотентен.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	code := shortcode.Normalize(c.Param("code"))

	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUserID(c)

	// Имя: из запроса, иначе выводим из аккаунта
	name := strings.TrimSpace(req.Name)
	if name == "" && userID != nil {
		if user, err := h.db.GetUser(userID.String()); err == nil {
			name = user.DisplayName()
		}
	}
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "display name is required to join"})
		return
	}

	room, err := h.db.GetRoomByCode(code)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
		return
	}

	state, err := h.db.GetRoomState(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
		return
	}

	participant, err := h.reviveParticipant(req.ParticipantID, room.ID, userID)
	if err != nil {
		// Реактивация не удалась — не создаём вторую строку для того же
		// устройства, вход должен завершиться ошибкой
		logrus.WithError(err).Warn("Failed to reactivate participant on join")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
		return
	}

	if participant == nil {
		participant = &models.Participant{
			RoomID:    room.ID,
			UserID:    userID,
			Name:      name,
			IsActive:  true,
			LastSeen:  time.Now().UTC(),
			CreatedAt: time.Now().UTC(),
		}
		if err := h.db.CreateParticipant(participant); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
			return
		}
		h.hub.BroadcastEvent(room.ID, ws.EventInsert, ws.TableParticipants, participant)
	} else {
		h.hub.BroadcastEvent(room.ID, ws.EventUpdate, ws.TableParticipants, participant)
	}

	participants, err := h.db.ListActiveParticipants(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
		return
	}

	// Таймер мог быть запущен до перезапуска сервера — возобновляем слежение
	if state.Running {
		h.watcher.Watch(room.ID)
	}

	c.JSON(http.StatusOK, dto.JoinRoomResponse{
		Room:         room,
		State:        state,
		Participant:  participant,
		Participants: models.SortForDisplay(participants, participant.ID),
	})
}

// reviveParticipant реактивирует участника по сохранённому id, если он
// действительно из этой комнаты. Имя в комнате сохраняется, привязка
// к аккаунту добавляется, если появилась. (nil, nil) означает «создавать
// нового»: id не прислан, не разбирается или из другой комнаты. Ошибка
// хранилища — это ошибка: падать в создание нельзя, получится дубль.
func (h *RoomHandler) reviveParticipant(storedID *string, roomID uuid.UUID, userID *uuid.UUID) (*models.Participant, error) {
	if storedID == nil {
		return nil, nil
	}

	id, err := uuid.Parse(*storedID)
	if err != nil {
		return nil, nil
	}

	if _, err := h.db.GetParticipantInRoom(id, roomID); err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return h.db.ReactivateParticipant(id, userID)
}

// LeaveRoom — мягкий выход: участник помечается неактивным. Идемпотентно.
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	participant, err := h.db.DeactivateParticipant(id)
	if err != nil {
		if database.IsNotFound(err) {
			// Выход из несуществующей комнаты — не ошибка
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave room"})
		return
	}

	h.hub.BroadcastEvent(participant.RoomID, ws.EventUpdate, ws.TableParticipants, participant)
	c.Status(http.StatusNoContent)
}

// UpdateRoomName меняет название комнаты; менять может любой участник
func (h *RoomHandler) UpdateRoomName(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req dto.UpdateRoomNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Пустое имя трактуем как сброс названия
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		req.Name = nil
	}

	room, err := h.db.UpdateRoomName(roomID, req.Name)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room name"})
		return
	}

	h.hub.BroadcastEvent(room.ID, ws.EventUpdate, ws.TableRooms, room)
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// UpdateBackground меняет фон комнаты из фиксированного каталога
func (h *RoomHandler) UpdateBackground(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req dto.UpdateBackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidBackground(req.BackgroundID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown background"})
		return
	}

	state, err := h.db.UpdateRoomState(roomID, map[string]interface{}{
		"background_id": req.BackgroundID,
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update background"})
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventUpdate, ws.TableRoomState, state)
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// ListBackgrounds отдаёт каталог фонов
func (h *RoomHandler) ListBackgrounds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"backgrounds": models.Backgrounds})
}
