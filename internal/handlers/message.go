package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/study-hours/internal/database"
	"github.com/thereayou/study-hours/internal/handlers/dto"
	"github.com/thereayou/study-hours/internal/models"
	ws "github.com/thereayou/study-hours/internal/websocket"
)

// MessagesPerPage — размер страницы истории чата
const MessagesPerPage = 100

type MessageHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewMessageHandler(db *database.Database, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{db: db, hub: hub}
}

// List отдаёт страницу сообщений комнаты в хронологическом порядке.
// before — пагинация вверх (строго старше отметки); viewer — участник,
// для которого применяется фильтр «не беспокоить».
func (h *MessageHandler) List(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	limit := MessagesPerPage
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= MessagesPerPage {
			limit = n
		}
	}

	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before timestamp"})
			return
		}
		before = &t
	}

	messages, err := h.db.GetRoomMessages(roomID, limit, before)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	// Неполная страница — более старых сообщений нет
	hasMore := len(messages) == limit

	if raw := c.Query("viewer"); raw != "" {
		if viewerID, err := uuid.Parse(raw); err == nil {
			if viewer, err := h.db.GetParticipant(viewerID); err == nil {
				messages = VisibleMessages(messages, viewer)
			}
		}
	}

	c.JSON(http.StatusOK, dto.MessagesResponse{Messages: messages, HasMore: hasMore})
}

// Send сохраняет сообщение участника и рассылает его в ленту комнаты.
// Пустое после trim содержимое — ошибка валидации, вставки не происходит.
func (h *MessageHandler) Send(c *gin.Context) {
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

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message content is empty"})
		return
	}

	participant, err := h.db.GetParticipantInRoom(participantID, roomID)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found in room"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	message := &models.Message{
		RoomID:        roomID,
		ParticipantID: participant.ID,
		Content:       content,
		MessageType:   models.MessageTypeUser,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.db.SaveMessage(message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventInsert, ws.TableMessages, message)
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// SendSystem пишет системное сообщение от имени участника-инициатора
// («Timer started…», переключение DND). Сбой логируется и глотается:
// системные сообщения некритичны.
func (h *MessageHandler) SendSystem(roomID, participantID uuid.UUID, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}

	message := &models.Message{
		RoomID:        roomID,
		ParticipantID: participantID,
		Content:       content,
		MessageType:   models.MessageTypeSystem,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.db.SaveMessage(message); err != nil {
		logrus.WithError(err).WithField("room", roomID).Warn("Failed to save system message")
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventInsert, ws.TableMessages, message)
}
