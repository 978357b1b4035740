package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/study-hours/internal/database"
	"github.com/thereayou/study-hours/internal/handlers/dto"
	ws "github.com/thereayou/study-hours/internal/websocket"
)

type ParticipantHandler struct {
	db       *database.Database
	hub      *ws.Hub
	messages *MessageHandler
}

func NewParticipantHandler(db *database.Database, hub *ws.Hub, messages *MessageHandler) *ParticipantHandler {
	return &ParticipantHandler{db: db, hub: hub, messages: messages}
}

// Heartbeat обновляет last_seen. Некритичная запись: при сбое хранилища
// логируем и отвечаем успехом — следующий heartbeat всё выровняет.
func (h *ParticipantHandler) Heartbeat(c *gin.Context) {
	id, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	if err := h.db.TouchParticipant(id); err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		logrus.WithError(err).WithField("participant", id).Warn("Heartbeat write failed")
	}

	c.Status(http.StatusNoContent)
}

// UpdateName меняет имя участника в этой комнате
func (h *ParticipantHandler) UpdateName(c *gin.Context) {
	id, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	var req dto.UpdateParticipantNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.db.UpdateParticipant(id, map[string]interface{}{"name": req.Name})
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update name"})
		return
	}

	h.hub.BroadcastEvent(participant.RoomID, ws.EventUpdate, ws.TableParticipants, participant)
	c.JSON(http.StatusOK, gin.H{"participant": participant})
}

// ToggleDoNotDisturb переключает «не беспокоить». Момент включения
// запоминается в dnd_enabled_at — от него чат прячет новые сообщения.
func (h *ParticipantHandler) ToggleDoNotDisturb(c *gin.Context) {
	id, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	current, err := h.db.GetParticipant(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle do not disturb"})
		return
	}

	enabled := !current.DoNotDisturb
	fields := map[string]interface{}{"do_not_disturb": enabled}
	if enabled {
		fields["dnd_enabled_at"] = time.Now().UTC()
	} else {
		fields["dnd_enabled_at"] = nil
	}

	participant, err := h.db.UpdateParticipant(id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle do not disturb"})
		return
	}

	h.hub.BroadcastEvent(participant.RoomID, ws.EventUpdate, ws.TableParticipants, participant)

	statusText := "disabled"
	if enabled {
		statusText = "enabled"
	}
	h.messages.SendSystem(participant.RoomID, participant.ID,
		fmt.Sprintf("%s %s Do Not Disturb", participant.Name, statusText))

	c.JSON(http.StatusOK, gin.H{"participant": participant})
}
