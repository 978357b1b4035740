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
	"github.com/thereayou/study-hours/internal/models"
	"github.com/thereayou/study-hours/internal/timer"
	ws "github.com/thereayou/study-hours/internal/websocket"
)

// TimerHandler управляет общим таймером комнаты. Running и StartedAt
// всегда пишутся вместе; каждое изменение рассылается строкой целиком,
// клиенты заменяют своё состояние без слияния.
type TimerHandler struct {
	db       *database.Database
	hub      *ws.Hub
	watcher  *timer.Watcher
	messages *MessageHandler
}

func NewTimerHandler(db *database.Database, hub *ws.Hub, watcher *timer.Watcher, messages *MessageHandler) *TimerHandler {
	return &TimerHandler{db: db, hub: hub, watcher: watcher, messages: messages}
}

// Start запускает таймер: running=true, started_at=now
func (h *TimerHandler) Start(c *gin.Context) {
	roomID, participant, ok := h.roomAndActor(c)
	if !ok {
		return
	}

	state, err := h.db.UpdateRoomState(roomID, timer.StartFields(time.Now().UTC()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start timer"})
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventUpdate, ws.TableRoomState, state)
	h.watcher.Watch(roomID)

	h.messages.SendSystem(roomID, participant.ID,
		fmt.Sprintf("Timer started for %s by %s.", durationText(state), participant.Name))

	c.JSON(http.StatusOK, gin.H{"state": state})
}

// Pause останавливает таймер: running=false, started_at=null
func (h *TimerHandler) Pause(c *gin.Context) {
	roomID, participant, ok := h.roomAndActor(c)
	if !ok {
		return
	}

	state, err := h.db.UpdateRoomState(roomID, timer.StopFields())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop timer"})
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventUpdate, ws.TableRoomState, state)
	h.watcher.Unwatch(roomID)

	h.messages.SendSystem(roomID, participant.ID,
		fmt.Sprintf("Timer stopped by %s.", participant.Name))

	c.JSON(http.StatusOK, gin.H{"state": state})
}

// SetDurations задаёт длительности фаз, с приведением к допустимому
// диапазону. Поля таймера (running, started_at) не трогаются: настройка
// длительности и запуск не конфликтуют по полям.
func (h *TimerHandler) SetDurations(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req dto.SetDurationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.db.UpdateRoomState(roomID, map[string]interface{}{
		"focus_seconds": models.ClampPhaseSeconds(req.FocusSeconds),
		"break_seconds": models.ClampPhaseSeconds(req.BreakSeconds),
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set durations"})
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventUpdate, ws.TableRoomState, state)
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// Remaining отдаёт текущее состояние и вычисленный остаток секунд —
// для первичной отрисовки до подписки на ленту
func (h *TimerHandler) Remaining(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	state, err := h.db.GetRoomState(roomID)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":             state,
		"seconds_remaining": timer.Remaining(state, time.Now().UTC()),
	})
}

// OnExpire — колбэк наблюдателя: на нуле фаза переключается, таймер
// останавливается и не перезапускается сам. Вызывается ровно один раз
// на пересечение нуля.
func (h *TimerHandler) OnExpire(roomID uuid.UUID, state *models.RoomState) {
	next, err := h.db.UpdateRoomState(roomID, timer.SwitchPhaseFields(state.NextPhase()))
	if err != nil {
		logrus.WithError(err).WithField("room", roomID).Error("Failed to switch phase on timer expiry")
		return
	}

	h.hub.BroadcastEvent(roomID, ws.EventUpdate, ws.TableRoomState, next)
}

// roomAndActor разбирает комнату и участника-инициатора из запроса
func (h *TimerHandler) roomAndActor(c *gin.Context) (uuid.UUID, *models.Participant, bool) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return uuid.Nil, nil, false
	}

	participantID, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return uuid.Nil, nil, false
	}

	participant, err := h.db.GetParticipantInRoom(participantID, roomID)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found in room"})
			return uuid.Nil, nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load participant"})
		return uuid.Nil, nil, false
	}

	return roomID, participant, true
}

// durationText — подпись длительности для системного сообщения:
// стандартные 25 и 50 минут называются явно, остальное — Custom
func durationText(state *models.RoomState) string {
	minutes := state.PhaseSeconds() / 60
	if minutes == 25 || minutes == 50 {
		return fmt.Sprintf("%d mins", minutes)
	}
	return "Custom"
}
