package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thereayou/study-hours/internal/database"
	ws "github.com/thereayou/study-hours/internal/websocket"
)

// WebSocketHandler подключает клиентов к ленте изменений комнаты
type WebSocketHandler struct {
	hub      *ws.Hub
	db       *database.Database
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, db *database.Database) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		db:  db,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// Subscribe открывает ленту изменений комнаты для участника
func (h *WebSocketHandler) Subscribe(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	participantID, err := uuid.Parse(c.Query("participant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	if _, err := h.db.GetParticipantInRoom(participantID, roomID); err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found in room"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, roomID, participantID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
