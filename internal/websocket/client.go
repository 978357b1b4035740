package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 4 * 1024
)

// Client — одно websocket-подключение, подписанное на ленту одной комнаты
type Client struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	ParticipantID uuid.UUID
	Conn          *websocket.Conn
	Send          chan []byte
	Hub           *Hub
}

func NewClient(hub *Hub, conn *websocket.Conn, roomID, participantID uuid.UUID) *Client {
	return &Client{
		ID:            uuid.New(),
		RoomID:        roomID,
		ParticipantID: participantID,
		Conn:          conn,
		Send:          make(chan []byte, 256),
		Hub:           hub,
	}
}

// enqueue кладет событие в очередь клиента, не блокируясь
func (c *Client) enqueue(data []byte) error {
	select {
	case c.Send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

// ReadPump читает входящие кадры. Лента односторонняя: от клиента
// принимаются только pong-и, всё остальное игнорируется.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Warn("WebSocket read error")
			}
			break
		}

		var e ChangeEvent
		if err := json.Unmarshal(raw, &e); err != nil || e.Event != EventPong {
			continue
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
