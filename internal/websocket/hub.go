package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub раздаёт события ленты изменений подписчикам комнат.
// Один клиент — одна комната: подписка оформляется при подключении.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Подписчики по комнатам
	rooms map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	broadcast chan *roomBroadcast

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

type roomBroadcast struct {
	RoomID uuid.UUID
	Data   []byte
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomBroadcast, 64),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает цикл hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case b := <-h.broadcast:
			h.sendToRoom(b.RoomID, b.Data)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub и закрывает все соединения
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.rooms = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

// Register подписывает клиента на ленту его комнаты.
// После Stop вызов возвращается сразу, не блокируясь.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister снимает подписку клиента.
// После Stop вызов возвращается сразу, не блокируясь.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// BroadcastEvent рассылает событие всем подписчикам комнаты.
// Отправитель получает собственное эхо — дедупликация по id на клиенте.
func (h *Hub) BroadcastEvent(roomID uuid.UUID, event EventType, table string, row interface{}) {
	data, err := NewChangeEvent(event, table, roomID, row)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal change event")
		return
	}

	select {
	case h.broadcast <- &roomBroadcast{RoomID: roomID, Data: data}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.rooms[client.RoomID]; !ok {
		h.rooms[client.RoomID] = make(map[uuid.UUID]*Client)
	}
	h.rooms[client.RoomID][client.ID] = client

	logrus.WithFields(logrus.Fields{
		"client": client.ID,
		"room":   client.RoomID,
	}).Info("Feed subscriber registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if room, ok := h.rooms[client.RoomID]; ok {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	logrus.WithFields(logrus.Fields{
		"client": client.ID,
		"room":   client.RoomID,
	}).Info("Feed subscriber unregistered")
}

func (h *Hub) sendToRoom(roomID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		if err := client.enqueue(data); err != nil {
			// Медленный клиент не должен задерживать остальных
			logrus.WithError(err).WithField("client", client.ID).Warn("Dropping event for slow subscriber")
		}
	}
}

// SubscriberCount возвращает число подписчиков комнаты
func (h *Hub) SubscriberCount(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		data, err := NewChangeEvent(EventPing, "", client.RoomID, nil)
		if err != nil {
			continue
		}
		client.enqueue(data)
	}
}
