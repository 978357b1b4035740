package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType определяет виды событий ленты изменений
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"

	// Служебные типы
	EventPing EventType = "ping"
	EventPong EventType = "pong"
)

// Таблицы, по которым рассылаются события
const (
	TableRooms        = "rooms"
	TableRoomState    = "room_state"
	TableParticipants = "participants"
	TableTasks        = "tasks"
	TableMessages     = "messages"
)

// ChangeEvent — строковое событие ленты изменений: вся строка целиком.
// Клиент сводит его в свой кэш по первичному ключу (upsert-by-id),
// поэтому повторная доставка и эхо собственной записи безвредны.
type ChangeEvent struct {
	Event     EventType       `json:"event"`
	Table     string          `json:"table,omitempty"`
	RoomID    uuid.UUID       `json:"room_id"`
	Row       json.RawMessage `json:"row,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func validEvent(event EventType) bool {
	switch event {
	case EventInsert, EventUpdate, EventDelete, EventPing, EventPong:
		return true
	}
	return false
}

// NewChangeEvent собирает событие для рассылки в комнату
func NewChangeEvent(event EventType, table string, roomID uuid.UUID, row interface{}) ([]byte, error) {
	if !validEvent(event) {
		return nil, ErrInvalidEvent
	}

	e := ChangeEvent{
		Event:     event,
		Table:     table,
		RoomID:    roomID,
		Timestamp: time.Now().UTC(),
	}

	if row != nil {
		data, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		e.Row = data
	}

	return json.Marshal(e)
}
