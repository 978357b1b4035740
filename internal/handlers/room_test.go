package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/study-hours/internal/database"
	"github.com/thereayou/study-hours/internal/models"
	"github.com/thereayou/study-hours/internal/timer"
	ws "github.com/thereayou/study-hours/internal/websocket"
)

// fakeRoomStore — хранилище комнат в памяти для проверки решений
// обработчика: реактивация против создания, коды ответов
type fakeRoomStore struct {
	room  *models.Room
	state *models.RoomState
	byID  map[uuid.UUID]*models.Participant

	created     []*models.Participant
	reactivated []uuid.UUID

	reactivateErr error
	roomUpdateErr error
}

func newFakeRoomStore() *fakeRoomStore {
	room := &models.Room{ID: uuid.New(), Code: "abcd1234", CreatedAt: time.Now().UTC()}
	return &fakeRoomStore{
		room: room,
		state: &models.RoomState{
			RoomID:       room.ID,
			Phase:        models.PhaseFocus,
			FocusSeconds: models.DefaultFocusSeconds,
			BreakSeconds: models.DefaultBreakSeconds,
			BackgroundID: models.DefaultBackgroundID,
		},
		byID: make(map[uuid.UUID]*models.Participant),
	}
}

func (f *fakeRoomStore) seedParticipant(roomID uuid.UUID) *models.Participant {
	p := &models.Participant{
		ID:        uuid.New(),
		RoomID:    roomID,
		Name:      "stored",
		IsActive:  false,
		LastSeen:  time.Now().UTC().Add(-time.Hour),
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	f.byID[p.ID] = p
	return p
}

func (f *fakeRoomStore) CreateRoomWithState(code string, name *string) (*models.Room, *models.RoomState, error) {
	return f.room, f.state, nil
}

func (f *fakeRoomStore) GetRoomByCode(code string) (*models.Room, error) {
	if f.room == nil || f.room.Code != code {
		return nil, database.ErrRoomNotFound
	}
	return f.room, nil
}

func (f *fakeRoomStore) GetRoomState(roomID uuid.UUID) (*models.RoomState, error) {
	if f.state == nil || f.state.RoomID != roomID {
		return nil, database.ErrRoomNotFound
	}
	return f.state, nil
}

func (f *fakeRoomStore) UpdateRoomName(id uuid.UUID, name *string) (*models.Room, error) {
	if f.roomUpdateErr != nil {
		return nil, f.roomUpdateErr
	}
	f.room.Name = name
	return f.room, nil
}

func (f *fakeRoomStore) UpdateRoomState(roomID uuid.UUID, fields map[string]interface{}) (*models.RoomState, error) {
	if f.roomUpdateErr != nil {
		return nil, f.roomUpdateErr
	}
	return f.state, nil
}

func (f *fakeRoomStore) GetUser(id string) (*models.User, error) {
	return nil, errors.New("no users in fake store")
}

func (f *fakeRoomStore) CreateParticipant(p *models.Participant) error {
	p.ID = uuid.New()
	f.byID[p.ID] = p
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRoomStore) GetParticipantInRoom(id, roomID uuid.UUID) (*models.Participant, error) {
	p, ok := f.byID[id]
	if !ok || p.RoomID != roomID {
		return nil, database.ErrParticipantNotFound
	}
	return p, nil
}

func (f *fakeRoomStore) ReactivateParticipant(id uuid.UUID, userID *uuid.UUID) (*models.Participant, error) {
	if f.reactivateErr != nil {
		return nil, f.reactivateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, database.ErrParticipantNotFound
	}
	p.IsActive = true
	p.LastSeen = time.Now().UTC()
	if userID != nil {
		p.UserID = userID
	}
	f.reactivated = append(f.reactivated, id)
	return p, nil
}

func (f *fakeRoomStore) DeactivateParticipant(id uuid.UUID) (*models.Participant, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, database.ErrParticipantNotFound
	}
	p.IsActive = false
	return p, nil
}

func (f *fakeRoomStore) ListActiveParticipants(roomID uuid.UUID) ([]models.Participant, error) {
	var out []models.Participant
	for _, p := range f.byID {
		if p.RoomID == roomID && p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func newRoomTestRouter(store *fakeRoomStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	watcher := timer.NewWatcher(store, func(uuid.UUID, *models.RoomState) {})
	h := NewRoomHandler(store, hub, watcher)

	r := gin.New()
	r.POST("/room-codes/:code/join", h.JoinRoom)
	r.PATCH("/rooms/:id/name", h.UpdateRoomName)
	r.PATCH("/rooms/:id/background", h.UpdateBackground)
	return r
}

func joinRequest(code, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/room-codes/"+code+"/join", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJoinRoom_ReactivatesStoredParticipant(t *testing.T) {
	store := newFakeRoomStore()
	stored := store.seedParticipant(store.room.ID)
	r := newRoomTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, joinRequest(store.room.Code,
		`{"name":"Dana","participant_id":"`+stored.ID.String()+`"}`))

	require.Equal(t, http.StatusOK, w.Code)

	// Прежняя строка ожила, второй не появилось
	assert.Empty(t, store.created)
	assert.Equal(t, []uuid.UUID{stored.ID}, store.reactivated)
	assert.True(t, store.byID[stored.ID].IsActive)
	assert.Equal(t, "stored", store.byID[stored.ID].Name)
}

func TestJoinRoom_ForeignStoredIDCreatesNew(t *testing.T) {
	store := newFakeRoomStore()
	foreign := store.seedParticipant(uuid.New()) // участник другой комнаты
	r := newRoomTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, joinRequest(store.room.Code,
		`{"name":"Dana","participant_id":"`+foreign.ID.String()+`"}`))

	require.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, store.created, 1)
	assert.Empty(t, store.reactivated)
	assert.Equal(t, store.room.ID, store.created[0].RoomID)
}

func TestJoinRoom_FailsWhenReactivationFails(t *testing.T) {
	store := newFakeRoomStore()
	stored := store.seedParticipant(store.room.ID)
	store.reactivateErr = errors.New("connection reset")
	r := newRoomTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, joinRequest(store.room.Code,
		`{"name":"Dana","participant_id":"`+stored.ID.String()+`"}`))

	// Сбой реактивации не должен миновать в создание дубля
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.created)
}

func TestUpdateRoomName_UnknownRoom(t *testing.T) {
	store := newFakeRoomStore()
	store.roomUpdateErr = database.ErrRoomNotFound
	r := newRoomTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/rooms/"+uuid.NewString()+"/name",
		strings.NewReader(`{"name":"Focus room"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBackground_UnknownRoom(t *testing.T) {
	store := newFakeRoomStore()
	store.roomUpdateErr = database.ErrRoomNotFound
	r := newRoomTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/rooms/"+uuid.NewString()+"/background",
		strings.NewReader(`{"background_id":"video-2"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
