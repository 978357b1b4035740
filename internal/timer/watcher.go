package timer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/study-hours/internal/models"
)

// StateStore — срез хранилища, нужный наблюдателю
type StateStore interface {
	GetRoomState(roomID uuid.UUID) (*models.RoomState, error)
}

// ExpireFunc вызывается на пересечении нуля запущенным таймером
type ExpireFunc func(roomID uuid.UUID, state *models.RoomState)

// Watcher держит по горутине на комнату с запущенным таймером и
// переключает фазу, когда вычисленный остаток доходит до нуля.
// Горутина завершается сразу после срабатывания, поэтому срабатывание
// бывает ровно одно на пересечение: последующие тики с остатком 0
// ничего не делают.
type Watcher struct {
	states   StateStore
	onExpire ExpireFunc

	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	watching map[uuid.UUID]chan struct{}
}

func NewWatcher(states StateStore, onExpire ExpireFunc) *Watcher {
	return &Watcher{
		states:   states,
		onExpire: onExpire,
		interval: time.Second,
		now:      time.Now,
		watching: make(map[uuid.UUID]chan struct{}),
	}
}

// Watch начинает следить за комнатой. Повторный вызов для комнаты,
// за которой уже следят, ничего не делает.
func (w *Watcher) Watch(roomID uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.watching[roomID]; ok {
		return
	}

	stop := make(chan struct{})
	w.watching[roomID] = stop
	go w.run(roomID, stop)
}

// Unwatch останавливает наблюдение за комнатой
func (w *Watcher) Unwatch(roomID uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked(roomID)
}

// StopAll останавливает все горутины наблюдателя
func (w *Watcher) StopAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for roomID := range w.watching {
		w.stopLocked(roomID)
	}
}

func (w *Watcher) stopLocked(roomID uuid.UUID) {
	if stop, ok := w.watching[roomID]; ok {
		close(stop)
		delete(w.watching, roomID)
	}
}

func (w *Watcher) finish(roomID uuid.UUID, stop chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Убираем только собственную запись: комнату могли успеть
	// перезапустить новой горутиной
	if cur, ok := w.watching[roomID]; ok && cur == stop {
		delete(w.watching, roomID)
	}
}

func (w *Watcher) run(roomID uuid.UUID, stop chan struct{}) {
	defer w.finish(roomID, stop)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return

		case <-ticker.C:
			state, err := w.states.GetRoomState(roomID)
			if err != nil {
				logrus.WithError(err).WithField("room", roomID).Warn("Timer watcher failed to read state")
				return
			}

			// Таймер поставили на паузу или фаза уже переключена —
			// следить больше не за чем
			if !state.Running {
				return
			}

			if Expired(state, w.now()) {
				w.onExpire(roomID, state)
				return
			}
		}
	}
}
