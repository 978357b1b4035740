package timer

import (
	"time"

	"github.com/thereayou/study-hours/internal/models"
)

// Remaining вычисляет оставшиеся секунды фазы как чистую функцию состояния
// и текущего времени. Остановленный таймер показывает полную длительность;
// у запущенного elapsed = floor(now − started_at), результат не бывает
// отрицательным. Все клиенты получают одно и то же число из одних и тех же
// (started_at, длительность) — синхронизация часов не нужна.
func Remaining(state *models.RoomState, now time.Time) int {
	total := state.PhaseSeconds()

	if !state.Running || state.StartedAt == nil {
		return total
	}

	elapsed := int(now.Sub(*state.StartedAt) / time.Second)
	if elapsed < 0 {
		// started_at из будущего (рассинхрон часов) — таймер ещё не тикал
		elapsed = 0
	}

	remaining := total - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired сообщает, дошёл ли запущенный таймер до нуля
func Expired(state *models.RoomState, now time.Time) bool {
	return state.Running && Remaining(state, now) == 0
}

// StartFields — поля записи для запуска таймера. Running и StartedAt
// всегда пишутся вместе, чтобы инвариант состояния не нарушался.
func StartFields(now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"running":    true,
		"started_at": now,
	}
}

// StopFields — поля записи для паузы или сброса
func StopFields() map[string]interface{} {
	return map[string]interface{}{
		"running":    false,
		"started_at": nil,
	}
}

// SwitchPhaseFields — поля переключения фазы на нуле: новая фаза,
// таймер остановлен, started_at сброшен. Новая фаза не запускается сама.
func SwitchPhaseFields(nextPhase string) map[string]interface{} {
	return map[string]interface{}{
		"phase":      nextPhase,
		"running":    false,
		"started_at": nil,
	}
}
