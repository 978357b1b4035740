package dto

import (
	"github.com/thereayou/study-hours/internal/models"
)

type CreateRoomRequest struct {
	Name *string `json:"name"`
}

// JoinRoomRequest — вход в комнату по коду. ParticipantID — сохранённый
// на устройстве id участника этой комнаты; с ним вход реактивирует
// прежнюю строку вместо создания новой.
type JoinRoomRequest struct {
	Name          string  `json:"name"`
	ParticipantID *string `json:"participant_id"`
}

// JoinRoomResponse — полный снимок комнаты на момент входа
type JoinRoomResponse struct {
	Room         *models.Room         `json:"room"`
	State        *models.RoomState    `json:"state"`
	Participant  *models.Participant  `json:"participant"`
	Participants []models.Participant `json:"participants"`
}

type UpdateRoomNameRequest struct {
	Name *string `json:"name"`
}

type UpdateBackgroundRequest struct {
	BackgroundID string `json:"background_id" binding:"required"`
}

type SetDurationsRequest struct {
	FocusSeconds int `json:"focus_seconds" binding:"required,min=1"`
	BreakSeconds int `json:"break_seconds" binding:"required,min=1"`
}

type UpdateParticipantNameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}
