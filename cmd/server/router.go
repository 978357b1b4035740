package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/study-hours/internal/handlers"
	"github.com/thereayou/study-hours/internal/middleware"
	"github.com/thereayou/study-hours/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	authH *handlers.AuthHandler,
	roomH *handlers.RoomHandler,
	participantH *handlers.ParticipantHandler,
	taskH *handlers.TaskHandler,
	messageH *handlers.MessageHandler,
	timerH *handlers.TimerHandler,
	wsH *handlers.WebSocketHandler,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		// Выйти можно только с действующим токеном
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtMgr, rdb), authH.Logout)
	}

	// Комнаты открыты и для гостей: токен привязывает аккаунт, если есть
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/backgrounds", roomH.ListBackgrounds)

		api.POST("/rooms", roomH.CreateRoom)

		// Разрешение и вход по короткому коду — для стартовой страницы
		api.GET("/room-codes/:code", roomH.GetRoomByCode)
		api.POST("/room-codes/:code/join", roomH.JoinRoom)

		rooms := api.Group("/rooms/:id")
		{
			rooms.PATCH("/name", roomH.UpdateRoomName)
			rooms.PATCH("/background", roomH.UpdateBackground)

			rooms.GET("/timer", timerH.Remaining)
			rooms.PATCH("/timer/durations", timerH.SetDurations)
			rooms.POST("/timer/start/:participantID", timerH.Start)
			rooms.POST("/timer/pause/:participantID", timerH.Pause)

			rooms.GET("/messages", messageH.List)
			rooms.POST("/messages/:participantID", messageH.Send)

			rooms.GET("/tasks", taskH.List)
			rooms.POST("/tasks/:participantID", taskH.Add)

			rooms.GET("/feed", wsH.Subscribe)
		}

		participants := api.Group("/participants/:participantID")
		{
			participants.POST("/heartbeat", participantH.Heartbeat)
			participants.POST("/leave", roomH.LeaveRoom)
			participants.PATCH("/name", participantH.UpdateName)
			participants.POST("/dnd", participantH.ToggleDoNotDisturb)

			participants.POST("/tasks/reorder", taskH.Reorder)
			participants.PATCH("/tasks/:taskID", taskH.Update)
			participants.POST("/tasks/:taskID/toggle", taskH.Toggle)
			participants.DELETE("/tasks/:taskID", taskH.Delete)
		}
	}
}
