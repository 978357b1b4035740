package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/study-hours/internal/database"
	"github.com/thereayou/study-hours/internal/handlers"
	"github.com/thereayou/study-hours/internal/models"
	"github.com/thereayou/study-hours/internal/timer"
	ws "github.com/thereayou/study-hours/internal/websocket"
	"github.com/thereayou/study-hours/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Watcher    *timer.Watcher
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logrus.Info(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		logrus.WithError(err).Fatal("Postgres connect failed")
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		logrus.WithError(err).Fatal("invalid REDIS_URL")
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Fatal("Redis connect failed")
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	go hub.Run()

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	messageH := handlers.NewMessageHandler(dbConn, hub)

	// Наблюдатель и обработчик таймера ссылаются друг на друга,
	// поэтому колбэк замыкается на переменную, заполняемую ниже
	var timerH *handlers.TimerHandler
	watcher := timer.NewWatcher(dbConn, func(roomID uuid.UUID, state *models.RoomState) {
		timerH.OnExpire(roomID, state)
	})

	roomH := handlers.NewRoomHandler(dbConn, hub, watcher)
	participantH := handlers.NewParticipantHandler(dbConn, hub, messageH)
	taskH := handlers.NewTaskHandler(dbConn, hub)
	timerH = handlers.NewTimerHandler(dbConn, hub, watcher, messageH)
	wsH := handlers.NewWebSocketHandler(hub, dbConn)

	router := gin.Default()
	APIEndpoints(router, authH, roomH, participantH, taskH, messageH, timerH, wsH, jwtMgr, rdb)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Watcher:    watcher,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.Router,
	}

	go func() {
		logrus.WithField("port", port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server run error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down")
	s.Watcher.StopAll()
	s.Hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Forced server shutdown")
	}
}
