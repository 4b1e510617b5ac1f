package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/clients"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/config"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/database"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/handlers"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/middleware"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/services"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/stats"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/store"
	memorystore "github.com/Arquisoft/wichat-en2b-sub000/internal/store/memory"
	postgresstore "github.com/Arquisoft/wichat-en2b-sub000/internal/store/postgres"
	redisstore "github.com/Arquisoft/wichat-en2b-sub000/internal/store/redis"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/ws"

	_ "github.com/Arquisoft/wichat-en2b-sub000/docs"
)

// @title           WiChat Session Service API
// @version         1.0
// @description     Live multiplayer quiz sessions: host-paced play over HTTP with websocket fan-out
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	if level, err := logrus.ParseLevel(getLogLevel()); err == nil {
		logrus.SetLevel(level)
	}

	var sessionStore store.Store
	switch cfg.StoreBackend {
	case "postgres":
		db := database.Connect(cfg)
		database.AutoMigrate(db)
		sessionStore = postgresstore.New(db)
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		sessionStore = redisstore.New(client, 0)
	default:
		sessionStore = memorystore.New()
	}
	logrus.WithField("backend", cfg.StoreBackend).Info("session store ready")

	var results stats.Publisher = stats.NopPublisher{}
	if cfg.StatsRedisAddr != "" {
		publisher := stats.NewAsynqPublisher(cfg.StatsRedisAddr)
		defer publisher.Close()
		results = publisher
	}

	hub := ws.NewHub()
	authService := services.NewAuthService(cfg.JWTSecret)
	scoringService := services.NewScoringService()
	timerService := services.NewTimerService()
	answerClient := clients.NewHTTPAnswerClient(cfg.AnswerServiceURL)
	sessionService := services.NewSessionService(
		sessionStore,
		scoringService,
		timerService,
		answerClient,
		hub,
		results,
		time.Duration(cfg.RevealPauseSeconds)*time.Second,
	)

	sessionHandler := handlers.NewSessionHandler(sessionService)
	wsHandler := handlers.NewWSHandler(hub, sessionService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/session/:code", wsHandler.HandleSession)

	api := r.Group("/api/v1")
	api.Use(middleware.Identity(authService))
	{
		session := api.Group("/session")
		{
			session.POST("/create", sessionHandler.Create)
			session.POST("/:code/join", sessionHandler.Join)
			session.GET("/:code/start", sessionHandler.Start)
			session.GET("/:code/next", sessionHandler.Next)
			session.GET("/:code/end", sessionHandler.End)
			session.POST("/:code/answer", sessionHandler.Answer)
			session.GET("/:code/status", sessionHandler.Status)
		}
		api.GET("/internal/quizdata/:code", sessionHandler.QuizData)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		logrus.Infof("server starting on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	timerService.Shutdown()
	hub.Shutdown()
}

func getLogLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}
