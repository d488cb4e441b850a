package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CGAJAY/chat-app/internal/config"
	"github.com/CGAJAY/chat-app/internal/database"
	"github.com/CGAJAY/chat-app/internal/http/handlers"
	"github.com/CGAJAY/chat-app/internal/http/middleware"
	"github.com/CGAJAY/chat-app/internal/store"
	"github.com/CGAJAY/chat-app/internal/upload"
	"github.com/CGAJAY/chat-app/internal/ws"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.MongoURI == "" || cfg.JWTSecret == "" {
		logger.Fatal("MONGO_URI and JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := database.Connect(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDB)

	users := store.NewUsers(db)
	messages := store.NewMessages(db)
	uploader := upload.Passthrough{}

	presence := ws.NewRegistry()
	hub := ws.NewHub(presence, logger)
	router := ws.NewRouter(presence, hub, logger)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		Users:        users,
		Uploader:     uploader,
		JWTSecret:    cfg.JWTSecret,
		CookieName:   cfg.AuthCookieName,
		CookieSecure: cfg.CookieSecure,
		Log:          logger,
	}
	msgH := &handlers.MessageHandler{
		Users:    users,
		Messages: messages,
		Router:   router,
		Uploader: uploader,
		Log:      logger,
	}
	wsH := &handlers.WSHandler{
		Hub:           hub,
		AllowedOrigin: originHost(cfg.FrontendURL),
	}

	r.GET("/ws", wsH.Handle)

	v1 := r.Group("/api/v1")
	auth := middleware.AuthMiddleware(cfg.JWTSecret, cfg.AuthCookieName)

	v1.POST("/auth/signup", authH.SignUp)
	v1.POST("/auth/login", authH.Login)
	v1.DELETE("/auth/logout", authH.Logout)
	v1.GET("/auth/check", auth, authH.Check)
	v1.PUT("/auth/update", auth, authH.UpdateProfile)

	v1.GET("/messages/users", auth, msgH.ListUsers)
	v1.GET("/messages/:id", auth, msgH.GetMessages)
	v1.POST("/messages/send/:id", auth, msgH.SendMessage)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown error", zap.Error(err))
	}
	hub.Shutdown()
}

// originHost turns a frontend URL into the host pattern the websocket
// origin check expects.
func originHost(frontendURL string) string {
	u, err := url.Parse(frontendURL)
	if err != nil || u.Host == "" {
		return frontendURL
	}
	return u.Host
}
