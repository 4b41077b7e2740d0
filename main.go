package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"quotabot/bot"
	"quotabot/config"
	"quotabot/middleware"
	"quotabot/repository"
	"quotabot/routes"
	"quotabot/whatsapp"
	"quotabot/worker"
)

func main() {
	logger := log.New(os.Stdout, "QUOTABOT: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry init failed: %v", err)
		}
	}

	// Repositories
	userRepo := repository.NewGormUserRepo(config.DB)
	leadRepo := repository.NewGormLeadRepo(config.DB)
	messageRepo := repository.NewGormMessageRepo(config.DB)
	sessionRepo := repository.NewGormSessionRepo(config.DB)

	// Live conversation state: in-memory by default, redis when enabled.
	var sessionStore bot.SessionStore = bot.NewMemorySessionStore()
	if config.AppConfig.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.Redis.Address,
			Password: config.AppConfig.Redis.Password,
			DB:       config.AppConfig.Redis.DB,
		})
		sessionStore = bot.NewRedisSessionStore(client, config.AppConfig.SessionTTL)
	}

	botLog := logrus.New()
	botLog.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	feed := bot.NewBroadcaster()
	engine := bot.NewEngine(sessionStore, userRepo, leadRepo, messageRepo, sessionRepo, feed, botLog)

	// WhatsApp connection manager. A Start failure here is fatal; once
	// running, the manager handles its own reconnects.
	manager := whatsapp.NewManager(config.AppConfig.WhatsAppStore, engine, botLog)
	if err := manager.Start(); err != nil {
		logger.Fatalf("Failed to start WhatsApp connection: %v", err)
	}
	defer manager.Stop()

	// Session janitor
	janitor := worker.NewSessionJanitor(sessionStore, sessionRepo, config.AppConfig.SessionTTL, log.New(os.Stdout, "JANITOR: ", log.LstdFlags))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go janitor.Start(ctx)

	// Create Fiber app
	app := fiber.New()
	app.Use(middleware.CORS())
	routes.SetupRoutes(app, routes.Deps{
		Manager:  manager,
		Users:    userRepo,
		Leads:    leadRepo,
		Messages: messageRepo,
		Feed:     feed,
	})

	// Shut down cleanly on SIGINT/SIGTERM so the transport logs out.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Println("Shutting down...")
		cancel()
		manager.Stop()
		_ = app.Shutdown()
	}()

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
