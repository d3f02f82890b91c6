package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"office-records-backend/config"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/notify"
	"office-records-backend/internal/routes"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env not found, using system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// 1. Database
	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	// 2. Outgoing mail
	mailer := notify.New(cfg.SMTPHost, cfg.SMTPPort, cfg.MailUser, cfg.MailPassword, logger)
	notifier := notify.NewNotifier(mailer, logger).Async()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("cannot create upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	// 3. HTTP server
	app := fiber.New(fiber.Config{
		AppName:   "office-records-backend",
		BodyLimit: 10 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins, AllowCredentials: true}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.Metrics())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.Setup(app, routes.Deps{
		DB:       db,
		Config:   cfg,
		Tokens:   usecase.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Notifier: notifier,
		Log:      logger,
	})

	logger.Info("server listening", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
