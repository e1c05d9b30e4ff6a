package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/api/handlers"
	"github.com/sasreliability/draftflow/internal/api/middleware"
	"github.com/sasreliability/draftflow/internal/discord"
	job "github.com/sasreliability/draftflow/internal/jobs"
	"github.com/sasreliability/draftflow/internal/queue"
	"github.com/sasreliability/draftflow/internal/repository"
	"github.com/sasreliability/draftflow/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    20 * 1024 * 1024, // 20 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	draftRepo := repository.NewDraftRepository(db)
	formRepo := repository.NewFormSubmissionRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	r2Service := service.NewR2Service(*cfg)
	webhookService := service.NewWebhookService(*cfg)
	linkedinAuthService := service.NewLinkedInAuthService(*cfg, tokenRepo)
	linkedinService := service.NewLinkedInService(*cfg, tokenRepo, webhookService)
	approvalService := service.NewApprovalService(draftRepo)
	draftService := service.NewDraftService(*cfg, draftRepo, r2Service)
	formService := service.NewFormService(*cfg, formRepo, draftRepo, webhookService)

	bot, err := discord.New(*cfg, approvalService)
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}
	if err := bot.Open(); err != nil {
		log.Fatalf("Failed to connect to Discord: %v", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg)
	app.Post("/login", auth.Login)

	platform := handlers.NewPlatformHandler(linkedinAuthService, *cfg)
	app.Get("/auth/linkedin", platform.ConnectLinkedIn)
	app.Get("/auth/linkedin/callback", platform.LinkedInCallback)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	draft := handlers.NewDraftHandler(draftService)
	api.Post("/drafts/create", draft.CreateDraft)
	api.Get("/drafts", draft.ListDrafts)

	form := handlers.NewFormHandler(formService, client)
	api.Post("/forms/submit", form.SubmitForm)

	status := handlers.NewStatusHandler(draftRepo, linkedinService)
	api.Get("/status", status.GetStatus)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(tokenRepo, linkedinAuthService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.Start()

	// queue
	queueW := queue.NewQueue(formService)

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeProcessForm, queueW.HandleProcessFormTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	monitor := job.NewMonitor(*cfg, draftRepo, bot, linkedinService)
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		monitor.Run(monitorCtx)
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db, bot, stopMonitor, monitorDone)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, bot *discord.Bot, stopMonitor context.CancelFunc, monitorDone <-chan struct{}) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	stopMonitor()
	<-monitorDone

	if err := bot.Close(); err != nil {
		log.Printf("Failed to close Discord session: %v", err)
	}

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
