package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"

	"github.com/avzhuravlev/worktime-bot/internal/bot"
	"github.com/avzhuravlev/worktime-bot/internal/calendar"
	"github.com/avzhuravlev/worktime-bot/internal/config"
	"github.com/avzhuravlev/worktime-bot/internal/repository/sqlite"
	"github.com/avzhuravlev/worktime-bot/internal/service"
	"github.com/avzhuravlev/worktime-bot/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database initialized at: %s", cfg.DatabasePath)

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	dayRepo := sqlite.NewWorkDayRepository(db)

	// Initialize collaborators
	calendarClient := calendar.New(cfg.CalendarBaseURL)
	sessions := session.NewStore()

	// Initialize service
	trackerService := service.NewTrackerService(userRepo, dayRepo, calendarClient)

	// Initialize bot
	telegramBot, err := bot.New(cfg.TelegramToken, trackerService, sessions, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v", err)
	}

	// Sweep abandoned conversations in the background
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.SessionTTL),
		gocron.NewTask(func() {
			if removed := sessions.Sweep(cfg.SessionTTL); removed > 0 {
				log.Printf("Swept %d stale conversations", removed)
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule session sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Shutdown()

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start bot in goroutine
	go func() {
		log.Println("Bot started. Press Ctrl+C to stop.")
		if err := telegramBot.Start(); err != nil {
			log.Fatalf("Bot stopped with error: %v", err)
		}
	}()

	// Wait for stop signal
	<-stop
	log.Println("Shutting down gracefully...")
}
