package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	TelegramToken   string
	DatabasePath    string
	AccessKey       string // deep-link invitation token gating /start
	AdminID         int64  // chat that receives the invitation link on boot
	CalendarBaseURL string
	SessionTTL      time.Duration // idle conversations older than this are swept
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	accessKey := os.Getenv("ACCESS_KEY")
	if accessKey == "" {
		return nil, fmt.Errorf("ACCESS_KEY is not set")
	}

	var adminID int64
	if raw := os.Getenv("ADMIN_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_ID: %w", err)
		}
		adminID = id
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./worktime_bot.db"
	}

	calendarURL := os.Getenv("CALENDAR_API_URL")
	if calendarURL == "" {
		calendarURL = "https://production-calendar.kuzyak.in/api/calendar"
	}

	ttl := time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		ttl = parsed
	}

	return &Config{
		TelegramToken:   token,
		DatabasePath:    dbPath,
		AccessKey:       accessKey,
		AdminID:         adminID,
		CalendarBaseURL: calendarURL,
		SessionTTL:      ttl,
	}, nil
}
