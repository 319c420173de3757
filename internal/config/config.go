// Package config loads application settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable with DB_TYPE
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendKV       = "kv"
)

// Config represents the configuration for the application
type Config struct {
	// Storage
	DBType     string
	DBDSN      string
	AppDataDir string

	// Logging
	LogLevel string
	LogPath  string

	// Calendar days for streaks are counted in this location
	Timezone string

	Audio    AudioConfig
	Practice PracticeConfig
	Reminder ReminderConfig
}

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled         bool
	SampleRate      int
	MetronomeVolume float64
	DefaultTempo    int
}

// PracticeConfig holds defaults for progress screens
type PracticeConfig struct {
	// Trailing window for the recent-activity list
	HistoryDays int
	// Trailing window for the weekly summary
	WeekDays int
}

// ReminderConfig controls the practice reminder job
type ReminderConfig struct {
	Enabled bool
	// Time of day the reminder check runs, "HH:MM"
	Time string
	// Reminders are only sent between these hours (inclusive)
	StartHour int
	EndHour   int

	TelegramToken  string
	TelegramChatID int64
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		DBType:     BackendSQLite,
		AppDataDir: "./data",
		LogLevel:   "info",
		Timezone:   "Local",
		Audio: AudioConfig{
			Enabled:         true,
			SampleRate:      44100,
			MetronomeVolume: 0.7,
			DefaultTempo:    120,
		},
		Practice: PracticeConfig{
			HistoryDays: 30,
			WeekDays:    7,
		},
		Reminder: ReminderConfig{
			Enabled:   true,
			Time:      "19:00",
			StartHour: 8,
			EndHour:   22,
		},
	}
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	def := DefaultConfig()
	cfg := &Config{
		DBType:     strings.ToLower(getEnv("DB_TYPE", def.DBType)),
		DBDSN:      getEnv("DB_DSN", ""),
		AppDataDir: getEnv("APP_DATA_DIR", def.AppDataDir),
		LogLevel:   getEnv("LOG_LEVEL", def.LogLevel),
		LogPath:    getEnv("LOG_PATH", ""),
		Timezone:   getEnv("TIMEZONE", def.Timezone),
		Audio: AudioConfig{
			Enabled:         getEnvBool("AUDIO_ENABLED", def.Audio.Enabled),
			SampleRate:      getEnvInt("AUDIO_SAMPLE_RATE", def.Audio.SampleRate),
			MetronomeVolume: getEnvFloat("METRONOME_VOLUME", def.Audio.MetronomeVolume),
			DefaultTempo:    getEnvInt("DEFAULT_TEMPO", def.Audio.DefaultTempo),
		},
		Practice: PracticeConfig{
			HistoryDays: getEnvInt("HISTORY_DAYS", def.Practice.HistoryDays),
			WeekDays:    getEnvInt("WEEK_DAYS", def.Practice.WeekDays),
		},
		Reminder: ReminderConfig{
			Enabled:        getEnvBool("REMINDER_ENABLED", def.Reminder.Enabled),
			Time:           getEnv("REMINDER_TIME", def.Reminder.Time),
			StartHour:      getEnvInt("NOTIFICATION_START_HOUR", def.Reminder.StartHour),
			EndHour:        getEnvInt("NOTIFICATION_END_HOUR", def.Reminder.EndHour),
			TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	switch c.DBType {
	case BackendSQLite, BackendKV:
	case BackendPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when DB_TYPE is %s", BackendPostgres)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}

	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("AUDIO_SAMPLE_RATE %d out of range", c.Audio.SampleRate)
	}
	if c.Audio.MetronomeVolume < 0 || c.Audio.MetronomeVolume > 1 {
		return fmt.Errorf("METRONOME_VOLUME must be between 0 and 1")
	}
	if c.Audio.DefaultTempo < 20 || c.Audio.DefaultTempo > 300 {
		return fmt.Errorf("DEFAULT_TEMPO %d out of range", c.Audio.DefaultTempo)
	}
	if c.Practice.HistoryDays <= 0 || c.Practice.WeekDays <= 0 {
		return fmt.Errorf("history windows must be positive")
	}

	if c.Reminder.StartHour < 0 || c.Reminder.StartHour > 23 ||
		c.Reminder.EndHour < 0 || c.Reminder.EndHour > 23 {
		return fmt.Errorf("notification hours must be within 0-23")
	}
	if _, err := time.Parse("15:04", c.Reminder.Time); err != nil {
		return fmt.Errorf("REMINDER_TIME must be HH:MM: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
