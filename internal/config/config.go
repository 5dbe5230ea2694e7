package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/mrlokans/booklibrary/internal/tasks"
)

type NotifyMode string

const (
	NotifyModeLog  NotifyMode = "log"  // Write reminders to the application log (default)
	NotifyModeSMTP NotifyMode = "smtp" // Deliver reminders through an SMTP relay
)

type (
	Config struct {
		HTTP
		Global
		Database
		Reminder
		Notify
		SMTP
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn, info
	}
	Reminder struct {
		Enabled    bool
		Schedule   string // Cron format or descriptor: "@every 24h" = daily from process start
		RunOnStart bool
		LeadDays   int // Borrows due on or before today + LeadDays are reminded
	}
	Notify struct {
		Mode NotifyMode
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")

	// Reminder sweep defaults
	v.SetDefault("reminder_enabled", true)
	v.SetDefault("reminder_schedule", DefaultReminderSchedule)
	v.SetDefault("reminder_run_on_start", true)
	v.SetDefault("reminder_lead_days", 1)

	// Notification defaults
	v.SetDefault("notify_mode", string(NotifyModeLog))
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "library@localhost")

	// Task queue defaults
	taskDefaults := tasks.DefaultConfig()
	v.SetDefault("tasks_enabled", false)
	v.SetDefault("task_workers", taskDefaults.Workers)
	v.SetDefault("task_release_after", taskDefaults.ReleaseAfter)
	v.SetDefault("task_cleanup_interval", taskDefaults.CleanupInterval)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Reminder: Reminder{
			Enabled:    v.GetBool("REMINDER_ENABLED"),
			Schedule:   v.GetString("REMINDER_SCHEDULE"),
			RunOnStart: v.GetBool("REMINDER_RUN_ON_START"),
			LeadDays:   v.GetInt("REMINDER_LEAD_DAYS"),
		},
		Notify: Notify{
			Mode: NotifyMode(v.GetString("NOTIFY_MODE")),
		},
		SMTP: SMTP{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
