package config

const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./library.db"

	// DefaultReminderSchedule runs the due-date sweep once a day, counted from process start
	DefaultReminderSchedule = "@every 24h"
)
