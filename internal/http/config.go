package http

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Books   BookStore
	Users   UserStore
	Borrows BorrowStore

	// Reminders is optional; without it the /api/reminders routes are not registered.
	Reminders ReminderRunner

	// Database is used by the health check.
	Database Pinger

	// Application info
	Version string
}
