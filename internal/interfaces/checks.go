package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/booklibrary/internal/database"
	"github.com/mrlokans/booklibrary/internal/http"
	"github.com/mrlokans/booklibrary/internal/notify"
	"github.com/mrlokans/booklibrary/internal/reminder"
	"github.com/mrlokans/booklibrary/internal/scheduler"
	"github.com/mrlokans/booklibrary/internal/services"
	"github.com/mrlokans/booklibrary/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Transaction scopes
var _ services.Transactor = (*database.Database)(nil)
var _ reminder.Store = (*database.Database)(nil)

// Health check
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Entity Services
// =============================================================================

var _ http.BookStore = (*services.BookService)(nil)
var _ http.UserStore = (*services.UserService)(nil)
var _ http.BorrowStore = (*services.BorrowService)(nil)

// =============================================================================
// Reminders
// =============================================================================

// Notification port implementations
var _ notify.Sender = (*notify.LogSender)(nil)
var _ notify.Sender = (*notify.SMTPSender)(nil)
var _ notify.Sender = (*tasks.QueueSender)(nil)

// Sweep and scheduling
var _ scheduler.Sweeper = (*reminder.Sweeper)(nil)
var _ http.ReminderRunner = (*scheduler.ReminderScheduler)(nil)
