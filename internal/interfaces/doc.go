// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - services.Transactor: opens a transaction scope (internal/services/interfaces.go)
//   - reminder.Store: read scope of a due-date sweep (internal/reminder/sweeper.go)
//   - BookStore, UserStore, BorrowStore: controller-facing CRUD (internal/http/stores.go)
//
// ## Notification Interfaces
//
//   - notify.Sender: delivers one reminder (internal/notify/notify.go)
//
// Implementations: LogSender (default), SMTPSender (gomail relay) and
// tasks.QueueSender, which enqueues a backlite task whose processor calls
// one of the other two.
//
// ## Scheduling Interfaces
//
//   - scheduler.Sweeper: one due-date sweep (internal/scheduler/reminder.go)
//   - ReminderRunner: manual sweep and status for the API (internal/http/stores.go)
//
// # Adding a New Notification Channel
//
//  1. Implement notify.Sender in internal/notify/
//
//     type SlackSender struct {
//         webhookURL string
//     }
//
//     func (s *SlackSender) Send(ctx context.Context, to, subject, body string) error
//
//     var _ notify.Sender = (*SlackSender)(nil)
//
//  2. Add a NOTIFY_MODE value in internal/config and select it in entrypoint.NewSender
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Build it on the handle passed to Database.Transaction from a service
//
// # Compile-Time Interface Checks
//
// Implementations are checked against their interfaces at compile time:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
