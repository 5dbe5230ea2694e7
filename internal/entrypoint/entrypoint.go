package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/booklibrary/internal/config"
	"github.com/mrlokans/booklibrary/internal/database"
	http_controllers "github.com/mrlokans/booklibrary/internal/http"
	"github.com/mrlokans/booklibrary/internal/notify"
	"github.com/mrlokans/booklibrary/internal/reminder"
	"github.com/mrlokans/booklibrary/internal/scheduler"
	"github.com/mrlokans/booklibrary/internal/services"
	"github.com/mrlokans/booklibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired components of a running server.
type App struct {
	DB         *database.Database
	Router     *gin.Engine
	Scheduler  *scheduler.ReminderScheduler
	TaskClient *tasks.Client // nil unless the task queue is enabled
}

// NewSender picks the reminder delivery channel for the configured mode.
func NewSender(cfg *config.Config) (notify.Sender, error) {
	switch cfg.Notify.Mode {
	case config.NotifyModeLog, "":
		return notify.NewLogSender(log.Default()), nil
	case config.NotifyModeSMTP:
		sender, err := notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		if err != nil {
			return nil, fmt.Errorf("smtp sender: %w", err)
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("unknown notify mode %q", cfg.Notify.Mode)
	}
}

// Build opens the database and wires services, the reminder scheduler and
// the router. Nothing is started.
func Build(cfg *config.Config, version string) (*App, error) {
	if cfg.Reminder.LeadDays < 0 {
		return nil, fmt.Errorf("reminder lead days must not be negative, got %d", cfg.Reminder.LeadDays)
	}

	db, err := database.Open(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sender, err := NewSender(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{DB: db}

	// With the queue enabled the sweep only enqueues; workers do the delivery.
	if cfg.Tasks.Enabled {
		app.TaskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.TaskClient.Register(tasks.NewSendReminderQueue(sender))
		sender = tasks.NewQueueSender(app.TaskClient)
	}

	sweeper := reminder.NewSweeper(db, sender, reminder.WithLeadDays(cfg.Reminder.LeadDays))
	app.Scheduler = scheduler.NewReminderScheduler(sweeper, cfg.Reminder.Schedule, cfg.Reminder.RunOnStart)

	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:     services.NewBookService(db),
		Users:     services.NewUserService(db),
		Borrows:   services.NewBorrowService(db),
		Reminders: app.Scheduler,
		Database:  db,
		Version:   version,
	})

	return app, nil
}

// Start launches the reminder scheduler, when enabled, and then the task
// workers. Nothing is left running when it returns an error.
func (a *App) Start(ctx context.Context, remindersEnabled bool) error {
	if remindersEnabled {
		if err := a.Scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start reminder scheduler: %w", err)
		}
	} else {
		log.Printf("Reminder scheduler disabled (set REMINDER_ENABLED=true to enable)")
	}

	if a.TaskClient != nil {
		go a.TaskClient.Start(ctx)
	}
	return nil
}

// Close releases the task queue and database handles.
func (a *App) Close() {
	if a.TaskClient != nil {
		if err := a.TaskClient.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// Serve runs srv until ctx is cancelled, then calls onShutdown and shuts the
// server down within timeout. A listen failure is returned as is.
func Serve(ctx context.Context, srv *http.Server, timeout time.Duration, onShutdown ShutdownFunc) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Shutdown Server, waiting %v before killing", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// Stop background work before connections drain.
		if onShutdown != nil {
			onShutdown(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Println("Server exiting")
		return nil
	})

	return g.Wait()
}

// Run builds the application and serves it until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting Book Library v%s", version)

	app, err := Build(cfg, version)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx, cfg.Reminder.Enabled); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: app.Router,
	}
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	return Serve(ctx, srv, timeout, func(shutdownCtx context.Context) {
		app.Scheduler.Stop()
		if app.TaskClient != nil {
			app.TaskClient.Stop(shutdownCtx)
		}
	})
}
