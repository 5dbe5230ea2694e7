package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/booklibrary/internal/config"
	"github.com/mrlokans/booklibrary/internal/database"
	"github.com/mrlokans/booklibrary/internal/entities"
	"github.com/mrlokans/booklibrary/internal/entrypoint"
	"github.com/mrlokans/booklibrary/internal/reminder"
)

// SweepCommand runs a single due-date reminder sweep and exits. Reminders
// are delivered directly; the task queue is never used.
type SweepCommand struct {
	DatabasePath string
	Today        string
	LeadDays     int
	DryRun       bool

	Out io.Writer

	cfg   *config.Config
	today entities.Date
}

func NewSweepCommand(cfg *config.Config) *SweepCommand {
	return &SweepCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *SweepCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the library database")
	fs.StringVar(&cmd.Today, "today", "", "Treat this date (YYYY-MM-DD) as today instead of the system date")
	fs.IntVar(&cmd.LeadDays, "lead-days", cmd.cfg.Reminder.LeadDays, "Remind borrows due within this many days")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "List the reminders without sending them")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sweep [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Send return reminders for borrowed books that are due, then exit.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s sweep\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s sweep -dry-run -today 2024-03-01\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Today != "" {
		today, err := entities.ParseDate(cmd.Today)
		if err != nil {
			return fmt.Errorf("invalid -today: %w", err)
		}
		cmd.today = today
	}
	if cmd.LeadDays < 0 {
		return fmt.Errorf("-lead-days must not be negative, got %d", cmd.LeadDays)
	}

	return nil
}

func (cmd *SweepCommand) Run() error {
	return cmd.RunContext(context.Background())
}

func (cmd *SweepCommand) RunContext(ctx context.Context) error {
	db, err := database.Open(cmd.DatabasePath, database.ParseLogLevel(cmd.cfg.Database.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	sender, err := entrypoint.NewSender(cmd.cfg)
	if err != nil {
		return err
	}

	opts := []reminder.Option{reminder.WithLeadDays(cmd.LeadDays)}
	if !cmd.today.IsZero() {
		today := cmd.today
		opts = append(opts, reminder.WithClock(func() time.Time {
			return time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, time.Local)
		}))
	}
	sweeper := reminder.NewSweeper(db, sender, opts...)

	if cmd.DryRun {
		return cmd.printPlan(ctx, sweeper)
	}

	result, err := sweeper.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Sweep %s (today %s, due by %s)\n", result.RunID, result.Today, result.Threshold)
	fmt.Fprintf(cmd.Out, "  Due:     %d\n", result.Due)
	fmt.Fprintf(cmd.Out, "  Sent:    %d\n", result.Sent)
	fmt.Fprintf(cmd.Out, "  Skipped: %d\n", len(result.Skipped))
	for _, sk := range result.Skipped {
		fmt.Fprintf(cmd.Out, "    book %d: %s\n", sk.BookID, sk.Reason)
	}
	fmt.Fprintf(cmd.Out, "  Failed:  %d\n", len(result.Failed))
	for _, f := range result.Failed {
		fmt.Fprintf(cmd.Out, "    book %d -> %s: %s\n", f.BookID, f.Email, f.Error)
	}
	return nil
}

func (cmd *SweepCommand) printPlan(ctx context.Context, sweeper *reminder.Sweeper) error {
	reminders, skipped, err := sweeper.Plan(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect due borrows: %w", err)
	}

	today, threshold := sweeper.Threshold()
	fmt.Fprintf(cmd.Out, "Dry run (today %s, due by %s): %d reminder(s)\n", today, threshold, len(reminders))
	for _, r := range reminders {
		fmt.Fprintf(cmd.Out, "  %s  %-30s  %s\n", r.Due, r.Email, r.Title)
	}
	for _, sk := range skipped {
		fmt.Fprintf(cmd.Out, "  skip book %d: %s\n", sk.BookID, sk.Reason)
	}
	return nil
}
