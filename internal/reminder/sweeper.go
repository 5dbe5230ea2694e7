// Package reminder implements the due-date sweep: find every borrow that is
// due by tomorrow (or already overdue) and send its borrower one reminder.
//
// A sweep reads borrows, users and books in a single transaction, then sends
// outside of it. Sending mutates nothing, so running the sweep twice over the
// same data sends the same reminders twice.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/database/books"
	"github.com/mrlokans/booklibrary/internal/database/borrows"
	"github.com/mrlokans/booklibrary/internal/database/users"
	"github.com/mrlokans/booklibrary/internal/entities"
	"github.com/mrlokans/booklibrary/internal/notify"
)

const (
	Subject         = "Reminder: Return Book"
	DefaultLeadDays = 1
)

// Store opens the read scope of a sweep.
type Store interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Reminder is one message a sweep is going to send.
type Reminder struct {
	BookID uint          `json:"bookId"`
	UserID uint          `json:"userId"`
	Email  string        `json:"email"`
	Title  string        `json:"title"`
	Due    entities.Date `json:"due"`
}

func (r Reminder) Body() string {
	return fmt.Sprintf("Please return '%s' by %s.", r.Title, r.Due)
}

// Skip is a due borrow whose user or book could not be resolved.
type Skip struct {
	BookID uint   `json:"bookId"`
	UserID uint   `json:"userId"`
	Reason string `json:"reason"`
}

// Failure is a reminder the sender rejected.
type Failure struct {
	BookID uint   `json:"bookId"`
	Email  string `json:"email"`
	Error  string `json:"error"`
}

// Result summarizes one sweep.
type Result struct {
	RunID      string        `json:"runId"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Today      entities.Date `json:"today"`
	Threshold  entities.Date `json:"threshold"`
	Due        int           `json:"due"`
	Sent       int           `json:"sent"`
	Skipped    []Skip        `json:"skipped"`
	Failed     []Failure     `json:"failed"`
}

type Sweeper struct {
	store    Store
	sender   notify.Sender
	clock    func() time.Time
	leadDays int
}

type Option func(*Sweeper)

// WithClock replaces time.Now as the source of "today".
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		s.clock = clock
	}
}

// WithLeadDays sets how many days ahead of today a borrow counts as due.
// Negative values are ignored.
func WithLeadDays(days int) Option {
	return func(s *Sweeper) {
		if days >= 0 {
			s.leadDays = days
		}
	}
}

func NewSweeper(store Store, sender notify.Sender, opts ...Option) *Sweeper {
	s := &Sweeper{
		store:    store,
		sender:   sender,
		clock:    time.Now,
		leadDays: DefaultLeadDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the latest until-date that is due as of now.
func (s *Sweeper) Threshold() (today, threshold entities.Date) {
	today = entities.DateOf(s.clock())
	return today, today.AddDays(s.leadDays)
}

// Plan returns the reminders a sweep would send right now without sending them.
func (s *Sweeper) Plan(ctx context.Context) ([]Reminder, []Skip, error) {
	_, threshold := s.Threshold()
	return s.collect(ctx, threshold)
}

// Run performs one sweep. A missing user or book and a failed send only
// affect their own record; the error is non-nil when the due borrows could
// not be read or ctx ended mid-sweep.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	result := Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Skipped:   []Skip{},
		Failed:    []Failure{},
	}
	result.Today, result.Threshold = s.Threshold()

	log.Printf("Reminder sweep %s: collecting borrows due by %s", result.RunID, result.Threshold)

	reminders, skipped, err := s.collect(ctx, result.Threshold)
	if err != nil {
		result.FinishedAt = time.Now()
		return result, fmt.Errorf("collect due borrows: %w", err)
	}
	result.Due = len(reminders) + len(skipped)
	result.Skipped = append(result.Skipped, skipped...)
	for _, sk := range skipped {
		log.Printf("Reminder sweep %s: skipping book %d: %s", result.RunID, sk.BookID, sk.Reason)
	}

	for _, r := range reminders {
		if err := ctx.Err(); err != nil {
			result.FinishedAt = time.Now()
			return result, err
		}
		if err := s.sender.Send(ctx, r.Email, Subject, r.Body()); err != nil {
			log.Printf("Reminder sweep %s: failed to notify %s about book %d: %v", result.RunID, r.Email, r.BookID, err)
			result.Failed = append(result.Failed, Failure{BookID: r.BookID, Email: r.Email, Error: err.Error()})
			continue
		}
		result.Sent++
	}

	result.FinishedAt = time.Now()
	log.Printf("Reminder sweep %s: due=%d sent=%d skipped=%d failed=%d",
		result.RunID, result.Due, result.Sent, len(result.Skipped), len(result.Failed))
	return result, nil
}

func (s *Sweeper) collect(ctx context.Context, threshold entities.Date) ([]Reminder, []Skip, error) {
	var reminders []Reminder
	var skipped []Skip

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		due, err := borrows.NewRepository(tx).GetDueOnOrBefore(threshold)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		userIDs := lo.Uniq(lo.Map(due, func(b entities.BorrowedBook, _ int) uint { return b.UserID }))
		bookIDs := lo.Map(due, func(b entities.BorrowedBook, _ int) uint { return b.BookID })

		userByID, err := users.NewRepository(tx).GetByIDs(userIDs)
		if err != nil {
			return err
		}
		bookByID, err := books.NewRepository(tx).GetByIDs(bookIDs)
		if err != nil {
			return err
		}

		for _, b := range due {
			user, ok := userByID[b.UserID]
			if !ok {
				skipped = append(skipped, Skip{BookID: b.BookID, UserID: b.UserID, Reason: fmt.Sprintf("user %d not found", b.UserID)})
				continue
			}
			book, ok := bookByID[b.BookID]
			if !ok {
				skipped = append(skipped, Skip{BookID: b.BookID, UserID: b.UserID, Reason: fmt.Sprintf("book %d not found", b.BookID)})
				continue
			}
			reminders = append(reminders, Reminder{
				BookID: b.BookID,
				UserID: b.UserID,
				Email:  user.Email,
				Title:  book.Title,
				Due:    b.BorrowedUntil,
			})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return reminders, skipped, nil
}
