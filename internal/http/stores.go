package http

import (
	"context"

	"github.com/mrlokans/booklibrary/internal/entities"
	"github.com/mrlokans/booklibrary/internal/reminder"
	"github.com/mrlokans/booklibrary/internal/scheduler"
	"github.com/mrlokans/booklibrary/internal/services"
)

// This file consolidates the store interfaces used by HTTP controllers.
// The services package provides the production implementations.

// BookStore provides book CRUD.
type BookStore interface {
	Get(ctx context.Context, id uint) (*entities.Book, error)
	List(ctx context.Context, filter services.BookFilter) ([]entities.Book, error)
	Create(ctx context.Context, book entities.Book) (*entities.Book, error)
	Update(ctx context.Context, id uint, book entities.Book) (*entities.Book, error)
	Delete(ctx context.Context, id uint) (*entities.Book, error)
}

// UserStore provides user CRUD.
type UserStore interface {
	Get(ctx context.Context, id uint) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	Create(ctx context.Context, user entities.User) (*entities.User, error)
	Update(ctx context.Context, id uint, user entities.User) (*entities.User, error)
	Delete(ctx context.Context, id uint) (*entities.User, error)
}

// BorrowStore provides borrow record operations keyed by book id.
type BorrowStore interface {
	GetByBook(ctx context.Context, bookID uint) (*entities.BorrowedBook, error)
	ListByUser(ctx context.Context, userID uint) ([]entities.BorrowedBook, error)
	List(ctx context.Context) ([]entities.BorrowedBook, error)
	Borrow(ctx context.Context, borrow entities.BorrowedBook) (*entities.BorrowedBook, error)
	Update(ctx context.Context, bookID uint, borrow entities.BorrowedBook) (*entities.BorrowedBook, error)
	Return(ctx context.Context, bookID uint) (*entities.BorrowedBook, error)
}

// ReminderRunner triggers and reports on due-date sweeps.
type ReminderRunner interface {
	RunNow(ctx context.Context) (reminder.Result, error)
	Status() scheduler.Status
}

// Pinger checks storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
