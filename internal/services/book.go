package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/database/books"
	"github.com/mrlokans/booklibrary/internal/database/borrows"
	"github.com/mrlokans/booklibrary/internal/entities"
)

// BookFilter selects books by borrowed status.
type BookFilter int

const (
	BookFilterAll BookFilter = iota
	BookFilterBorrowed
	BookFilterAvailable
)

// BookService implements book CRUD on top of the record store.
type BookService struct {
	db Transactor
}

func NewBookService(db Transactor) *BookService {
	return &BookService{db: db}
}

// Get returns the book with the given id or ErrNotFound.
func (s *BookService) Get(ctx context.Context, id uint) (*entities.Book, error) {
	var book *entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		book, err = books.NewRepository(tx).GetByID(id)
		return translate(err, "book %d", id)
	})
	return book, err
}

// List returns books matching filter. Borrowed status is decided by looking
// each book up in the full borrow list, which is fine for a small library but
// loads every borrow row.
func (s *BookService) List(ctx context.Context, filter BookFilter) ([]entities.Book, error) {
	var result []entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		all, err := books.NewRepository(tx).GetAll()
		if err != nil {
			return fmt.Errorf("list books: %w", err)
		}
		if filter == BookFilterAll {
			result = all
			return nil
		}

		borrowList, err := borrows.NewRepository(tx).GetAll()
		if err != nil {
			return fmt.Errorf("list borrows: %w", err)
		}
		borrowed := lo.KeyBy(borrowList, func(b entities.BorrowedBook) uint { return b.BookID })
		wantBorrowed := filter == BookFilterBorrowed

		result = lo.Filter(all, func(b entities.Book, _ int) bool {
			_, ok := borrowed[b.ID]
			return ok == wantBorrowed
		})
		return nil
	})
	return result, err
}

// Create persists a new book. Any id on the input is ignored.
func (s *BookService) Create(ctx context.Context, book entities.Book) (*entities.Book, error) {
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		return translate(books.NewRepository(tx).Create(&book), "create book")
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update overwrites title and author of an existing book.
func (s *BookService) Update(ctx context.Context, id uint, input entities.Book) (*entities.Book, error) {
	var book *entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		var err error
		book, err = repo.GetByID(id)
		if err != nil {
			return translate(err, "book %d", id)
		}
		book.Title = input.Title
		book.Author = input.Author
		return translate(repo.Save(book), "update book %d", id)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book and returns what was removed.
func (s *BookService) Delete(ctx context.Context, id uint) (*entities.Book, error) {
	var book *entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		var err error
		book, err = repo.GetByID(id)
		if err != nil {
			return translate(err, "book %d", id)
		}
		return translate(repo.Delete(id), "delete book %d", id)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}
