package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/database/books"
	"github.com/mrlokans/booklibrary/internal/database/borrows"
	"github.com/mrlokans/booklibrary/internal/database/users"
	"github.com/mrlokans/booklibrary/internal/entities"
)

// BorrowService manages borrow records. A record is keyed by its book id,
// so a book can be borrowed by at most one user at a time.
type BorrowService struct {
	db Transactor
}

func NewBorrowService(db Transactor) *BorrowService {
	return &BorrowService{db: db}
}

func (s *BorrowService) GetByBook(ctx context.Context, bookID uint) (*entities.BorrowedBook, error) {
	var borrow *entities.BorrowedBook
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		borrow, err = borrows.NewRepository(tx).GetByBookID(bookID)
		return translate(err, "borrow of book %d", bookID)
	})
	return borrow, err
}

// ListByUser returns the user's borrows. An unknown user yields an empty list.
func (s *BorrowService) ListByUser(ctx context.Context, userID uint) ([]entities.BorrowedBook, error) {
	var result []entities.BorrowedBook
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = borrows.NewRepository(tx).GetByUserID(userID)
		if err != nil {
			return fmt.Errorf("list borrows of user %d: %w", userID, err)
		}
		return nil
	})
	return result, err
}

func (s *BorrowService) List(ctx context.Context) ([]entities.BorrowedBook, error) {
	var result []entities.BorrowedBook
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = borrows.NewRepository(tx).GetAll()
		if err != nil {
			return fmt.Errorf("list borrows: %w", err)
		}
		return nil
	})
	return result, err
}

// Borrow records a new borrow. The book and user must exist and the book must
// not be borrowed already.
func (s *BorrowService) Borrow(ctx context.Context, input entities.BorrowedBook) (*entities.BorrowedBook, error) {
	if err := validateBorrow(input); err != nil {
		return nil, err
	}
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := checkReferences(tx, input.BookID, input.UserID); err != nil {
			return err
		}
		repo := borrows.NewRepository(tx)
		taken, err := repo.Exists(input.BookID)
		if err != nil {
			return fmt.Errorf("check borrow of book %d: %w", input.BookID, err)
		}
		if taken {
			return fmt.Errorf("book %d is already borrowed: %w", input.BookID, ErrConflict)
		}
		return translate(repo.Create(&input), "borrow book %d", input.BookID)
	})
	if err != nil {
		return nil, err
	}
	return &input, nil
}

// Update overwrites the borrow stored under bookID. The record may move to a
// different book, which is rejected with ErrConflict when that book is
// already borrowed.
func (s *BorrowService) Update(ctx context.Context, bookID uint, input entities.BorrowedBook) (*entities.BorrowedBook, error) {
	if err := validateBorrow(input); err != nil {
		return nil, err
	}
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := borrows.NewRepository(tx)
		if _, err := repo.GetByBookID(bookID); err != nil {
			return translate(err, "borrow of book %d", bookID)
		}
		if err := checkReferences(tx, input.BookID, input.UserID); err != nil {
			return err
		}
		if input.BookID != bookID {
			taken, err := repo.Exists(input.BookID)
			if err != nil {
				return fmt.Errorf("check borrow of book %d: %w", input.BookID, err)
			}
			if taken {
				return fmt.Errorf("book %d is already borrowed: %w", input.BookID, ErrConflict)
			}
		}
		return translate(repo.Update(bookID, &input), "update borrow of book %d", bookID)
	})
	if err != nil {
		return nil, err
	}
	return &input, nil
}

// Return deletes the borrow of a book and returns the removed record.
func (s *BorrowService) Return(ctx context.Context, bookID uint) (*entities.BorrowedBook, error) {
	var borrow *entities.BorrowedBook
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := borrows.NewRepository(tx)
		var err error
		borrow, err = repo.GetByBookID(bookID)
		if err != nil {
			return translate(err, "borrow of book %d", bookID)
		}
		return translate(repo.Delete(bookID), "return book %d", bookID)
	})
	if err != nil {
		return nil, err
	}
	return borrow, nil
}

func validateBorrow(b entities.BorrowedBook) error {
	switch {
	case b.BookID == 0:
		return fmt.Errorf("book id is required: %w", ErrInvalid)
	case b.UserID == 0:
		return fmt.Errorf("user id is required: %w", ErrInvalid)
	case b.BorrowedFrom.IsZero() || b.BorrowedUntil.IsZero():
		return fmt.Errorf("borrow dates are required: %w", ErrInvalid)
	}
	return nil
}

func checkReferences(tx *gorm.DB, bookID, userID uint) error {
	ok, err := books.NewRepository(tx).Exists(bookID)
	if err != nil {
		return fmt.Errorf("check book %d: %w", bookID, err)
	}
	if !ok {
		return fmt.Errorf("book %d does not exist: %w", bookID, ErrInvalid)
	}
	ok, err = users.NewRepository(tx).Exists(userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return fmt.Errorf("user %d does not exist: %w", userID, ErrInvalid)
	}
	return nil
}
