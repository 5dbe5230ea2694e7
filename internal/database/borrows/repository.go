// Package borrows provides database operations for borrowed-book records.
//
// A record is keyed by the borrowed book's ID, so lookups "by book" are
// primary-key lookups and a second record for the same book fails with
// gorm.ErrDuplicatedKey.
package borrows

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// Repository handles all borrowed-book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrows repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByBookID retrieves the borrow record for a book.
func (r *Repository) GetByBookID(bookID uint) (*entities.BorrowedBook, error) {
	var borrow entities.BorrowedBook
	err := r.db.Where("book_id = ?", bookID).First(&borrow).Error
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// Exists reports whether the book currently has a borrow record.
func (r *Repository) Exists(bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.BorrowedBook{}).Where("book_id = ?", bookID).Count(&count).Error
	return count > 0, err
}

// GetByUserID retrieves all borrow records of a user.
func (r *Repository) GetByUserID(userID uint) ([]entities.BorrowedBook, error) {
	var borrows []entities.BorrowedBook
	err := r.db.Where("user_id = ?", userID).Order("book_id ASC").Find(&borrows).Error
	return borrows, err
}

// GetAll retrieves every borrow record.
func (r *Repository) GetAll() ([]entities.BorrowedBook, error) {
	var borrows []entities.BorrowedBook
	err := r.db.Order("book_id ASC").Find(&borrows).Error
	return borrows, err
}

// GetDueOnOrBefore retrieves borrows whose until date is on or before threshold,
// overdue ones included, earliest first.
func (r *Repository) GetDueOnOrBefore(threshold entities.Date) ([]entities.BorrowedBook, error) {
	var borrows []entities.BorrowedBook
	err := r.db.Where("borrowed_until <= ?", threshold).
		Order("borrowed_until ASC, book_id ASC").
		Find(&borrows).Error
	return borrows, err
}

// Create inserts a borrow record under its book ID.
func (r *Repository) Create(borrow *entities.BorrowedBook) error {
	return r.db.Omit(clause.Associations).Create(borrow).Error
}

// Update overwrites the record stored under bookID, which may move it to a
// different book ID. Returns gorm.ErrRecordNotFound if nothing was stored
// under bookID.
func (r *Repository) Update(bookID uint, borrow *entities.BorrowedBook) error {
	result := r.db.Model(&entities.BorrowedBook{}).
		Where("book_id = ?", bookID).
		Updates(map[string]any{
			"book_id":        borrow.BookID,
			"user_id":        borrow.UserID,
			"borrowed_from":  borrow.BorrowedFrom,
			"borrowed_until": borrow.BorrowedUntil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the borrow record of a book. Returns gorm.ErrRecordNotFound
// if the book had none.
func (r *Repository) Delete(bookID uint) error {
	result := r.db.Where("book_id = ?", bookID).Delete(&entities.BorrowedBook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
