// Package books provides database operations for book management.
//
// # Usage
//
//	repo := books.NewRepository(tx)
//	book, err := repo.GetByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a book by ID. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Exists reports whether a book with the given ID is present.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetAll retrieves every book ordered by ID.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// GetByIDs retrieves the books with the given IDs, keyed by ID.
func (r *Repository) GetByIDs(ids []uint) (map[uint]entities.Book, error) {
	result := make(map[uint]entities.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var books []entities.Book
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	for _, b := range books {
		result[b.ID] = b
	}
	return result, nil
}

// Create inserts a new book and assigns its ID.
func (r *Repository) Create(book *entities.Book) error {
	book.ID = 0
	return r.db.Create(book).Error
}

// Save writes all columns of an existing book.
func (r *Repository) Save(book *entities.Book) error {
	return r.db.Save(book).Error
}

// Delete removes a book. Its borrow record goes with it through the foreign key.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}
