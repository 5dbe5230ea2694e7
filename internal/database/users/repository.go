// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(tx)
//	user, err := repo.GetByID(id)
package users

import (
	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user with the given ID is present.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetAll retrieves every user ordered by ID.
func (r *Repository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

// GetByIDs retrieves the users with the given IDs, keyed by ID.
func (r *Repository) GetByIDs(ids []uint) (map[uint]entities.User, error) {
	result := make(map[uint]entities.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []entities.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// Create inserts a new user and assigns its ID.
func (r *Repository) Create(user *entities.User) error {
	user.ID = 0
	return r.db.Create(user).Error
}

// Save writes all columns of an existing user.
func (r *Repository) Save(user *entities.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user together with the user's borrow records.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}
