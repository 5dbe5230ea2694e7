package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/booklibrary/internal/database/users"
	"github.com/mrlokans/booklibrary/internal/entities"
)

// UserService implements user CRUD. Deleting a user drops the user's borrows.
type UserService struct {
	db Transactor
}

func NewUserService(db Transactor) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(ctx context.Context, id uint) (*entities.User, error) {
	var user *entities.User
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = users.NewRepository(tx).GetByID(id)
		return translate(err, "user %d", id)
	})
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]entities.User, error) {
	var result []entities.User
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = users.NewRepository(tx).GetAll()
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	return result, err
}

func (s *UserService) Create(ctx context.Context, user entities.User) (*entities.User, error) {
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		return translate(users.NewRepository(tx).Create(&user), "create user")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites name and email; the id is never changed.
func (s *UserService) Update(ctx context.Context, id uint, input entities.User) (*entities.User, error) {
	var user *entities.User
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		var err error
		user, err = repo.GetByID(id)
		if err != nil {
			return translate(err, "user %d", id)
		}
		user.Name = input.Name
		user.Email = input.Email
		return translate(repo.Save(user), "update user %d", id)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) (*entities.User, error) {
	var user *entities.User
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		var err error
		user, err = repo.GetByID(id)
		if err != nil {
			return translate(err, "user %d", id)
		}
		return translate(repo.Delete(id), "delete user %d", id)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
