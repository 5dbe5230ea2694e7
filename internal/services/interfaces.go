package services

import (
	"context"

	"gorm.io/gorm"
)

// Transactor opens a transaction scope. Services build their repositories on
// the scoped handle and never keep it past fn.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
