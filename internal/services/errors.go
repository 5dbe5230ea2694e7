package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrInvalid marks malformed input, including references to missing records.
	ErrInvalid = errors.New("invalid input")
	// ErrNotFound marks an absent entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a write that collides with an existing record.
	ErrConflict = errors.New("conflict")
)

// Kind is the closed set of error categories the services produce.
type Kind int

const (
	KindInfrastructure Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "infrastructure"
	}
}

// KindOf classifies a non-nil error returned by a service.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalid):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInfrastructure
	}
}

// translate maps store errors onto the service sentinels and prefixes them
// with context. Unknown errors keep their identity for logging.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", msg, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
