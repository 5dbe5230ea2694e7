package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booklibrary/internal/database"
	"github.com/mrlokans/booklibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "services.db"), logger.Silent)
	require.NoError(t, err)
	return db, func() { db.Close() }
}

// fixture holds two books and two users; the first book is borrowed by the first user.
type fixture struct {
	books   *BookService
	users   *UserService
	borrows *BorrowService
	dune    *entities.Book
	emma    *entities.Book
	ann     *entities.User
	bob     *entities.User
}

func newFixture(t *testing.T, db *database.Database) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		books:   NewBookService(db),
		users:   NewUserService(db),
		borrows: NewBorrowService(db),
	}
	var err error
	f.dune, err = f.books.Create(ctx, entities.Book{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)
	f.emma, err = f.books.Create(ctx, entities.Book{Title: "Emma", Author: "Austen"})
	require.NoError(t, err)
	f.ann, err = f.users.Create(ctx, entities.User{Name: "Ann", Email: "ann@x.org"})
	require.NoError(t, err)
	f.bob, err = f.users.Create(ctx, entities.User{Name: "Bob", Email: "bob@x.org"})
	require.NoError(t, err)
	_, err = f.borrows.Borrow(ctx, newBorrow(f.dune.ID, f.ann.ID, "2024-01-01", "2024-01-02"))
	require.NoError(t, err)
	return f
}

func newBorrow(bookID, userID uint, from, until string) entities.BorrowedBook {
	return entities.BorrowedBook{
		BookID:        bookID,
		UserID:        userID,
		BorrowedFrom:  entities.MustParseDate(from),
		BorrowedUntil: entities.MustParseDate(until),
	}
}
