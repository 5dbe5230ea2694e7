package borrows

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booklibrary/internal/database"
	"github.com/mrlokans/booklibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	db, err := database.Open(filepath.Join(t.TempDir(), "borrows.db"), logger.Silent)
	require.NoError(t, err)

	for _, title := range []string{"Dune", "Emma", "Ulysses"} {
		require.NoError(t, db.DB.Create(&entities.Book{Title: title, Author: "A"}).Error)
	}
	for _, name := range []string{"Ann", "Bob"} {
		require.NoError(t, db.DB.Create(&entities.User{Name: name, Email: name + "@x.org"}).Error)
	}

	return NewRepository(db.DB), db.DB, func() { db.Close() }
}

func borrow(bookID, userID uint, from, until string) *entities.BorrowedBook {
	return &entities.BorrowedBook{
		BookID:        bookID,
		UserID:        userID,
		BorrowedFrom:  entities.MustParseDate(from),
		BorrowedUntil: entities.MustParseDate(until),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(borrow(1, 1, "2024-01-01", "2024-01-02")))

	got, err := repo.GetByBookID(1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.UserID)
	assert.Equal(t, "2024-01-01", got.BorrowedFrom.String())
	assert.Equal(t, "2024-01-02", got.BorrowedUntil.String())

	_, err = repo.GetByBookID(2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(borrow(1, 1, "2024-01-01", "2024-01-02")))
	err := repo.Create(borrow(1, 2, "2024-03-01", "2024-03-02"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRepository_Exists(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(borrow(2, 1, "2024-01-01", "2024-01-02")))

	ok, err := repo.Exists(2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(borrow(3, 1, "2024-01-01", "2024-01-02")))
	require.NoError(t, repo.Create(borrow(1, 1, "2024-01-01", "2024-01-05")))
	require.NoError(t, repo.Create(borrow(2, 2, "2024-01-01", "2024-01-03")))

	ann, err := repo.GetByUserID(1)
	require.NoError(t, err)
	require.Len(t, ann, 2)
	assert.Equal(t, uint(1), ann[0].BookID)
	assert.Equal(t, uint(3), ann[1].BookID)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_GetDueOnOrBefore(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(borrow(1, 1, "2024-01-01", "2024-01-03")))
	require.NoError(t, repo.Create(borrow(2, 1, "2023-12-01", "2023-12-15")))
	require.NoError(t, repo.Create(borrow(3, 2, "2024-01-01", "2024-01-02")))

	due, err := repo.GetDueOnOrBefore(entities.MustParseDate("2024-01-02"))
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, uint(2), due[0].BookID)
	assert.Equal(t, uint(3), due[1].BookID)

	due, err = repo.GetDueOnOrBefore(entities.MustParseDate("2023-11-30"))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestRepository_UpdateRekeys(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(borrow(1, 1, "2024-01-01", "2024-01-02")))

	err := repo.Update(1, borrow(2, 2, "2024-02-01", "2024-02-10"))
	require.NoError(t, err)

	_, err = repo.GetByBookID(1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.GetByBookID(2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.UserID)
	assert.Equal(t, "2024-02-10", got.BorrowedUntil.String())
}

func TestRepository_UpdateMissing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(1, borrow(1, 1, "2024-01-01", "2024-01-02"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(borrow(1, 1, "2024-01-01", "2024-01-02")))
	require.NoError(t, repo.Delete(1))
	assert.ErrorIs(t, repo.Delete(1), gorm.ErrRecordNotFound)
}
