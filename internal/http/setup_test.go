package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booklibrary/internal/database"
	"github.com/mrlokans/booklibrary/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "http.db"), logger.Silent)
	require.NoError(t, err)
	return db, func() { db.Close() }
}

// setupLibraryRouter wires the real services over a fresh database.
func setupLibraryRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	db, cleanup := setupTestDB(t)
	router := NewRouter(RouterConfig{
		Books:    services.NewBookService(db),
		Users:    services.NewUserService(db),
		Borrows:  services.NewBorrowService(db),
		Database: db,
		Version:  "test",
	})
	return router, cleanup
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// seedLibrary creates Dune (1), Emma (2), Ann (1), Bob (2) and lends Dune to Ann.
func seedLibrary(t *testing.T, router http.Handler) {
	t.Helper()
	for _, b := range []map[string]string{
		{"title": "Dune", "author": "Herbert"},
		{"title": "Emma", "author": "Austen"},
	} {
		w := doJSON(router, http.MethodPost, "/api/books", b)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	for _, u := range []map[string]string{
		{"name": "Ann", "email": "ann@x.org"},
		{"name": "Bob", "email": "bob@x.org"},
	} {
		w := doJSON(router, http.MethodPost, "/api/users", u)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := doJSON(router, http.MethodPost, "/api/borrowedbooks", map[string]any{
		"bookId": 1, "userId": 1, "borrowedFrom": "2024-01-01", "borrowedUntil": "2024-01-02",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
