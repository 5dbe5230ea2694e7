package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklibrary/internal/entities"
)

// borrowRequest carries dates as text so a malformed value becomes a field
// error instead of a decoding failure of the whole body.
type borrowRequest struct {
	BookID        uint   `json:"bookId" binding:"required,gt=0"`
	UserID        uint   `json:"userId" binding:"required,gt=0"`
	BorrowedFrom  string `json:"borrowedFrom" binding:"required,datetime=2006-01-02"`
	BorrowedUntil string `json:"borrowedUntil" binding:"required,datetime=2006-01-02"`
}

// toEntity parses the dates, returning per-field messages for any that do
// not parse.
func (r borrowRequest) toEntity() (entities.BorrowedBook, map[string]string) {
	details := map[string]string{}
	from, err := entities.ParseDate(r.BorrowedFrom)
	if err != nil {
		details["borrowedFrom"] = invalidDateMessage
	}
	until, err := entities.ParseDate(r.BorrowedUntil)
	if err != nil {
		details["borrowedUntil"] = invalidDateMessage
	}
	if len(details) > 0 {
		return entities.BorrowedBook{}, details
	}
	return entities.BorrowedBook{
		BookID:        r.BookID,
		UserID:        r.UserID,
		BorrowedFrom:  from,
		BorrowedUntil: until,
	}, nil
}

// BorrowsController serves /api/borrowedbooks.
type BorrowsController struct {
	store BorrowStore
}

func NewBorrowsController(store BorrowStore) *BorrowsController {
	return &BorrowsController{store: store}
}

// GetAll lists every borrow, answering 404 when there are none.
func (bc *BorrowsController) GetAll(c *gin.Context) {
	borrows, err := bc.store.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "borrowed book", "list borrows")
		return
	}
	if len(borrows) == 0 {
		respondNotFound(c, "borrowed book")
		return
	}
	c.JSON(http.StatusOK, borrows)
}

func (bc *BorrowsController) GetByBook(c *gin.Context) {
	id, ok := parseQueryID(c, "id", "book")
	if !ok {
		return
	}

	borrow, err := bc.store.GetByBook(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "borrowed book", "get borrow by book")
		return
	}
	c.JSON(http.StatusOK, borrow)
}

// GetByUser lists a user's borrows, answering 404 when there are none.
func (bc *BorrowsController) GetByUser(c *gin.Context) {
	id, ok := parseQueryID(c, "id", "user")
	if !ok {
		return
	}

	borrows, err := bc.store.ListByUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "borrowed book", "list borrows by user")
		return
	}
	if len(borrows) == 0 {
		respondNotFound(c, "borrowed book")
		return
	}
	c.JSON(http.StatusOK, borrows)
}

func (bc *BorrowsController) Create(c *gin.Context) {
	borrow, ok := bc.bind(c)
	if !ok {
		return
	}

	created, err := bc.store.Borrow(c.Request.Context(), borrow)
	if err != nil {
		respondServiceError(c, err, "borrowed book", "borrow book")
		return
	}
	respondCreated(c, fmt.Sprintf("/api/borrowedbooks/book?id=%d", created.BookID), created)
}

func (bc *BorrowsController) Update(c *gin.Context) {
	bookID, ok := parseQueryID(c, "bookId", "book")
	if !ok {
		return
	}
	borrow, ok := bc.bind(c)
	if !ok {
		return
	}

	updated, err := bc.store.Update(c.Request.Context(), bookID, borrow)
	if err != nil {
		respondServiceError(c, err, "borrowed book", "update borrow")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (bc *BorrowsController) Delete(c *gin.Context) {
	bookID, ok := parseQueryID(c, "bookId", "book")
	if !ok {
		return
	}

	if _, err := bc.store.Return(c.Request.Context(), bookID); err != nil {
		respondServiceError(c, err, "borrowed book", "return book")
		return
	}
	respondSuccess(c, fmt.Sprintf("Successfully deleted borrowed book entry with bookid=%d", bookID))
}

func (bc *BorrowsController) bind(c *gin.Context) (entities.BorrowedBook, bool) {
	var req borrowRequest
	if !bindJSON(c, &req) {
		return entities.BorrowedBook{}, false
	}
	borrow, details := req.toEntity()
	if details != nil {
		respondValidation(c, details)
		return entities.BorrowedBook{}, false
	}
	return borrow, true
}
