package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklibrary/internal/entities"
	"github.com/mrlokans/booklibrary/internal/services"
)

type bookRequest struct {
	Title  string `json:"title" binding:"required,max=100"`
	Author string `json:"author" binding:"required,max=50"`
}

func (r bookRequest) toEntity() entities.Book {
	return entities.Book{Title: r.Title, Author: r.Author}
}

// BooksController serves /api/books.
type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// Get returns one book when ?id is given, otherwise a list optionally
// filtered by ?borrowed=true|false.
func (bc *BooksController) Get(c *gin.Context) {
	if _, ok := c.GetQuery("id"); ok {
		bc.getOne(c)
		return
	}

	filter := services.BookFilterAll
	if raw, ok := c.GetQuery("borrowed"); ok {
		switch strings.ToLower(raw) {
		case "true":
			filter = services.BookFilterBorrowed
		case "false":
			filter = services.BookFilterAvailable
		default:
			respondValidation(c, map[string]string{"borrowed": "The 'borrowed' parameter must be either 'true' or 'false'."})
			return
		}
	}

	books, err := bc.store.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "book", "list books")
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	c.JSON(http.StatusOK, books)
}

func (bc *BooksController) getOne(c *gin.Context) {
	id, ok := parseQueryID(c, "id", "book")
	if !ok {
		return
	}

	book, err := bc.store.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "book", "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.store.Create(c.Request.Context(), req.toEntity())
	if err != nil {
		respondServiceError(c, err, "book", "create book")
		return
	}
	respondCreated(c, fmt.Sprintf("/api/books?id=%d", book.ID), book)
}

func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseQueryID(c, "id", "book")
	if !ok {
		return
	}
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.store.Update(c.Request.Context(), id, req.toEntity())
	if err != nil {
		respondServiceError(c, err, "book", "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseQueryID(c, "id", "book")
	if !ok {
		return
	}

	if _, err := bc.store.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "book", "delete book")
		return
	}
	respondSuccess(c, fmt.Sprintf("Successfully deleted book with id=%d", id))
}
