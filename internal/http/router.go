package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Status)

	api := router.Group("/api")

	books := NewBooksController(cfg.Books)
	api.GET("/books", books.Get)
	api.POST("/books", books.Create)
	api.PUT("/books", books.Update)
	api.DELETE("/books", books.Delete)

	users := NewUsersController(cfg.Users)
	api.GET("/users", users.Get)
	api.POST("/users", users.Create)
	api.PUT("/users", users.Update)
	api.DELETE("/users", users.Delete)

	borrows := NewBorrowsController(cfg.Borrows)
	api.GET("/borrowedbooks", borrows.GetAll)
	api.GET("/borrowedbooks/book", borrows.GetByBook)
	api.GET("/borrowedbooks/user", borrows.GetByUser)
	api.POST("/borrowedbooks", borrows.Create)
	api.PUT("/borrowedbooks", borrows.Update)
	api.DELETE("/borrowedbooks", borrows.Delete)

	if cfg.Reminders != nil {
		reminders := NewRemindersController(cfg.Reminders)
		api.POST("/reminders/run", reminders.Run)
		api.GET("/reminders/status", reminders.Status)
	}

	return router
}
