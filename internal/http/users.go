package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklibrary/internal/entities"
)

type userRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Email string `json:"email" binding:"required,email,min=5,max=100"`
}

func (r userRequest) toEntity() entities.User {
	return entities.User{Name: r.Name, Email: r.Email}
}

// UsersController serves /api/users.
type UsersController struct {
	store UserStore
}

func NewUsersController(store UserStore) *UsersController {
	return &UsersController{store: store}
}

func (uc *UsersController) Get(c *gin.Context) {
	if _, ok := c.GetQuery("id"); !ok {
		users, err := uc.store.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err, "user", "list users")
			return
		}
		if users == nil {
			users = []entities.User{}
		}
		c.JSON(http.StatusOK, users)
		return
	}

	id, ok := parseQueryID(c, "id", "user")
	if !ok {
		return
	}
	user, err := uc.store.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "user", "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UsersController) Create(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.store.Create(c.Request.Context(), req.toEntity())
	if err != nil {
		respondServiceError(c, err, "user", "create user")
		return
	}
	respondCreated(c, fmt.Sprintf("/api/users?id=%d", user.ID), user)
}

func (uc *UsersController) Update(c *gin.Context) {
	id, ok := parseQueryID(c, "id", "user")
	if !ok {
		return
	}
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.store.Update(c.Request.Context(), id, req.toEntity())
	if err != nil {
		respondServiceError(c, err, "user", "update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := parseQueryID(c, "id", "user")
	if !ok {
		return
	}

	if _, err := uc.store.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "user", "delete user")
		return
	}
	respondSuccess(c, fmt.Sprintf("Successfully deleted user with id=%d", id))
}
