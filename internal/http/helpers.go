package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklibrary/internal/services"
)

// unhandledErrorMessage is the only detail a client sees for an
// infrastructure failure.
const unhandledErrorMessage = "An error occurred while performing this action: UNHANDLED ERROR"

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // field errors for validation failures
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondValidation sends a 400 response carrying per-field messages.
func respondValidation(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Code:    services.KindValidation.String(),
		Details: details,
	})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: resource + " not found",
		Code:  services.KindNotFound.String(),
	})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{
		Error: message,
		Code:  services.KindConflict.String(),
	})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: unhandledErrorMessage})
}

// respondServiceError maps a service error onto the matching response.
func respondServiceError(c *gin.Context, err error, resource, context string) {
	switch services.KindOf(err) {
	case services.KindValidation:
		respondBadRequest(c, err.Error())
	case services.KindNotFound:
		respondNotFound(c, resource)
	case services.KindConflict:
		respondConflict(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response pointing at the new resource.
func respondCreated(c *gin.Context, location string, data any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseQueryID extracts a positive integer ID from query parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseQueryID(c *gin.Context, paramName, resource string) (uint, bool) {
	id, err := strconv.ParseInt(c.Query(paramName), 10, 64)
	if err != nil || id <= 0 || id > int64(^uint32(0)) {
		respondValidation(c, map[string]string{paramName: "Invalid " + resource + " ID."})
		return 0, false
	}
	return uint(id), true
}
