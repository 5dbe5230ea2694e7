package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklibrary/internal/scheduler"
)

// RemindersController exposes manual sweeps and scheduler state.
type RemindersController struct {
	runner ReminderRunner
}

func NewRemindersController(runner ReminderRunner) *RemindersController {
	return &RemindersController{runner: runner}
}

// Run performs a sweep synchronously and returns its result. The sweep is
// not cut short when the client disconnects.
func (rc *RemindersController) Run(c *gin.Context) {
	result, err := rc.runner.RunNow(context.WithoutCancel(c.Request.Context()))
	if errors.Is(err, scheduler.ErrSweepInProgress) {
		respondConflict(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "reminder sweep")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (rc *RemindersController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, rc.runner.Status())
}
