package controller

import (
	"errors"
	"net/http"

	"quizzer_backend/internal/service"
	"quizzer_backend/internal/util"
	"quizzer_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AttemptController exposes the candidate-facing attempt lifecycle. Callers
// identify themselves with an `email` query parameter rather than a JWT:
// roster membership is the access check.
type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

func (c *AttemptController) Current(ctx *gin.Context) {
	email, ok := requireEmail(ctx)
	if !ok {
		return
	}

	attempt, err := c.AttemptService.Current(ctx.Param("convocatory_id"), email)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

func (c *AttemptController) Start(ctx *gin.Context) {
	email, ok := requireEmail(ctx)
	if !ok {
		return
	}

	attempt, err := c.AttemptService.Start(ctx.Param("convocatory_id"), email)
	if err != nil {
		attemptError(ctx, err)
		return
	}

	monitoring.AttemptsStarted.Inc()
	util.Created(ctx, attempt)
}

func (c *AttemptController) Autosave(ctx *gin.Context) {
	email, ok := requireEmail(ctx)
	if !ok {
		return
	}

	var req service.AutosaveAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AttemptService.Autosave(ctx.Param("convocatory_id"), email, req)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

func (c *AttemptController) Finalize(ctx *gin.Context) {
	email, ok := requireEmail(ctx)
	if !ok {
		return
	}

	var req service.FinalizeAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, certificate, err := c.AttemptService.Finalize(ctx.Param("convocatory_id"), email, req)
	if err != nil {
		attemptError(ctx, err)
		return
	}

	monitoring.AttemptsFinalized.WithLabelValues(string(req.Reason)).Inc()
	util.Success(ctx, gin.H{
		"attempt":     attempt,
		"certificate": certificate,
	})
}

func requireEmail(ctx *gin.Context) (string, bool) {
	email := ctx.Query("email")
	if email == "" {
		util.Unauthorized(ctx)
		return "", false
	}
	return email, true
}

func attemptError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAttemptAlreadyInProgress):
		util.Conflict(ctx, util.ErrAttemptAlreadyInProgress.Error())
	case errors.Is(err, util.ErrStaleAutosave):
		util.Conflict(ctx, util.ErrStaleAutosave.Error())
	case errors.Is(err, util.ErrOutOfScheduledDate):
		util.Forbidden(ctx, util.ErrOutOfScheduledDate.Error())
	case errors.Is(err, util.ErrMaximumAttemptsReached):
		util.Forbidden(ctx, util.ErrMaximumAttemptsReached.Error())
	case errors.Is(err, util.ErrNoAttemptInProgress):
		util.NotFound(ctx, util.ErrNoAttemptInProgress.Error())
	case errors.Is(err, util.ErrAnswerNotInOptions):
		util.BadRequest(ctx, util.ErrAnswerNotInOptions.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.Error(ctx, http.StatusNotFound, "Convocatory not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
