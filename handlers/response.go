package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visentry-backend/badge"
	"visentry-backend/checkin"
	"visentry-backend/logger"
	"visentry-backend/pending"
	"visentry-backend/reports"
	"visentry-backend/roster"
	"visentry-backend/views"
	"visentry-backend/wizard"
)

// respondError maps domain errors to a status and a gin.H body. Fields in
// extra are merged into the body of client errors.
func respondError(c *gin.Context, err error, extra gin.H) {
	var (
		verr       *wizard.ValidationError
		incomplete *wizard.IncompleteError
	)
	status, body := http.StatusInternalServerError, gin.H{"error": "Internal server error"}

	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		body = gin.H{"error": "Validation failed", "step": verr.Step, "fields": verr.Fields}
	case errors.As(err, &incomplete):
		status = http.StatusConflict
		body = gin.H{"error": incomplete.Message, "step": incomplete.Step}
	case errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, badge.ErrNotAccepted),
		errors.Is(err, roster.ErrAlreadyCheckedOut):
		status = http.StatusConflict
		body = gin.H{"error": err.Error()}
	case errors.Is(err, wizard.ErrSessionNotFound),
		errors.Is(err, checkin.ErrMemberNotFound),
		errors.Is(err, roster.ErrNotFound),
		errors.Is(err, pending.ErrNotFound):
		status = http.StatusNotFound
		body = gin.H{"error": err.Error()}
	case errors.Is(err, views.ErrUnknownColumn),
		errors.Is(err, reports.ErrUnknownRange):
		status = http.StatusBadRequest
		body = gin.H{"error": err.Error()}
	default:
		logger.FromContext(c).Error("request failed", zap.Error(err))
		c.JSON(status, body)
		return
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
}
