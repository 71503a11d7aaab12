package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visentry-backend/logger"
	"visentry-backend/roster"
	"visentry-backend/views"
)

// EntryExitHandler serves the gate's check-out table.
type EntryExitHandler struct {
	roster *roster.Register
	now    func() time.Time
}

func NewEntryExitHandler(reg *roster.Register, now func() time.Time) *EntryExitHandler {
	if now == nil {
		now = time.Now
	}
	return &EntryExitHandler{roster: reg, now: now}
}

func (h *EntryExitHandler) CheckedIn(c *gin.Context) {
	var q views.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	page, err := views.Apply(h.roster.CheckedIn(), q, views.VisitorColumns)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *EntryExitHandler) CheckOut(c *gin.Context) {
	visitor, err := h.roster.CheckOut(c.Param("id"), h.now())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	logger.FromContext(c).Info("visitor checked out", zap.String("visitor_id", visitor.ID))
	c.JSON(http.StatusOK, visitor)
}
