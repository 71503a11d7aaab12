package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"visentry-backend/models"
	"visentry-backend/views"
)

// VisitorStore is the SQL side of the service.
type VisitorStore interface {
	Connected() bool
	ListVisitors(ctx context.Context) ([]models.Visitor, error)
	DBTime(ctx context.Context) (time.Time, error)
}

var errDisconnected = errors.New("database disconnected")

type VisitorHandler struct {
	store VisitorStore
}

func NewVisitorHandler(store VisitorStore) *VisitorHandler {
	return &VisitorHandler{store: store}
}

// Status reports database reachability with the server clock.
func (h *VisitorHandler) Status(c *gin.Context) {
	if h.store == nil || !h.store.Connected() {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Database Disconnected"})
		return
	}
	now, err := h.store.DBTime(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.DBStatus{Status: "OK", DBTime: now})
}

// ListVisitors returns every row of the visitors table.
func (h *VisitorHandler) ListVisitors(c *gin.Context) {
	visitors, err := h.fetch(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch visitors", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, visitors)
}

// VisitorList is the searchable, sortable, paginated visitor table.
func (h *VisitorHandler) VisitorList(c *gin.Context) {
	var q views.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	visitors, err := h.fetch(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch visitors", "details": err.Error()})
		return
	}
	page, err := views.Apply(visitors, q, views.VisitorColumns)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *VisitorHandler) fetch(c *gin.Context) ([]models.Visitor, error) {
	if h.store == nil || !h.store.Connected() {
		return nil, errDisconnected
	}
	visitors, err := h.store.ListVisitors(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if visitors == nil {
		visitors = []models.Visitor{}
	}
	return visitors, nil
}
