package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"visentry-backend/models"
	"visentry-backend/settings"
)

type SettingsHandler struct {
	nda *settings.NDAStore
	now func() time.Time
}

func NewSettingsHandler(nda *settings.NDAStore, now func() time.Time) *SettingsHandler {
	if now == nil {
		now = time.Now
	}
	return &SettingsHandler{nda: nda, now: now}
}

func (h *SettingsHandler) GetNDA(c *gin.Context) {
	c.JSON(http.StatusOK, h.nda.Get())
}

func (h *SettingsHandler) UpdateNDA(c *gin.Context) {
	var req models.UpdateNDARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	saved, errs := h.nda.Set(req.Content, h.now())
	if !errs.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": errs})
		return
	}
	c.JSON(http.StatusOK, saved)
}
