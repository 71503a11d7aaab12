package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visentry-backend/logger"
	"visentry-backend/pending"
	"visentry-backend/views"
	"visentry-backend/wizard"
)

type PendingHandler struct {
	queue    *pending.Queue
	sessions *wizard.Manager
}

func NewPendingHandler(queue *pending.Queue, sessions *wizard.Manager) *PendingHandler {
	return &PendingHandler{queue: queue, sessions: sessions}
}

func (h *PendingHandler) List(c *gin.Context) {
	var q views.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	page, err := views.Apply(h.queue.List(), q, views.PendingColumns)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Approve starts a check-in from a pre-registered visitor. The given
// session is reused when the body names one.
func (h *PendingHandler) Approve(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId" binding:"omitempty,uuid"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	visitor, err := h.queue.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	ctx := c.Request.Context()
	sid := req.SessionID
	if sid == "" {
		created, err := h.sessions.Create(ctx)
		if err != nil {
			respondError(c, err, nil)
			return
		}
		sid = created.SessionID
	}
	snap, err := h.sessions.Update(ctx, sid, func(m *wizard.Machine) error {
		m.Approve(visitor)
		return nil
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	if _, err := h.queue.Remove(visitor.ID); err != nil {
		respondError(c, err, nil)
		return
	}

	logger.FromContext(c).Info("pending visitor approved",
		zap.String("pending_id", visitor.ID),
		zap.String("session_id", sid))
	c.JSON(http.StatusOK, snap)
}

func (h *PendingHandler) Decline(c *gin.Context) {
	visitor, err := h.queue.Remove(c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	logger.FromContext(c).Info("pending visitor declined", zap.String("pending_id", visitor.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Visitor declined", "visitor": visitor})
}
