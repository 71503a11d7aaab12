package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"visentry-backend/reports"
	"visentry-backend/roster"
)

type ReportHandler struct {
	roster *roster.Register
	now    func() time.Time
}

func NewReportHandler(reg *roster.Register, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{roster: reg, now: now}
}

// CheckIns charts register check-ins for ?range=daily|weekly|monthly.
func (h *ReportHandler) CheckIns(c *gin.Context) {
	report, err := reports.Build(h.roster.All(), c.Query("range"), h.now())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, report)
}
