package models

import (
	"time"
)

// Report range constants
const (
	RangeDaily   = "daily"
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"
)

// ReportPoint is one bucket of the check-in chart.
type ReportPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Report struct {
	Range       string        `json:"range"`
	From        time.Time     `json:"from"`
	To          time.Time     `json:"to"`
	Points      []ReportPoint `json:"points"`
	Total       int           `json:"total"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// NDASettings is the agreement text shown on the NDA step.
type NDASettings struct {
	Content   string     `json:"content"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type UpdateNDARequest struct {
	Content string `json:"content"`
}
