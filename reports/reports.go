// Package reports buckets gate register check-ins for the dashboard chart.
package reports

import (
	"errors"
	"fmt"
	"time"

	"visentry-backend/models"
)

var ErrUnknownRange = errors.New("unknown report range")

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Build counts check-ins of the day, week or month containing now. An empty
// range selects the week.
func Build(entries []models.Visitor, rng string, now time.Time) (models.Report, error) {
	if rng == "" {
		rng = models.RangeWeekly
	}
	loc := now.Location()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var (
		from, to time.Time
		labels   []string
		bucket   func(time.Time) int
	)
	switch rng {
	case models.RangeDaily:
		from, to = day, day.AddDate(0, 0, 1)
		for h := 0; h < 24; h += 4 {
			labels = append(labels, fmt.Sprintf("%02d:00", h))
		}
		bucket = func(t time.Time) int { return t.Hour() / 4 }
	case models.RangeWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		from = day.AddDate(0, 0, -offset)
		to = from.AddDate(0, 0, 7)
		labels = weekdays
		bucket = func(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }
	case models.RangeMonthly:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		to = from.AddDate(0, 1, 0)
		days := to.AddDate(0, 0, -1).Day()
		for w := 1; w <= (days+6)/7; w++ {
			labels = append(labels, fmt.Sprintf("Week %d", w))
		}
		bucket = func(t time.Time) int { return (t.Day() - 1) / 7 }
	default:
		return models.Report{}, fmt.Errorf("%w: %q", ErrUnknownRange, rng)
	}

	points := make([]models.ReportPoint, len(labels))
	for i, l := range labels {
		points[i] = models.ReportPoint{Name: l}
	}
	total := 0
	for _, e := range entries {
		if e.CheckIn == nil {
			continue
		}
		t := e.CheckIn.In(loc)
		if t.Before(from) || !t.Before(to) {
			continue
		}
		points[bucket(t)].Value++
		total++
	}

	return models.Report{
		Range:       rng,
		From:        from,
		To:          to,
		Points:      points,
		Total:       total,
		GeneratedAt: now,
	}, nil
}
