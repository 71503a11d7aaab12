package views

import (
	"time"

	"visentry-backend/models"
)

// VisitorColumns are the sortable columns of the visitor and check-out tables.
var VisitorColumns = Columns[models.Visitor]{
	ID:   func(v models.Visitor) string { return v.ID },
	Name: func(v models.Visitor) string { return v.Name },
	Sort: map[string]func(a, b models.Visitor) int{
		"id":       ByString(func(v models.Visitor) string { return v.ID }),
		"name":     ByString(func(v models.Visitor) string { return v.Name }),
		"company":  ByString(func(v models.Visitor) string { return v.Company }),
		"host":     ByString(func(v models.Visitor) string { return v.Host }),
		"status":   ByString(func(v models.Visitor) string { return v.Status }),
		"checkIn":  byTime(func(v models.Visitor) *time.Time { return v.CheckIn }),
		"checkOut": byTime(func(v models.Visitor) *time.Time { return v.CheckOut }),
	},
}

// PendingColumns are the sortable columns of the pending table.
var PendingColumns = Columns[models.PendingVisitor]{
	ID:   func(p models.PendingVisitor) string { return p.ID },
	Name: func(p models.PendingVisitor) string { return p.Name },
	Sort: map[string]func(a, b models.PendingVisitor) int{
		"id":      ByString(func(p models.PendingVisitor) string { return p.ID }),
		"name":    ByString(func(p models.PendingVisitor) string { return p.Name }),
		"company": ByString(func(p models.PendingVisitor) string { return p.Company }),
		"host":    ByString(func(p models.PendingVisitor) string { return p.Host }),
	},
}

// byTime sorts missing times first.
func byTime(field func(models.Visitor) *time.Time) func(a, b models.Visitor) int {
	return func(a, b models.Visitor) int {
		ta, tb := field(a), field(b)
		switch {
		case ta == nil && tb == nil:
			return 0
		case ta == nil:
			return -1
		case tb == nil:
			return 1
		}
		return ta.Compare(*tb)
	}
}
