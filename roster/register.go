// Package roster is the gate register of visitors admitted by finished
// check-ins. It backs the check-out table and the reports.
package roster

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"visentry-backend/checkin"
	"visentry-backend/models"
)

var (
	ErrNotFound          = errors.New("visitor not found")
	ErrAlreadyCheckedOut = errors.New("visitor already checked out")
	ErrMissingID         = errors.New("check-in has no visitor id")
)

type Register struct {
	mu      sync.RWMutex
	entries []models.Visitor
}

func NewRegister() *Register {
	return &Register{}
}

// Add admits the primary visitor and each member of a completed check-in.
// Members get ids derived from the visitor id.
func (r *Register) Add(st checkin.State, at time.Time) ([]models.Visitor, error) {
	if st.ID == nil || *st.ID == "" {
		return nil, ErrMissingID
	}
	c := st.CompanyDetails
	row := func(id string, b checkin.BasicDetails) models.Visitor {
		checkIn := at
		return models.Visitor{
			ID:      id,
			Name:    b.FullName(),
			Email:   b.Email,
			Phone:   b.Phone,
			Company: c.CompanyName,
			Host:    c.Host.Name,
			Purpose: c.PurposeOfVisit,
			CheckIn: &checkIn,
			Status:  models.StatusCheckedIn,
		}
	}

	added := []models.Visitor{row(*st.ID, st.BasicDetails)}
	for i, m := range st.Members {
		added = append(added, row(fmt.Sprintf("%s-M%d", *st.ID, i+1), m.BasicDetails))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, added...)
	return added, nil
}

// All returns every entry in admission order.
func (r *Register) All() []models.Visitor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// CheckedIn returns visitors still on site.
func (r *Register) CheckedIn() []models.Visitor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Visitor, 0, len(r.entries))
	for _, v := range r.entries {
		if v.Status == models.StatusCheckedIn {
			out = append(out, v)
		}
	}
	return out
}

// CheckOut marks a visitor as gone.
func (r *Register) CheckOut(id string, at time.Time) (models.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.entries, func(v models.Visitor) bool { return v.ID == id })
	if i < 0 {
		return models.Visitor{}, ErrNotFound
	}
	v := &r.entries[i]
	if v.Status == models.StatusCheckedOut {
		return *v, ErrAlreadyCheckedOut
	}
	out := at
	v.CheckOut = &out
	v.Status = models.StatusCheckedOut
	return *v, nil
}
