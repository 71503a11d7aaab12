// Package views implements the search, sort and pagination shared by the
// visitor, check-out and pending tables.
package views

import (
	"errors"
	"math"
	"slices"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

var ErrUnknownColumn = errors.New("unknown sort column")

// Query is the table state sent by the client.
type Query struct {
	Search string `form:"search" json:"search"`
	SortBy string `form:"sort" json:"sort"`
	Order  string `form:"order" json:"order" binding:"omitempty,oneof=asc desc"`
	Page   int    `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize applies the defaults.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Order != "desc" {
		q.Order = "asc"
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Page is one page of rows.
type Page[T any] struct {
	Data        []T  `json:"data"`
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Columns describes how rows of T are searched and sorted.
type Columns[T any] struct {
	ID   func(T) string
	Name func(T) string
	Sort map[string]func(a, b T) int
}

// Apply filters rows whose id or name contains the search term, sorts them
// by the requested column and slices out the requested page.
func Apply[T any](rows []T, q Query, cols Columns[T]) (Page[T], error) {
	q = q.Normalize()

	filtered := make([]T, 0, len(rows))
	needle := strings.ToLower(q.Search)
	for _, r := range rows {
		if needle == "" ||
			strings.Contains(strings.ToLower(cols.ID(r)), needle) ||
			strings.Contains(strings.ToLower(cols.Name(r)), needle) {
			filtered = append(filtered, r)
		}
	}

	if q.SortBy != "" {
		cmp, ok := cols.Sort[q.SortBy]
		if !ok {
			return Page[T]{}, ErrUnknownColumn
		}
		slices.SortStableFunc(filtered, func(a, b T) int {
			if q.Order == "desc" {
				return cmp(b, a)
			}
			return cmp(a, b)
		})
	}

	total := len(filtered)
	start := min((q.Page-1)*q.Limit, total)
	end := min(start+q.Limit, total)
	totalPages := int(math.Ceil(float64(total) / float64(q.Limit)))

	return Page[T]{
		Data:        filtered[start:end],
		Total:       total,
		Page:        q.Page,
		Limit:       q.Limit,
		TotalPages:  totalPages,
		HasNext:     q.Page < totalPages,
		HasPrevious: q.Page > 1,
	}, nil
}

// ByString builds a comparator on a string field, ignoring case.
func ByString[T any](field func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}
