package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"visentry-backend/models"
)

// VisitorRepository reads the visitors table.
type VisitorRepository struct {
	pool *pgxpool.Pool
}

func NewVisitorRepository(pool *pgxpool.Pool) *VisitorRepository {
	return &VisitorRepository{pool: pool}
}

// Connected reports whether a pool was established.
func (r *VisitorRepository) Connected() bool {
	return r != nil && r.pool != nil
}

func (r *VisitorRepository) ListVisitors(ctx context.Context) ([]models.Visitor, error) {
	query := `
		SELECT id, name, email, phone, company, host, purpose, check_in, check_out, status
		FROM visitors
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	visitors, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Visitor])
	if err != nil {
		return nil, fmt.Errorf("scan visitors: %w", err)
	}
	return visitors, nil
}

// DBTime returns the database server clock.
func (r *VisitorRepository) DBTime(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.pool.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}
