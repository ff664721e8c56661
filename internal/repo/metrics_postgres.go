package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/listing-search/internal/models"
)

type PostgresMetricsRepository struct {
	db *sqlx.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: sqlx.NewDb(db, "pgx")}
}

type groupCount struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m := newMetrics()

	if err := r.db.GetContext(ctx, &m.TotalListings, `SELECT COUNT(*) FROM listings`); err != nil {
		return m, fmt.Errorf("failed to count listings: %w", err)
	}

	var byStatus []groupCount
	if err := r.db.SelectContext(ctx, &byStatus, `SELECT status AS key, COUNT(*) AS count FROM listings GROUP BY status`); err != nil {
		return m, fmt.Errorf("failed to count listings by status: %w", err)
	}
	for _, g := range byStatus {
		m.ByStatus[models.Status(g.Key)] = g.Count
	}

	var byType []groupCount
	if err := r.db.SelectContext(ctx, &byType, `SELECT property_type AS key, COUNT(*) AS count FROM listings GROUP BY property_type`); err != nil {
		return m, fmt.Errorf("failed to count listings by type: %w", err)
	}
	for _, g := range byType {
		m.ByPropertyType[models.PropertyType(g.Key)] = g.Count
	}

	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg, `SELECT AVG(price) FROM listings WHERE status = 'active' AND price IS NOT NULL`); err != nil {
		return m, fmt.Errorf("failed to average active prices: %w", err)
	}
	if avg.Valid {
		m.AverageActivePrice = &avg.Float64
	}

	return m, nil
}
