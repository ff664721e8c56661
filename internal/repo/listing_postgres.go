package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

const queryTimeout = 3 * time.Second

type PostgresListingRepository struct {
	db *sqlx.DB
}

func NewPostgresListingRepository(db *sql.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: sqlx.NewDb(db, "pgx")}
}

func (r *PostgresListingRepository) Find(ctx context.Context, req search.Request) ([]models.Listing, int, error) {
	where, args, err := whereClause(req.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build filter: %w", err)
	}
	order, err := orderClause(req.Order)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build ordering: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM listings "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	// Early return if offset is beyond total
	if req.Offset >= total {
		return []models.Listing{}, total, nil
	}

	query := fmt.Sprintf("SELECT %s FROM listings %s %s", listingColumns, where, order)
	if req.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, req.Limit)
	}
	if req.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, req.Offset)
	}

	listings := []models.Listing{}
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query listings: %w", err)
	}
	return listings, total, nil
}

func (r *PostgresListingRepository) GetByID(ctx context.Context, id int) (models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var l models.Listing
	err := r.db.GetContext(ctx, &l, "SELECT "+listingColumns+" FROM listings WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Listing{}, ErrListingNotFound
	}
	return l, err
}

func (r *PostgresListingRepository) All(ctx context.Context) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	listings := []models.Listing{}
	err := r.db.SelectContext(ctx, &listings, "SELECT "+listingColumns+" FROM listings ORDER BY id")
	return listings, err
}
