package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
	"github.com/jackc/pgx/v5"
)

const locationColumns = `
	id::text, code, building, description, created_at, created_by, updated_at, updated_by::text`

func scanLocation(row rowScanner) (models.Location, error) {
	var l models.Location
	err := row.Scan(
		&l.ID, &l.Code, &l.Building, &l.Description,
		&l.CreatedAt, &l.CreatedBy, &l.UpdatedAt, &l.UpdatedBy,
	)
	return l, err
}

// ListLocations returns one page of locations, newest first.
func (db *Database) ListLocations(ctx context.Context, q string, page, pageSize int) ([]models.Location, int, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if term := strings.TrimSpace(q); term != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(code ILIKE $%d OR building ILIKE $%d OR description ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+term+"%")
		argIndex++
	}

	whereSQL := ""
	if len(conditions) > 0 {
		whereSQL = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM locations"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM locations%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		locationColumns, whereSQL, argIndex, argIndex+1,
	)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	items := make([]models.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, rows.Err()
}

// GetLocation returns one location by id, or ErrNotFound.
func (db *Database) GetLocation(ctx context.Context, id string) (models.Location, error) {
	query := fmt.Sprintf("SELECT %s FROM locations WHERE id = $1", locationColumns)
	l, err := scanLocation(db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Location{}, ErrNotFound
	}
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to get location: %w", err)
	}
	return l, nil
}

// CreateLocation inserts a new location. created_by records the creator's
// email, matching the spreadsheet's Locations tab.
func (db *Database) CreateLocation(ctx context.Context, req models.CreateLocationRequest, creatorEmail *string) (models.Location, error) {
	query := fmt.Sprintf(`
		INSERT INTO locations (code, building, description, created_at, created_by)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING %s`, locationColumns)

	l, err := scanLocation(db.Pool.QueryRow(ctx, query,
		req.Code, req.Building, req.Description, creatorEmail,
	))
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to create location: %w", err)
	}
	return l, nil
}

// UpdateLocation applies a partial patch and stamps updated_by/updated_at.
func (db *Database) UpdateLocation(ctx context.Context, id string, req models.UpdateLocationRequest, modifierID *string) (models.Location, error) {
	setClauses := []string{"updated_by = $1", "updated_at = NOW()"}
	args := []any{modifierID}
	argIndex := 2

	if req.Code != nil {
		setClauses = append(setClauses, fmt.Sprintf("code = $%d", argIndex))
		args = append(args, *req.Code)
		argIndex++
	}
	if req.Building != nil {
		setClauses = append(setClauses, fmt.Sprintf("building = $%d", argIndex))
		args = append(args, *req.Building)
		argIndex++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *req.Description)
		argIndex++
	}

	query := fmt.Sprintf(
		"UPDATE locations SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argIndex, locationColumns,
	)
	args = append(args, id)

	l, err := scanLocation(db.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Location{}, ErrNotFound
	}
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to update location: %w", err)
	}
	return l, nil
}

// DeleteLocation hard-deletes a location and returns the removed row for
// the audit trail.
func (db *Database) DeleteLocation(ctx context.Context, id string) (models.Location, error) {
	query := fmt.Sprintf("DELETE FROM locations WHERE id = $1 RETURNING %s", locationColumns)
	l, err := scanLocation(db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Location{}, ErrNotFound
	}
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to delete location: %w", err)
	}
	return l, nil
}
