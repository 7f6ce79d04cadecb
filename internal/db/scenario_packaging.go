package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
	"github.com/jackc/pgx/v5"
)

const linkColumns = `
	sp.id::text, sp.scenario_id::text, sp.packaging_id::text, sp.posicao,
	sp.observacoes, sp.data_criacao, sp.criado_por::text,
	e.id::text, e.codigo, e.nome, e.marca, e.material, e.pais`

func scanLink(row rowScanner) (models.ScenarioPackaging, error) {
	var l models.ScenarioPackaging
	var pkgID, pkgCodigo, pkgNome *string
	var pkgMarca, pkgMaterial, pkgPais *string

	err := row.Scan(
		&l.ID, &l.ScenarioID, &l.PackagingID, &l.Posicao, &l.Observacoes,
		&l.DataCriacao, &l.CriadoPor,
		&pkgID, &pkgCodigo, &pkgNome, &pkgMarca, &pkgMaterial, &pkgPais,
	)
	if err != nil {
		return l, err
	}

	// The join is resolved here once, as a typed summary, so handlers never
	// have to sniff row shapes.
	if pkgID != nil {
		l.Packaging = &models.PackagingSummary{
			ID:       *pkgID,
			Codigo:   derefOr(pkgCodigo, ""),
			Nome:     derefOr(pkgNome, ""),
			Marca:    pkgMarca,
			Material: pkgMaterial,
			Pais:     pkgPais,
		}
	}
	return l, nil
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}

// ListScenarioPackaging returns all links of a scenario ordered by shelf
// position, each with its packaging summary.
func (db *Database) ListScenarioPackaging(ctx context.Context, scenarioID string) ([]models.ScenarioPackaging, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scenario_packaging sp
		LEFT JOIN embalagens e ON e.id = sp.packaging_id
		WHERE sp.scenario_id = $1
		ORDER BY sp.posicao ASC`, linkColumns)

	rows, err := db.Pool.Query(ctx, query, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario packaging: %w", err)
	}
	defer rows.Close()

	items := make([]models.ScenarioPackaging, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// CountScenarioPackaging returns how many links a scenario already has.
// Used to derive default positions for a batch insert.
func (db *Database) CountScenarioPackaging(ctx context.Context, scenarioID string) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM scenario_packaging WHERE scenario_id = $1", scenarioID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count scenario packaging: %w", err)
	}
	return count, nil
}

// AddScenarioPackaging inserts a batch of links in one statement and
// returns the stored rows with their packaging summaries, ordered by
// position.
func (db *Database) AddScenarioPackaging(ctx context.Context, scenarioID string, items []models.ScenarioPackagingItem, positions []int, creatorID *string) ([]models.ScenarioPackaging, error) {
	valueClauses := make([]string, 0, len(items))
	args := []any{scenarioID, creatorID}
	argIndex := 3

	for i, item := range items {
		valueClauses = append(valueClauses, fmt.Sprintf("($1, $%d, $%d, $%d, NOW(), $2)", argIndex, argIndex+1, argIndex+2))
		args = append(args, item.PackagingID, positions[i], item.Observacoes)
		argIndex += 3
	}

	insert := fmt.Sprintf(`
		INSERT INTO scenario_packaging (scenario_id, packaging_id, posicao, observacoes, data_criacao, criado_por)
		VALUES %s
		RETURNING id::text`, strings.Join(valueClauses, ", "))

	rows, err := db.Pool.Query(ctx, insert, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert scenario packaging: %w", err)
	}
	ids := make([]string, 0, len(items))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM scenario_packaging sp
		LEFT JOIN embalagens e ON e.id = sp.packaging_id
		WHERE sp.id = ANY($1)
		ORDER BY sp.posicao ASC`, linkColumns)

	linkRows, err := db.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load inserted scenario packaging: %w", err)
	}
	defer linkRows.Close()

	inserted := make([]models.ScenarioPackaging, 0, len(ids))
	for linkRows.Next() {
		l, err := scanLink(linkRows)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, l)
	}
	return inserted, linkRows.Err()
}

// GetScenarioPackaging returns one link scoped to its parent scenario, or
// ErrNotFound when either id does not match.
func (db *Database) GetScenarioPackaging(ctx context.Context, id, scenarioID string) (models.ScenarioPackaging, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scenario_packaging sp
		LEFT JOIN embalagens e ON e.id = sp.packaging_id
		WHERE sp.id = $1 AND sp.scenario_id = $2`, linkColumns)

	l, err := scanLink(db.Pool.QueryRow(ctx, query, id, scenarioID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ScenarioPackaging{}, ErrNotFound
	}
	if err != nil {
		return models.ScenarioPackaging{}, fmt.Errorf("failed to get scenario packaging: %w", err)
	}
	return l, nil
}

// DeleteScenarioPackaging removes one link. The compound key prevents
// deleting a link that belongs to a different scenario.
func (db *Database) DeleteScenarioPackaging(ctx context.Context, id, scenarioID string) error {
	cmd, err := db.Pool.Exec(ctx,
		"DELETE FROM scenario_packaging WHERE id = $1 AND scenario_id = $2", id, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to delete scenario packaging: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
