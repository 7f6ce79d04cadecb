package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
	"github.com/jackc/pgx/v5"
)

const scenarioColumns = `
	id::text, codigo, nome, descricao, pais, local, data, url_imagem, tags,
	criado_por::text, data_criacao`

func scanScenario(row rowScanner) (models.Scenario, error) {
	var s models.Scenario
	err := row.Scan(
		&s.ID, &s.Codigo, &s.Nome, &s.Descricao, &s.Pais, &s.Local, &s.Data,
		&s.URLImagem, &s.Tags, &s.CriadoPor, &s.DataCriacao,
	)
	return s, err
}

// ListScenarios returns one page of scenarios, newest first.
func (db *Database) ListScenarios(ctx context.Context, q string, page, pageSize int) ([]models.Scenario, int, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if term := strings.TrimSpace(q); term != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(codigo ILIKE $%d OR nome ILIKE $%d OR pais ILIKE $%d OR local ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+term+"%")
		argIndex++
	}

	whereSQL := ""
	if len(conditions) > 0 {
		whereSQL = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM scenarios"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count scenarios: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM scenarios%s ORDER BY data_criacao DESC LIMIT $%d OFFSET $%d",
		scenarioColumns, whereSQL, argIndex, argIndex+1,
	)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	items := make([]models.Scenario, 0)
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

// GetScenario returns one scenario by id, or ErrNotFound.
func (db *Database) GetScenario(ctx context.Context, id string) (models.Scenario, error) {
	query := fmt.Sprintf("SELECT %s FROM scenarios WHERE id = $1", scenarioColumns)
	s, err := scanScenario(db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Scenario{}, ErrNotFound
	}
	if err != nil {
		return models.Scenario{}, fmt.Errorf("failed to get scenario: %w", err)
	}
	return s, nil
}

// CreateScenario inserts a new scenario and returns it as stored. Codigo
// must already be resolved by the caller.
func (db *Database) CreateScenario(ctx context.Context, codigo string, req models.CreateScenarioRequest, creatorID *string) (models.Scenario, error) {
	query := fmt.Sprintf(`
		INSERT INTO scenarios (codigo, nome, descricao, pais, local, data, url_imagem, tags, criado_por, data_criacao)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		RETURNING %s`, scenarioColumns)

	s, err := scanScenario(db.Pool.QueryRow(ctx, query,
		codigo, strings.TrimSpace(req.Nome), req.Descricao, req.Pais, req.Local,
		req.Data, req.URLImagem, []string(req.Tags), creatorID,
	))
	if err != nil {
		return models.Scenario{}, fmt.Errorf("failed to create scenario: %w", err)
	}
	return s, nil
}
