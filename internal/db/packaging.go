package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
	"github.com/jackc/pgx/v5"
)

const packagingColumns = `
	id::text, codigo, nome, marca, material, dimensoes, pais, data_cadastro,
	grafica, url_imagem, tags, localizacao, eventos, livros, observacoes,
	status, criado_por::text, data_criacao, modificado_por::text, data_modificacao`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackaging(row rowScanner) (models.Packaging, error) {
	var p models.Packaging
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Nome, &p.Marca, &p.Material, &p.Dimensoes, &p.Pais,
		&p.DataCadastro, &p.Grafica, &p.URLImagem, &p.Tags, &p.Localizacao,
		&p.Eventos, &p.Livros, &p.Observacoes, &p.Status, &p.CriadoPor,
		&p.DataCriacao, &p.ModificadoPor, &p.DataModificacao,
	)
	return p, err
}

// ListPackaging returns one page of packaging rows plus the total count for
// the same filter set.
func (db *Database) ListPackaging(ctx context.Context, params models.PackagingListParams) ([]models.Packaging, int, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, params.Status)
		argIndex++
	}
	if params.Material != "" {
		conditions = append(conditions, fmt.Sprintf("material ILIKE $%d", argIndex))
		args = append(args, "%"+params.Material+"%")
		argIndex++
	}
	if params.Pais != "" {
		conditions = append(conditions, fmt.Sprintf("pais ILIKE $%d", argIndex))
		args = append(args, "%"+params.Pais+"%")
		argIndex++
	}
	if params.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("tags @> ARRAY[$%d::text]", argIndex))
		args = append(args, params.Tag)
		argIndex++
	}
	if params.Q != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(nome ILIKE $%d OR marca ILIKE $%d OR codigo ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+params.Q+"%")
		argIndex++
	}

	whereSQL := ""
	if len(conditions) > 0 {
		whereSQL = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM embalagens"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count packaging: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM embalagens%s ORDER BY data_cadastro DESC NULLS LAST, data_criacao DESC LIMIT $%d OFFSET $%d",
		packagingColumns, whereSQL, argIndex, argIndex+1,
	)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list packaging: %w", err)
	}
	defer rows.Close()

	items := make([]models.Packaging, 0)
	for rows.Next() {
		p, err := scanPackaging(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// GetPackaging returns one row by id, or ErrNotFound.
func (db *Database) GetPackaging(ctx context.Context, id string) (models.Packaging, error) {
	query := fmt.Sprintf("SELECT %s FROM embalagens WHERE id = $1", packagingColumns)
	p, err := scanPackaging(db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Packaging{}, ErrNotFound
	}
	if err != nil {
		return models.Packaging{}, fmt.Errorf("failed to get packaging: %w", err)
	}
	return p, nil
}

// CreatePackaging inserts a new row and returns it as stored.
func (db *Database) CreatePackaging(ctx context.Context, req models.CreatePackagingRequest, creatorID *string) (models.Packaging, error) {
	status := req.Status
	if status == "" {
		status = "ativo"
	}

	query := fmt.Sprintf(`
		INSERT INTO embalagens (
			codigo, nome, marca, material, dimensoes, pais, data_cadastro,
			grafica, url_imagem, tags, localizacao, eventos, livros,
			observacoes, status, criado_por, data_criacao
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW())
		RETURNING %s`, packagingColumns)

	p, err := scanPackaging(db.Pool.QueryRow(ctx, query,
		req.Codigo, req.Nome, req.Marca, req.Material, req.Dimensoes, req.Pais,
		req.DataCadastro, req.Grafica, req.URLImagem, []string(req.Tags),
		req.Localizacao, req.Eventos, req.Livros, req.Observacoes, status, creatorID,
	))
	if err != nil {
		return models.Packaging{}, fmt.Errorf("failed to create packaging: %w", err)
	}
	return p, nil
}

// UpdatePackaging applies a partial patch. Fields absent from the request
// stay untouched; modificado_por and data_modificacao are always stamped.
func (db *Database) UpdatePackaging(ctx context.Context, id string, req models.UpdatePackagingRequest, modifierID *string) (models.Packaging, error) {
	setClauses := []string{"modificado_por = $1", "data_modificacao = NOW()"}
	args := []any{modifierID}
	argIndex := 2

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Codigo != nil {
		addSet("codigo", *req.Codigo)
	}
	if req.Nome != nil {
		addSet("nome", *req.Nome)
	}
	if req.Marca != nil {
		addSet("marca", *req.Marca)
	}
	if req.Material != nil {
		addSet("material", *req.Material)
	}
	if req.Dimensoes != nil {
		addSet("dimensoes", *req.Dimensoes)
	}
	if req.Pais != nil {
		addSet("pais", *req.Pais)
	}
	if req.DataCadastro != nil {
		addSet("data_cadastro", *req.DataCadastro)
	}
	if req.Grafica != nil {
		addSet("grafica", *req.Grafica)
	}
	if req.URLImagem != nil {
		addSet("url_imagem", *req.URLImagem)
	}
	if req.Tags != nil {
		addSet("tags", []string(*req.Tags))
	}
	if req.Localizacao != nil {
		addSet("localizacao", *req.Localizacao)
	}
	if req.Eventos != nil {
		addSet("eventos", *req.Eventos)
	}
	if req.Livros != nil {
		addSet("livros", *req.Livros)
	}
	if req.Observacoes != nil {
		addSet("observacoes", *req.Observacoes)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}

	query := fmt.Sprintf(
		"UPDATE embalagens SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argIndex, packagingColumns,
	)
	args = append(args, id)

	p, err := scanPackaging(db.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Packaging{}, ErrNotFound
	}
	if err != nil {
		return models.Packaging{}, fmt.Errorf("failed to update packaging: %w", err)
	}
	return p, nil
}

// ArchivePackaging soft-deletes a row by flipping its status. The row is
// never removed.
func (db *Database) ArchivePackaging(ctx context.Context, id string, modifierID *string) (models.Packaging, error) {
	query := fmt.Sprintf(`
		UPDATE embalagens
		SET status = 'arquivado', modificado_por = $2, data_modificacao = NOW()
		WHERE id = $1
		RETURNING %s`, packagingColumns)

	p, err := scanPackaging(db.Pool.QueryRow(ctx, query, id, modifierID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Packaging{}, ErrNotFound
	}
	if err != nil {
		return models.Packaging{}, fmt.Errorf("failed to archive packaging: %w", err)
	}
	return p, nil
}
