package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/models"
	"github.com/jackc/pgx/v5"
)

const userColumns = `
	id::text, email, nome, nivel_acesso, equipe_id::text, status, data_criacao, ultimo_acesso`

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Nome, &u.NivelAcesso, &u.EquipeID,
		&u.Status, &u.DataCriacao, &u.UltimoAcesso,
	)
	return u, err
}

// UserEmailExists is the duplicate pre-check before account creation. The
// unique index on email still closes the race at insert time.
func (db *Database) UserEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)", email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

// GetUserByEmailWithHash returns the account plus its credential hash for
// login verification. Legacy rows may carry the hash in senha_hash;
// password_hash wins when both are set.
func (db *Database) GetUserByEmailWithHash(ctx context.Context, email string) (models.User, *string, error) {
	query := fmt.Sprintf("SELECT %s, password_hash, senha_hash FROM usuarios WHERE email = $1", userColumns)

	var u models.User
	var passwordHash, senhaHash *string
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Nome, &u.NivelAcesso, &u.EquipeID,
		&u.Status, &u.DataCriacao, &u.UltimoAcesso,
		&passwordHash, &senhaHash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, nil, ErrNotFound
	}
	if err != nil {
		return models.User{}, nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash := passwordHash
	if hash == nil {
		hash = senhaHash
	}
	return u, hash, nil
}

// RegisterUser creates a self-registered account with elevated access.
func (db *Database) RegisterUser(ctx context.Context, email, nome, passwordHash string) (models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO usuarios (email, nome, password_hash, nivel_acesso, status, data_criacao)
		VALUES ($1, $2, $3, 'admin', 'ativo', NOW())
		RETURNING %s`, userColumns)

	u, err := scanUser(db.Pool.QueryRow(ctx, query, email, nome, passwordHash))
	if err != nil {
		return models.User{}, fmt.Errorf("failed to register user: %w", err)
	}
	return u, nil
}

// CreateUser creates an admin-provisioned account. senhaHash may be nil
// for accounts that get a password later.
func (db *Database) CreateUser(ctx context.Context, req models.CreateUserRequest, senhaHash *string) (models.User, error) {
	status := "ativo"
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	query := fmt.Sprintf(`
		INSERT INTO usuarios (email, nome, nivel_acesso, equipe_id, status, senha_hash, data_criacao)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s`, userColumns)

	u, err := scanUser(db.Pool.QueryRow(ctx, query,
		req.Email, req.Nome, req.NivelAcesso, req.EquipeID, status, senhaHash,
	))
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// ListUsers returns one page of accounts ordered by display name.
func (db *Database) ListUsers(ctx context.Context, params models.UserListParams) ([]models.User, int, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if term := strings.TrimSpace(params.Q); term != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR nome ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+term+"%")
		argIndex++
	}
	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, params.Status)
		argIndex++
	}

	whereSQL := ""
	if len(conditions) > 0 {
		whereSQL = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM usuarios"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM usuarios%s ORDER BY nome ASC LIMIT $%d OFFSET $%d",
		userColumns, whereSQL, argIndex, argIndex+1,
	)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	items := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

// GetUser returns one account by id, or ErrNotFound.
func (db *Database) GetUser(ctx context.Context, id string) (models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE id = $1", userColumns)
	u, err := scanUser(db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateUser applies a partial patch. A new password hash replaces
// senha_hash; the raw password never reaches this layer.
func (db *Database) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, senhaHash *string) (models.User, error) {
	setClauses := []string{"data_modificacao = NOW()"}
	var args []any
	argIndex := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Nome != nil {
		addSet("nome", *req.Nome)
	}
	if req.NivelAcesso != nil {
		addSet("nivel_acesso", *req.NivelAcesso)
	}
	if req.EquipeID != nil {
		addSet("equipe_id", *req.EquipeID)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}
	if senhaHash != nil {
		addSet("senha_hash", *senhaHash)
	}

	query := fmt.Sprintf(
		"UPDATE usuarios SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argIndex, userColumns,
	)
	args = append(args, id)

	u, err := scanUser(db.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// DeactivateUser soft-deletes an account by flipping its status.
func (db *Database) DeactivateUser(ctx context.Context, id string) (models.User, error) {
	query := fmt.Sprintf(`
		UPDATE usuarios
		SET status = 'inativo', data_modificacao = NOW()
		WHERE id = $1
		RETURNING %s`, userColumns)

	u, err := scanUser(db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to deactivate user: %w", err)
	}
	return u, nil
}

// TouchLastAccess stamps ultimo_acesso. Callers treat failures as
// best-effort.
func (db *Database) TouchLastAccess(ctx context.Context, id string) error {
	_, err := db.Pool.Exec(ctx,
		"UPDATE usuarios SET ultimo_acesso = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to touch last access: %w", err)
	}
	return nil
}
