package db

import (
	"context"
	"fmt"
)

// InsertAuditLog appends one action record. data_hora is assigned by the
// store. The log is write-only from the application's point of view.
func (db *Database) InsertAuditLog(ctx context.Context, actorID *string, acao string, detalhes string) error {
	_, err := db.Pool.Exec(ctx,
		"INSERT INTO logs (usuario_id, acao, detalhes) VALUES ($1, $2, $3)",
		actorID, acao, detalhes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}
