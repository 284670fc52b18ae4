package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"scriptum/internal/model"
	"scriptum/internal/repository"
)

// foreignKeyViolation is the SQLSTATE raised when a referenced row is missing.
const foreignKeyViolation = "23503"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// splitIDs parses the comma-joined id list produced by string_agg.
func splitIDs(joined string) model.IDSet {
	if joined == "" {
		return model.IDSet{}
	}
	return model.NewIDSet(strings.Split(joined, ",")...)
}

// translate maps driver errors onto repository errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return repository.ErrInvalidReference
	}
	return err
}

func count(ctx context.Context, q querier, query string) (int, error) {
	var total int
	if err := q.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
