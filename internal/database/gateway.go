package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"garmirror/internal/sqlutil"
)

// ErrAbsent is returned by Scalar when the procedure produces no row.
// Single-object lookups treat this as a normal outcome, not a fault.
var ErrAbsent = errors.New("no matching row")

// Gateway executes named stored procedures against the registry replica.
// Each call checks out a dedicated connection and releases it on every
// exit path. The gateway performs no retries and does not interpret
// result contents.
type Gateway struct {
	db *sql.DB
}

// NewGateway creates a Gateway over an open database handle.
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: db}
}

// Query executes a procedure that produces a row set and hands the rows
// to scan. The connection and the rows are released before Query returns.
func (g *Gateway) Query(ctx context.Context, proc string, scan func(*sql.Rows) error, args ...interface{}) error {
	stmt, err := callStatement(proc, len(args))
	if err != nil {
		return err
	}

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", proc, err)
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		return err
	}
	return rows.Err()
}

// Scalar executes a procedure that produces a single value and scans it
// into dest. Returns ErrAbsent when the procedure yields no row.
func (g *Gateway) Scalar(ctx context.Context, proc string, dest interface{}, args ...interface{}) error {
	stmt, err := callStatement(proc, len(args))
	if err != nil {
		return err
	}

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	if err := conn.QueryRowContext(ctx, stmt, args...).Scan(dest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAbsent
		}
		return fmt.Errorf("%s: %w", proc, err)
	}
	return nil
}

// Exec executes a procedure that produces no result set.
func (g *Gateway) Exec(ctx context.Context, proc string, args ...interface{}) error {
	stmt, err := callStatement(proc, len(args))
	if err != nil {
		return err
	}

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("%s: %w", proc, err)
	}
	return nil
}

// callStatement builds a CALL statement for a possibly schema-qualified
// procedure name with the given number of placeholders.
func callStatement(proc string, argc int) (string, error) {
	parts := strings.Split(proc, ".")
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		q, err := sqlutil.QuoteIdentifierSafe(p)
		if err != nil {
			return "", fmt.Errorf("procedure %q: %w", proc, err)
		}
		quoted = append(quoted, q)
	}

	placeholders := make([]string, argc)
	for i := range placeholders {
		placeholders[i] = "?"
	}

	return fmt.Sprintf("CALL %s(%s)", strings.Join(quoted, "."), strings.Join(placeholders, ", ")), nil
}
