package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"garmirror/internal/gar"
	"garmirror/internal/logger"
	"garmirror/internal/sqlutil"
)

// XMLLoader bulk-replaces table contents from extracted GAR XML files.
// Each load truncates the table first, so a failed or repeated load is
// safe to retry.
type XMLLoader struct {
	db        *sql.DB
	source    *gar.FileSource
	batchSize int
	log       *logger.Logger
}

// NewXMLLoader creates a loader over the database and file source.
func NewXMLLoader(db *sql.DB, source *gar.FileSource, batchSize int, log *logger.Logger) (*XMLLoader, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if source == nil {
		return nil, fmt.Errorf("file source is nil")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	return &XMLLoader{
		db:        db,
		source:    source,
		batchSize: batchSize,
		log:       log,
	}, nil
}

// Load implements Loader. It streams every source file of the table
// into batched INSERTs and returns the total row count.
func (l *XMLLoader) Load(ctx context.Context, table string, progress func(loaded int64)) (int64, error) {
	desc, ok := gar.Lookup(table)
	if !ok {
		return 0, fmt.Errorf("unknown table %s", table)
	}

	files, err := l.source.Files(desc)
	if err != nil {
		return 0, err
	}

	quoted, err := sqlutil.QuoteIdentifierSafe(desc.Name)
	if err != nil {
		return 0, err
	}
	if _, err := l.db.ExecContext(ctx, "TRUNCATE TABLE "+quoted); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", desc.Name, err)
	}

	var total int64
	for _, path := range files {
		l.log.WithTable(table).Debugw("Loading file", "path", path)
		n, err := l.loadFile(ctx, desc, path, total, progress)
		total += n
		if err != nil {
			return total, fmt.Errorf("%s: %w", path, err)
		}
	}
	return total, nil
}

// loadFile streams one XML file into the table.
func (l *XMLLoader) loadFile(ctx context.Context, desc gar.Table, path string, already int64, progress func(loaded int64)) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := gar.NewDecoder(f, desc)

	var (
		n     int64
		batch [][]interface{}
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.insertBatch(ctx, desc, batch); err != nil {
			return err
		}
		batch = batch[:0]
		progress(already + n)
		return nil
	}

	for {
		row, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("parse: %w", err)
		}

		batch = append(batch, row)
		n++
		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	if err := flush(); err != nil {
		return n, err
	}
	return n, nil
}

// insertBatch writes one multi-row INSERT.
func (l *XMLLoader) insertBatch(ctx context.Context, desc gar.Table, batch [][]interface{}) error {
	stmt, err := insertStatement(desc, len(batch))
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, len(batch)*len(desc.Columns))
	for _, row := range batch {
		args = append(args, row...)
	}

	if _, err := l.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", desc.Name, err)
	}
	return nil
}

// insertStatement builds a multi-row INSERT for the table.
func insertStatement(desc gar.Table, rows int) (string, error) {
	table, err := sqlutil.QuoteIdentifierSafe(desc.Name)
	if err != nil {
		return "", err
	}

	cols := make([]string, len(desc.Columns))
	for i, c := range desc.Columns {
		// DESC is a reserved word in MySQL and a real GAR column.
		cols[i] = sqlutil.QuoteIdentifier(c)
	}

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(desc.Columns)), ", ") + ")"
	values := make([]string, rows)
	for i := range values {
		values[i] = placeholders
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table,
		strings.Join(cols, ", "),
		strings.Join(values, ", "),
	), nil
}
