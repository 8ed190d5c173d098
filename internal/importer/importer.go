// Package importer brings the registry replica up to date against a GAR
// distribution, one table at a time.
package importer

import (
	"context"
	"fmt"
	"time"

	"garmirror/internal/gar"
	"garmirror/internal/graph"
	"garmirror/internal/logger"
	"garmirror/internal/registry"
)

// Options control one import run.
type Options struct {
	// OnlyEmpty restricts the run to tables that currently hold no rows.
	OnlyEmpty bool
	// Shrink runs a compaction pass after all tables are processed.
	Shrink bool
}

// Progress is a live status update emitted while a table loads.
// Max is zero when the total row count is unknown.
type Progress struct {
	Table  string
	Status string
	Value  int64
	Max    int64
}

// TableResult is the terminal status of one table's attempt. Exactly one
// is emitted per candidate table, after its progress updates.
type TableResult struct {
	Table  string
	Status string
}

// TableStore is the slice of the registry store the pipeline needs.
type TableStore interface {
	TablesInfo(ctx context.Context) ([]registry.TableInfo, error)
	SetLastImport(ctx context.Context, table string, at time.Time) error
	Shrink(ctx context.Context) error
}

// Loader bulk-replaces one table's rows from the distribution files,
// reporting loaded row counts through progress.
type Loader interface {
	Load(ctx context.Context, table string, progress func(loaded int64)) (int64, error)
}

// Importer orchestrates one import run. Create one per run; the event
// channels close when Run returns.
type Importer struct {
	store    TableStore
	loader   Loader
	log      *logger.Logger
	catalog  []gar.Table
	now      func() time.Time
	progress chan Progress
	results  chan TableResult
}

// Option configures an Importer.
type Option func(*Importer)

// WithCatalog overrides the table catalog. Used by tests.
func WithCatalog(tables []gar.Table) Option {
	return func(i *Importer) { i.catalog = tables }
}

// WithClock overrides the import timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) { i.now = now }
}

// New creates an Importer over the given store and loader.
func New(store TableStore, loader Loader, log *logger.Logger, opts ...Option) *Importer {
	i := &Importer{
		store:   store,
		loader:  loader,
		log:     log,
		catalog: gar.Catalog(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.progress = make(chan Progress, 64)
	i.results = make(chan TableResult, len(i.catalog)+1)
	return i
}

// Progress returns the live progress stream. Consumers drain it
// concurrently with Run; the pipeline never blocks on a slow consumer.
func (i *Importer) Progress() <-chan Progress {
	return i.progress
}

// Results returns the per-table terminal status stream, emitted in the
// order tables finish.
func (i *Importer) Results() <-chan TableResult {
	return i.results
}

// Run executes the import. Per-table failures are recorded in the result
// and do not abort the run; candidate enumeration and compaction
// failures do. Cancellation is honored between tables, so an
// interrupted run never leaves a table in a state unsafe to retry.
func (i *Importer) Run(ctx context.Context, opts Options) (*Result, error) {
	defer close(i.progress)
	defer close(i.results)

	result := NewResult()

	infos, err := i.store.TablesInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate tables: %w", err)
	}
	byName := make(map[string]registry.TableInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	g, err := graph.FromCatalog(i.catalog)
	if err != nil {
		return nil, fmt.Errorf("build dependency graph: %w", err)
	}
	order, err := g.ImportOrder()
	if err != nil {
		return nil, err
	}

	i.log.Infow("Starting import run",
		"only_empty", opts.OnlyEmpty,
		"shrink", opts.Shrink,
		"order", order,
	)

	for _, table := range order {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		info, tracked := byName[table]
		if !tracked {
			i.log.Warnw("Table not tracked in replica, skipping", "table", table)
			continue
		}
		if !info.CanImport {
			// Disabled tables are not candidates and stay out of the
			// result map.
			continue
		}
		if opts.OnlyEmpty && info.RowCount > 0 {
			continue
		}

		i.importTable(ctx, table, result)
	}

	if opts.Shrink {
		i.emitProgress(Progress{Status: "shrinking database"})
		if err := i.store.Shrink(ctx); err != nil {
			return result, fmt.Errorf("shrink database: %w", err)
		}
	}

	i.log.Infow("Import run finished", "tables", result.Len())
	return result, nil
}

// importTable processes one candidate table. Failures are converted into
// the table's terminal status; LastImport stays untouched on failure.
func (i *Importer) importTable(ctx context.Context, table string, result *Result) {
	log := i.log.WithTable(table)
	log.Info("Importing table")
	i.emitProgress(Progress{Table: table, Status: fmt.Sprintf("loading %s", table)})

	started := i.now()
	rows, err := i.loader.Load(ctx, table, func(loaded int64) {
		i.emitProgress(Progress{Table: table, Value: loaded})
	})
	if err == nil {
		err = i.store.SetLastImport(ctx, table, i.now())
	}

	status := StatusImported
	if err != nil {
		status = fmt.Sprintf("error: %v", err)
		log.Errorw("Table import failed", "error", err)
	} else {
		log.Infow("Table imported",
			"rows", rows,
			"duration", i.now().Sub(started),
		)
	}

	result.add(table, status)
	i.emitResult(TableResult{Table: table, Status: status})
}

// emitProgress sends a progress event without ever blocking the run.
func (i *Importer) emitProgress(p Progress) {
	select {
	case i.progress <- p:
	default:
	}
}

// emitResult delivers a terminal event. The channel is sized for the
// whole catalog, so the send cannot block.
func (i *Importer) emitResult(r TableResult) {
	i.results <- r
}
