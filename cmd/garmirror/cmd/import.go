package cmd

import (
	"sync"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"garmirror/internal/gar"
	"garmirror/internal/importer"
)

var (
	importOnlyEmpty bool
	importShrink    bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import GAR distribution files into the replica",
	Long: `Import loads extracted GAR XML files into the replica tables.

Tables are processed one at a time in dependency order (referenced
tables first). A failing table is reported and skipped; the run
continues with the next table. Tables disabled by the operator are
never touched.

Example:
  garmirror import --config garmirror.yaml --only-empty --shrink`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importOnlyEmpty, "only-empty", false,
		"Import only tables that currently hold no rows")
	importCmd.Flags().BoolVar(&importShrink, "shrink", false,
		"Compact the database after the import")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signalContext()
	defer cancel()

	store, manager, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer manager.Close()

	source := gar.NewFileSource(cfg.Source.XMLDir, cfg.Source.Region)
	loader, err := importer.NewXMLLoader(manager.DB, source, cfg.Import.BatchSize, log)
	if err != nil {
		return err
	}

	opts := importer.Options{
		OnlyEmpty: importOnlyEmpty || cfg.Import.OnlyEmpty,
		Shrink:    importShrink || cfg.Import.Shrink,
	}

	imp := importer.New(store, loader, log)

	// Drain both event streams while the run is in flight so the
	// operator sees per-table outcomes as they happen.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for p := range imp.Progress() {
			if p.Status != "" {
				cmd.Printf("  %s\n", p.Status)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for r := range imp.Results() {
			cmd.Printf("  %-20s %s\n", r.Table, colorStatus(r.Status))
		}
	}()

	result, err := imp.Run(ctx, opts)
	wg.Wait()
	if err != nil {
		return err
	}

	cmd.Printf("\nProcessed %d table(s)\n", result.Len())
	return nil
}

// colorStatus renders a terminal status string for the console.
func colorStatus(status string) string {
	if status == importer.StatusImported {
		return color.Green.Sprint(status)
	}
	return color.Red.Sprint(status)
}
