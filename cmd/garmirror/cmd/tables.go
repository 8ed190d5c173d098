package cmd

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"garmirror/internal/registry"
)

var (
	tablesEnable  []string
	tablesDisable []string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show tracked tables and their import metadata",
	Long: `Tables lists every tracked replica table with its row count, size,
last successful import and import eligibility. The --enable and
--disable flags toggle a table's eligibility for the next run.

Example:
  garmirror tables
  garmirror tables --disable APARTMENTS --disable HOUSES`,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().StringSliceVar(&tablesEnable, "enable", nil,
		"Enable import for the named table (repeatable)")
	tablesCmd.Flags().StringSliceVar(&tablesDisable, "disable", nil,
		"Disable import for the named table (repeatable)")

	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	store, manager, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer manager.Close()

	for _, table := range tablesEnable {
		if err := store.SetCanImport(ctx, table, true); err != nil {
			return fmt.Errorf("enable %s: %w", table, err)
		}
	}
	for _, table := range tablesDisable {
		if err := store.SetCanImport(ctx, table, false); err != nil {
			return fmt.Errorf("disable %s: %w", table, err)
		}
	}

	infos, err := store.TablesInfo(ctx)
	if err != nil {
		return err
	}

	renderTables(cmd, infos)
	return nil
}

// renderTables prints the table metadata as an aligned console table.
func renderTables(cmd *cobra.Command, infos []registry.TableInfo) {
	headers := []string{"TABLE", "ROWS", "SIZE MB", "LAST IMPORT", "IMPORT"}
	rows := make([][]string, 0, len(infos))
	for _, t := range infos {
		last := "never"
		if t.LastImport != nil {
			last = t.LastImport.Format("2006-01-02")
		}
		enabled := color.Green.Sprint("enabled")
		if !t.CanImport {
			enabled = color.Gray.Sprint("disabled")
		}
		rows = append(rows, []string{
			t.Name,
			fmt.Sprintf("%d", t.RowCount),
			fmt.Sprintf("%.2f", t.TotalMB),
			last,
			enabled,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := cellWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow(cmd, headers, widths)
	for _, row := range rows {
		printRow(cmd, row, widths)
	}
}

// cellWidth measures the display width of a cell, ignoring color codes.
func cellWidth(s string) int {
	return runewidth.StringWidth(color.ClearCode(s))
}

func printRow(cmd *cobra.Command, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - cellWidth(cell)
		if pad < 0 {
			pad = 0
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	cmd.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
}
