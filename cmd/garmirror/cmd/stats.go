package cmd

import (
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate registry statistics",
	Long: `Stats prints the named aggregate metrics the replica tracks, such as
total object count and database size.

Example:
  garmirror stats`,
	RunE: runStats,
}

var levelsFlag bool

func init() {
	statsCmd.Flags().BoolVar(&levelsFlag, "levels", false,
		"Also list the hierarchy level classification")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := store.Statistics(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("%-30s %s\n", name, stats[name])
	}

	if levelsFlag {
		levels, err := store.Levels(ctx)
		if err != nil {
			return err
		}
		cmd.Println("\nLevels:")
		for _, l := range levels {
			cmd.Printf("  %2d  %-12s %s\n", l.ID, l.Short, l.Name)
		}
	}
	return nil
}
