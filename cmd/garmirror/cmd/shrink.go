package cmd

import (
	"github.com/spf13/cobra"
)

var shrinkCmd = &cobra.Command{
	Use:   "shrink",
	Short: "Compact the replica database",
	Long: `Shrink runs the compaction pass normally performed at the end of an
import run. Useful after dropping or re-importing large tables.

Example:
  garmirror shrink`,
	RunE: runShrink,
}

func init() {
	rootCmd.AddCommand(shrinkCmd)
}

func runShrink(cmd *cobra.Command, args []string) error {
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

	if err := store.Shrink(ctx); err != nil {
		return err
	}
	cmd.Println("Database compacted")
	return nil
}
