package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var hierarchyDivision string

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <guid>",
	Short: "Show the ancestor chain of an object",
	Long: `Hierarchy prints the object's chain of ancestors under the selected
division, from the hierarchy root down to the object itself.

Example:
  garmirror hierarchy 0c5b2444-70a0-4932-980c-b4dc0d3f02b5 --division adm`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchy,
}

func init() {
	hierarchyCmd.Flags().StringVar(&hierarchyDivision, "division", "mun",
		"Hierarchy division (mun or adm)")

	rootCmd.AddCommand(hierarchyCmd)
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	division, err := parseDivisionFlag(hierarchyDivision)
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

	chain, err := store.Hierarchy(ctx, division, args[0])
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		cmd.Printf("No object %s under %s\n", args[0], division)
		return nil
	}

	for i, item := range chain {
		indent := strings.Repeat("  ", i)
		cmd.Printf("%s%s %s  (L%d, %s)\n", indent, item.TypeName, item.Name, item.Level, item.GUID)
	}
	return nil
}
