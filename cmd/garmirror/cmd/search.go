package cmd

import (
	"github.com/spf13/cobra"
)

var (
	searchDivision string
	searchLevel    int
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the registry by address text or GUID",
	Long: `Search finds registry objects by normalized full-address text. When
the query is a canonical 36-character GUID, the lookup switches to the
identifier index instead.

Example:
  garmirror search "тверская" --division mun --level 8 --limit 20
  garmirror search 0c5b2444-70a0-4932-980c-b4dc0d3f02b5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchDivision, "division", "mun",
		"Hierarchy division (mun or adm)")
	searchCmd.Flags().IntVar(&searchLevel, "level", 0,
		"Restrict results to one hierarchy level")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0,
		"Maximum number of rows to return (0 = unbounded)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	division, err := parseDivisionFlag(searchDivision)
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

	var level, limit *int
	if searchLevel > 0 {
		level = &searchLevel
	}
	if searchLimit > 0 {
		limit = &searchLimit
	}

	objects, err := store.Search(ctx, division, args[0], level, limit)
	if err != nil {
		return err
	}

	if len(objects) == 0 {
		cmd.Println("No matches")
		return nil
	}
	for _, o := range objects {
		cmd.Printf("%s  L%-2d  %s\n", o.GUID, o.Level, o.AddressFull)
	}
	return nil
}
