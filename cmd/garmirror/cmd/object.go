package cmd

import (
	"github.com/spf13/cobra"
)

var (
	objectDivision  string
	objectChildren  bool
	objectStatement bool
)

var objectCmd = &cobra.Command{
	Use:   "object <guid>",
	Short: "Look up one registry object by GUID",
	Long: `Object shows a single registry object. With --children the direct
children are listed as well; with --statement the link to the official
statement document is printed.

Example:
  garmirror object 0c5b2444-70a0-4932-980c-b4dc0d3f02b5 --children`,
	Args: cobra.ExactArgs(1),
	RunE: runObject,
}

func init() {
	objectCmd.Flags().StringVar(&objectDivision, "division", "mun",
		"Hierarchy division (mun or adm)")
	objectCmd.Flags().BoolVar(&objectChildren, "children", false,
		"List the object's direct children")
	objectCmd.Flags().BoolVar(&objectStatement, "statement", false,
		"Print the official statement document URL")

	rootCmd.AddCommand(objectCmd)
}

func runObject(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	division, err := parseDivisionFlag(objectDivision)
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

	guid := args[0]
	obj, err := store.Object(ctx, division, guid)
	if err != nil {
		return err
	}
	if obj == nil {
		cmd.Printf("No object %s under %s\n", guid, division)
		return nil
	}

	cmd.Printf("GUID:     %s\n", obj.GUID)
	cmd.Printf("ID:       %d\n", obj.ID)
	cmd.Printf("Level:    %d\n", obj.Level)
	cmd.Printf("Name:     %s %s\n", obj.TypeName, obj.Name)
	cmd.Printf("Address:  %s\n", obj.AddressFull)
	if obj.ParentGUID.Valid {
		cmd.Printf("Parent:   %s\n", obj.ParentGUID.String)
	}

	if objectStatement {
		url, err := store.StatementURL(ctx, division, guid)
		if err != nil {
			return err
		}
		cmd.Printf("Statement: %s\n", url)
	}

	if objectChildren {
		children, err := store.Children(ctx, guid)
		if err != nil {
			return err
		}
		cmd.Printf("\nChildren (%d):\n", len(children))
		for _, c := range children {
			cmd.Printf("  %s  L%-2d  %s %s\n", c.GUID, c.Level, c.TypeName, c.Name)
		}
	}
	return nil
}
