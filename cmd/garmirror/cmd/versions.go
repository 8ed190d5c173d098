package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"garmirror/internal/gar"
)

var versionsSince string

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List published GAR dump versions",
	Long: `Versions queries the public version-discovery service and lists the
dump versions published on or after the cutoff date, with their full
and delta download URLs.

Example:
  garmirror versions --since 2026-01-01`,
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().StringVar(&versionsSince, "since", "",
		"Cutoff date (YYYY-MM-DD, default 30 days ago)")

	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	since := time.Now().AddDate(0, 0, -30)
	if versionsSince != "" {
		since, err = time.Parse("2006-01-02", versionsSince)
		if err != nil {
			return fmt.Errorf("invalid --since date: %w", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	client := gar.NewClient(cfg.Source.ServiceURL)
	files, err := client.GetAllDownloadFileInfo(ctx, since)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		cmd.Println("No versions published since the cutoff")
		return nil
	}
	for _, f := range files {
		cmd.Printf("%s  (version %d)\n", f.Date, f.VersionID)
		if f.GarXMLFullURL != "" {
			cmd.Printf("  full:  %s\n", f.GarXMLFullURL)
		}
		if f.GarXMLDeltaURL != "" {
			cmd.Printf("  delta: %s\n", f.GarXMLDeltaURL)
		}
	}
	return nil
}
