package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravazquez/claimtrack/internal/model"
)

var (
	purgeDryRun bool
	purgeYes    bool
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete resolved claims past the retention window",
	Long: `Delete resolved claims whose resolution timestamp is more than the
retention window old (30 days by default). The deletion is permanent, so the
command requires either --dry-run or --yes.

Example:
  claimtrack purge --dry-run
  claimtrack purge --yes`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().BoolVar(&purgeDryRun, "dry-run", false, "list eligible claims without deleting")
	purgeCmd.Flags().BoolVar(&purgeYes, "yes", false, "confirm the permanent deletion")
}

func runPurge(cmd *cobra.Command, args []string) error {
	if !purgeDryRun && !purgeYes {
		return fmt.Errorf("purge is permanent: pass --dry-run to preview or --yes to confirm")
	}

	svc, logger, err := buildService()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	eligible, err := svc.Purge(context.Background(), purgeDryRun)
	if err != nil {
		return err
	}

	for _, c := range eligible {
		fmt.Printf("%s  client %s  resolved %s\n", c.ID, c.ClientNumber, model.FormatTime(c.ResolvedAt))
	}
	if purgeDryRun {
		fmt.Printf("%d claims eligible for deletion\n", len(eligible))
	} else {
		fmt.Printf("%d claims deleted\n", len(eligible))
	}
	return nil
}
