package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// revertCmd represents the revert command
var revertCmd = &cobra.Command{
	Use:   "revert <claim-id>",
	Short: "Return an in-progress claim to pending",
	Long: `Return an En curso claim to Pendiente, clearing its technician set and
resolution timestamp. All other fields are left untouched.

Example:
  claimtrack revert 3F2A9C1B`,
	Args: cobra.ExactArgs(1),
	RunE: runRevert,
}

func init() {
	rootCmd.AddCommand(revertCmd)
}

func runRevert(cmd *cobra.Command, args []string) error {
	svc, logger, err := buildService()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	claimID := args[0]
	if err := svc.Revert(context.Background(), claimID); err != nil {
		return err
	}
	fmt.Printf("Claim %s returned to pending\n", claimID)
	return nil
}
