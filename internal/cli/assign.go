package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var assignTechs []string

// assignCmd represents the assign command
var assignCmd = &cobra.Command{
	Use:   "assign <claim-id>",
	Short: "Assign technicians to a pending claim",
	Long: `Assign one or more technicians to a claim, moving it from Pendiente to
En curso. Re-running with a different set replaces the assignment.

Example:
  claimtrack assign 3F2A9C1B --tech lopez --tech diaz`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)

	assignCmd.Flags().StringArrayVar(&assignTechs, "tech", nil, "technician name (repeatable, required)")
}

func runAssign(cmd *cobra.Command, args []string) error {
	svc, logger, err := buildService()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	claimID := args[0]
	if err := svc.Assign(context.Background(), claimID, assignTechs); err != nil {
		return err
	}
	fmt.Printf("Claim %s assigned to %s\n", claimID, strings.ToUpper(strings.Join(assignTechs, ", ")))
	return nil
}
