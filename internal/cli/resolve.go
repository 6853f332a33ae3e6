package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravazquez/claimtrack/internal/lifecycle"
)

var (
	resolveSeal string
	resolveNote string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <claim-id>",
	Short: "Mark a claim as resolved",
	Long: `Mark an in-progress claim (or an active disconnection) as Resuelto,
stamping the resolution time. A changed seal number is propagated to the
client row in the same transition.

Example:
  claimtrack resolve 3F2A9C1B
  claimtrack resolve 3F2A9C1B --seal 88412 --note "meter replaced"`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveSeal, "seal", "", "new seal/precinct number, if it changed")
	resolveCmd.Flags().StringVar(&resolveNote, "note", "", "closing annotation")
}

func runResolve(cmd *cobra.Command, args []string) error {
	svc, logger, err := buildService()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	claimID := args[0]
	err = svc.Resolve(context.Background(), claimID, lifecycle.ResolveInput{
		Seal:       resolveSeal,
		Annotation: resolveNote,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Claim %s resolved\n", claimID)
	return nil
}
