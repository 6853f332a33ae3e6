package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravazquez/claimtrack/internal/lifecycle"
)

var (
	newClient      string
	newName        string
	newAddress     string
	newPhone       string
	newSector      string
	newCategory    string
	newDescription string
	newSeal        string
	newHandledBy   string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Register a new claim",
	Long: `Register a new claim for a client. Unknown clients get a client row
created; known clients get their contact fields brought up to date.

Ordinary categories start in Pendiente. The category "Desconexion a Pedido"
starts directly in Desconexión.

Example:
  claimtrack new --client 4821 --name "PEREZ JUAN" --address "CALLE 9 N 120" \
    --sector 5 --category "Sin suministro" --handled-by mgomez`,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&newClient, "client", "", "client number (required)")
	newCmd.Flags().StringVar(&newName, "name", "", "client name (required)")
	newCmd.Flags().StringVar(&newAddress, "address", "", "service address (required)")
	newCmd.Flags().StringVar(&newPhone, "phone", "", "contact phone")
	newCmd.Flags().StringVar(&newSector, "sector", "", "sector number 1-17 (required)")
	newCmd.Flags().StringVar(&newCategory, "category", "", "claim category (required)")
	newCmd.Flags().StringVar(&newDescription, "description", "", "free-text details")
	newCmd.Flags().StringVar(&newSeal, "seal", "", "seal/precinct number")
	newCmd.Flags().StringVar(&newHandledBy, "handled-by", "", "operator registering the claim (required)")
}

func runNew(cmd *cobra.Command, args []string) error {
	svc, logger, err := buildService()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	claim, err := svc.Create(context.Background(), lifecycle.NewClaimInput{
		ClientNumber: newClient,
		Name:         newName,
		Address:      newAddress,
		Phone:        newPhone,
		Sector:       newSector,
		Category:     newCategory,
		Description:  newDescription,
		Seal:         newSeal,
		HandledBy:    newHandledBy,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Claim %s created for client %s (%s)\n", claim.ID, claim.ClientNumber, claim.Status)
	return nil
}
