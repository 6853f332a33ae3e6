package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ravazquez/claimtrack/internal/lifecycle"
	"github.com/ravazquez/claimtrack/internal/model"
)

var (
	listStatus string
	listSector string
	listClient string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List claims from the current table snapshot",
	Long: `List claims, newest first, optionally filtered by status, sector or
client number.

Example:
  claimtrack list
  claimtrack list --status "En curso" --sector 5
  claimtrack list --client 4821`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (Pendiente, En curso, Resuelto, Desconexión)")
	listCmd.Flags().StringVar(&listSector, "sector", "", "filter by sector")
	listCmd.Flags().StringVar(&listClient, "client", "", "filter by client number")
}

func runList(cmd *cobra.Command, args []string) error {
	var filter lifecycle.Filter
	if listStatus != "" {
		st, ok := model.ParseStatus(listStatus)
		if !ok {
			return fmt.Errorf("unknown status %q", listStatus)
		}
		filter.Status = st
	}
	filter.Sector = listSector
	filter.ClientNumber = listClient

	svc, logger, err := buildService()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	claims, err := svc.List(context.Background(), filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tSECTOR\tSTATUS\tCATEGORY\tTECHNICIAN\tCREATED")
	for _, c := range claims {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.ClientNumber, c.Sector, c.Status, c.Category,
			model.JoinTechnicians(c.Technicians), model.FormatTime(c.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d claims\n", len(claims))
	return nil
}
