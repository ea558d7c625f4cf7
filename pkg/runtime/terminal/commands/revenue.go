package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/louisslnn/ODOO-Project/pkg/services/report"
)

type RevenueCmd struct {
	profilePath string
	output      io.Writer
}

func NewRevenueCmd(output io.Writer) *cobra.Command {
	rc := &RevenueCmd{output: output}
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Print the untaxed revenue of the current month",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the Odoo connection profile")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (rc *RevenueCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, _, err := connect(ctx, rc.profilePath)
	if err != nil {
		return err
	}

	revenue, err := report.NewAnalyst(client).MonthlyRevenue(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute monthly revenue: %w", err)
	}

	fmt.Fprintf(rc.output, "Monthly revenue (untaxed) since %s: %.2f across %d invoice(s)\n",
		revenue.Since.Format("2006-01-02"), revenue.Total, revenue.InvoiceCount)
	return nil
}
