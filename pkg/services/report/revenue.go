package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// Analyst computes reporting KPIs over the ledger.
type Analyst struct {
	ledger ledger.Ledger
	now    func() time.Time
}

func NewAnalyst(lg ledger.Ledger) *Analyst {
	return &Analyst{ledger: lg, now: time.Now}
}

// MonthlyRevenue sums the untaxed amounts of posted customer invoices dated
// between the first of the current month and now.
func (a *Analyst) MonthlyRevenue(ctx context.Context) (domain.RevenueSummary, error) {
	now := a.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	zerolog.Ctx(ctx).Info().Time("since", since).Msg("computing monthly revenue")

	invoices, err := a.ledger.ListInvoices(ctx, domain.InvoiceDirectionCustomer, ledger.Query{
		Filters: []ledger.Filter{
			ledger.Eq("move_type", "out_invoice"),
			ledger.Eq("state", "posted"),
			ledger.Gte("date", since),
		},
		Limit: 1000,
	})
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("failed to list posted customer invoices: %w", err)
	}

	total := decimal.Zero
	for _, invoice := range invoices {
		total = total.Add(decimal.NewFromFloat(invoice.AmountUntaxed))
	}

	return domain.RevenueSummary{
		Since:        since,
		Total:        total.InexactFloat64(),
		InvoiceCount: len(invoices),
	}, nil
}
