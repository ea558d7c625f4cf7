package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// CheckVATConsistency flags posted customer invoices that carry a positive
// untaxed amount but no VAT at all, a likely missing tax configuration.
func CheckVATConsistency(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	invoices, err := lg.ListInvoices(ctx, domain.InvoiceDirectionCustomer, ledger.Query{
		Filters: []ledger.Filter{ledger.Eq("state", "posted")},
		Limit:   settings.InvoicePageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list customer invoices: %w", err)
	}

	var issues []domain.Issue
	for _, invoice := range invoices {
		if invoice.AmountUntaxed <= 0 || invoice.AmountTax != 0 {
			continue
		}

		issue := domain.NewIssue(CheckSuspiciousZeroVAT, domain.SeverityWarning,
			fmt.Sprintf("Invoice %s has untaxed amount %.2f but zero VAT, tax configuration may be missing",
				invoice.Name, invoice.AmountUntaxed))
		issue.EntityType = "account.move"
		issue.EntityID = invoice.ID
		issue.EntityName = invoice.Name
		issue.Details["amount_untaxed"] = invoice.AmountUntaxed
		issue.Details["amount_tax"] = invoice.AmountTax
		issues = append(issues, issue)
	}
	return issues, nil
}

// CheckInvoiceReceiptMismatches flags vendor invoices whose unpaid residual
// exceeds the invoice total. That combination cannot come from normal payment
// flows and points at inconsistent data.
func CheckInvoiceReceiptMismatches(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	invoices, err := lg.ListInvoices(ctx, domain.InvoiceDirectionVendor, ledger.Query{
		Limit: settings.InvoicePageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor invoices: %w", err)
	}

	var issues []domain.Issue
	for _, invoice := range invoices {
		if invoice.AmountResidual <= invoice.AmountTotal {
			continue
		}

		issue := domain.NewIssue(CheckInvoiceReceiptMismatch, domain.SeverityWarning,
			fmt.Sprintf("Invoice %s has residual amount (%.2f) greater than total amount (%.2f)",
				invoice.Name, invoice.AmountResidual, invoice.AmountTotal))
		issue.EntityType = "account.move"
		issue.EntityID = invoice.ID
		issue.EntityName = invoice.Name
		issue.Details["invoice_amount"] = invoice.AmountTotal
		issue.Details["residual_amount"] = invoice.AmountResidual
		issue.Details["partner_id"] = invoice.PartnerID
		issues = append(issues, issue)
	}
	return issues, nil
}

// CheckPOInvoiceMismatches matches recent vendor invoices against their
// originating purchase order by exact name equality on the origin reference
// and flags invoices that exceed the ordered amount beyond tolerance.
//
// Invoices referencing several POs at once (comma in the origin) are
// ambiguous and skipped; invoices without a matching PO are assumed to be
// manual, non-PO purchases and skipped silently.
func CheckPOInvoiceMismatches(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	logger := zerolog.Ctx(ctx)

	since := settings.Now().AddDate(0, 0, -settings.POMatchWindowDays)
	invoices, err := lg.ListInvoices(ctx, domain.InvoiceDirectionVendor, ledger.Query{
		Filters: []ledger.Filter{
			ledger.Gte("date", since),
			ledger.In("state", []string{"draft", "posted"}),
		},
		Limit: settings.InvoicePageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent vendor invoices: %w", err)
	}

	tolerance := decimal.NewFromFloat(settings.POAmountTolerance)
	pctThreshold := decimal.NewFromFloat(settings.PODeviationPctThreshold)
	relThreshold := decimal.NewFromFloat(settings.PORelativeThreshold)

	var issues []domain.Issue
	for _, invoice := range invoices {
		origin := strings.TrimSpace(invoice.Origin)
		if origin == "" {
			continue
		}
		if strings.Contains(origin, ",") {
			logger.Info().
				Str("invoice", invoice.Name).
				Str("origin", origin).
				Msg("invoice references multiple purchase orders, skipping")
			continue
		}
		if invoice.AmountTotal == 0 {
			continue
		}

		orders, err := lg.ListPurchaseOrders(ctx, ledger.Query{
			Filters: []ledger.Filter{ledger.Eq("name", origin)},
			Limit:   1,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to look up purchase order %q: %w", origin, err)
		}
		if len(orders) == 0 {
			// No PO with that name; likely a manual purchase invoice.
			continue
		}

		po := orders[0]
		if po.AmountTotal == 0 {
			continue
		}

		invoiceTotal := decimal.NewFromFloat(invoice.AmountTotal)
		poTotal := decimal.NewFromFloat(po.AmountTotal)
		difference := invoiceTotal.Sub(poTotal)
		if difference.LessThanOrEqual(tolerance) {
			continue
		}

		deviationPct := difference.Div(poTotal).Mul(decimal.NewFromInt(100))

		severity := domain.SeverityWarning
		if deviationPct.GreaterThan(pctThreshold) || difference.GreaterThan(poTotal.Mul(relThreshold)) {
			severity = domain.SeverityError
		}

		issue := domain.NewIssue(CheckPOInvoiceMismatch, severity,
			fmt.Sprintf("Invoice %s total (%s) exceeds purchase order %s total (%s) by %s (%s%%)",
				invoice.Name, invoiceTotal.StringFixed(2), po.Name, poTotal.StringFixed(2),
				difference.StringFixed(2), deviationPct.StringFixed(1)))
		issue.EntityType = "account.move"
		issue.EntityID = invoice.ID
		issue.EntityName = invoice.Name
		issue.Details["po_name"] = po.Name
		issue.Details["po_total"] = po.AmountTotal
		issue.Details["invoice_total"] = invoice.AmountTotal
		issue.Details["difference"] = difference.InexactFloat64()
		issue.Details["deviation_pct"] = deviationPct.InexactFloat64()
		issues = append(issues, issue)
	}
	return issues, nil
}
