package audit

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// Check name identifiers, also used as follow-up task labels.
const (
	CheckZeroAmountEntry        = "zero_amount_entry"
	CheckUnbalancedJournal      = "unbalanced_journal"
	CheckDeprecatedAccountUsage = "deprecated_account_usage"
	CheckNegativeStock          = "negative_stock"
	CheckZeroCostItem           = "zero_cost_item"
	CheckSuspiciousZeroVAT      = "suspicious_zero_vat"
	CheckInvoiceReceiptMismatch = "invoice_receipt_mismatch"
	CheckPOInvoiceMismatch      = "po_invoice_mismatch"
)

// CheckZeroAmountEntries flags journal lines of the current month where both
// debit and credit are zero.
func CheckZeroAmountEntries(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	lines, err := lg.ListJournalLines(ctx, ledger.Query{
		Filters: []ledger.Filter{ledger.Gte("date", settings.startOfMonth())},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal lines: %w", err)
	}

	var issues []domain.Issue
	for _, line := range lines {
		if line.Debit != 0 || line.Credit != 0 {
			continue
		}

		issue := domain.NewIssue(CheckZeroAmountEntry, domain.SeverityWarning,
			"Entry line has zero amount (debit=0, credit=0)")
		issue.EntityType = "account.move.line"
		issue.EntityID = line.ID
		issue.EntityName = line.Name
		issue.Details["move_id"] = line.MoveID
		issue.Details["account_id"] = line.AccountID
		issue.Details["date"] = line.Date.Format("2006-01-02")
		issues = append(issues, issue)
	}
	return issues, nil
}

// CheckUnbalancedJournals verifies that posted journal entries balance:
// the debit and credit totals of an entry's lines may differ by at most the
// configured tolerance.
func CheckUnbalancedJournals(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	entries, err := lg.ListJournalEntries(ctx, ledger.Query{
		Filters: []ledger.Filter{ledger.Eq("state", "posted")},
		Limit:   settings.EntryPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	entryIDs := make([]int64, 0, len(entries))
	entryNames := make(map[int64]string, len(entries))
	for _, entry := range entries {
		entryIDs = append(entryIDs, entry.ID)
		entryNames[entry.ID] = entry.Name
	}

	lines, err := lg.ListJournalLines(ctx, ledger.Query{
		Filters: []ledger.Filter{ledger.In("move_id", entryIDs)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal lines: %w", err)
	}

	type balance struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	balances := make(map[int64]*balance)
	order := make([]int64, 0, len(entries))
	for _, line := range lines {
		if line.MoveID == 0 {
			continue
		}
		b, ok := balances[line.MoveID]
		if !ok {
			b = &balance{}
			balances[line.MoveID] = b
			order = append(order, line.MoveID)
		}
		b.debit = b.debit.Add(decimal.NewFromFloat(line.Debit))
		b.credit = b.credit.Add(decimal.NewFromFloat(line.Credit))
	}

	tolerance := decimal.NewFromFloat(settings.BalanceTolerance)

	var issues []domain.Issue
	for _, moveID := range order {
		b := balances[moveID]
		diff := b.debit.Sub(b.credit).Abs()
		if diff.LessThanOrEqual(tolerance) {
			continue
		}

		name := entryNames[moveID]
		if name == "" {
			name = fmt.Sprintf("Move #%d", moveID)
		}

		issue := domain.NewIssue(CheckUnbalancedJournal, domain.SeverityError,
			fmt.Sprintf("Journal entry is unbalanced: Total Debit=%s, Total Credit=%s, Difference=%s",
				b.debit.StringFixed(2), b.credit.StringFixed(2), diff.StringFixed(2)))
		issue.EntityType = "account.move"
		issue.EntityID = moveID
		issue.EntityName = name
		issue.Details["total_debit"] = b.debit.InexactFloat64()
		issue.Details["total_credit"] = b.credit.InexactFloat64()
		issue.Details["difference"] = diff.InexactFloat64()
		issues = append(issues, issue)
	}
	return issues, nil
}

// CheckDeprecatedAccounts flags current-month journal lines booked on
// accounts that are marked deprecated in the chart of accounts.
func CheckDeprecatedAccounts(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	accounts, err := lg.ListAccounts(ctx, ledger.Query{
		Filters: []ledger.Filter{ledger.Eq("deprecated", true)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deprecated accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	accountIDs := make([]int64, 0, len(accounts))
	accountNames := make(map[int64]string, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ID)
		accountNames[account.ID] = account.Name
	}

	lines, err := lg.ListJournalLines(ctx, ledger.Query{
		Filters: []ledger.Filter{
			ledger.In("account_id", accountIDs),
			ledger.Gte("date", settings.startOfMonth()),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list lines on deprecated accounts: %w", err)
	}

	var issues []domain.Issue
	for _, line := range lines {
		name, ok := accountNames[line.AccountID]
		if !ok {
			continue
		}

		issue := domain.NewIssue(CheckDeprecatedAccountUsage, domain.SeverityWarning,
			fmt.Sprintf("Entry found on deprecated account: %s", name))
		issue.EntityType = "account.move.line"
		issue.EntityID = line.ID
		issue.EntityName = line.Name
		issue.Details["account_id"] = line.AccountID
		issue.Details["account_name"] = name
		issue.Details["move_id"] = line.MoveID
		issues = append(issues, issue)
	}
	return issues, nil
}
