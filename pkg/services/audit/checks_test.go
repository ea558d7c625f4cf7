package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// MockLedger is a mock implementation of ledger.Ledger for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListJournalEntries(ctx context.Context, q ledger.Query) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedger) ListJournalLines(ctx context.Context, q ledger.Query) ([]domain.JournalLine, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockLedger) ListAccounts(ctx context.Context, q ledger.Query) ([]domain.Account, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedger) ListInvoices(ctx context.Context, direction domain.InvoiceDirection, q ledger.Query) ([]domain.Invoice, error) {
	args := m.Called(ctx, direction, q)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockLedger) ListProducts(ctx context.Context, q ledger.Query) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockLedger) ListPurchaseOrders(ctx context.Context, q ledger.Query) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.PurchaseOrder), args.Error(1)
}

func testSettings() Settings {
	settings := DefaultSettings()
	settings.Now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return settings
}

func TestCheckZeroAmountEntries(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	t.Run("one warning per zero-amount line", func(t *testing.T) {
		mockLedger := new(MockLedger)
		lines := []domain.JournalLine{
			{ID: 1, Name: "line-1", MoveID: 10, AccountID: 100, Debit: 0, Credit: 0,
				Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Name: "line-2", MoveID: 10, AccountID: 101, Debit: 100, Credit: 0},
			{ID: 3, Name: "line-3", MoveID: 11, AccountID: 100, Debit: 0, Credit: 0},
		}
		mockLedger.On("ListJournalLines", ctx, mock.AnythingOfType("ledger.Query")).Return(lines, nil)

		issues, err := CheckZeroAmountEntries(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Len(t, issues, 2)
		for _, issue := range issues {
			assert.Equal(t, CheckZeroAmountEntry, issue.CheckName)
			assert.Equal(t, domain.SeverityWarning, issue.Severity)
			assert.Equal(t, "account.move.line", issue.EntityType)
		}
		assert.Equal(t, int64(1), issues[0].EntityID)
		assert.Equal(t, int64(3), issues[1].EntityID)

		mockLedger.AssertExpectations(t)
	})

	t.Run("queries lines from the first of the current month", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListJournalLines", ctx, mock.MatchedBy(func(q ledger.Query) bool {
			if len(q.Filters) != 1 {
				return false
			}
			f := q.Filters[0]
			since, ok := f.Value.(time.Time)
			return f.Field == "date" && f.Op == ledger.OpGte && ok &&
				since.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		})).Return([]domain.JournalLine{}, nil)

		issues, err := CheckZeroAmountEntries(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
		mockLedger.AssertExpectations(t)
	})
}

func TestCheckUnbalancedJournals(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	entries := []domain.JournalEntry{
		{ID: 1, Name: "MOVE/001", State: "posted"},
		{ID: 2, Name: "MOVE/002", State: "posted"},
		{ID: 3, Name: "MOVE/003", State: "posted"},
	}

	t.Run("flags only entries beyond tolerance", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListJournalEntries", ctx, mock.AnythingOfType("ledger.Query")).Return(entries, nil)

		lines := []domain.JournalLine{
			// balanced
			{ID: 1, MoveID: 1, Debit: 100, Credit: 0},
			{ID: 2, MoveID: 1, Debit: 0, Credit: 100},
			// off by 0.50
			{ID: 3, MoveID: 2, Debit: 500.00, Credit: 0},
			{ID: 4, MoveID: 2, Debit: 0, Credit: 499.50},
			// off by exactly the tolerance
			{ID: 5, MoveID: 3, Debit: 100.00, Credit: 0},
			{ID: 6, MoveID: 3, Debit: 0, Credit: 99.99},
		}
		mockLedger.On("ListJournalLines", ctx, mock.AnythingOfType("ledger.Query")).Return(lines, nil)

		issues, err := CheckUnbalancedJournals(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Len(t, issues, 1)
		issue := issues[0]
		assert.Equal(t, CheckUnbalancedJournal, issue.CheckName)
		assert.Equal(t, domain.SeverityError, issue.Severity)
		assert.Equal(t, "account.move", issue.EntityType)
		assert.Equal(t, int64(2), issue.EntityID)
		assert.Equal(t, "MOVE/002", issue.EntityName)
		assert.Equal(t, 0.5, issue.Details["difference"])
		assert.Equal(t, 500.0, issue.Details["total_debit"])
		assert.Equal(t, 499.5, issue.Details["total_credit"])
		assert.Contains(t, issue.Message, "Difference=0.50")

		mockLedger.AssertExpectations(t)
	})

	t.Run("no posted entries means no line query", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListJournalEntries", ctx, mock.AnythingOfType("ledger.Query")).
			Return([]domain.JournalEntry{}, nil)

		issues, err := CheckUnbalancedJournals(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
		mockLedger.AssertNotCalled(t, "ListJournalLines", mock.Anything, mock.Anything)
	})

	t.Run("survives floating point noise in balanced sums", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListJournalEntries", ctx, mock.AnythingOfType("ledger.Query")).
			Return([]domain.JournalEntry{{ID: 1, Name: "MOVE/001"}}, nil)
		mockLedger.On("ListJournalLines", ctx, mock.AnythingOfType("ledger.Query")).
			Return([]domain.JournalLine{
				{ID: 1, MoveID: 1, Debit: 0.1, Credit: 0},
				{ID: 2, MoveID: 1, Debit: 0.2, Credit: 0},
				{ID: 3, MoveID: 1, Debit: 0, Credit: 0.3},
			}, nil)

		issues, err := CheckUnbalancedJournals(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
	})
}

func TestCheckDeprecatedAccounts(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	t.Run("one warning per line on a deprecated account", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListAccounts", ctx, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Account{{ID: 7, Name: "Old Receivables", Code: "499", Deprecated: true}}, nil)
		mockLedger.On("ListJournalLines", ctx, mock.AnythingOfType("ledger.Query")).
			Return([]domain.JournalLine{
				{ID: 21, Name: "line-21", MoveID: 5, AccountID: 7},
				{ID: 22, Name: "line-22", MoveID: 6, AccountID: 7},
			}, nil)

		issues, err := CheckDeprecatedAccounts(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Len(t, issues, 2)
		assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
		assert.Contains(t, issues[0].Message, "Old Receivables")
		assert.Equal(t, "Old Receivables", issues[0].Details["account_name"])

		mockLedger.AssertExpectations(t)
	})

	t.Run("no deprecated accounts means no line query", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListAccounts", ctx, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Account{}, nil)

		issues, err := CheckDeprecatedAccounts(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
		mockLedger.AssertNotCalled(t, "ListJournalLines", mock.Anything, mock.Anything)
	})
}

func TestCheckNegativeStockProducts(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	mockLedger := new(MockLedger)
	mockLedger.On("ListProducts", ctx, mock.AnythingOfType("ledger.Query")).
		Return([]domain.Product{
			{ID: 3, Name: "Widget", Type: "product", QtyAvailable: -5},
		}, nil)

	issues, err := CheckNegativeStockProducts(ctx, mockLedger, settings)

	assert.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, CheckNegativeStock, issues[0].CheckName)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
	assert.Equal(t, "product.product", issues[0].EntityType)
	assert.Equal(t, -5.0, issues[0].Details["qty_available"])
}

func TestCheckZeroCostItems(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	mockLedger := new(MockLedger)
	mockLedger.On("ListProducts", ctx, mock.AnythingOfType("ledger.Query")).
		Return([]domain.Product{
			{ID: 4, Name: "Gadget", Type: "product", StandardCost: 0, Active: true},
		}, nil)

	issues, err := CheckZeroCostItems(ctx, mockLedger, settings)

	assert.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, CheckZeroCostItem, issues[0].CheckName)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "Gadget", issues[0].EntityName)
}

func TestCheckVATConsistency(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	mockLedger := new(MockLedger)
	mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionCustomer, mock.AnythingOfType("ledger.Query")).
		Return([]domain.Invoice{
			{ID: 1, Name: "INV/001", AmountUntaxed: 100, AmountTax: 0},
			{ID: 2, Name: "INV/002", AmountUntaxed: 100, AmountTax: 20},
			{ID: 3, Name: "INV/003", AmountUntaxed: 0, AmountTax: 0},
		}, nil)

	issues, err := CheckVATConsistency(ctx, mockLedger, settings)

	assert.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, CheckSuspiciousZeroVAT, issues[0].CheckName)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Equal(t, int64(1), issues[0].EntityID)
}

func TestCheckInvoiceReceiptMismatches(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	mockLedger := new(MockLedger)
	mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionVendor, mock.AnythingOfType("ledger.Query")).
		Return([]domain.Invoice{
			{ID: 1, Name: "BILL/001", AmountTotal: 100, AmountResidual: 150},
			{ID: 2, Name: "BILL/002", AmountTotal: 100, AmountResidual: 50},
			{ID: 3, Name: "BILL/003", AmountTotal: 100, AmountResidual: 100},
		}, nil)

	issues, err := CheckInvoiceReceiptMismatches(ctx, mockLedger, settings)

	assert.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, CheckInvoiceReceiptMismatch, issues[0].CheckName)
	assert.Equal(t, int64(1), issues[0].EntityID)
	assert.Equal(t, 150.0, issues[0].Details["residual_amount"])
}

func TestCheckPOInvoiceMismatches(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	vendorInvoice := func(name, origin string, total float64) domain.Invoice {
		return domain.Invoice{
			ID: 42, Name: name, Origin: origin, AmountTotal: total, State: "posted",
			Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		}
	}

	poLookup := func(name string) any {
		return mock.MatchedBy(func(q ledger.Query) bool {
			return len(q.Filters) == 1 && q.Filters[0].Field == "name" && q.Filters[0].Value == name
		})
	}

	t.Run("small overrun yields a warning", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionVendor, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Invoice{vendorInvoice("BILL/010", "PO001", 1020.00)}, nil)
		mockLedger.On("ListPurchaseOrders", ctx, poLookup("PO001")).
			Return([]domain.PurchaseOrder{{ID: 9, Name: "PO001", AmountTotal: 1000.00}}, nil)

		issues, err := CheckPOInvoiceMismatches(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Len(t, issues, 1)
		issue := issues[0]
		assert.Equal(t, domain.SeverityWarning, issue.Severity)
		assert.Equal(t, "PO001", issue.Details["po_name"])
		assert.Equal(t, 1000.0, issue.Details["po_total"])
		assert.Equal(t, 1020.0, issue.Details["invoice_total"])
		assert.Equal(t, 20.0, issue.Details["difference"])
		assert.Equal(t, 2.0, issue.Details["deviation_pct"])
	})

	t.Run("large overrun escalates to error", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionVendor, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Invoice{vendorInvoice("BILL/011", "PO002", 1200.00)}, nil)
		mockLedger.On("ListPurchaseOrders", ctx, poLookup("PO002")).
			Return([]domain.PurchaseOrder{{ID: 10, Name: "PO002", AmountTotal: 1000.00}}, nil)

		issues, err := CheckPOInvoiceMismatches(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Len(t, issues, 1)
		assert.Equal(t, domain.SeverityError, issues[0].Severity)
		assert.Equal(t, 20.0, issues[0].Details["deviation_pct"])
	})

	t.Run("multiple PO references are skipped", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionVendor, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Invoice{vendorInvoice("BILL/012", "PO1, PO2", 500.00)}, nil)

		issues, err := CheckPOInvoiceMismatches(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
		mockLedger.AssertNotCalled(t, "ListPurchaseOrders", mock.Anything, mock.Anything)
	})

	t.Run("difference within tolerance is ignored", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionVendor, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Invoice{vendorInvoice("BILL/013", "PO003", 1000.50)}, nil)
		mockLedger.On("ListPurchaseOrders", ctx, poLookup("PO003")).
			Return([]domain.PurchaseOrder{{ID: 11, Name: "PO003", AmountTotal: 1000.00}}, nil)

		issues, err := CheckPOInvoiceMismatches(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("unmatched origin is skipped silently", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionVendor, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Invoice{vendorInvoice("BILL/014", "MANUAL-REF", 750.00)}, nil)
		mockLedger.On("ListPurchaseOrders", ctx, poLookup("MANUAL-REF")).
			Return([]domain.PurchaseOrder{}, nil)

		issues, err := CheckPOInvoiceMismatches(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("empty origin and zero totals are skipped", func(t *testing.T) {
		mockLedger := new(MockLedger)
		mockLedger.On("ListInvoices", ctx, domain.InvoiceDirectionVendor, mock.AnythingOfType("ledger.Query")).
			Return([]domain.Invoice{
				vendorInvoice("BILL/015", "", 750.00),
				vendorInvoice("BILL/016", "PO004", 0),
			}, nil)

		issues, err := CheckPOInvoiceMismatches(ctx, mockLedger, settings)

		assert.NoError(t, err)
		assert.Empty(t, issues)
		mockLedger.AssertNotCalled(t, "ListPurchaseOrders", mock.Anything, mock.Anything)
	})
}
