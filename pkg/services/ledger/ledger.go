package ledger

import (
	"context"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
)

// Ledger is the read-only query surface of the audited accounting system.
// Implementations adapt a concrete backend (pkg/store/odoo); the audit core
// depends only on this interface.
type Ledger interface {
	ListJournalEntries(ctx context.Context, q Query) ([]domain.JournalEntry, error)
	ListJournalLines(ctx context.Context, q Query) ([]domain.JournalLine, error)
	ListAccounts(ctx context.Context, q Query) ([]domain.Account, error)
	ListInvoices(ctx context.Context, direction domain.InvoiceDirection, q Query) ([]domain.Invoice, error)
	ListProducts(ctx context.Context, q Query) ([]domain.Product, error)
	ListPurchaseOrders(ctx context.Context, q Query) ([]domain.PurchaseOrder, error)
}

// FollowUp describes a follow-up task to be created on a ledger record.
type FollowUp struct {
	EntityType string
	EntityID   int64
	Summary    string
	Note       string
	AssigneeID int64 // 0 assigns to the connected user
}

// TaskCreator creates follow-up tasks in the audited system.
type TaskCreator interface {
	CreateFollowUp(ctx context.Context, task FollowUp) error
}
