package domain

import "time"

// Read-only projections of ledger records. They are produced by a ledger
// adapter (pkg/store/odoo) and never mutated by the audit core. Missing
// numeric fields decode as zero, missing references as empty values.

// JournalEntry is a dated accounting transaction (an Odoo account.move).
type JournalEntry struct {
	ID          int64
	Name        string
	Date        time.Time
	Reference   string
	State       string
	AmountTotal float64
}

// JournalLine is one debit or credit component of a journal entry.
type JournalLine struct {
	ID          int64
	Name        string
	Date        time.Time
	MoveID      int64
	MoveName    string
	AccountID   int64
	AccountName string
	Debit       float64
	Credit      float64
}

// Account is a chart-of-accounts entry.
type Account struct {
	ID         int64
	Name       string
	Code       string
	Deprecated bool
}

// InvoiceDirection selects customer, vendor or all invoices.
type InvoiceDirection string

const (
	InvoiceDirectionCustomer InvoiceDirection = "customer"
	InvoiceDirectionVendor   InvoiceDirection = "vendor"
	InvoiceDirectionAll      InvoiceDirection = "all"
)

// Invoice is a customer or vendor invoice (an account.move with an invoice
// move type). Origin carries the source-document reference, e.g. a PO name.
type Invoice struct {
	ID             int64
	Name           string
	Date           time.Time
	PartnerID      int64
	PartnerName    string
	AmountTotal    float64
	AmountUntaxed  float64
	AmountTax      float64
	AmountResidual float64
	MoveType       string
	Origin         string
	State          string
}

// Product is a sellable or stockable item.
type Product struct {
	ID           int64
	Name         string
	Type         string
	QtyAvailable float64
	StandardCost float64
	Active       bool
}

// PurchaseOrder is a commercial order whose total is expected to bound a
// matching vendor invoice.
type PurchaseOrder struct {
	ID          int64
	Name        string
	AmountTotal float64
	State       string
}
