package audit

import "time"

// Settings contains the numeric tolerances and paging bounds used by the
// control checks. Monetary tolerances exist to absorb rounding noise, not to
// hide real discrepancies.
type Settings struct {
	// BalanceTolerance is the maximum accepted |sum(debit) - sum(credit)|
	// per journal entry (default: 0.01)
	BalanceTolerance float64
	// EntryPageSize bounds the number of posted entries fetched by the
	// unbalanced-journal check (default: 1000)
	EntryPageSize int
	// InvoicePageSize bounds the number of invoices fetched per check (default: 500)
	InvoicePageSize int
	// ProductPageSize bounds the number of products fetched per check (default: 1000)
	ProductPageSize int
	// POMatchWindowDays is how far back vendor invoices are matched against
	// purchase orders (default: 30)
	POMatchWindowDays int
	// POAmountTolerance is the absolute invoice/PO difference below which no
	// issue is raised (default: 1.00)
	POAmountTolerance float64
	// PODeviationPctThreshold escalates a PO mismatch to an error when the
	// deviation percentage exceeds it (default: 5.0)
	PODeviationPctThreshold float64
	// PORelativeThreshold escalates a PO mismatch to an error when the
	// difference exceeds this fraction of the PO total (default: 0.05)
	PORelativeThreshold float64
	// Now supplies the reference time for month and window boundaries.
	Now func() time.Time
}

// DefaultSettings returns the default configuration for the control checks.
func DefaultSettings() Settings {
	return Settings{
		BalanceTolerance:        0.01,
		EntryPageSize:           1000,
		InvoicePageSize:         500,
		ProductPageSize:         1000,
		POMatchWindowDays:       30,
		POAmountTolerance:       1.00,
		PODeviationPctThreshold: 5.0,
		PORelativeThreshold:     0.05,
		Now:                     time.Now,
	}
}

// startOfMonth returns midnight on the first day of the current month.
func (s Settings) startOfMonth() time.Time {
	now := s.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
