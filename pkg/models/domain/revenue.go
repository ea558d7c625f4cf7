package domain

import "time"

// RevenueSummary is the monthly revenue KPI: untaxed revenue of posted
// customer invoices between Since and the time of computation.
type RevenueSummary struct {
	Since        time.Time
	Total        float64
	InvoiceCount int
}
