package api

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Issue struct {
	CheckName  string         `json:"check_name"`
	Severity   Severity       `json:"severity"`
	Message    string         `json:"message"`
	EntityType string         `json:"entity_type,omitempty"`
	EntityID   int64          `json:"entity_id,omitempty"`
	EntityName string         `json:"entity_name,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	DetectedAt time.Time      `json:"detected_at"`
}

type AuditRun struct {
	Issues       []Issue `json:"issues"`
	ErrorCount   int     `json:"error_count"`
	WarningCount int     `json:"warning_count"`
	InfoCount    int     `json:"info_count"`
	Report       string  `json:"report"`
}

type RevenueSummary struct {
	Since        time.Time `json:"since"`
	Total        float64   `json:"total"`
	InvoiceCount int       `json:"invoice_count"`
}
