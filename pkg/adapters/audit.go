package adapters

import (
	"github.com/louisslnn/ODOO-Project/pkg/models/api"
	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityError:
		return api.SeverityError
	case domain.SeverityWarning:
		return api.SeverityWarning
	default:
		return api.SeverityInfo
	}
}

func MapIssueDomainToApi(issue domain.Issue) api.Issue {
	details := make(map[string]any, len(issue.Details))
	for k, v := range issue.Details {
		details[k] = v
	}
	return api.Issue{
		CheckName:  issue.CheckName,
		Severity:   MapSeverityDomainToApi(issue.Severity),
		Message:    issue.Message,
		EntityType: issue.EntityType,
		EntityID:   issue.EntityID,
		EntityName: issue.EntityName,
		Details:    details,
		DetectedAt: issue.DetectedAt,
	}
}

func MapAuditRunDomainToApi(issues []domain.Issue, renderedReport string) api.AuditRun {
	run := api.AuditRun{
		Issues: make([]api.Issue, 0, len(issues)),
		Report: renderedReport,
	}
	for _, issue := range issues {
		run.Issues = append(run.Issues, MapIssueDomainToApi(issue))
		switch issue.Severity {
		case domain.SeverityError:
			run.ErrorCount++
		case domain.SeverityWarning:
			run.WarningCount++
		default:
			run.InfoCount++
		}
	}
	return run
}

func MapRevenueSummaryDomainToApi(r domain.RevenueSummary) api.RevenueSummary {
	return api.RevenueSummary{
		Since:        r.Since,
		Total:        r.Total,
		InvoiceCount: r.InvoiceCount,
	}
}
