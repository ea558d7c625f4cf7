package audit

import (
	"strings"
	"text/template"
	"time"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
)

// EmptyReport is returned when a run produced no issues at all.
const EmptyReport = "No issues detected. All checks passed."

var severityHeadings = []struct {
	severity domain.Severity
	heading  string
}{
	{domain.SeverityError, "ERRORS (Must Fix)"},
	{domain.SeverityWarning, "WARNINGS (Should Review)"},
	{domain.SeverityInfo, "INFO"},
}

type reportGroup struct {
	Heading string
	Issues  []domain.Issue
}

type reportView struct {
	GeneratedAt time.Time
	Total       int
	Groups      []reportGroup
}

var reportTemplate = template.Must(template.New("todo-list").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`============================================================
FINANCE TO-DO LIST
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
Total Issues: {{.Total}}
============================================================
{{range .Groups}}
{{.Heading}}
------------------------------------------------------------
{{range $idx, $issue := .Issues}}{{inc $idx}}. [{{$issue.CheckName}}] {{$issue.Message}}
{{if $issue.HasEntity}}   Entity: {{$issue.EntityName}} (ID: {{$issue.EntityID}})
{{end}}{{end}}{{end}}`))

// GenerateReport renders the issues of a run as a human-readable to-do list,
// grouped by severity (errors first) with detection order preserved inside
// each group.
func GenerateReport(issues []domain.Issue) string {
	return generateReport(issues, time.Now())
}

func generateReport(issues []domain.Issue, generatedAt time.Time) string {
	if len(issues) == 0 {
		return EmptyReport
	}

	view := reportView{
		GeneratedAt: generatedAt,
		Total:       len(issues),
	}
	for _, group := range severityHeadings {
		var matched []domain.Issue
		for _, issue := range issues {
			if issue.Severity == group.severity {
				matched = append(matched, issue)
			}
		}
		if len(matched) > 0 {
			view.Groups = append(view.Groups, reportGroup{Heading: group.heading, Issues: matched})
		}
	}

	var sb strings.Builder
	// The template is parsed at init and the view contains no user-defined
	// types that can fail rendering.
	if err := reportTemplate.Execute(&sb, view); err != nil {
		panic(err)
	}
	return sb.String()
}
