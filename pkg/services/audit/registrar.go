package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// Registrar collects the issues of a single audit run in detection order and
// dispatches follow-up tasks for actionable ones. The collected list and the
// external dispatch are independent: a failed dispatch never drops an issue.
type Registrar struct {
	tasks  ledger.TaskCreator
	issues []domain.Issue
}

// NewRegistrar creates a registrar. A nil task creator disables follow-up
// dispatch entirely; issues are still collected.
func NewRegistrar(tasks ledger.TaskCreator) *Registrar {
	return &Registrar{tasks: tasks}
}

// Reset discards the issues of the previous run.
func (r *Registrar) Reset() {
	r.issues = nil
}

// Issues returns the issues registered so far, in detection order.
func (r *Registrar) Issues() []domain.Issue {
	out := make([]domain.Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// Register appends the issue and, for error or warning issues that reference
// a concrete record, creates a follow-up task on that record. It panics on an
// undefined severity: that indicates a bug in the emitting check.
func (r *Registrar) Register(ctx context.Context, issue domain.Issue) {
	if !issue.Severity.Valid() {
		panic(fmt.Sprintf("issue %q registered with invalid severity %d", issue.CheckName, int(issue.Severity)))
	}

	r.issues = append(r.issues, issue)

	if r.tasks == nil || issue.Severity == domain.SeverityInfo || !issue.HasEntity() {
		return
	}

	task := ledger.FollowUp{
		EntityType: issue.EntityType,
		EntityID:   issue.EntityID,
		Summary:    fmt.Sprintf("AI Audit: %s", issue.CheckName),
		Note:       fmt.Sprintf("Automated audit finding: %s", issue.Message),
	}
	if err := r.tasks.CreateFollowUp(ctx, task); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("check", issue.CheckName).
			Str("entity_type", issue.EntityType).
			Int64("entity_id", issue.EntityID).
			Msg("failed to create follow-up task")
	}
}
