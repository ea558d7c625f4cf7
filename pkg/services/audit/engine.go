package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// CheckFunc is a single control check. A check is pure with respect to its
// fetched input: it reads through the ledger, applies its thresholds and
// returns its findings, or an error when it could not evaluate at all.
type CheckFunc func(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error)

type check struct {
	name string
	run  CheckFunc
}

// Engine runs the full control-check suite against a ledger. Checks execute
// sequentially in a fixed order; a failing check is logged and skipped without
// affecting the rest of the run.
type Engine struct {
	ledger    ledger.Ledger
	registrar *Registrar
	settings  Settings
	checks    []check
}

// NewEngine creates an audit engine. The task creator may be nil to run the
// checks without creating follow-up tasks.
func NewEngine(lg ledger.Ledger, tasks ledger.TaskCreator, settings Settings) *Engine {
	return &Engine{
		ledger:    lg,
		registrar: NewRegistrar(tasks),
		settings:  settings,
		checks: []check{
			// Basic
			{name: CheckZeroAmountEntry, run: CheckZeroAmountEntries},
			{name: CheckUnbalancedJournal, run: CheckUnbalancedJournals},
			{name: CheckDeprecatedAccountUsage, run: CheckDeprecatedAccounts},
			// Inventory
			{name: CheckNegativeStock, run: CheckNegativeStockProducts},
			{name: CheckZeroCostItem, run: CheckZeroCostItems},
			// VAT / consistency
			{name: CheckSuspiciousZeroVAT, run: CheckVATConsistency},
			{name: CheckInvoiceReceiptMismatch, run: CheckInvoiceReceiptMismatches},
			{name: CheckPOInvoiceMismatch, run: CheckPOInvoiceMismatches},
		},
	}
}

// RunAllChecks resets the run state and executes every check in order,
// returning the accumulated issues. An error in one check contributes zero
// issues for that check and never aborts the remaining ones.
func (e *Engine) RunAllChecks(ctx context.Context) []domain.Issue {
	logger := zerolog.Ctx(ctx)
	logger.Info().Msg("starting audit run")

	e.registrar.Reset()

	for _, c := range e.checks {
		logger.Info().Str("check", c.name).Msg("running check")

		issues, err := c.run(ctx, e.ledger, e.settings)
		if err != nil {
			logger.Error().Err(err).Str("check", c.name).Msg("check failed, skipping")
			continue
		}
		for _, issue := range issues {
			e.registrar.Register(ctx, issue)
		}
	}

	collected := e.registrar.Issues()
	logger.Info().Int("issues", len(collected)).Msg("audit run completed")
	return collected
}
