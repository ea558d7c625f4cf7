package audit

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/louisslnn/ODOO-Project/pkg/adapters"
	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	auditsvc "github.com/louisslnn/ODOO-Project/pkg/services/audit"
)

// Auditor runs the control-check suite. Implemented by audit.Engine.
type Auditor interface {
	RunAllChecks(ctx context.Context) []domain.Issue
}

// RevenueAnalyst computes the monthly revenue KPI. Implemented by report.Analyst.
type RevenueAnalyst interface {
	MonthlyRevenue(ctx context.Context) (domain.RevenueSummary, error)
}

type Handler struct {
	auditor Auditor
	analyst RevenueAnalyst
}

func NewHandler(auditor Auditor, analyst RevenueAnalyst) *Handler {
	return &Handler{auditor: auditor, analyst: analyst}
}

func (h *Handler) RunAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	issues := h.auditor.RunAllChecks(ctx)
	run := adapters.MapAuditRunDomainToApi(issues, auditsvc.GenerateReport(issues))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(run); err != nil {
		logger.Error().Err(err).Msg("failed to encode audit run")
	}
}

func (h *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	revenue, err := h.analyst.MonthlyRevenue(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute monthly revenue")
		http.Error(w, "failed to compute monthly revenue", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapRevenueSummaryDomainToApi(revenue)); err != nil {
		logger.Error().Err(err).Msg("failed to encode revenue summary")
	}
}
