package audit

import (
	"context"
	"fmt"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// CheckNegativeStockProducts flags stockable products whose on-hand quantity
// went below zero.
func CheckNegativeStockProducts(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	products, err := lg.ListProducts(ctx, ledger.Query{
		Filters: []ledger.Filter{
			ledger.Eq("type", "product"),
			ledger.Lt("qty_available", 0.0),
		},
		Limit: settings.ProductPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list negative-stock products: %w", err)
	}

	var issues []domain.Issue
	for _, product := range products {
		issue := domain.NewIssue(CheckNegativeStock, domain.SeverityError,
			fmt.Sprintf("Product %s has negative stock quantity: %.2f", product.Name, product.QtyAvailable))
		issue.EntityType = "product.product"
		issue.EntityID = product.ID
		issue.EntityName = product.Name
		issue.Details["qty_available"] = product.QtyAvailable
		issues = append(issues, issue)
	}
	return issues, nil
}

// CheckZeroCostItems flags active stockable products whose standard cost is
// still zero, which silently breaks margin and valuation figures.
func CheckZeroCostItems(ctx context.Context, lg ledger.Ledger, settings Settings) ([]domain.Issue, error) {
	products, err := lg.ListProducts(ctx, ledger.Query{
		Filters: []ledger.Filter{
			ledger.Eq("active", true),
			ledger.Eq("type", "product"),
			ledger.Eq("standard_price", 0.0),
		},
		Limit: settings.ProductPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list zero-cost products: %w", err)
	}

	var issues []domain.Issue
	for _, product := range products {
		issue := domain.NewIssue(CheckZeroCostItem, domain.SeverityWarning,
			fmt.Sprintf("Product %s has zero cost price", product.Name))
		issue.EntityType = "product.product"
		issue.EntityID = product.ID
		issue.EntityName = product.Name
		issue.Details["standard_price"] = product.StandardCost
		issue.Details["qty_available"] = product.QtyAvailable
		issues = append(issues, issue)
	}
	return issues, nil
}
