package odoo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
	"github.com/rs/zerolog"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

// toDoActivityTypeID is Odoo's built-in "To-Do" mail.activity type.
const toDoActivityTypeID = 4

// Client talks to an Odoo instance over XML-RPC and adapts it to the
// ledger.Ledger and ledger.TaskCreator interfaces.
type Client struct {
	cfg    Config
	common *xmlrpc.Client
	object *xmlrpc.Client
	uid    int64
}

var (
	_ ledger.Ledger      = (*Client)(nil)
	_ ledger.TaskCreator = (*Client)(nil)
)

// Connect dials the Odoo XML-RPC endpoints and authenticates. Every later
// call reuses the authenticated uid and is bounded by the configured timeout.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := &http.Transport{ResponseHeaderTimeout: cfg.Timeout}

	common, err := xmlrpc.NewClient(cfg.URL+"/xmlrpc/2/common", transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create common endpoint client: %w", err)
	}
	object, err := xmlrpc.NewClient(cfg.URL+"/xmlrpc/2/object", transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create object endpoint client: %w", err)
	}

	// Odoo returns false instead of a uid on bad credentials.
	var reply any
	if err := common.Call("authenticate", []any{cfg.Database, cfg.Username, cfg.Password, map[string]any{}}, &reply); err != nil {
		return nil, fmt.Errorf("odoo authentication call failed: %w", err)
	}
	uid := asInt64(reply)
	if uid == 0 {
		return nil, fmt.Errorf("odoo rejected credentials for user %q on database %q", cfg.Username, cfg.Database)
	}

	zerolog.Ctx(ctx).Info().
		Str("url", cfg.URL).
		Str("database", cfg.Database).
		Int64("uid", uid).
		Msg("connected to odoo")

	return &Client{cfg: cfg, common: common, object: object, uid: uid}, nil
}

func (c *Client) executeKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	zerolog.Ctx(ctx).Debug().Str("model", model).Str("method", method).Msg("odoo execute_kw")

	if kwargs == nil {
		kwargs = map[string]any{}
	}
	var reply any
	call := []any{c.cfg.Database, c.uid, c.cfg.Password, model, method, args, kwargs}
	if err := c.object.Call("execute_kw", call, &reply); err != nil {
		return nil, fmt.Errorf("odoo %s.%s failed: %w", model, method, err)
	}
	return reply, nil
}

func (c *Client) searchRead(ctx context.Context, model string, q ledger.Query, extra []ledger.Filter, fields []string) ([]map[string]any, error) {
	kwargs := map[string]any{"fields": fields}
	if q.Limit > 0 {
		kwargs["limit"] = q.Limit
	}
	if q.Offset > 0 {
		kwargs["offset"] = q.Offset
	}

	filters := append(append([]ledger.Filter{}, q.Filters...), extra...)
	reply, err := c.executeKw(ctx, model, "search_read", []any{encodeFilters(filters)}, kwargs)
	if err != nil {
		return nil, err
	}
	return asRecords(reply), nil
}

// encodeFilters converts backend-agnostic filters into an Odoo search domain:
// a list of [field, operator, value] triples, implicitly ANDed.
func encodeFilters(filters []ledger.Filter) []any {
	searchDomain := make([]any, 0, len(filters))
	for _, f := range filters {
		searchDomain = append(searchDomain, []any{f.Field, string(f.Op), encodeValue(f.Value)})
	}
	return searchDomain
}

func encodeValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}

func (c *Client) ListJournalEntries(ctx context.Context, q ledger.Query) ([]domain.JournalEntry, error) {
	records, err := c.searchRead(ctx, "account.move", q, nil,
		[]string{"name", "date", "ref", "state", "amount_total"})
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.JournalEntry{
			ID:          asInt64(r["id"]),
			Name:        asString(r["name"]),
			Date:        asTime(r["date"]),
			Reference:   asString(r["ref"]),
			State:       asString(r["state"]),
			AmountTotal: asFloat(r["amount_total"]),
		})
	}
	return entries, nil
}

func (c *Client) ListJournalLines(ctx context.Context, q ledger.Query) ([]domain.JournalLine, error) {
	records, err := c.searchRead(ctx, "account.move.line", q, nil,
		[]string{"name", "date", "move_id", "account_id", "debit", "credit"})
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, 0, len(records))
	for _, r := range records {
		moveID, moveName := asReference(r["move_id"])
		accountID, accountName := asReference(r["account_id"])
		lines = append(lines, domain.JournalLine{
			ID:          asInt64(r["id"]),
			Name:        asString(r["name"]),
			Date:        asTime(r["date"]),
			MoveID:      moveID,
			MoveName:    moveName,
			AccountID:   accountID,
			AccountName: accountName,
			Debit:       asFloat(r["debit"]),
			Credit:      asFloat(r["credit"]),
		})
	}
	return lines, nil
}

func (c *Client) ListAccounts(ctx context.Context, q ledger.Query) ([]domain.Account, error) {
	records, err := c.searchRead(ctx, "account.account", q, nil,
		[]string{"name", "code", "deprecated"})
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(records))
	for _, r := range records {
		accounts = append(accounts, domain.Account{
			ID:         asInt64(r["id"]),
			Name:       asString(r["name"]),
			Code:       asString(r["code"]),
			Deprecated: asBool(r["deprecated"]),
		})
	}
	return accounts, nil
}

func (c *Client) ListInvoices(ctx context.Context, direction domain.InvoiceDirection, q ledger.Query) ([]domain.Invoice, error) {
	var extra []ledger.Filter
	switch direction {
	case domain.InvoiceDirectionCustomer:
		extra = append(extra, ledger.In("move_type", []string{"out_invoice", "out_refund"}))
	case domain.InvoiceDirectionVendor:
		extra = append(extra, ledger.In("move_type", []string{"in_invoice", "in_refund"}))
	}

	records, err := c.searchRead(ctx, "account.move", q, extra,
		[]string{"name", "date", "partner_id", "amount_total", "amount_untaxed", "amount_tax",
			"amount_residual", "move_type", "invoice_origin", "state"})
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(records))
	for _, r := range records {
		partnerID, partnerName := asReference(r["partner_id"])
		invoices = append(invoices, domain.Invoice{
			ID:             asInt64(r["id"]),
			Name:           asString(r["name"]),
			Date:           asTime(r["date"]),
			PartnerID:      partnerID,
			PartnerName:    partnerName,
			AmountTotal:    asFloat(r["amount_total"]),
			AmountUntaxed:  asFloat(r["amount_untaxed"]),
			AmountTax:      asFloat(r["amount_tax"]),
			AmountResidual: asFloat(r["amount_residual"]),
			MoveType:       asString(r["move_type"]),
			Origin:         asString(r["invoice_origin"]),
			State:          asString(r["state"]),
		})
	}
	return invoices, nil
}

func (c *Client) ListProducts(ctx context.Context, q ledger.Query) ([]domain.Product, error) {
	records, err := c.searchRead(ctx, "product.product", q, nil,
		[]string{"name", "type", "qty_available", "standard_price", "active"})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		products = append(products, domain.Product{
			ID:           asInt64(r["id"]),
			Name:         asString(r["name"]),
			Type:         asString(r["type"]),
			QtyAvailable: asFloat(r["qty_available"]),
			StandardCost: asFloat(r["standard_price"]),
			Active:       asBool(r["active"]),
		})
	}
	return products, nil
}

func (c *Client) ListPurchaseOrders(ctx context.Context, q ledger.Query) ([]domain.PurchaseOrder, error) {
	records, err := c.searchRead(ctx, "purchase.order", q, nil,
		[]string{"name", "amount_total", "state"})
	if err != nil {
		return nil, err
	}

	orders := make([]domain.PurchaseOrder, 0, len(records))
	for _, r := range records {
		orders = append(orders, domain.PurchaseOrder{
			ID:          asInt64(r["id"]),
			Name:        asString(r["name"]),
			AmountTotal: asFloat(r["amount_total"]),
			State:       asString(r["state"]),
		})
	}
	return orders, nil
}

// CreateFollowUp creates a To-Do activity on the given record. Odoo wants the
// numeric ir.model id rather than the model name, so that is resolved first.
func (c *Client) CreateFollowUp(ctx context.Context, task ledger.FollowUp) error {
	reply, err := c.executeKw(ctx, "ir.model", "search_read",
		[]any{[]any{[]any{"model", "=", task.EntityType}}},
		map[string]any{"fields": []string{"id"}, "limit": 1})
	if err != nil {
		return fmt.Errorf("failed to resolve model %q: %w", task.EntityType, err)
	}
	models := asRecords(reply)
	if len(models) == 0 {
		return fmt.Errorf("model %q not found in odoo", task.EntityType)
	}
	modelID := asInt64(models[0]["id"])

	assignee := task.AssigneeID
	if assignee == 0 {
		assignee = c.uid
	}

	_, err = c.executeKw(ctx, "mail.activity", "create", []any{map[string]any{
		"res_model_id":     modelID,
		"res_id":           task.EntityID,
		"activity_type_id": toDoActivityTypeID,
		"summary":          task.Summary,
		"note":             task.Note,
		"user_id":          assignee,
	}}, nil)
	if err != nil {
		return fmt.Errorf("failed to create follow-up activity: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("model", task.EntityType).
		Int64("res_id", task.EntityID).
		Str("summary", task.Summary).
		Msg("follow-up activity created")
	return nil
}
