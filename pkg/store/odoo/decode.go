package odoo

import "time"

// Odoo's XML-RPC layer returns false in place of empty strings, nulls and
// unset many2one references, and many2one references as [id, display_name]
// pairs. These helpers normalize that shape into plain Go values; anything
// missing or malformed decodes as the zero value.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// asReference decodes a many2one value ([id, display_name] or false).
func asReference(v any) (int64, string) {
	pair, ok := v.([]any)
	if !ok || len(pair) == 0 {
		return 0, ""
	}
	id := asInt64(pair[0])
	name := ""
	if len(pair) > 1 {
		name = asString(pair[1])
	}
	return id, name
}

func asRecords(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}
