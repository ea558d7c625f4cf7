package ledger

// Op is a comparison operator understood by every ledger backend.
type Op string

const (
	OpEq  Op = "="
	OpNeq Op = "!="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "in"
)

// Filter is a single backend-agnostic predicate on a record field.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query is a conjunction of filters with optional pagination bounds.
// A zero Limit means backend default, a zero Offset means start of the set.
type Query struct {
	Filters []Filter
	Limit   int
	Offset  int
}

func Eq(field string, value any) Filter  { return Filter{Field: field, Op: OpEq, Value: value} }
func Gt(field string, value any) Filter  { return Filter{Field: field, Op: OpGt, Value: value} }
func Gte(field string, value any) Filter { return Filter{Field: field, Op: OpGte, Value: value} }
func Lt(field string, value any) Filter  { return Filter{Field: field, Op: OpLt, Value: value} }
func In(field string, value any) Filter  { return Filter{Field: field, Op: OpIn, Value: value} }
