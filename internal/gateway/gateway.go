// Package gateway is the single data-access seam of the platform. Every
// read and write goes through Client as a filtered query against a named
// table, mirroring the hosted query API the dashboard and storefront
// were designed around: equality, IN membership, not-null, OR'd ILIKE
// text search, ordering, offset/limit ranges with total count, and
// fetch-one / maybe-fetch-one semantics.
//
// Calls are independently fallible and never retried here; callers decide
// how a failure surfaces.
package gateway

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("gateway: row not found")

// FilterOp enumerates supported predicate kinds.
type FilterOp string

const (
	OpEq      FilterOp = "eq"
	OpNe      FilterOp = "ne"
	OpIn      FilterOp = "in"
	OpNotNull FilterOp = "not_null"
	OpIsNull  FilterOp = "is_null"
	OpGte     FilterOp = "gte"
	OpLte     FilterOp = "lte"
	OpOrILike FilterOp = "or_ilike"
)

// Filter is one predicate of a query. For OpOrILike, Columns holds the
// OR'd fields and Value the raw search term (wildcards added by the
// executor).
type Filter struct {
	Op      FilterOp
	Column  string
	Columns []string
	Value   interface{}
}

func Eq(column string, value interface{}) Filter {
	return Filter{Op: OpEq, Column: column, Value: value}
}

func Ne(column string, value interface{}) Filter {
	return Filter{Op: OpNe, Column: column, Value: value}
}

func In(column string, values interface{}) Filter {
	return Filter{Op: OpIn, Column: column, Value: values}
}

func NotNull(column string) Filter {
	return Filter{Op: OpNotNull, Column: column}
}

func IsNull(column string) Filter {
	return Filter{Op: OpIsNull, Column: column}
}

func Gte(column string, value interface{}) Filter {
	return Filter{Op: OpGte, Column: column, Value: value}
}

func Lte(column string, value interface{}) Filter {
	return Filter{Op: OpLte, Column: column, Value: value}
}

// OrILike matches when any of columns matches term case-insensitively.
func OrILike(term string, columns ...string) Filter {
	return Filter{Op: OpOrILike, Columns: columns, Value: term}
}

// Order is a single ordering term.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Range is an offset/length pagination window.
type Range struct {
	Offset int
	Limit  int
}

// Join is a raw join clause with an optional extra select list, used to
// flatten one level of related rows (e.g. the owning category name).
type Join struct {
	Clause string
	Args   []interface{}
}

// Spec describes one read against a table.
type Spec struct {
	Table   string
	Selects []string
	Joins   []Join
	Filters []Filter
	Order   []Order
	Range   *Range
	// Limit caps the result count when positive. Ignored when Range is set.
	Limit int
}

// Client executes specs against the backing store. Implementations must
// honor ctx cancellation on every call.
type Client interface {
	// Query fills dest (a pointer to a slice of row structs) with all rows
	// matching spec.
	Query(ctx context.Context, spec Spec, dest interface{}) error

	// QueryCount behaves like Query but also returns the total row count
	// matching the filters, ignoring spec.Range (for paginated reads).
	QueryCount(ctx context.Context, spec Spec, dest interface{}) (int64, error)

	// QueryOne fetches exactly one row into dest, returning ErrNotFound
	// when no row matches.
	QueryOne(ctx context.Context, spec Spec, dest interface{}) error

	// QueryMaybeOne fetches at most one row into dest, reporting whether a
	// row was found. Absence is not an error.
	QueryMaybeOne(ctx context.Context, spec Spec, dest interface{}) (bool, error)

	// Insert writes one row or a slice of rows into table.
	Insert(ctx context.Context, table string, rows interface{}) error

	// Update applies patch to every row matching filters and returns the
	// affected row count. An empty filter set is rejected.
	Update(ctx context.Context, table string, patch map[string]interface{}, filters ...Filter) (int64, error)

	// Delete removes every row matching filters and returns the affected
	// row count. An empty filter set is rejected.
	Delete(ctx context.Context, table string, filters ...Filter) (int64, error)
}

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// ValidIdent reports whether s is safe to splice into SQL as a
// column/table identifier.
func ValidIdent(s string) bool {
	return identRe.MatchString(s)
}
