package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
)

// Filter is one optional predicate on the product table. Filters are
// independent and compose with logical AND; a query applies only the filters
// it is given, nothing is appended for absent ones.
type Filter interface {
	appendTo(b *whereBuilder)
}

// NameContains matches products whose name contains the value,
// case-insensitively.
type NameContains string

// CategoryIs matches the category exactly.
type CategoryIs string

// PriceAtLeast matches products with price >= the value. Products without a
// price never match.
type PriceAtLeast float64

// PriceAtMost matches products with price <= the value. Products without a
// price never match.
type PriceAtMost float64

// BrandIs matches the brand exactly.
type BrandIs string

// ModelIs matches the model exactly.
type ModelIs string

// ColorIs matches the color exactly.
type ColorIs string

// StockIs matches the stock count exactly.
type StockIs int

// HasPrice selects products with a price when true, without one when false.
type HasPrice bool

// CreatedBetween matches products created within [Start, End], inclusive.
type CreatedBetween struct {
	Start time.Time
	End   time.Time
}

// StatusIs matches the soft-delete state.
type StatusIs model.Status

func (f NameContains) appendTo(b *whereBuilder) {
	b.where("name ILIKE " + b.bind("%"+string(f)+"%"))
}

func (f CategoryIs) appendTo(b *whereBuilder) {
	b.where("category = " + b.bind(string(f)))
}

func (f PriceAtLeast) appendTo(b *whereBuilder) {
	b.where("price >= " + b.bind(float64(f)))
}

func (f PriceAtMost) appendTo(b *whereBuilder) {
	b.where("price <= " + b.bind(float64(f)))
}

func (f BrandIs) appendTo(b *whereBuilder) {
	b.where("brand = " + b.bind(string(f)))
}

func (f ModelIs) appendTo(b *whereBuilder) {
	b.where("model = " + b.bind(string(f)))
}

func (f ColorIs) appendTo(b *whereBuilder) {
	b.where("color = " + b.bind(string(f)))
}

func (f StockIs) appendTo(b *whereBuilder) {
	b.where("stock = " + b.bind(int(f)))
}

func (f HasPrice) appendTo(b *whereBuilder) {
	if f {
		b.where("price IS NOT NULL")
	} else {
		b.where("price IS NULL")
	}
}

func (f CreatedBetween) appendTo(b *whereBuilder) {
	b.where(fmt.Sprintf("created_at BETWEEN %s AND %s", b.bind(f.Start), b.bind(f.End)))
}

func (f StatusIs) appendTo(b *whereBuilder) {
	b.where("deleted_at = " + b.bind(model.Status(f) == model.StatusDeleted))
}

// whereBuilder folds filters into a single WHERE clause with positional
// placeholders.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

// buildWhere returns the WHERE clause (with leading space) and its arguments
// for the given filters. Both are empty when no filters are given.
func buildWhere(filters []Filter) (string, []any) {
	b := &whereBuilder{}
	for _, f := range filters {
		f.appendTo(b)
	}

	if len(b.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args
}
