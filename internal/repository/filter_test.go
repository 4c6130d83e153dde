package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
)

func TestBuildWhere(t *testing.T) {
	t.Run("Should return empty clause for no filters", func(t *testing.T) {
		where, args := buildWhere(nil)

		assert.Empty(t, where)
		assert.Nil(t, args)
	})

	t.Run("Should build a single predicate", func(t *testing.T) {
		where, args := buildWhere([]Filter{NameContains("watch")})

		assert.Equal(t, " WHERE name ILIKE $1", where)
		assert.Equal(t, []any{"%watch%"}, args)
	})

	t.Run("Should join predicates with AND in filter order", func(t *testing.T) {
		where, args := buildWhere([]Filter{
			CategoryIs("Smartwatch"),
			PriceAtLeast(10),
			PriceAtMost(100),
		})

		assert.Equal(t, " WHERE category = $1 AND price >= $2 AND price <= $3", where)
		assert.Equal(t, []any{"Smartwatch", 10.0, 100.0}, args)
	})

	t.Run("Should bind no argument for price presence", func(t *testing.T) {
		where, args := buildWhere([]Filter{HasPrice(true)})
		assert.Equal(t, " WHERE price IS NOT NULL", where)
		assert.Nil(t, args)

		where, args = buildWhere([]Filter{HasPrice(false)})
		assert.Equal(t, " WHERE price IS NULL", where)
		assert.Nil(t, args)
	})

	t.Run("Should map status to the deleted flag", func(t *testing.T) {
		where, args := buildWhere([]Filter{StatusIs(model.StatusActive)})
		assert.Equal(t, " WHERE deleted_at = $1", where)
		assert.Equal(t, []any{false}, args)

		where, args = buildWhere([]Filter{StatusIs(model.StatusDeleted)})
		assert.Equal(t, " WHERE deleted_at = $1", where)
		assert.Equal(t, []any{true}, args)
	})

	t.Run("Should bind both bounds of a date range", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

		where, args := buildWhere([]Filter{CreatedBetween{Start: start, End: end}})

		assert.Equal(t, " WHERE created_at BETWEEN $1 AND $2", where)
		assert.Equal(t, []any{start, end}, args)
	})

	t.Run("Should number placeholders across mixed filters", func(t *testing.T) {
		where, args := buildWhere([]Filter{
			StatusIs(model.StatusActive),
			HasPrice(true),
			BrandIs("Apple"),
			ModelIs("Mi Watch"),
			ColorIs("Black"),
			StockIs(3),
		})

		assert.Equal(t,
			" WHERE deleted_at = $1 AND price IS NOT NULL AND brand = $2 AND model = $3 AND color = $4 AND stock = $5",
			where)
		assert.Equal(t, []any{false, "Apple", "Mi Watch", "Black", 3}, args)
	})
}
