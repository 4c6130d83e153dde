package feed

import (
	"github.com/spf13/cast"
	"github.com/volatiletech/null/v8"

	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
)

// Normalize maps a raw entry into the internal product shape. It is pure and
// deterministic: the same entry always yields the same product, and no field
// coercion ever fails — an uncoercible or absent value becomes null, never a
// zero default.
func Normalize(entry Entry) model.Product {
	return model.Product{
		ID:       entry.ID,
		Name:     cast.ToString(entry.Fields["name"]),
		Category: cast.ToString(entry.Fields["category"]),
		Price:    toNullFloat(entry.Fields["price"]),
		Brand:    toNullString(entry.Fields["brand"]),
		Model:    toNullString(entry.Fields["model"]),
		Color:    toNullString(entry.Fields["color"]),
		Stock:    toNullInt(entry.Fields["stock"]),
		Status:   model.StatusActive,
	}
}

func toNullFloat(v any) null.Float64 {
	if v == nil {
		return null.Float64{}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return null.Float64{}
	}
	return null.Float64From(f)
}

func toNullString(v any) null.String {
	if v == nil {
		return null.String{}
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return null.String{}
	}
	return null.StringFrom(s)
}

func toNullInt(v any) null.Int {
	if v == nil {
		return null.Int{}
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(n)
}
