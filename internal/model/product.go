package model

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Status is the lifecycle state of a catalog product. A deleted product is
// retained for existence checks but excluded from normal reads, and the sync
// path never transitions it back to active.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Product is a catalog entry mirrored from the external content source.
// The id is assigned by the source, never generated locally.
type Product struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Category  string       `json:"category"`
	Price     null.Float64 `json:"price"`
	Brand     null.String  `json:"brand"`
	Model     null.String  `json:"model"`
	Color     null.String  `json:"color"`
	Stock     null.Int     `json:"stock"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Deleted reports whether the product has been soft-deleted.
func (p Product) Deleted() bool {
	return p.Status == StatusDeleted
}
