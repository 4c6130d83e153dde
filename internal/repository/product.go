package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/volatiletech/null/v8"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
	"github.com/tuanvumaihuynh/catalog-sync/internal/storage/db"
)

const uniqueViolationCode = "23505"

const productColumns = `id, name, category, price, brand, model, color, stock, deleted_at, created_at, updated_at`

// ProductRepository owns persisted product rows. Soft-deleted rows are
// excluded from every read except FindByID with includeDeleted and counts
// that filter on the deleted state explicitly.
type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	// FindByID returns apperr.ProductNotFoundErr when no row matches.
	FindByID(ctx context.Context, id string, includeDeleted bool) (model.Product, error)
	// Insert persists a new active row, setting both timestamps. A
	// primary-key conflict surfaces as apperr.ProductAlreadyExistsErr.
	Insert(ctx context.Context, product model.Product) (model.Product, error)
	// SoftDelete flips the deleted flag. Rows are never physically removed.
	SoftDelete(ctx context.Context, id string) error
	// QueryPage returns one page of active rows matching the filters plus the
	// total matching count before pagination. Page is 1-indexed.
	QueryPage(ctx context.Context, filters []Filter, page, limit int) ([]model.Product, int, error)
	// Count returns the number of rows matching the filters, deleted rows
	// included unless a StatusIs filter is given.
	Count(ctx context.Context, filters ...Filter) (int, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

// productRow mirrors the product table; the deleted flag is mapped to the
// model status enum at the boundary.
type productRow struct {
	ID        string       `db:"id"`
	Name      string       `db:"name"`
	Category  string       `db:"category"`
	Price     null.Float64 `db:"price"`
	Brand     null.String  `db:"brand"`
	Model     null.String  `db:"model"`
	Color     null.String  `db:"color"`
	Stock     null.Int     `db:"stock"`
	DeletedAt bool         `db:"deleted_at"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func (row productRow) toModel() model.Product {
	status := model.StatusActive
	if row.DeletedAt {
		status = model.StatusDeleted
	}

	return model.Product{
		ID:        row.ID,
		Name:      row.Name,
		Category:  row.Category,
		Price:     row.Price,
		Brand:     row.Brand,
		Model:     row.Model,
		Color:     row.Color,
		Stock:     row.Stock,
		Status:    status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (r productRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (model.Product, error) {
	filters := []Filter{idIs(id)}
	if !includeDeleted {
		filters = append(filters, StatusIs(model.StatusActive))
	}
	where, args := buildWhere(filters)

	q := fmt.Sprintf(`SELECT %s FROM product%s`, productColumns, where)

	var row productRow
	if err := pgxscan.Get(ctx, r.db, &row, q, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, apperr.StorageErr.WrapParent(fmt.Errorf("get product: %w", err))
	}

	return row.toModel(), nil
}

func (r productRepository) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	now := time.Now().UTC()
	product.Status = model.StatusActive
	product.CreatedAt = now
	product.UpdatedAt = now

	q := `INSERT INTO product (id, name, category, price, brand, model, color, stock, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9, $10)`

	if _, err := r.db.Exec(ctx, q,
		product.ID,
		product.Name,
		product.Category,
		product.Price,
		product.Brand,
		product.Model,
		product.Color,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.Product{}, apperr.ProductAlreadyExistsErr.WrapParent(err)
		}
		return model.Product{}, apperr.StorageErr.WrapParent(fmt.Errorf("insert product: %w", err))
	}

	return product, nil
}

func (r productRepository) SoftDelete(ctx context.Context, id string) error {
	q := `UPDATE product SET deleted_at = true, updated_at = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id, time.Now().UTC())
	if err != nil {
		return apperr.StorageErr.WrapParent(fmt.Errorf("soft delete product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.ProductNotFoundErr
	}

	return nil
}

func (r productRepository) QueryPage(ctx context.Context, filters []Filter, page, limit int) ([]model.Product, int, error) {
	// Listings never see soft-deleted rows regardless of the caller's filters.
	all := append([]Filter{StatusIs(model.StatusActive)}, filters...)
	where, args := buildWhere(all)

	countQ := `SELECT COUNT(*) FROM product` + where

	var total int
	if err := pgxscan.Get(ctx, r.db, &total, countQ, args...); err != nil {
		return nil, 0, apperr.StorageErr.WrapParent(fmt.Errorf("count products: %w", err))
	}
	if total == 0 {
		return []model.Product{}, 0, nil
	}

	// Stable insertion order; the catalog has no explicit sort field.
	q := fmt.Sprintf(`SELECT %s FROM product%s ORDER BY created_at, id LIMIT %d OFFSET %d`,
		productColumns, where, limit, (page-1)*limit)

	rows := make([]productRow, 0, limit)
	if err := pgxscan.Select(ctx, r.db, &rows, q, args...); err != nil {
		return nil, 0, apperr.StorageErr.WrapParent(fmt.Errorf("select products: %w", err))
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}

	return products, total, nil
}

func (r productRepository) Count(ctx context.Context, filters ...Filter) (int, error) {
	where, args := buildWhere(filters)

	q := `SELECT COUNT(*) FROM product` + where

	var total int
	if err := pgxscan.Get(ctx, r.db, &total, q, args...); err != nil {
		return 0, apperr.StorageErr.WrapParent(fmt.Errorf("count products: %w", err))
	}

	return total, nil
}

// idIs is internal; callers go through FindByID.
type idIs string

func (f idIs) appendTo(b *whereBuilder) {
	b.where("id = " + b.bind(string(f)))
}
