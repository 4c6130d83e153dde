package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/catalog-sync/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-sync/internal/feed"
	"github.com/tuanvumaihuynh/catalog-sync/internal/model"
	"github.com/tuanvumaihuynh/catalog-sync/internal/repository"
	"github.com/tuanvumaihuynh/catalog-sync/internal/storage/db"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeDB satisfies db.DB without a database; WithTx just runs the function.
type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (f fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

type fakeFeedClient struct {
	entries []feed.Entry
	err     error
}

func (f fakeFeedClient) FetchEntries(context.Context) ([]feed.Entry, error) {
	return f.entries, f.err
}

// memProductRepo is an in-memory repository keyed by product id.
type memProductRepo struct {
	products map[string]model.Product
}

func newMemProductRepo(seed ...model.Product) *memProductRepo {
	repo := &memProductRepo{products: make(map[string]model.Product)}
	for _, p := range seed {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *memProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *memProductRepo) FindByID(_ context.Context, id string, includeDeleted bool) (model.Product, error) {
	p, ok := r.products[id]
	if !ok || (p.Deleted() && !includeDeleted) {
		return model.Product{}, apperr.ProductNotFoundErr
	}
	return p, nil
}

func (r *memProductRepo) Insert(_ context.Context, product model.Product) (model.Product, error) {
	if _, ok := r.products[product.ID]; ok {
		return model.Product{}, apperr.ProductAlreadyExistsErr
	}
	product.Status = model.StatusActive
	r.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.products[id]
	if !ok {
		return apperr.ProductNotFoundErr
	}
	p.Status = model.StatusDeleted
	r.products[id] = p
	return nil
}

func (r *memProductRepo) QueryPage(context.Context, []repository.Filter, int, int) ([]model.Product, int, error) {
	return nil, 0, nil
}

func (r *memProductRepo) Count(context.Context, ...repository.Filter) (int, error) {
	return len(r.products), nil
}

// funcProductRepo routes each method to an optional function field, for tests
// that assert on arguments or inject failures.
type funcProductRepo struct {
	findByID   func(ctx context.Context, id string, includeDeleted bool) (model.Product, error)
	insert     func(ctx context.Context, product model.Product) (model.Product, error)
	softDelete func(ctx context.Context, id string) error
	queryPage  func(ctx context.Context, filters []repository.Filter, page, limit int) ([]model.Product, int, error)
	count      func(ctx context.Context, filters ...repository.Filter) (int, error)
}

func (r *funcProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *funcProductRepo) FindByID(ctx context.Context, id string, includeDeleted bool) (model.Product, error) {
	return r.findByID(ctx, id, includeDeleted)
}

func (r *funcProductRepo) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	return r.insert(ctx, product)
}

func (r *funcProductRepo) SoftDelete(ctx context.Context, id string) error {
	return r.softDelete(ctx, id)
}

func (r *funcProductRepo) QueryPage(ctx context.Context, filters []repository.Filter, page, limit int) ([]model.Product, int, error) {
	return r.queryPage(ctx, filters, page, limit)
}

func (r *funcProductRepo) Count(ctx context.Context, filters ...repository.Filter) (int, error) {
	return r.count(ctx, filters...)
}
