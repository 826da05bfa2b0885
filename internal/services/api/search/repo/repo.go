// Package repo runs the built search statements against the relational store
package repo

import (
	"context"
	"database/sql"

	"assetsearch/internal/core/query"
	"assetsearch/internal/modkit/repokit"
	"assetsearch/internal/platform/store"
)

// Repo defines the repository contract for asset search
type Repo interface {
	Count(ctx context.Context, q query.Query) (int, error)
	Page(ctx context.Context, q query.Query) ([]RowAsset, error)
}

// RowAsset is one row of the page statement in select order
type RowAsset struct {
	Name        string
	Description string
	Author      string
	GUID        string
	Source      string
}

type (
	// SQL implements Repo for both mysql and postgres; the statements carry the dialect
	SQL struct{}

	queries struct{ q repokit.Queryer }
)

// NewSQL creates the repository binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind binds a queryer to the Repo implementation
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Count(ctx context.Context, q query.Query) (int, error) {
	n, err := store.Scalar[int64](ctx, r.q, q.SQL, q.Args...)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *queries) Page(ctx context.Context, q query.Query) ([]RowAsset, error) {
	return store.Many(ctx, r.q, scanAsset, q.SQL, q.Args...)
}

// scanAsset tolerates NULL text columns, which the avatar tables allow
func scanAsset(row store.Row) (RowAsset, error) {
	var name, desc, author, guid, source sql.NullString
	if err := row.Scan(&name, &desc, &author, &guid, &source); err != nil {
		return RowAsset{}, err
	}
	return RowAsset{
		Name:        name.String,
		Description: desc.String,
		Author:      author.String,
		GUID:        guid.String,
		Source:      source.String,
	}, nil
}
