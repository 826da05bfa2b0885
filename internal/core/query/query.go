// Package query builds the count and page statements for the cross table asset search
//
// Both statements share one predicate builder so the count always describes exactly
// the rows the page statement can return. Rows from both sources are kept with
// UNION ALL; a guid present in both tables appears twice.
package query

import (
	"errors"
	"fmt"
	"strings"

	"assetsearch/internal/core/paging"
)

// Dialect selects placeholder style and the case insensitive match operator
type Dialect string

const (
	// MySQL uses ? placeholders and LIKE under a case insensitive collation
	MySQL Dialect = "mysql"
	// Postgres uses $n placeholders and ILIKE
	Postgres Dialect = "postgres"
)

// DefaultPageSize is the page size when none is configured
const DefaultPageSize = 20

// Query is one parameterised statement
type Query struct {
	SQL  string
	Args []any
}

// Plan is the pair of statements one search runs, count first
type Plan struct {
	Count Query
	Page  Query

	Limit  int
	Offset int
}

// ErrEmptyTerm is returned when Build is called without a term
var ErrEmptyTerm = errors.New("query: empty term")

// Build returns the count and page statements for term on page
// page <= 0 is treated as 1; perPage <= 0 falls back to DefaultPageSize
// an offset too large for int saturates, so the page statement returns no rows
func Build(d Dialect, term string, page, perPage int) (Plan, error) {
	if term == "" {
		return Plan{}, ErrEmptyTerm
	}
	if d != MySQL && d != Postgres {
		return Plan{}, fmt.Errorf("query: unknown dialect %q", d)
	}
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	pattern := ContainsPattern(term)
	limit, offset := perPage, paging.Offset(page, perPage)

	count := newWriter(d)
	count.WriteString("SELECT COUNT(*) FROM (")
	unionAll(count, pattern, func(Source) string { return "guid" })
	count.WriteString(") AS matches")

	pg := newWriter(d)
	pg.WriteString("SELECT name, description, author, guid, source FROM (")
	unionAll(pg, pattern, Source.projectWithLabel)
	pg.WriteString(") AS matches LIMIT ")
	pg.bind(limit)
	pg.WriteString(" OFFSET ")
	pg.bind(offset)

	return Plan{
		Count:  count.query(),
		Page:   pg.query(),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// unionAll writes one SELECT per source joined by UNION ALL, each with the shared predicate
func unionAll(w *writer, pattern string, columns func(Source) string) {
	for i, s := range Sources() {
		if i > 0 {
			w.WriteString(" UNION ALL ")
		}
		w.WriteString("(SELECT ")
		w.WriteString(columns(s))
		w.WriteString(" FROM ")
		w.WriteString(s.Table())
		w.WriteString(" WHERE ")
		predicate(w, s, pattern)
		w.WriteString(")")
	}
}

// predicate writes `a LIKE p OR b LIKE p` for the source's match columns
func predicate(w *writer, s Source, pattern string) {
	op := " LIKE "
	if w.d == Postgres {
		op = " ILIKE "
	}
	for i, col := range s.MatchColumns() {
		if i > 0 {
			w.WriteString(" OR ")
		}
		w.WriteString(col)
		w.WriteString(op)
		w.bind(pattern)
	}
}

func (s Source) projectWithLabel() string {
	return defs[s].project + ", '" + s.Label() + "' AS source"
}

// ContainsPattern wraps term for substring matching, escaping LIKE metacharacters
func ContainsPattern(term string) string {
	return "%" + EscapeLike(term) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes \, % and _ with the default backslash escape both dialects use
func EscapeLike(s string) string { return likeEscaper.Replace(s) }

// writer accumulates sql and args, numbering placeholders per dialect
type writer struct {
	strings.Builder
	d    Dialect
	args []any
}

func newWriter(d Dialect) *writer { return &writer{d: d} }

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	if w.d == Postgres {
		fmt.Fprintf(w, "$%d", len(w.args))
		return
	}
	w.WriteByte('?')
}

func (w *writer) query() Query { return Query{SQL: w.String(), Args: w.args} }
