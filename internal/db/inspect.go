package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// Column is one row of PRAGMA table_info.
type Column struct {
	Name    string
	Type    string
	NotNull bool
	PK      bool
}

// Index is one row of PRAGMA index_list.
type Index struct {
	Name   string
	Unique bool
	Origin string // "c" created by CREATE INDEX, "u" UNIQUE constraint, "pk" primary key
}

// Columns returns the columns of table in declaration order.
func Columns(ctx context.Context, d *sql.DB, table string) ([]Column, error) {
	rows, err := d.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Column
	for rows.Next() {
		var (
			cid     int
			c       Column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &c.Name, &c.Type, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		c.NotNull = notNull != 0
		c.PK = pk != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

// Indexes returns the indexes of table sorted by name, including automatic ones.
func Indexes(ctx context.Context, d *sql.DB, table string) ([]Index, error) {
	rows, err := d.QueryContext(ctx, fmt.Sprintf(`PRAGMA index_list(%q)`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Index
	for rows.Next() {
		var (
			seq     int
			ix      Index
			unique  int
			partial int
		)
		if err := rows.Scan(&seq, &ix.Name, &unique, &ix.Origin, &partial); err != nil {
			return nil, err
		}
		ix.Unique = unique != 0
		out = append(out, ix)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// HasIndex reports whether table carries an index named name.
func HasIndex(ctx context.Context, d *sql.DB, table, name string) (bool, error) {
	list, err := Indexes(ctx, d, table)
	if err != nil {
		return false, err
	}
	for _, ix := range list {
		if ix.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// QueryPlan returns the detail lines of EXPLAIN QUERY PLAN for query.
func QueryPlan(ctx context.Context, d *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := d.QueryContext(ctx, "EXPLAIN QUERY PLAN "+query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id, parent, notUsed int
		var detail string
		if err := rows.Scan(&id, &parent, &notUsed, &detail); err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, rows.Err()
}
