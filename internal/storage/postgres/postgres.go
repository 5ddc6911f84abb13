// Package postgres implements the warehouse sink using pgx v5. Each load
// replaces the presentation tables in a single transaction: TRUNCATE followed
// by COPY, so readers only ever see a complete batch.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dwh/internal/pipeline"
)

// Config holds Postgres warehouse configuration.
type Config struct {
	DSN    string // connection string for pgxpool
	Schema string // target schema; defaults to "gold"
}

// Warehouse is a Postgres-backed implementation of storage.Warehouse.
type Warehouse struct {
	pool   *pgxpool.Pool
	schema string
}

// NewWarehouse constructs a Warehouse and returns a Close function for cleanup.
func NewWarehouse(ctx context.Context, cfg Config) (*Warehouse, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	schema := cfg.Schema
	if schema == "" {
		schema = "gold"
	}
	return &Warehouse{pool: pool, schema: schema}, func() { pool.Close() }, nil
}

// Load replaces the presentation tables with the batch in res. The three
// tables are swapped atomically; surrogate keys in fact_sales only mean
// anything against the dimension rows of the same batch.
func (w *Warehouse) Load(ctx context.Context, res *pipeline.Result) error {
	if res == nil {
		return errors.New("nil result")
	}

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := w.ensureTables(ctx, tx); err != nil {
		return err
	}
	for _, t := range []struct {
		name string
		cols []string
		rows [][]any
	}{
		{pipeline.DimCustomers, customerColumns, customerRows(res.Customers)},
		{pipeline.DimProducts, productColumns, productRows(res.Products)},
		{pipeline.FactSales, factColumns, factRows(res.Facts)},
	} {
		if err := w.reload(ctx, tx, t.name, t.cols, t.rows); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (w *Warehouse) reload(ctx context.Context, tx pgx.Tx, table string, cols []string, rows [][]any) error {
	if _, err := tx.Exec(ctx, "TRUNCATE "+pgFQN(w.schema, table)); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{w.schema, table}, cols, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return fmt.Errorf("copy into %s: %s (%s)", table, pgErr.Detail, pgErr.SQLState())
		}
		return fmt.Errorf("copy into %s: %w", table, err)
	}
	return nil
}

func (w *Warehouse) ensureTables(ctx context.Context, tx pgx.Tx) error {
	for _, stmt := range CreateStatements(w.schema) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure tables: %w", err)
		}
	}
	return nil
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a schema-qualified table name to `"schema"."table"`.
func pgFQN(schema, table string) string { return pgIdent(schema) + "." + pgIdent(table) }
