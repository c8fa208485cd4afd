package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const FoodLogTable = "foodlog"

var foodLogColumns = []string{"id", "feeddatetime", "food_qty", "water_qty", "teeth_brush"}

const createFoodLogTableSQL = `CREATE TABLE IF NOT EXISTS foodlog (
	id           uuid PRIMARY KEY,
	feeddatetime timestamptz NOT NULL,
	food_qty     integer NOT NULL CHECK (food_qty >= 0),
	water_qty    integer NOT NULL CHECK (water_qty >= 0),
	teeth_brush  boolean NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS foodlog_feeddatetime_idx ON foodlog (feeddatetime DESC);`

// EnsureSchema creates the foodlog table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("database pool is nil")
	}
	if _, err := pool.Exec(ctx, createFoodLogTableSQL); err != nil {
		return fmt.Errorf("create %s table: %w", FoodLogTable, err)
	}
	return nil
}

func ValidateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("database pool is nil")
	}
	for _, column := range foodLogColumns {
		ok, err := columnExists(ctx, pool, FoodLogTable, column)
		if err != nil {
			return fmt.Errorf("failed checking schema for %s.%s: %w", FoodLogTable, column, err)
		}
		if !ok {
			return fmt.Errorf("required column %s.%s is missing; run with DB_AUTO_MIGRATE=true or apply the migration", FoodLogTable, column)
		}
	}
	return nil
}

func columnExists(ctx context.Context, pool *pgxpool.Pool, tableName, columnName string) (bool, error) {
	table := strings.TrimSpace(tableName)
	column := strings.TrimSpace(columnName)
	if table == "" || column == "" {
		return false, fmt.Errorf("table/column must not be empty")
	}
	var exists bool
	err := pool.QueryRow(
		ctx,
		`SELECT EXISTS (
		   SELECT 1
		   FROM information_schema.columns
		   WHERE table_schema = current_schema()
		     AND lower(table_name) = lower($1)
		     AND lower(column_name) = lower($2)
		 )`,
		table,
		column,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
