package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dogfood/internal/feeding"
)

// FoodLogStore is the persistence collaborator behind the HTTP handlers.
type FoodLogStore interface {
	RecentFoodLogs(ctx context.Context, limit int) ([]feeding.Event, error)
	FoodLogsSince(ctx context.Context, since time.Time) ([]feeding.Event, error)
	AllFoodLogs(ctx context.Context) ([]feeding.Event, error)
	InsertFoodLog(ctx context.Context, entry feeding.Event) (feeding.Event, error)
}

type dbQuerier interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type PostgresFoodLogStore struct {
	db dbQuerier
}

func NewPostgresFoodLogStore(db dbQuerier) *PostgresFoodLogStore {
	return &PostgresFoodLogStore{db: db}
}

const foodLogColumns = `id::text, feeddatetime, food_qty, water_qty, teeth_brush`

func (s *PostgresFoodLogStore) RecentFoodLogs(ctx context.Context, limit int) ([]feeding.Event, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT `+foodLogColumns+` FROM foodlog
		 ORDER BY feeddatetime DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectFoodLogs(rows)
}

func (s *PostgresFoodLogStore) FoodLogsSince(ctx context.Context, since time.Time) ([]feeding.Event, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT `+foodLogColumns+` FROM foodlog
		 WHERE feeddatetime >= $1
		 ORDER BY feeddatetime ASC`,
		since.UTC(),
	)
	if err != nil {
		return nil, err
	}
	return collectFoodLogs(rows)
}

func (s *PostgresFoodLogStore) AllFoodLogs(ctx context.Context) ([]feeding.Event, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT `+foodLogColumns+` FROM foodlog
		 ORDER BY feeddatetime ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	return collectFoodLogs(rows)
}

func (s *PostgresFoodLogStore) InsertFoodLog(ctx context.Context, entry feeding.Event) (feeding.Event, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.FedAt = entry.FedAt.UTC()
	_, err := s.db.Exec(
		ctx,
		`INSERT INTO foodlog (id, feeddatetime, food_qty, water_qty, teeth_brush)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID,
		entry.FedAt,
		entry.FoodQty,
		entry.WaterQty,
		entry.TeethBrushed,
	)
	if err != nil {
		return feeding.Event{}, err
	}
	return entry, nil
}

func collectFoodLogs(rows pgx.Rows) ([]feeding.Event, error) {
	defer rows.Close()
	events := make([]feeding.Event, 0)
	for rows.Next() {
		var event feeding.Event
		if err := rows.Scan(&event.ID, &event.FedAt, &event.FoodQty, &event.WaterQty, &event.TeethBrushed); err != nil {
			return nil, err
		}
		event.FedAt = event.FedAt.UTC()
		events = append(events, event)
	}
	return events, rows.Err()
}
