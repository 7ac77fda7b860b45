// Package inventory answers availability checks from the room_inventory
// table. It is the reference server for the endpoint the widget's
// availability gate calls.
package inventory

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

// Coverage summarises inventory over a stay: the lowest rooms_available of
// any night, and how many nights have a row at all.
type Coverage struct {
	HotelID  string
	MinRooms int
	Nights   int
}

type inventoryDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository queries room inventory.
type Repository struct {
	db     inventoryDB
	tracer trace.Tracer
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("inventory: pgx pool required")
	}
	return NewRepositoryWithDB(pool)
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db inventoryDB) *Repository {
	return &Repository{db: db, tracer: otel.Tracer("booking-widget.internal.inventory")}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// MinAvailable covers the nights in [from, to). For all-hotels it returns the
// best-covered hotel.
func (r *Repository) MinAvailable(ctx context.Context, hotelID string, from, to widget.Date) (Coverage, error) {
	ctx, span := r.tracer.Start(ctx, "inventory.min_available")
	defer span.End()
	span.SetAttributes(attribute.String("inventory.hotel_id", hotelID))

	var (
		cov Coverage
		err error
	)
	if hotels.IsConcrete(hotelID) {
		cov, err = r.forHotel(ctx, hotelID, from, to)
	} else {
		cov, err = r.bestHotel(ctx, from, to)
	}
	if err != nil {
		span.RecordError(err)
	}
	return cov, err
}

func (r *Repository) forHotel(ctx context.Context, hotelID string, from, to widget.Date) (Coverage, error) {
	query, args, err := psql.
		Select("COALESCE(MIN(rooms_available), 0)", "COUNT(DISTINCT stay_date)").
		From("room_inventory").
		Where(sq.Eq{"hotel_id": hotelID}).
		Where(sq.GtOrEq{"stay_date": from.Time()}).
		Where(sq.Lt{"stay_date": to.Time()}).
		ToSql()
	if err != nil {
		return Coverage{}, fmt.Errorf("inventory: build query: %w", err)
	}

	cov := Coverage{HotelID: hotelID}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&cov.MinRooms, &cov.Nights); err != nil {
		return Coverage{}, fmt.Errorf("inventory: min available: %w", err)
	}
	return cov, nil
}

func (r *Repository) bestHotel(ctx context.Context, from, to widget.Date) (Coverage, error) {
	query, args, err := psql.
		Select("hotel_id", "MIN(rooms_available)", "COUNT(DISTINCT stay_date)").
		From("room_inventory").
		Where(sq.GtOrEq{"stay_date": from.Time()}).
		Where(sq.Lt{"stay_date": to.Time()}).
		GroupBy("hotel_id").
		OrderBy("hotel_id").
		ToSql()
	if err != nil {
		return Coverage{}, fmt.Errorf("inventory: build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return Coverage{}, fmt.Errorf("inventory: list coverage: %w", err)
	}
	defer rows.Close()

	best := Coverage{HotelID: hotels.AllHotels}
	for rows.Next() {
		var c Coverage
		if err := rows.Scan(&c.HotelID, &c.MinRooms, &c.Nights); err != nil {
			return Coverage{}, fmt.Errorf("inventory: scan coverage: %w", err)
		}
		if c.Nights > best.Nights || (c.Nights == best.Nights && c.MinRooms > best.MinRooms) {
			best = c
		}
	}
	if err := rows.Err(); err != nil {
		return Coverage{}, fmt.Errorf("inventory: list coverage: %w", err)
	}
	return best, nil
}
