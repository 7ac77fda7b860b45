package hotels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const selectHotels = `SELECT id, name, location, city, country FROM hotels`

// SQLDirectory reads hotels from the inventory database.
type SQLDirectory struct {
	db *sql.DB
}

func NewSQLDirectory(db *sql.DB) *SQLDirectory {
	if db == nil {
		panic("hotels: sql db required")
	}
	return &SQLDirectory{db: db}
}

// List returns every hotel with the all-hotels sentinel first.
func (d *SQLDirectory) List(ctx context.Context) ([]Hotel, error) {
	rows, err := d.db.QueryContext(ctx, selectHotels+` ORDER BY location, name`)
	if err != nil {
		return nil, fmt.Errorf("hotels: list: %w", err)
	}
	list, err := scanHotels(rows)
	if err != nil {
		return nil, fmt.Errorf("hotels: list: %w", err)
	}
	return append([]Hotel{DefaultHotels[0]}, list...), nil
}

// ListByLocations returns hotels in any of the given locations.
func (d *SQLDirectory) ListByLocations(ctx context.Context, locations []string) ([]Hotel, error) {
	rows, err := d.db.QueryContext(ctx, selectHotels+` WHERE location = ANY($1) ORDER BY location, name`, pq.Array(locations))
	if err != nil {
		return nil, fmt.Errorf("hotels: list by locations: %w", err)
	}
	list, err := scanHotels(rows)
	if err != nil {
		return nil, fmt.Errorf("hotels: list by locations: %w", err)
	}
	return list, nil
}

func (d *SQLDirectory) Get(ctx context.Context, id string) (*Hotel, error) {
	if id == AllHotels {
		h := DefaultHotels[0]
		return &h, nil
	}
	var h Hotel
	err := d.db.QueryRowContext(ctx, selectHotels+` WHERE id = $1`, id).
		Scan(&h.ID, &h.Name, &h.Location, &h.City, &h.Country)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hotels: get %s: %w", id, err)
	}
	return &h, nil
}

func scanHotels(rows *sql.Rows) ([]Hotel, error) {
	defer rows.Close()
	out := []Hotel{}
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.City, &h.Country); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
