// Package session keeps widget instances alive between HTTP requests. A
// session is one embedded widget on one visitor's page; its snapshot lives in
// a Store and mutations are serialised per session by the Manager.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session: not found")

// Store persists widget snapshots by session id.
type Store interface {
	Get(ctx context.Context, id string) (*widget.Snapshot, error)
	Save(ctx context.Context, id string, snap widget.Snapshot) error
	Delete(ctx context.Context, id string) error
}

func encode(snap widget.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("session: encode snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*widget.Snapshot, error) {
	var snap widget.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("session: decode snapshot: %w", err)
	}
	return &snap, nil
}
