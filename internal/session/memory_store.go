package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

// MemoryStore keeps encoded snapshots in process. Used when no Redis is
// configured; sessions do not survive a restart or span replicas.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*widget.Snapshot, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return decode(v.([]byte))
}

// Save stores snap and restarts its expiry.
func (s *MemoryStore) Save(_ context.Context, id string, snap widget.Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	s.cache.Set(id, data, s.ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

// Len reports how many sessions are held.
func (s *MemoryStore) Len() int { return s.cache.ItemCount() }
