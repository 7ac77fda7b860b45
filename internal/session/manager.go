package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

// EventState is published after every committed mutation.
const EventState = "state"

// Manager owns the live widgets of this process. Each operation runs under a
// per-session lock against the latest stored snapshot, so one session is
// single-threaded while distinct sessions never contend.
type Manager struct {
	store  Store
	hub    *Hub
	opts   widget.Options
	logger *logging.Logger

	mu   sync.Mutex
	live *cache.Cache
}

type entry struct {
	mu sync.Mutex
	w  *widget.Widget
}

// NewManager builds a manager. Live widgets idle for longer than idle are
// dropped from memory and rebuilt from the store on next use.
func NewManager(store Store, hub *Hub, opts widget.Options, idle time.Duration, logger *logging.Logger) *Manager {
	if store == nil {
		panic("session: store cannot be nil")
	}
	if hub == nil {
		hub = NewHub(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	live := cache.New(idle, idle/2)
	live.OnEvicted(func(_ string, v any) {
		e := v.(*entry)
		e.mu.Lock()
		if e.w != nil {
			e.w.Close()
			e.w = nil
		}
		e.mu.Unlock()
	})
	return &Manager{store: store, hub: hub, opts: opts, logger: logger, live: live}
}

func (m *Manager) Hub() *Hub { return m.hub }

// Create starts a session for cfg and returns its id and first view.
func (m *Manager) Create(ctx context.Context, cfg widget.Config, params widget.Params) (string, widget.View, error) {
	id := uuid.NewString()
	w := widget.New(cfg, m.optionsFor(id))
	w.UpdateParams(params)
	view := w.View()

	if err := m.store.Save(ctx, id, w.Commit()); err != nil {
		w.Close()
		return "", widget.View{}, fmt.Errorf("session: create: %w", err)
	}

	m.mu.Lock()
	m.live.SetDefault(id, &entry{w: w})
	m.mu.Unlock()

	m.logger.Info("session: created", "session_id", id, "book_id", cfg.BookID)
	return id, view, nil
}

// Do runs fn against the session's widget and persists the result. The
// snapshot is saved even when fn returns an error, since rejections still
// show banners.
func (m *Manager) Do(ctx context.Context, id string, fn func(*widget.Widget) error) error {
	e := m.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := m.load(ctx, id, e); err != nil {
		return err
	}
	fnErr := fn(e.w)
	if err := m.store.Save(ctx, id, e.w.Commit()); err != nil {
		return fmt.Errorf("session: save %s: %w", id, err)
	}
	m.hub.Publish(id, widget.Event{Type: EventState})
	return fnErr
}

// Read runs fn against the session's widget without persisting.
func (m *Manager) Read(ctx context.Context, id string, fn func(*widget.Widget) error) error {
	e := m.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := m.load(ctx, id, e); err != nil {
		return err
	}
	return fn(e.w)
}

// Search validates and submits the session's search. The availability check
// runs outside the session lock; meanwhile the widget reports checking and a
// second submit fails with widget.ErrSearchInProgress.
func (m *Manager) Search(ctx context.Context, id string, gate *widget.Gate) (widget.SearchOutcome, error) {
	var plan widget.SearchPlan
	err := m.Do(ctx, id, func(w *widget.Widget) error {
		var err error
		plan, err = w.BeginSearch()
		return err
	})
	if err != nil {
		return widget.RejectedOutcome(err), err
	}

	if gate == nil {
		gate = widget.NewGate(m.opts.CheckTimeout, m.logger)
	}
	res := gate.CheckPlan(ctx, plan)

	// the checking flag must clear even if the caller went away
	var out widget.SearchOutcome
	err = m.Do(context.WithoutCancel(ctx), id, func(w *widget.Widget) error {
		out = w.FinishSearch(plan, res)
		return nil
	})
	return out, err
}

// Delete ends a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if _, err := m.store.Get(ctx, id); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	m.live.Delete(id)
	m.mu.Unlock()
	m.logger.Info("session: deleted", "session_id", id)
	return nil
}

// Live reports how many widgets are held in memory.
func (m *Manager) Live() int { return m.live.ItemCount() }

func (m *Manager) entryFor(id string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.live.Get(id); ok {
		e := v.(*entry)
		m.live.SetDefault(id, e)
		return e
	}
	e := &entry{}
	m.live.SetDefault(id, e)
	return e
}

// load brings e up to date with the stored snapshot. Another replica may
// have written a newer version since this process last touched the session.
func (m *Manager) load(ctx context.Context, id string, e *entry) error {
	snap, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) && e.w != nil {
			e.w.Close()
			e.w = nil
		}
		return err
	}
	if e.w != nil && e.w.Version() == snap.Version {
		return nil
	}
	if e.w != nil {
		e.w.Close()
	}
	e.w = widget.Restore(*snap, m.optionsFor(id))
	return nil
}

func (m *Manager) optionsFor(id string) widget.Options {
	opts := m.opts
	base := m.opts.OnEvent
	opts.OnEvent = func(e widget.Event) {
		if base != nil {
			base(e)
		}
		m.hub.Publish(id, e)
	}
	return opts
}
