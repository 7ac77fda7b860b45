package widget

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BannerKind groups banners; at most one banner of each kind is shown.
type BannerKind string

const (
	BannerDateValidation BannerKind = "date_validation"
	BannerGuestLimit     BannerKind = "guest_limit"
	BannerRoomLimit      BannerKind = "room_limit"
	BannerAvailability   BannerKind = "availability"
	BannerAlert          BannerKind = "alert"
)

// Banner is a transient user-facing message.
type Banner struct {
	ID        string     `json:"id"`
	Kind      BannerKind `json:"kind"`
	Message   string     `json:"message"`
	ShownAt   time.Time  `json:"shown_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// BannerTTLs maps each kind to its auto-dismiss interval.
type BannerTTLs map[BannerKind]time.Duration

// DefaultBannerTTLs gives validation banners one lifetime and the
// availability banner another.
func DefaultBannerTTLs(validation, availability time.Duration) BannerTTLs {
	return BannerTTLs{
		BannerDateValidation: validation,
		BannerGuestLimit:     validation,
		BannerRoomLimit:      validation,
		BannerAlert:          validation,
		BannerAvailability:   availability,
	}
}

type stopper interface {
	Stop() bool
}

// Banners holds the active banners of one widget. Each banner has its own
// dismissal timer; showing a banner of the same kind cancels the old timer,
// and a timer whose banner is already gone does nothing.
type Banners struct {
	mu        sync.Mutex
	items     map[BannerKind]Banner
	timers    map[BannerKind]stopper
	ttls      BannerTTLs
	now       func() time.Time
	afterFunc func(time.Duration, func()) stopper
	onDismiss func(Banner)
}

func newBanners(ttls BannerTTLs, now func() time.Time, onDismiss func(Banner)) *Banners {
	if ttls == nil {
		ttls = DefaultBannerTTLs(3*time.Second, 5*time.Second)
	}
	return &Banners{
		items:  make(map[BannerKind]Banner),
		timers: make(map[BannerKind]stopper),
		ttls:   ttls,
		now:    now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		onDismiss: onDismiss,
	}
}

// Show replaces any banner of the same kind and schedules its dismissal.
func (b *Banners) Show(kind BannerKind, message string) Banner {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked(kind)
	now := b.now()
	ttl := b.ttls[kind]
	banner := Banner{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		ShownAt:   now,
		ExpiresAt: now.Add(ttl),
	}
	b.items[kind] = banner
	b.scheduleLocked(banner, ttl)
	return banner
}

// Dismiss removes the banner of kind, reporting whether one was shown.
func (b *Banners) Dismiss(kind BannerKind) bool {
	b.mu.Lock()
	banner, ok := b.items[kind]
	if ok {
		b.stopLocked(kind)
		delete(b.items, kind)
	}
	b.mu.Unlock()

	if ok && b.onDismiss != nil {
		b.onDismiss(banner)
	}
	return ok
}

// Active lists unexpired banners, oldest first.
func (b *Banners) Active() []Banner {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	out := make([]Banner, 0, len(b.items))
	for _, banner := range b.items {
		if now.Before(banner.ExpiresAt) {
			out = append(out, banner)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShownAt.Before(out[j].ShownAt) })
	return out
}

// restore loads persisted banners, rescheduling the ones still live.
func (b *Banners) restore(list []Banner) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for _, banner := range list {
		remaining := banner.ExpiresAt.Sub(now)
		if remaining <= 0 {
			continue
		}
		b.items[banner.Kind] = banner
		b.scheduleLocked(banner, remaining)
	}
}

// Close cancels every pending timer without firing dismissals.
func (b *Banners) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for kind := range b.timers {
		b.stopLocked(kind)
	}
}

func (b *Banners) scheduleLocked(banner Banner, after time.Duration) {
	id, kind := banner.ID, banner.Kind
	b.timers[kind] = b.afterFunc(after, func() { b.expire(kind, id) })
}

func (b *Banners) stopLocked(kind BannerKind) {
	if t, ok := b.timers[kind]; ok {
		t.Stop()
		delete(b.timers, kind)
	}
}

func (b *Banners) expire(kind BannerKind, id string) {
	b.mu.Lock()
	banner, ok := b.items[kind]
	if !ok || banner.ID != id {
		b.mu.Unlock()
		return
	}
	delete(b.items, kind)
	delete(b.timers, kind)
	b.mu.Unlock()

	if b.onDismiss != nil {
		b.onDismiss(banner)
	}
}
