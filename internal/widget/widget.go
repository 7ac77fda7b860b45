// Package widget implements the booking-search widget: date range selection,
// the calendar grid, room occupancy, search URL construction and the
// availability gate that runs before navigation.
package widget

import (
	"errors"
	"fmt"
	"time"

	"github.com/muzammilspiralsols/widget-booking/internal/i18n"
)

// Event types pushed to listeners.
const (
	EventBannerShown     = "banner.shown"
	EventBannerDismissed = "banner.dismissed"
	EventNavigate        = "navigate"
)

// Event is a notification about something the client should render.
type Event struct {
	Type    string  `json:"type"`
	Banner  *Banner `json:"banner,omitempty"`
	URL     string  `json:"url,omitempty"`
	DelayMS int64   `json:"delay_ms,omitempty"`
}

// Options are the environment a widget runs in.
type Options struct {
	Translator     Translator
	Quoter         PriceQuoter
	Location       *time.Location
	Now            func() time.Time
	DebounceWindow time.Duration
	BannerTTLs     BannerTTLs
	FallbackDelay  time.Duration
	// CheckTimeout bounds one availability check. A checking flag older
	// than CheckTimeout plus staleCheckMargin is treated as abandoned.
	CheckTimeout time.Duration
	OnEvent      func(Event)
}

const (
	defaultDebounceWindow = 200 * time.Millisecond
	staleCheckMargin      = 5 * time.Second
)

func (o Options) withDefaults() Options {
	if o.Translator == nil {
		o.Translator = i18n.NewTranslator()
	}
	if o.Quoter == nil {
		o.Quoter = DefaultQuoter()
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = defaultDebounceWindow
	}
	if o.FallbackDelay <= 0 {
		o.FallbackDelay = 2 * time.Second
	}
	if o.CheckTimeout <= 0 {
		o.CheckTimeout = defaultGateTimeout
	}
	return o
}

// RejectedError is returned for input the widget refused. Banner is the
// notice that was shown for it.
type RejectedError struct {
	Err    error
	Banner Banner
}

func (e *RejectedError) Error() string { return e.Err.Error() }
func (e *RejectedError) Unwrap() error { return e.Err }

// Widget owns one instance's configuration and state. It is not safe for
// concurrent use; callers serialise access per instance.
type Widget struct {
	cfg      Config
	state    State
	selector Selector
	banners  *Banners
	opts     Options
	version  int64
}

// New creates a widget with fresh state.
func New(cfg Config, opts Options) *Widget {
	w := newWidget(cfg, opts)
	w.state = State{
		SelectedHotel:    cfg.Hotel,
		Occupancy:        NewOccupancy(w.cfg),
		CurrentMonth:     w.Today().FirstOfMonth(),
		AdditionalParams: Params{},
	}
	return w
}

// Restore rebuilds a widget from a snapshot.
func Restore(snap Snapshot, opts Options) *Widget {
	w := newWidget(snap.Config, opts)
	w.state = snap.State.clone()
	w.state.Occupancy.Limits = w.cfg.Limits()
	if w.state.CurrentMonth.IsZero() {
		w.state.CurrentMonth = w.Today().FirstOfMonth()
	}
	window := w.selector.Window
	w.selector = snap.Selector
	if window > 0 {
		w.selector.Window = window
	}
	w.version = snap.Version
	w.banners.restore(snap.Banners)
	return w
}

func newWidget(cfg Config, opts Options) *Widget {
	opts = opts.withDefaults()
	w := &Widget{
		cfg:      cfg.normalized(),
		selector: Selector{Window: opts.DebounceWindow},
		opts:     opts,
	}
	w.banners = newBanners(opts.BannerTTLs, opts.Now, func(b Banner) {
		w.emit(Event{Type: EventBannerDismissed, Banner: &b})
	})
	return w
}

// Close stops pending banner timers.
func (w *Widget) Close() { w.banners.Close() }

func (w *Widget) Config() Config { return w.cfg }
func (w *Widget) State() State   { return w.state.clone() }
func (w *Widget) Version() int64 { return w.version }

// Snapshot captures the widget for persistence.
func (w *Widget) Snapshot() Snapshot {
	return Snapshot{
		Version:  w.version,
		Config:   w.cfg,
		State:    w.state.clone(),
		Selector: w.selector,
		Banners:  w.banners.Active(),
	}
}

// Commit bumps the version and returns the snapshot to persist.
func (w *Widget) Commit() Snapshot {
	w.version++
	return w.Snapshot()
}

func (w *Widget) Today() Date { return Today(w.opts.Now(), w.opts.Location) }

func (w *Widget) Bounds() Bounds {
	return EffectiveBounds(w.cfg.MinDate, w.cfg.MaxDate, w.Today())
}

func (w *Widget) Banners() []Banner { return w.banners.Active() }

// DismissBanner removes a banner before its timer fires.
func (w *Widget) DismissBanner(kind BannerKind) bool { return w.banners.Dismiss(kind) }

// SelectDate applies a calendar click.
func (w *Widget) SelectDate(d Date) (Transition, error) {
	tr, err := w.selector.Select(&w.state.Dates, d, w.Bounds(), w.opts.Now())
	if err != nil {
		return tr, w.reject(err)
	}
	if tr.To == RangeComplete && !tr.Debounced {
		w.state.CalendarOpen = false
	}
	return tr, nil
}

// SelectQuickDate applies one of the QuickDates shortcuts.
func (w *Widget) SelectQuickDate(option string) (Transition, error) {
	for _, q := range QuickDates(w.Today()) {
		if q.Option == option {
			return w.SelectDate(q.Date)
		}
	}
	return Transition{}, fmt.Errorf("%w: %q", ErrUnknownQuickDate, option)
}

func (w *Widget) NextMonth() { w.state.CurrentMonth = w.state.CurrentMonth.FirstOfMonth().AddMonths(1) }
func (w *Widget) PrevMonth() { w.state.CurrentMonth = w.state.CurrentMonth.FirstOfMonth().AddMonths(-1) }

// ShowMonth moves the calendar cursor to the month containing d.
func (w *Widget) ShowMonth(d Date) {
	w.state.CurrentMonth = d.FirstOfMonth()
	w.state.CalendarOpen = true
}

// Calendar renders the month under the cursor.
func (w *Widget) Calendar() CalendarMonth {
	return BuildCalendar(CalendarRequest{
		Month:      w.state.CurrentMonth,
		Range:      w.state.Dates,
		Bounds:     w.Bounds(),
		Today:      w.Today(),
		ShowPrice:  w.cfg.ShowsPrice(w.state.SelectedHotel),
		Quoter:     w.opts.Quoter,
		HotelID:    w.state.SelectedHotel,
		Currency:   w.cfg.Currency,
		Locale:     w.cfg.Locale,
		Translator: w.opts.Translator,
	})
}

func (w *Widget) AddRoom() error {
	return w.reject(w.state.Occupancy.AddRoom())
}

func (w *Widget) RemoveRoom(index int) error {
	return w.reject(w.state.Occupancy.RemoveRoom(index))
}

func (w *Widget) ChangeCounter(index int, field CounterField, direction int) error {
	return w.reject(w.state.Occupancy.ChangeCounter(index, field, direction))
}

func (w *Widget) SetChildAge(roomIndex, childIndex, age int) error {
	return w.state.Occupancy.SetChildAge(roomIndex, childIndex, age)
}

func (w *Widget) SelectHotel(id string) { w.state.SelectedHotel = id }

// SetPromoCode stores the alphanumeric part of code and returns it.
func (w *Widget) SetPromoCode(code string) string {
	w.state.PromoCode = SanitizePromo(code)
	return w.state.PromoCode
}

// UpdateParams merges extra query parameters, last write winning.
func (w *Widget) UpdateParams(p Params) { w.state.AdditionalParams.Merge(p) }

// UpdateParamsJSON merges a JSON object of parameters. Invalid JSON is
// ignored and reported as false.
func (w *Widget) UpdateParamsJSON(raw []byte) bool {
	p, err := ParseParamsJSON(raw)
	if err != nil {
		return false
	}
	w.UpdateParams(p)
	return true
}

// View returns the client read model.
func (w *Widget) View() View {
	occ := w.state.Occupancy
	return View{
		State:            w.state.clone(),
		Selection:        w.state.Dates.State(),
		Nights:           w.state.Dates.Nights(),
		TotalAdults:      occ.TotalAdults(),
		TotalChildren:    occ.TotalChildren(),
		RoomCount:        occ.RoomCount(),
		OccupancySummary: occ.Summary(w.opts.Translator, w.cfg.Locale),
		Bounds:           w.Bounds(),
		Banners:          w.banners.Active(),
		SubmitDisabled:   w.state.Checking,
		ShowPrice:        w.cfg.ShowsPrice(w.state.SelectedHotel),
		HotelRequired:    w.cfg.RequiresHotel(),
		ShowPromoCode:    w.cfg.ShowPromoCode,
	}
}

// showBanner shows a banner and notifies listeners.
func (w *Widget) showBanner(kind BannerKind, message string) Banner {
	b := w.banners.Show(kind, message)
	w.emit(Event{Type: EventBannerShown, Banner: &b})
	return b
}

// reject surfaces a banner for user-facing rejections and wraps err with it.
func (w *Widget) reject(err error) error {
	if err == nil {
		return nil
	}
	kind, key, ok := Rejection(err)
	if !ok {
		return err
	}
	b := w.showBanner(kind, w.opts.Translator.T(key, w.cfg.Locale))
	return &RejectedError{Err: err, Banner: b}
}

func (w *Widget) emit(e Event) {
	if w.opts.OnEvent != nil {
		w.opts.OnEvent(e)
	}
}

// SearchOutcomeKind is how a search ended.
type SearchOutcomeKind string

const (
	SearchNavigate SearchOutcomeKind = "navigate"
	SearchBlocked  SearchOutcomeKind = "blocked"
	SearchFallback SearchOutcomeKind = "fallback"
	SearchRejected SearchOutcomeKind = "rejected"
)

// SearchPlan is a validated search waiting on its availability check.
type SearchPlan struct {
	URL    string
	APIURL string
	Query  AvailabilityQuery
}

// NeedsCheck reports whether an availability endpoint is configured.
func (p SearchPlan) NeedsCheck() bool { return p.APIURL != "" }

// SearchOutcome tells the client what to do after a search.
type SearchOutcome struct {
	Kind         SearchOutcomeKind  `json:"outcome"`
	URL          string             `json:"url,omitempty"`
	Delay        time.Duration      `json:"-"`
	DelayMS      int64              `json:"delay_ms,omitempty"`
	Banner       *Banner            `json:"banner,omitempty"`
	Availability AvailabilityResult `json:"-"`
}

// BeginSearch validates the state and builds the destination. When a check
// is needed the widget is marked as checking until FinishSearch.
func (w *Widget) BeginSearch() (SearchPlan, error) {
	if w.state.Checking {
		if !w.checkAbandoned() {
			return SearchPlan{}, ErrSearchInProgress
		}
		w.state.Checking, w.state.CheckingSince = false, time.Time{}
	}
	req, err := ValidateSearch(w.cfg, &w.state)
	if err != nil {
		return SearchPlan{}, w.reject(err)
	}
	plan := SearchPlan{
		URL:    BuildSearchURL(w.cfg, req),
		APIURL: w.cfg.APIURL,
		Query:  AvailabilityQuery{HotelID: req.Hotel, CheckIn: req.CheckIn, CheckOut: req.CheckOut},
	}
	if plan.NeedsCheck() {
		w.state.Checking = true
		w.state.CheckingSince = w.opts.Now()
	}
	return plan, nil
}

// checkAbandoned reports whether the in-flight check outlived its timeout,
// as happens when the process finishing it died or could not persist.
func (w *Widget) checkAbandoned() bool {
	if w.state.CheckingSince.IsZero() {
		return true
	}
	return w.opts.Now().Sub(w.state.CheckingSince) > w.opts.CheckTimeout+staleCheckMargin
}

// FinishSearch applies the availability result to a plan.
func (w *Widget) FinishSearch(plan SearchPlan, res AvailabilityResult) SearchOutcome {
	w.state.Checking, w.state.CheckingSince = false, time.Time{}
	out := SearchOutcome{Availability: res}

	switch res.Outcome {
	case OutcomeUnavailable:
		msg := res.Message
		if msg == "" {
			msg = w.opts.Translator.T(i18n.KeyNotAvailable, w.cfg.Locale)
		}
		b := w.showBanner(BannerAvailability, msg)
		out.Kind, out.Banner = SearchBlocked, &b
		return out
	case OutcomeFailed:
		b := w.showBanner(BannerAvailability, w.opts.Translator.T(i18n.KeyCheckFailed, w.cfg.Locale))
		out.Kind, out.Banner = SearchFallback, &b
		out.URL, out.Delay = plan.URL, w.opts.FallbackDelay
	default:
		out.Kind, out.URL = SearchNavigate, plan.URL
	}
	out.DelayMS = out.Delay.Milliseconds()
	w.emit(Event{Type: EventNavigate, URL: out.URL, DelayMS: out.DelayMS})
	return out
}

// RejectedOutcome is the outcome reported when BeginSearch refuses to run.
func RejectedOutcome(err error) SearchOutcome {
	out := SearchOutcome{Kind: SearchRejected}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		out.Banner = &rejected.Banner
	}
	return out
}
