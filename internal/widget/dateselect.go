package widget

import (
	"time"

	"github.com/muzammilspiralsols/widget-booking/internal/i18n"
)

// SelectionState is the phase of the check-in/check-out picker.
type SelectionState int

const (
	NoSelection SelectionState = iota
	AwaitingCheckout
	RangeComplete
)

func (s SelectionState) String() string {
	switch s {
	case AwaitingCheckout:
		return "awaiting_checkout"
	case RangeComplete:
		return "range_complete"
	default:
		return "no_selection"
	}
}

func (s SelectionState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SelectionState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "awaiting_checkout":
		*s = AwaitingCheckout
	case "range_complete":
		*s = RangeComplete
	default:
		*s = NoSelection
	}
	return nil
}

// DateRange is the stored selection. CheckOut is only ever set together with
// an earlier CheckIn.
type DateRange struct {
	CheckIn           Date `json:"check_in"`
	CheckOut          Date `json:"check_out"`
	SelectingCheckOut bool `json:"selecting_check_out"`
}

func (r DateRange) State() SelectionState {
	switch {
	case r.CheckIn.IsZero():
		return NoSelection
	case r.CheckOut.IsZero():
		return AwaitingCheckout
	default:
		return RangeComplete
	}
}

// Nights returns the length of a complete range, or 0.
func (r DateRange) Nights() int {
	if r.State() != RangeComplete {
		return 0
	}
	return r.CheckIn.DaysUntil(r.CheckOut)
}

func (r *DateRange) startAt(d Date) {
	r.CheckIn = d
	r.CheckOut = Date{}
	r.SelectingCheckOut = true
}

// Bounds are the effective selectable limits, both inclusive.
type Bounds struct {
	Min Date `json:"min"`
	Max Date `json:"max"`
}

// EffectiveBounds resolves configured limits against today. The minimum is
// the later of minDate and today; an unset maxDate means one year from today.
func EffectiveBounds(minDate, maxDate, today Date) Bounds {
	b := Bounds{Min: today, Max: maxDate}
	if !minDate.IsZero() && minDate.After(today) {
		b.Min = minDate
	}
	if b.Max.IsZero() {
		b.Max = today.AddMonths(12)
	}
	return b
}

func (b Bounds) Contains(d Date) bool {
	return !d.Before(b.Min) && !d.After(b.Max)
}

// Transition describes the effect of one Select call.
type Transition struct {
	From      SelectionState `json:"from"`
	To        SelectionState `json:"to"`
	Date      Date           `json:"date"`
	Debounced bool           `json:"debounced,omitempty"`
}

// Selector drives DateRange transitions. It owns the debounce record so two
// widgets never share it.
type Selector struct {
	Window  time.Duration `json:"window"`
	LastDay Date          `json:"last_day"`
	LastAt  time.Time     `json:"last_at"`
}

// Select applies a day click to r.
func (s *Selector) Select(r *DateRange, candidate Date, bounds Bounds, now time.Time) (Transition, error) {
	from := r.State()
	tr := Transition{From: from, To: from, Date: candidate}

	if s.Window > 0 && !s.LastDay.IsZero() && candidate.Equal(s.LastDay) {
		if elapsed := now.Sub(s.LastAt); elapsed >= 0 && elapsed < s.Window {
			tr.Debounced = true
			return tr, nil
		}
	}

	if !bounds.Contains(candidate) {
		return tr, ErrDateOutOfRange
	}

	switch from {
	case AwaitingCheckout:
		if !candidate.After(r.CheckIn) {
			return tr, ErrCheckoutBeforeCheckin
		}
		r.CheckOut = candidate
		r.SelectingCheckOut = false
	default:
		// a click on a complete range starts over
		r.startAt(candidate)
	}

	s.LastDay = candidate
	s.LastAt = now
	tr.To = r.State()
	return tr, nil
}

// DayStatus classifies one calendar day against the selection.
type DayStatus struct {
	Disabled bool
	CheckIn  bool
	CheckOut bool
	InRange  bool
	Nights   int
}

func (r DateRange) Classify(day Date, bounds Bounds) DayStatus {
	st := DayStatus{
		Disabled: !bounds.Contains(day),
		CheckIn:  !r.CheckIn.IsZero() && day.Equal(r.CheckIn),
		CheckOut: !r.CheckOut.IsZero() && day.Equal(r.CheckOut),
	}
	if r.State() == RangeComplete {
		st.InRange = day.After(r.CheckIn) && day.Before(r.CheckOut)
	}
	if r.State() == AwaitingCheckout && !st.Disabled && day.After(r.CheckIn) {
		st.Nights = r.CheckIn.DaysUntil(day)
	}
	return st
}

// QuickDate is a one-tap date shortcut.
type QuickDate struct {
	Option string `json:"option"`
	Key    string `json:"key"`
	Date   Date   `json:"date"`
}

// QuickDates lists the shortcut dates relative to today.
func QuickDates(today Date) []QuickDate {
	return []QuickDate{
		{Option: "today", Key: i18n.KeyToday, Date: today},
		{Option: "tomorrow", Key: i18n.KeyTomorrow, Date: today.AddDays(1)},
		{Option: "next-week", Key: i18n.KeyNextWeek, Date: today.AddDays(7)},
		{Option: "next-month", Key: i18n.KeyNextMonth, Date: today.AddMonths(1)},
	}
}
