package widget

import (
	"fmt"
	"time"

	"github.com/muzammilspiralsols/widget-booking/internal/i18n"
)

// CalendarCells is the fixed grid size: six weeks of seven days.
const CalendarCells = 42

// Translator resolves display text.
type Translator interface {
	T(key, locale string) string
}

// calendarTranslator is the optional richer interface used for headers.
type calendarTranslator interface {
	Translator
	MonthName(month time.Month, locale string) string
	WeekdayNames(locale string) []string
}

// Cell is one day of the calendar grid.
type Cell struct {
	Date       Date   `json:"date"`
	Day        int    `json:"day"`
	OtherMonth bool   `json:"other_month,omitempty"`
	Today      bool   `json:"today,omitempty"`
	Disabled   bool   `json:"disabled,omitempty"`
	CheckIn    bool   `json:"check_in,omitempty"`
	CheckOut   bool   `json:"check_out,omitempty"`
	InRange    bool   `json:"in_range,omitempty"`
	Nights     int    `json:"nights,omitempty"`
	Price      int    `json:"price,omitempty"`
	PriceLabel string `json:"price_label,omitempty"`
}

// CalendarMonth is a rendered month.
type CalendarMonth struct {
	Month    Date     `json:"month"`
	Header   string   `json:"header,omitempty"`
	Weekdays []string `json:"weekdays,omitempty"`
	Info     string   `json:"info,omitempty"`
	Cells    []Cell   `json:"cells"`
}

// CalendarRequest carries everything BuildCalendar reads.
type CalendarRequest struct {
	Month  Date
	Range  DateRange
	Bounds Bounds
	Today  Date

	// Prices are only computed when ShowPrice is set and Quoter is non-nil.
	ShowPrice bool
	Quoter    PriceQuoter
	HotelID   string
	Currency  string

	Locale     string
	Translator Translator
}

// BuildCalendar derives the 42-cell grid for the month containing req.Month,
// starting on the Sunday on or before the 1st.
func BuildCalendar(req CalendarRequest) CalendarMonth {
	first := req.Month.FirstOfMonth()
	start := first.AddDays(-int(first.Weekday()))

	cal := CalendarMonth{Month: first, Cells: make([]Cell, 0, CalendarCells)}
	for i := 0; i < CalendarCells; i++ {
		day := start.AddDays(i)
		st := req.Range.Classify(day, req.Bounds)
		cell := Cell{
			Date:       day,
			Day:        day.Day,
			OtherMonth: day.Month != first.Month,
			Today:      day.Equal(req.Today),
			Disabled:   st.Disabled,
			CheckIn:    st.CheckIn,
			CheckOut:   st.CheckOut,
			InRange:    st.InRange,
			Nights:     st.Nights,
		}
		if req.ShowPrice && req.Quoter != nil && !cell.Disabled {
			cell.Price = req.Quoter.Quote(day, req.HotelID)
			cell.PriceLabel = i18n.FormatPrice(cell.Price, req.Currency)
		}
		cal.Cells = append(cal.Cells, cell)
	}

	if req.Translator != nil {
		cal.Info = calendarInfo(req.Range, req.Locale, req.Translator)
		if ct, ok := req.Translator.(calendarTranslator); ok {
			cal.Header = fmt.Sprintf("%s %d", ct.MonthName(first.Month, req.Locale), first.Year)
			cal.Weekdays = ct.WeekdayNames(req.Locale)
		}
	}
	return cal
}

func calendarInfo(r DateRange, locale string, tr Translator) string {
	switch r.State() {
	case AwaitingCheckout:
		return tr.T(i18n.KeySelectCheckout, locale)
	case RangeComplete:
		n := r.Nights()
		key := i18n.KeyNightsSelected
		if n == 1 {
			key = i18n.KeyNightSelected
		}
		return fmt.Sprintf("%d %s", n, tr.T(key, locale))
	default:
		return tr.T(i18n.KeySelectCheckin, locale)
	}
}
