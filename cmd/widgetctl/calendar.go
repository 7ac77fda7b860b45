package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/muzammilspiralsols/widget-booking/internal/i18n"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

func newCalendarCmd(now func() time.Time) *cobra.Command {
	var (
		month             string
		locale            string
		hotel             string
		currency          string
		checkIn, checkOut string
		prices            bool
	)
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a calendar month with nightly prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := widget.Today(now(), time.UTC)
			shown := today
			if month != "" {
				m, err := widget.ParseMonth(month)
				if err != nil {
					return fmt.Errorf("month: %w", err)
				}
				shown = m
			}
			stay, err := parseStay(checkIn, checkOut)
			if err != nil {
				return err
			}
			cal := widget.BuildCalendar(widget.CalendarRequest{
				Month:      shown,
				Range:      stay,
				Bounds:     widget.EffectiveBounds(widget.Date{}, widget.Date{}, today),
				Today:      today,
				ShowPrice:  prices,
				Quoter:     widget.DefaultQuoter(),
				HotelID:    hotel,
				Currency:   currency,
				Locale:     locale,
				Translator: i18n.NewTranslator(),
			})
			printCalendar(cmd.OutOrStdout(), cal, prices)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&month, "month", "", "month to show, YYYY-MM (default current)")
	f.StringVar(&locale, "locale", "en", "display locale")
	f.StringVar(&hotel, "hotel", "", "hotel id used for pricing")
	f.StringVar(&currency, "currency", "EUR", "price currency")
	f.StringVar(&checkIn, "check-in", "", "highlight check-in YYYY-MM-DD")
	f.StringVar(&checkOut, "check-out", "", "highlight check-out YYYY-MM-DD")
	f.BoolVar(&prices, "prices", false, "show nightly prices")
	return cmd
}

// printCalendar renders the grid. Selected days are bracketed, days inside
// the stay are marked with +, and unselectable days with -.
func printCalendar(w io.Writer, cal widget.CalendarMonth, prices bool) {
	width := 6
	if prices {
		width = 12
	}
	fmt.Fprintln(w, cal.Header)
	for _, name := range cal.Weekdays {
		fmt.Fprintf(w, "%-*s", width, name)
	}
	fmt.Fprintln(w)

	for i, c := range cal.Cells {
		fmt.Fprintf(w, "%-*s", width, cellText(c, prices))
		if i%7 == 6 {
			fmt.Fprintln(w)
		}
	}
	if cal.Info != "" {
		fmt.Fprintln(w, cal.Info)
	}
}

func cellText(c widget.Cell, prices bool) string {
	if c.OtherMonth {
		return ""
	}
	day := strconv.Itoa(c.Day)
	switch {
	case c.CheckIn || c.CheckOut:
		day = "[" + day + "]"
	case c.InRange:
		day += "+"
	case c.Disabled:
		day += "-"
	}
	if prices && c.PriceLabel != "" {
		day += " " + c.PriceLabel
	}
	return day
}
