package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

// NewRoot builds the widgetctl command tree. now supplies "today".
func NewRoot(now func() time.Time) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "widgetctl",
		Short:         "Booking widget tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newURLCmd())
	cmd.AddCommand(newCalendarCmd(now))
	cmd.AddCommand(newCheckCmd())
	return cmd
}

// parseStay reads a check-in/check-out pair; both may be empty.
func parseStay(checkIn, checkOut string) (widget.DateRange, error) {
	var r widget.DateRange
	if checkIn != "" {
		d, err := widget.ParseISODate(checkIn)
		if err != nil {
			return r, fmt.Errorf("check-in: %w", err)
		}
		r.CheckIn = d
	}
	if checkOut != "" {
		d, err := widget.ParseISODate(checkOut)
		if err != nil {
			return r, fmt.Errorf("check-out: %w", err)
		}
		r.CheckOut = d
	}
	return r, nil
}

func parseParams(pairs []string) (widget.Params, error) {
	var out widget.Params
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("param %q: expected key=value", kv)
		}
		out.Set(key, value)
	}
	return out, nil
}
