package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

func newCheckCmd() *cobra.Command {
	var (
		apiURL            string
		hotel             string
		checkIn, checkOut string
		timeout           time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Ask an availability endpoint about a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				return errors.New("--api-url is required")
			}
			stay, err := parseStay(checkIn, checkOut)
			if err != nil {
				return err
			}
			if stay.CheckIn.IsZero() || stay.CheckOut.IsZero() {
				return errors.New("--check-in and --check-out are required")
			}

			gate := widget.NewGate(timeout, logging.NewWithWriter("error", cmd.ErrOrStderr()))
			ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
			defer cancel()
			res := gate.Check(ctx, apiURL, widget.AvailabilityQuery{HotelID: hotel, CheckIn: stay.CheckIn, CheckOut: stay.CheckOut})

			out := cmd.OutOrStdout()
			switch res.Outcome {
			case widget.OutcomeAvailable:
				fmt.Fprintf(out, "available (%dms)\n", res.Duration.Milliseconds())
			case widget.OutcomeUnavailable:
				msg := res.Message
				if msg == "" {
					msg = "no rooms"
				}
				fmt.Fprintf(out, "unavailable: %s\n", msg)
			default:
				return fmt.Errorf("check failed: %w", res.Err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&apiURL, "api-url", "", "availability API base URL")
	f.StringVar(&hotel, "hotel", "", "hotel id (default all-hotels)")
	f.StringVar(&checkIn, "check-in", "", "check-in date YYYY-MM-DD")
	f.StringVar(&checkOut, "check-out", "", "check-out date YYYY-MM-DD")
	f.DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}
