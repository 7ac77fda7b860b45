package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

func newURLCmd() *cobra.Command {
	var (
		cfg               = widget.DefaultConfig()
		hotel             string
		checkIn, checkOut string
		adults            int
		promo             string
		params            []string
		externalParams    []string
	)
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Build the search URL for a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			stay, err := parseStay(checkIn, checkOut)
			if err != nil {
				return err
			}
			extra, err := parseParams(params)
			if err != nil {
				return err
			}
			if cfg.ExternalURLParams, err = parseParams(externalParams); err != nil {
				return err
			}
			cfg.ShowHotelSelector = cfg.Type == widget.TypeChain

			st := widget.State{
				SelectedHotel:    hotel,
				Dates:            stay,
				Occupancy:        widget.Occupancy{Rooms: []widget.Room{{Adults: adults, ChildAges: []int{}}}},
				PromoCode:        widget.SanitizePromo(promo),
				AdditionalParams: extra,
			}
			req, err := widget.ValidateSearch(cfg, &st)
			if err != nil {
				return fmt.Errorf("cannot search: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), widget.BuildSearchURL(cfg, req))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Type, "type", widget.TypeHotel, "widget type (hotel|chain)")
	f.StringVar(&cfg.BaseURL, "base-url", "", "results page base URL")
	f.StringVar(&cfg.URLChain, "url-chain", "", "chain results URL")
	f.StringVar(&cfg.URLHotel, "url-hotel", "", "hotel results URL prefix")
	f.StringVar(&cfg.ExternalURL, "external-url", "", "external booking engine URL")
	f.StringArrayVar(&externalParams, "external-param", nil, "external engine parameter key=value (repeatable)")
	f.StringVar(&hotel, "hotel", "", "hotel id")
	f.StringVar(&checkIn, "check-in", "", "check-in date YYYY-MM-DD")
	f.StringVar(&checkOut, "check-out", "", "check-out date YYYY-MM-DD")
	f.IntVar(&adults, "adults", 2, "number of adults")
	f.StringVar(&promo, "promo", "", "promo code")
	f.StringArrayVar(&params, "param", nil, "additional parameter key=value (repeatable)")
	return cmd
}
