package widget

import (
	"math"
	"time"
)

// PriceQuoter returns the nightly price shown on a calendar day.
type PriceQuoter interface {
	Quote(day Date, hotelID string) int
}

// HeuristicQuoter is the built-in placeholder pricing: a base rate with
// weekend, summer and per-hotel multipliers.
type HeuristicQuoter struct {
	Base             float64
	Weekend          float64
	Summer           float64
	HotelMultipliers map[string]float64
}

// DefaultQuoter returns the standard heuristic.
func DefaultQuoter() HeuristicQuoter {
	return HeuristicQuoter{
		Base:    120,
		Weekend: 1.3,
		Summer:  1.5,
		HotelMultipliers: map[string]float64{
			"playa-garden-selection-hotel-spa": 1.2,
		},
	}
}

func (q HeuristicQuoter) Quote(day Date, hotelID string) int {
	price := q.Base
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		price *= q.Weekend
	}
	if day.Month >= time.May && day.Month <= time.August {
		price *= q.Summer
	}
	if m, ok := q.HotelMultipliers[hotelID]; ok {
		price *= m
	}
	return int(math.Round(price))
}
