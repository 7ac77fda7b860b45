package widget

import (
	"strconv"
	"strings"

	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
)

// SearchRequest is the validated input of a search.
type SearchRequest struct {
	Hotel      string
	CheckIn    Date
	CheckOut   Date
	Adults     int
	PromoCode  string
	Additional Params
}

// ValidateSearch checks the submit preconditions against state.
func ValidateSearch(cfg Config, st *State) (SearchRequest, error) {
	r := st.Dates
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return SearchRequest{}, ErrMissingDates
	}
	if !r.CheckOut.After(r.CheckIn) {
		return SearchRequest{}, ErrInvalidRange
	}
	if cfg.RequiresHotel() && strings.TrimSpace(st.SelectedHotel) == "" {
		return SearchRequest{}, ErrHotelRequired
	}
	return SearchRequest{
		Hotel:      st.SelectedHotel,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Adults:     st.Occupancy.TotalAdults(),
		PromoCode:  st.PromoCode,
		Additional: st.AdditionalParams,
	}, nil
}

// BuildSearchURL assembles the results URL. Only adults are counted in the
// adults parameter; children are not part of the destination contract.
func BuildSearchURL(cfg Config, req SearchRequest) string {
	var q queryBuilder
	if cfg.ExternalURL != "" {
		for _, kv := range cfg.ExternalURLParams {
			q.add(kv.Key, kv.Value)
		}
	}
	if hotels.IsConcrete(req.Hotel) {
		q.add("hotel", req.Hotel)
	}
	q.add("entry", req.CheckIn.Format(FormatISO))
	q.add("exit", req.CheckOut.Format(FormatISO))
	q.add("adults", strconv.Itoa(req.Adults))
	if req.PromoCode != "" {
		q.add("promo", req.PromoCode)
	}
	for _, kv := range req.Additional {
		q.add(kv.Key, kv.Value)
	}
	return searchBase(cfg, req.Hotel) + "?" + q.String()
}

func searchBase(cfg Config, hotel string) string {
	switch {
	case cfg.ExternalURL != "":
		return cfg.ExternalURL
	case cfg.BaseURL != "":
		return cfg.BaseURL
	case !hotels.IsConcrete(hotel):
		return cfg.URLChain
	default:
		return cfg.URLHotel + "/" + hotel
	}
}

// SanitizePromo strips everything but ASCII letters and digits.
func SanitizePromo(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
