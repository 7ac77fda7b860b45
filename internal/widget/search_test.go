package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay() DateRange {
	return DateRange{CheckIn: d(time.August, 15), CheckOut: d(time.August, 18)}
}

func TestBuildSearchURLChainWithHotel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = TypeChain
	cfg.BaseURL = "https://book.example.com/search"
	req := SearchRequest{
		Hotel:     "playa-garden-selection-hotel-spa",
		CheckIn:   d(time.August, 15),
		CheckOut:  d(time.August, 18),
		Adults:    2,
		PromoCode: "SUMMER24",
	}
	assert.Equal(t,
		"https://book.example.com/search?hotel=playa-garden-selection-hotel-spa&entry=2024-08-15&exit=2024-08-18&adults=2&promo=SUMMER24",
		BuildSearchURL(cfg, req))
}

func TestBuildSearchURLAllHotelsOmitsHotel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URLChain = "https://chain.example.com/results"
	cfg.URLHotel = "https://chain.example.com/hotel"
	req := SearchRequest{Hotel: "all-hotels", CheckIn: d(time.August, 15), CheckOut: d(time.August, 18), Adults: 3}

	assert.Equal(t, "https://chain.example.com/results?entry=2024-08-15&exit=2024-08-18&adults=3", BuildSearchURL(cfg, req))

	req.Hotel = "hotel-one"
	assert.Equal(t, "https://chain.example.com/hotel/hotel-one?hotel=hotel-one&entry=2024-08-15&exit=2024-08-18&adults=3", BuildSearchURL(cfg, req))
}

func TestBuildSearchURLExternal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://ignored.example.com"
	cfg.ExternalURL = "https://engine.example.com/go"
	cfg.ExternalURLParams = Params{{Key: "partner", Value: "acme"}, {Key: "lang", Value: "es"}}
	req := SearchRequest{
		CheckIn:    d(time.August, 15),
		CheckOut:   d(time.August, 18),
		Adults:     2,
		Additional: Params{{Key: "utm_source", Value: "mail list"}, {Key: "partner", Value: "other"}},
	}
	assert.Equal(t,
		"https://engine.example.com/go?partner=acme&lang=es&entry=2024-08-15&exit=2024-08-18&adults=2&utm_source=mail+list&partner=other",
		BuildSearchURL(cfg, req))

	cfg.ExternalURL = ""
	assert.Equal(t,
		"https://ignored.example.com?entry=2024-08-15&exit=2024-08-18&adults=2&utm_source=mail+list&partner=other",
		BuildSearchURL(cfg, req), "external params only apply with an external url")
}

func TestValidateSearch(t *testing.T) {
	cfg := DefaultConfig()
	st := &State{Occupancy: NewOccupancy(cfg)}

	_, err := ValidateSearch(cfg, st)
	assert.ErrorIs(t, err, ErrMissingDates)

	st.Dates = DateRange{CheckIn: d(time.August, 15), SelectingCheckOut: true}
	_, err = ValidateSearch(cfg, st)
	assert.ErrorIs(t, err, ErrMissingDates)

	st.Dates = DateRange{CheckIn: d(time.August, 15), CheckOut: d(time.August, 15)}
	_, err = ValidateSearch(cfg, st)
	assert.ErrorIs(t, err, ErrInvalidRange)

	st.Dates = stay()
	req, err := ValidateSearch(cfg, st)
	require.NoError(t, err)
	assert.Equal(t, 2, req.Adults)

	cfg.Type = TypeChain
	_, err = ValidateSearch(cfg, st)
	assert.ErrorIs(t, err, ErrHotelRequired)
	st.SelectedHotel = "all-hotels"
	_, err = ValidateSearch(cfg, st)
	assert.NoError(t, err)
}

func TestValidateSearchCountsOnlyAdults(t *testing.T) {
	cfg := DefaultConfig()
	st := &State{Occupancy: NewOccupancy(cfg), Dates: stay()}
	require.NoError(t, st.Occupancy.AddRoom())
	require.NoError(t, st.Occupancy.ChangeCounter(0, FieldChildren, 1))

	req, err := ValidateSearch(cfg, st)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Adults)
}

func TestSanitizePromo(t *testing.T) {
	assert.Equal(t, "SUMMER24", SanitizePromo(" SUMMER-24! "))
	assert.Equal(t, "", SanitizePromo("ñ€"))
}
