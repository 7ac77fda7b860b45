package widget

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

// Site types.
const (
	TypeHotel = "hotel"
	TypeChain = "chain"
)

// Config is the per-widget configuration parsed from embed attributes.
type Config struct {
	BookID   string `json:"bookId"`
	Type     string `json:"type"`
	Hotel    string `json:"hotel,omitempty"`
	Currency string `json:"currency,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Layout   string `json:"layout"`

	DefaultAdults   int `json:"defaultAdults"`
	DefaultChildren int `json:"defaultChildren"`
	DefaultRooms    int `json:"defaultRooms"`
	MaxAdults       int `json:"maxAdults"`
	MaxChildren     int `json:"maxChildren"`
	MaxRooms        int `json:"maxRooms"`
	MinChildAge     int `json:"minChildAge"`
	MaxChildAge     int `json:"maxChildAge"`

	BaseURL           string `json:"baseUrl,omitempty"`
	URLChain          string `json:"urlChain,omitempty"`
	URLHotel          string `json:"urlHotel,omitempty"`
	APIURL            string `json:"apiUrl,omitempty"`
	ExternalURL       string `json:"externalUrl,omitempty"`
	ExternalURLParams Params `json:"externalUrlParams,omitempty"`

	ShowPromoCode     bool `json:"showPromoCode"`
	ShowHotelSelector bool `json:"showHotelSelector"`
	ShowPrice         bool `json:"showPrice"`

	DateFormat string `json:"dateFormat"`
	MinDate    Date   `json:"minDate"`
	MaxDate    Date   `json:"maxDate"`
	Theme      string `json:"theme"`

	ShowCheckinOnline bool   `json:"showCheckinOnline"`
	CheckinOnlineURL  string `json:"checkinOnlineUrl,omitempty"`
	CheckinOnlineText string `json:"checkinOnlineText"`
}

// DefaultConfig returns the configuration used for absent attributes.
func DefaultConfig() Config {
	return Config{
		Type:              TypeHotel,
		Layout:            "inline",
		DefaultAdults:     2,
		DefaultChildren:   0,
		DefaultRooms:      1,
		MaxAdults:         4,
		MaxChildren:       4,
		MaxRooms:          5,
		MinChildAge:       0,
		MaxChildAge:       17,
		ShowPromoCode:     true,
		ShowPrice:         true,
		DateFormat:        FormatDMY,
		Theme:             "light",
		CheckinOnlineText: "Check-in Online",
	}
}

// ParseAttributes builds a Config from embed attributes. Keys may be given as
// dataset names (maxAdults) or attribute names (data-max-adults). Malformed
// values fall back to defaults; nothing here is fatal.
func ParseAttributes(attrs map[string]string, logger *logging.Logger) Config {
	if logger == nil {
		logger = logging.Default()
	}
	a := make(map[string]string, len(attrs))
	for k, v := range attrs {
		a[datasetKey(k)] = v
	}

	cfg := DefaultConfig()
	cfg.BookID = firstNonEmpty(a["bookId"], a["hotelId"])
	if a["type"] == TypeChain {
		cfg.Type = TypeChain
	}
	cfg.Hotel = a["hotel"]
	cfg.Currency = a["currency"]
	cfg.Locale = firstNonEmpty(a["locale"], a["language"])
	switch a["layout"] {
	case "column", "expand":
		cfg.Layout = a["layout"]
	}

	cfg.DefaultAdults = intAttr(a, "defaultAdults", cfg.DefaultAdults)
	cfg.DefaultChildren = intAttr(a, "defaultChildren", cfg.DefaultChildren)
	cfg.DefaultRooms = intAttr(a, "defaultRooms", cfg.DefaultRooms)
	cfg.MaxAdults = intAttr(a, "maxAdults", cfg.MaxAdults)
	cfg.MaxChildren = intAttr(a, "maxChildren", cfg.MaxChildren)
	cfg.MaxRooms = intAttr(a, "maxRooms", cfg.MaxRooms)
	cfg.MinChildAge = intAttr(a, "minChildAge", cfg.MinChildAge)
	cfg.MaxChildAge = intAttr(a, "maxChildAge", cfg.MaxChildAge)

	cfg.BaseURL = a["baseUrl"]
	cfg.URLChain = a["urlChain"]
	cfg.URLHotel = a["urlHotel"]
	cfg.APIURL = a["apiUrl"]
	cfg.ExternalURL = a["externalUrl"]
	if raw := a["externalUrlParams"]; raw != "" {
		params, err := ParseParamsJSON([]byte(raw))
		if err != nil {
			logger.Warn("widget: invalid externalUrlParams", "book_id", cfg.BookID, "error", err)
		} else {
			cfg.ExternalURLParams = params
		}
	}

	cfg.ShowPromoCode = a["showPromoCode"] != "false"
	cfg.ShowHotelSelector = cfg.Type == TypeChain
	cfg.ShowPrice = a["showPrice"] != "false"

	if f := a["dateFormat"]; f != "" {
		cfg.DateFormat = f
	}
	cfg.MinDate = boundAttr(a["minDate"])
	cfg.MaxDate = boundAttr(a["maxDate"])
	if a["theme"] == "dark" {
		cfg.Theme = "dark"
	}

	cfg.ShowCheckinOnline = a["showCheckinOnline"] == "true"
	cfg.CheckinOnlineURL = a["checkinOnlineUrl"]
	if text := a["checkinOnlineText"]; text != "" {
		cfg.CheckinOnlineText = text
	}

	if cfg.BookID == "" {
		logger.Warn("widget: data-book-id is required")
	}
	return cfg.normalized()
}

// normalized clamps limits so the occupancy invariants are satisfiable.
func (c Config) normalized() Config {
	if c.MaxAdults < 1 {
		c.MaxAdults = 1
	}
	if c.MaxChildren < 0 {
		c.MaxChildren = 0
	}
	if c.MaxRooms < 1 {
		c.MaxRooms = 1
	}
	if c.MinChildAge < 0 {
		c.MinChildAge = 0
	}
	if c.MaxChildAge < c.MinChildAge {
		c.MaxChildAge = c.MinChildAge
	}
	return c
}

// Limits returns the occupancy limits of the config.
func (c Config) Limits() Limits {
	return Limits{
		MaxAdults:   c.MaxAdults,
		MaxChildren: c.MaxChildren,
		MaxRooms:    c.MaxRooms,
		MinChildAge: c.MinChildAge,
		MaxChildAge: c.MaxChildAge,
	}
}

// RequiresHotel reports whether a search must name a hotel.
func (c Config) RequiresHotel() bool {
	return c.ShowHotelSelector || c.Type == TypeChain
}

// ShowsPrice applies the price display policy for the selected hotel.
func (c Config) ShowsPrice(selectedHotel string) bool {
	if !c.ShowPrice {
		return false
	}
	if c.Type == TypeHotel {
		return true
	}
	return c.Type == TypeChain && hotels.IsConcrete(selectedHotel)
}

// boundAttr parses a YYYY-MM-DD min/max attribute, leaving the bound unset
// when the value is missing, malformed or outside 1900..3000.
func boundAttr(raw string) Date {
	if raw == "" {
		return Date{}
	}
	d, err := ParseISODate(raw)
	if err != nil || d.Year <= 1900 || d.Year >= 3000 {
		return Date{}
	}
	return d
}

func intAttr(a map[string]string, key string, def int) int {
	raw := strings.TrimSpace(a[key])
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// datasetKey turns "data-max-adults" into "maxAdults".
func datasetKey(k string) string {
	k = strings.TrimPrefix(strings.TrimSpace(k), "data-")
	if !strings.Contains(k, "-") {
		return k
	}
	var b strings.Builder
	upper := false
	for _, r := range k {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
