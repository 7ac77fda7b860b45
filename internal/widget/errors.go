package widget

import (
	"errors"

	"github.com/muzammilspiralsols/widget-booking/internal/i18n"
)

// Input rejections. State is never changed when one is returned.
var (
	ErrDateOutOfRange        = errors.New("date_out_of_range")
	ErrCheckoutBeforeCheckin = errors.New("checkout_before_checkin")
	ErrRoomLimit             = errors.New("room_limit_reached")
	ErrLastRoom              = errors.New("last_room")
	ErrRoomIndex             = errors.New("room_index_out_of_range")
	ErrChildIndex            = errors.New("child_index_out_of_range")
	ErrCounterBounds         = errors.New("counter_out_of_bounds")
	ErrGuestLimit            = errors.New("max_guests_exceeded")
	ErrChildAge              = errors.New("child_age_out_of_range")
	ErrInvalidField          = errors.New("invalid_counter_field")
	ErrInvalidDirection      = errors.New("invalid_counter_direction")
	ErrUnknownQuickDate      = errors.New("unknown_quick_date")
)

// Submit precondition failures.
var (
	ErrMissingDates     = errors.New("missing_dates")
	ErrInvalidRange     = errors.New("invalid_date_range")
	ErrHotelRequired    = errors.New("hotel_required")
	ErrSearchInProgress = errors.New("search_in_progress")
)

type rejection struct {
	err  error
	kind BannerKind
	key  string
}

var rejections = []rejection{
	{ErrDateOutOfRange, BannerDateValidation, i18n.KeyDateOutOfRange},
	{ErrCheckoutBeforeCheckin, BannerDateValidation, i18n.KeyCheckoutAfterCheckin},
	{ErrRoomLimit, BannerRoomLimit, i18n.KeyMaxRoomsReached},
	{ErrLastRoom, BannerRoomLimit, i18n.KeyLastRoom},
	{ErrCounterBounds, BannerGuestLimit, i18n.KeyMaxGuestsExceeded},
	{ErrGuestLimit, BannerGuestLimit, i18n.KeyMaxGuestsExceeded},
	{ErrMissingDates, BannerAlert, i18n.KeyAlertDates},
	{ErrInvalidRange, BannerAlert, i18n.KeyCheckoutAfterCheckin},
	{ErrHotelRequired, BannerAlert, i18n.KeyAlertHotel},
	{ErrSearchInProgress, BannerAlert, i18n.KeySearchInProgress},
}

// Rejection returns the banner kind and translation key for a user-facing
// error. ok is false for errors that have no banner.
func Rejection(err error) (kind BannerKind, key string, ok bool) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.kind, r.key, true
		}
	}
	return "", "", false
}

// RejectionKind names err for metrics and API responses.
func RejectionKind(err error) string {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.err.Error()
		}
	}
	return "other"
}
