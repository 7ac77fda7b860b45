package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyUpdate(t *testing.T) {
	w, _, _ := newTestWidget(t, DefaultConfig())

	res := w.ApplyUpdate(UpdateData{
		IDHotel:   "hotel-two",
		PromoCode: "HOST-1",
		CheckIn:   "15-08-2024",
		CheckOut:  "18-08-2024",
		MaxDate:   "31-12-2024",
	})
	assert.Equal(t, []string{"idHotel", "promoCode", "checkIn", "checkOut", "maxDate"}, res.Applied)
	assert.Empty(t, res.Ignored)

	st := w.State()
	assert.Equal(t, "hotel-two", st.SelectedHotel)
	assert.Equal(t, "HOST1", st.PromoCode)
	assert.Equal(t, d(time.August, 15), st.Dates.CheckIn)
	assert.Equal(t, d(time.August, 18), st.Dates.CheckOut)
	assert.Equal(t, d(time.August, 1), st.CurrentMonth)
	assert.Equal(t, d(time.December, 31), w.Bounds().Max)
}

func TestApplyUpdateIgnoresBadFields(t *testing.T) {
	w, _, _ := newTestWidget(t, DefaultConfig())

	res := w.ApplyUpdate(UpdateData{CheckIn: "2024-08-15", MinDate: "31-02-2024", IDHotel: "hotel-one"})
	assert.Equal(t, []string{"idHotel"}, res.Applied)
	assert.Equal(t, []string{"checkIn", "minDate"}, res.Ignored)
	assert.True(t, w.State().Dates.CheckIn.IsZero())
}

func TestApplyUpdateCheckInClearsEarlierCheckOut(t *testing.T) {
	w, clock, _ := newTestWidget(t, DefaultConfig())
	selectStay(t, w, clock, d(time.August, 15), d(time.August, 18))

	w.ApplyUpdate(UpdateData{CheckIn: "16-08-2024"})
	r := w.State().Dates
	assert.Equal(t, d(time.August, 16), r.CheckIn)
	assert.Equal(t, d(time.August, 18), r.CheckOut)

	w.ApplyUpdate(UpdateData{CheckIn: "20-08-2024"})
	r = w.State().Dates
	assert.Equal(t, d(time.August, 20), r.CheckIn)
	assert.True(t, r.CheckOut.IsZero())
	assert.True(t, r.SelectingCheckOut)
}

func TestApplyUpdateCheckOutNeedsLaterCheckIn(t *testing.T) {
	w, _, _ := newTestWidget(t, DefaultConfig())

	res := w.ApplyUpdate(UpdateData{CheckOut: "18-08-2024"})
	assert.Equal(t, []string{"checkOut"}, res.Ignored)

	res = w.ApplyUpdate(UpdateData{CheckIn: "18-08-2024", CheckOut: "18-08-2024"})
	assert.Equal(t, []string{"checkIn"}, res.Applied)
	assert.Equal(t, []string{"checkOut"}, res.Ignored)
	assert.Equal(t, AwaitingCheckout, w.State().Dates.State())
}

func TestApplyUpdateOpenCalendar(t *testing.T) {
	w, _, _ := newTestWidget(t, DefaultConfig())
	w.ApplyUpdate(UpdateData{OpenCalendar: true})
	st := w.State()
	assert.True(t, st.CalendarOpen)
	assert.Equal(t, d(time.June, 1), st.CurrentMonth)

	w.ApplyUpdate(UpdateData{CheckIn: "10-09-2024", OpenCalendar: true})
	assert.Equal(t, d(time.September, 1), w.State().CurrentMonth)
}
