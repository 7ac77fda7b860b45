package widget

// UpdateData is a host-page update. Every field is optional; empty fields
// are skipped and an unparsable field is ignored without affecting the rest.
type UpdateData struct {
	IDHotel      string `json:"idHotel,omitempty"`
	PromoCode    string `json:"promoCode,omitempty"`
	CheckIn      string `json:"checkIn,omitempty"`
	CheckOut     string `json:"checkOut,omitempty"`
	MinDate      string `json:"minDate,omitempty"`
	MaxDate      string `json:"maxDate,omitempty"`
	OpenCalendar bool   `json:"openCalendar,omitempty"`
}

// UpdateResult lists which fields took effect.
type UpdateResult struct {
	Applied []string `json:"applied"`
	Ignored []string `json:"ignored"`
}

func (r *UpdateResult) mark(field string, ok bool) {
	if ok {
		r.Applied = append(r.Applied, field)
	} else {
		r.Ignored = append(r.Ignored, field)
	}
}

// ApplyUpdate applies a host update. Dates are DD-MM-YYYY.
func (w *Widget) ApplyUpdate(u UpdateData) UpdateResult {
	res := UpdateResult{Applied: []string{}, Ignored: []string{}}

	if u.IDHotel != "" {
		w.SelectHotel(u.IDHotel)
		res.mark("idHotel", true)
	}
	if u.PromoCode != "" {
		w.SetPromoCode(u.PromoCode)
		res.mark("promoCode", true)
	}
	if u.CheckIn != "" {
		res.mark("checkIn", w.hostCheckIn(u.CheckIn))
	}
	if u.CheckOut != "" {
		res.mark("checkOut", w.hostCheckOut(u.CheckOut))
	}
	if u.MinDate != "" {
		d, err := ParseDMY(u.MinDate)
		if err == nil {
			w.cfg.MinDate = d
		}
		res.mark("minDate", err == nil)
	}
	if u.MaxDate != "" {
		d, err := ParseDMY(u.MaxDate)
		if err == nil {
			w.cfg.MaxDate = d
		}
		res.mark("maxDate", err == nil)
	}
	if u.OpenCalendar {
		month := w.Today()
		if !w.state.Dates.CheckIn.IsZero() {
			month = w.state.Dates.CheckIn
		}
		w.ShowMonth(month)
		res.mark("openCalendar", true)
	}
	return res
}

// hostCheckIn sets check-in, dropping a check-out that is no longer after it.
func (w *Widget) hostCheckIn(raw string) bool {
	d, err := ParseDMY(raw)
	if err != nil {
		return false
	}
	r := &w.state.Dates
	if !r.CheckOut.IsZero() && r.CheckOut.After(d) {
		r.CheckIn = d
		r.SelectingCheckOut = false
	} else {
		r.startAt(d)
	}
	w.state.CurrentMonth = d.FirstOfMonth()
	return true
}

// hostCheckOut only applies when it completes a valid range.
func (w *Widget) hostCheckOut(raw string) bool {
	d, err := ParseDMY(raw)
	if err != nil {
		return false
	}
	r := &w.state.Dates
	if r.CheckIn.IsZero() || !d.After(r.CheckIn) {
		return false
	}
	r.CheckOut = d
	r.SelectingCheckOut = false
	return true
}
