package widget

import "time"

// State is everything a visitor has chosen in one widget instance.
type State struct {
	SelectedHotel    string    `json:"selected_hotel,omitempty"`
	Dates            DateRange `json:"dates"`
	Occupancy        Occupancy `json:"occupancy"`
	PromoCode        string    `json:"promo_code,omitempty"`
	CurrentMonth     Date      `json:"current_month"`
	AdditionalParams Params    `json:"additional_params"`
	CalendarOpen     bool      `json:"calendar_open,omitempty"`
	Checking         bool      `json:"checking,omitempty"`
	CheckingSince    time.Time `json:"checking_since,omitzero"`
}

func (s State) clone() State {
	out := s
	out.Occupancy.Rooms = make([]Room, len(s.Occupancy.Rooms))
	for i, r := range s.Occupancy.Rooms {
		r.ChildAges = append([]int{}, r.ChildAges...)
		out.Occupancy.Rooms[i] = r
	}
	out.AdditionalParams = append(Params(nil), s.AdditionalParams...)
	return out
}

// Snapshot is the persisted form of a widget.
type Snapshot struct {
	Version  int64    `json:"version"`
	Config   Config   `json:"config"`
	State    State    `json:"state"`
	Selector Selector `json:"selector"`
	Banners  []Banner `json:"banners"`
}

// View is the read model returned to clients.
type View struct {
	State            State          `json:"state"`
	Selection        SelectionState `json:"selection"`
	Nights           int            `json:"nights"`
	TotalAdults      int            `json:"total_adults"`
	TotalChildren    int            `json:"total_children"`
	RoomCount        int            `json:"room_count"`
	OccupancySummary string         `json:"occupancy_summary"`
	Bounds           Bounds         `json:"bounds"`
	Banners          []Banner       `json:"banners"`
	SubmitDisabled   bool           `json:"submit_disabled"`
	ShowPrice        bool           `json:"show_price"`
	HotelRequired    bool           `json:"hotel_required"`
	ShowPromoCode    bool           `json:"show_promo_code"`
}
