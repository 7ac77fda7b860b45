package hotels

import "context"

// DefaultHotels is the built-in directory used when no database is configured.
var DefaultHotels = []Hotel{
	{ID: AllHotels, Name: "All Hotels", Location: "All Locations", City: "All", Country: "All"},
	{ID: "playa-garden-selection-hotel-spa", Name: "Playa Garden Selection Hotel & Spa", Location: "Playa de Palma", City: "Palma", Country: "Spain"},
	{ID: "alcudia-garden-aparthotel", Name: "Alcudia Garden Aparthotel", Location: "Alcudia", City: "Alcudia", Country: "Spain"},
	{ID: "palm-garden-apartments", Name: "Palm Garden Apartments", Location: "Playa de Palma", City: "Palma", Country: "Spain"},
	{ID: "green-garden-aparthotel", Name: "Green Garden Aparthotel", Location: "Alcudia", City: "Alcudia", Country: "Spain"},
	{ID: "cala-millor-garden-hotel", Name: "Cala Millor Garden Hotel", Location: "Cala Millor", City: "Cala Millor", Country: "Spain"},
	{ID: "nivia-born-boutique-hotel", Name: "Nivia Born Boutique Hotel", Location: "Palma Centro", City: "Palma", Country: "Spain"},
}

// StaticDirectory serves a fixed hotel list.
type StaticDirectory struct {
	hotels []Hotel
}

// NewStaticDirectory copies list into a directory. A nil list uses DefaultHotels.
func NewStaticDirectory(list []Hotel) *StaticDirectory {
	if list == nil {
		list = DefaultHotels
	}
	return &StaticDirectory{hotels: append([]Hotel(nil), list...)}
}

func (d *StaticDirectory) List(_ context.Context) ([]Hotel, error) {
	return append([]Hotel(nil), d.hotels...), nil
}

// Get returns the hotel with id, or nil when none matches.
func (d *StaticDirectory) Get(_ context.Context, id string) (*Hotel, error) {
	for _, h := range d.hotels {
		if h.ID == id {
			h := h
			return &h, nil
		}
	}
	return nil, nil
}
