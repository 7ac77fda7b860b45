package widget

import (
	"fmt"

	"github.com/muzammilspiralsols/widget-booking/internal/i18n"
)

// CounterField names a per-room counter.
type CounterField string

const (
	FieldAdults   CounterField = "adults"
	FieldChildren CounterField = "children"
)

// Limits bound the occupancy model.
type Limits struct {
	MaxAdults   int `json:"max_adults"`
	MaxChildren int `json:"max_children"`
	MaxRooms    int `json:"max_rooms"`
	MinChildAge int `json:"min_child_age"`
	MaxChildAge int `json:"max_child_age"`
}

// MaxGuests is the per-room cap on adults plus children.
func (l Limits) MaxGuests() int { return l.MaxAdults + l.MaxChildren }

// Room is one unit of occupancy. len(ChildAges) always equals Children.
type Room struct {
	Adults    int   `json:"adults"`
	Children  int   `json:"children"`
	ChildAges []int `json:"child_ages"`
}

// Occupancy is the ordered, never-empty room list.
type Occupancy struct {
	Rooms  []Room `json:"rooms"`
	Limits Limits `json:"-"`
}

// NewOccupancy seeds rooms from the configured defaults, clamped to limits.
func NewOccupancy(cfg Config) Occupancy {
	l := cfg.Limits()
	rooms := clamp(cfg.DefaultRooms, 1, l.MaxRooms)
	adults := clamp(cfg.DefaultAdults, 1, l.MaxAdults)
	children := clamp(cfg.DefaultChildren, 0, l.MaxChildren)

	o := Occupancy{Limits: l, Rooms: make([]Room, 0, rooms)}
	for i := 0; i < rooms; i++ {
		o.Rooms = append(o.Rooms, Room{
			Adults:    adults,
			Children:  children,
			ChildAges: resizeAges(nil, children, l.MinChildAge),
		})
	}
	return o
}

func (o *Occupancy) AddRoom() error {
	if len(o.Rooms) >= o.Limits.MaxRooms {
		return ErrRoomLimit
	}
	o.Rooms = append(o.Rooms, Room{Adults: 1, ChildAges: []int{}})
	return nil
}

func (o *Occupancy) RemoveRoom(index int) error {
	if index < 0 || index >= len(o.Rooms) {
		return fmt.Errorf("%w: %d", ErrRoomIndex, index)
	}
	if len(o.Rooms) == 1 {
		return ErrLastRoom
	}
	o.Rooms = append(o.Rooms[:index], o.Rooms[index+1:]...)
	return nil
}

// ChangeCounter steps one counter of a room by direction (+1 or -1). The room
// is left untouched when the result would break a bound or the per-room cap.
func (o *Occupancy) ChangeCounter(index int, field CounterField, direction int) error {
	if index < 0 || index >= len(o.Rooms) {
		return fmt.Errorf("%w: %d", ErrRoomIndex, index)
	}
	if direction != 1 && direction != -1 {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}
	room := &o.Rooms[index]

	switch field {
	case FieldAdults:
		next := room.Adults + direction
		if next < 1 || next > o.Limits.MaxAdults {
			return ErrCounterBounds
		}
		if next+room.Children > o.Limits.MaxGuests() {
			return ErrGuestLimit
		}
		room.Adults = next
	case FieldChildren:
		next := room.Children + direction
		if next < 0 || next > o.Limits.MaxChildren {
			return ErrCounterBounds
		}
		if room.Adults+next > o.Limits.MaxGuests() {
			return ErrGuestLimit
		}
		room.Children = next
		room.ChildAges = resizeAges(room.ChildAges, next, o.Limits.MinChildAge)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

func (o *Occupancy) SetChildAge(roomIndex, childIndex, age int) error {
	if roomIndex < 0 || roomIndex >= len(o.Rooms) {
		return fmt.Errorf("%w: %d", ErrRoomIndex, roomIndex)
	}
	room := &o.Rooms[roomIndex]
	if childIndex < 0 || childIndex >= len(room.ChildAges) {
		return fmt.Errorf("%w: %d", ErrChildIndex, childIndex)
	}
	if age < o.Limits.MinChildAge || age > o.Limits.MaxChildAge {
		return fmt.Errorf("%w: %d", ErrChildAge, age)
	}
	room.ChildAges[childIndex] = age
	return nil
}

func (o Occupancy) TotalAdults() int {
	n := 0
	for _, r := range o.Rooms {
		n += r.Adults
	}
	return n
}

func (o Occupancy) TotalChildren() int {
	n := 0
	for _, r := range o.Rooms {
		n += r.Children
	}
	return n
}

func (o Occupancy) RoomCount() int { return len(o.Rooms) }

// Summary renders "2 adults, 1 child · 1 room" in the given locale.
func (o Occupancy) Summary(tr Translator, locale string) string {
	word := func(n int, one, many string) string {
		if n == 1 {
			return tr.T(one, locale)
		}
		return tr.T(many, locale)
	}
	adults, children, rooms := o.TotalAdults(), o.TotalChildren(), o.RoomCount()
	text := fmt.Sprintf("%d %s", adults, word(adults, i18n.KeyAdult, i18n.KeyAdults))
	if children > 0 {
		text += fmt.Sprintf(", %d %s", children, word(children, i18n.KeyChild, i18n.KeyChildren))
	}
	return text + fmt.Sprintf(" · %d %s", rooms, word(rooms, i18n.KeyRoom, i18n.KeyRooms))
}

// Valid reports whether every room satisfies the invariants.
func (o Occupancy) Valid() bool {
	if len(o.Rooms) == 0 || len(o.Rooms) > o.Limits.MaxRooms {
		return false
	}
	for _, r := range o.Rooms {
		if r.Adults < 1 || r.Adults > o.Limits.MaxAdults ||
			r.Children < 0 || r.Children > o.Limits.MaxChildren ||
			r.Adults+r.Children > o.Limits.MaxGuests() ||
			len(r.ChildAges) != r.Children {
			return false
		}
	}
	return true
}

// resizeAges pads with minAge or truncates from the end, keeping existing ages.
func resizeAges(ages []int, n, minAge int) []int {
	out := make([]int, n)
	copied := copy(out, ages)
	for i := copied; i < n; i++ {
		out[i] = minAge
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
