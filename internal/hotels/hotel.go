// Package hotels holds the hotel directory the widget selects from.
package hotels

import (
	"context"
	"strings"
)

// AllHotels is the sentinel id meaning "search every property".
const AllHotels = "all-hotels"

// Hotel is a selectable property.
type Hotel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Group is a set of hotels sharing a location.
type Group struct {
	Location string  `json:"location"`
	Hotels   []Hotel `json:"hotels"`
}

// Directory lists and resolves hotels.
type Directory interface {
	List(ctx context.Context) ([]Hotel, error)
	Get(ctx context.Context, id string) (*Hotel, error)
}

// IsConcrete reports whether id names a real hotel rather than nothing or the
// all-hotels sentinel.
func IsConcrete(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != AllHotels
}

// GroupByLocation groups hotels by location in first-seen order. The
// all-hotels sentinel is skipped.
func GroupByLocation(list []Hotel) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, h := range list {
		if h.ID == AllHotels {
			continue
		}
		i, ok := index[h.Location]
		if !ok {
			i = len(groups)
			index[h.Location] = i
			groups = append(groups, Group{Location: h.Location})
		}
		groups[i].Hotels = append(groups[i].Hotels, h)
	}
	return groups
}

// Groups loads the directory and groups it by location.
func Groups(ctx context.Context, dir Directory) ([]Group, error) {
	list, err := dir.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByLocation(list), nil
}

// Filter keeps hotels whose name or location fuzzy-matches term, or whose name
// contains it. Matching is case-insensitive; an empty term keeps everything.
func Filter(list []Hotel, term string) []Hotel {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	out := make([]Hotel, 0, len(list))
	for _, h := range list {
		name := strings.ToLower(h.Name)
		location := strings.ToLower(h.Location)
		if fuzzyMatch(name, term) || fuzzyMatch(location, term) || strings.Contains(name, term) {
			out = append(out, h)
		}
	}
	return out
}

// fuzzyMatch reports whether term is a subsequence of text.
func fuzzyMatch(text, term string) bool {
	if term == "" {
		return true
	}
	t := []rune(term)
	i := 0
	for _, r := range text {
		if r == t[i] {
			i++
			if i == len(t) {
				return true
			}
		}
	}
	return false
}
