package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

type locationLister interface {
	ListByLocations(ctx context.Context, locations []string) ([]hotels.Hotel, error)
}

// HotelsHandler serves the hotel selector data.
type HotelsHandler struct {
	directory hotels.Directory
	logger    *logging.Logger
}

func NewHotelsHandler(directory hotels.Directory, logger *logging.Logger) *HotelsHandler {
	if directory == nil {
		directory = hotels.NewStaticDirectory(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HotelsHandler{directory: directory, logger: logger}
}

type hotelsResponse struct {
	Groups []hotels.Group `json:"groups"`
}

// List handles GET /widget/hotels. q fuzzy-filters names and locations;
// repeated location parameters narrow the list first.
func (h *HotelsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	locations := r.URL.Query()["location"]

	if q == "" && len(locations) == 0 {
		groups, err := hotels.Groups(r.Context(), h.directory)
		if err != nil {
			h.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, hotelsResponse{Groups: groups})
		return
	}

	list, err := h.list(r.Context(), locations)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotelsResponse{Groups: hotels.GroupByLocation(hotels.Filter(list, q))})
}

func (h *HotelsHandler) list(ctx context.Context, locations []string) ([]hotels.Hotel, error) {
	if len(locations) == 0 {
		return h.directory.List(ctx)
	}
	if lister, ok := h.directory.(locationLister); ok {
		return lister.ListByLocations(ctx, locations)
	}
	all, err := h.directory.List(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(locations))
	for _, l := range locations {
		wanted[l] = true
	}
	out := make([]hotels.Hotel, 0, len(all))
	for _, hotel := range all {
		if wanted[hotel.Location] {
			out = append(out, hotel)
		}
	}
	return out, nil
}

func (h *HotelsHandler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("hotels: list failed", "error", err)
	jsonError(w, "failed to load hotels", http.StatusInternalServerError)
}
