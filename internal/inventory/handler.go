package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

type checker interface {
	Check(ctx context.Context, hotelID string, from, to widget.Date) (Result, error)
}

// Handler serves GET /api/disponibilidad.
type Handler struct {
	service checker
	logger  *logging.Logger
}

func NewHandler(service checker, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// GetAvailability answers an availability check.
// Query params:
//   - hotel_id: hotel id, or all-hotels
//   - fecha_inicio: check-in, YYYY-MM-DD
//   - fecha_fin: check-out, YYYY-MM-DD
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hotelID := strings.TrimSpace(q.Get("hotel_id"))
	if hotelID == "" {
		http.Error(w, `{"error": "hotel_id required"}`, http.StatusBadRequest)
		return
	}
	from, err := widget.ParseISODate(q.Get("fecha_inicio"))
	if err != nil {
		http.Error(w, `{"error": "invalid fecha_inicio, use YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}
	to, err := widget.ParseISODate(q.Get("fecha_fin"))
	if err != nil {
		http.Error(w, `{"error": "invalid fecha_fin, use YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	res, err := h.service.Check(r.Context(), hotelID, from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			http.Error(w, `{"error": "fecha_fin must be 1 to 30 nights after fecha_inicio"}`, http.StatusBadRequest)
			return
		}
		h.logger.Error("inventory: availability check failed", "hotel_id", hotelID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.logger.Error("inventory: encode availability", "hotel_id", hotelID, "error", err)
	}
}
