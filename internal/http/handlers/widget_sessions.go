package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
	"github.com/muzammilspiralsols/widget-booking/internal/observability/metrics"
	"github.com/muzammilspiralsols/widget-booking/internal/session"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

// WidgetHandler serves the widget session API.
type WidgetHandler struct {
	manager   *session.Manager
	gate      *widget.Gate
	tokens    *session.TokenIssuer
	directory hotels.Directory
	metrics   *metrics.WidgetMetrics
	logger    *logging.Logger
}

// WidgetHandlerConfig wires a WidgetHandler. Only Manager is required.
type WidgetHandlerConfig struct {
	Manager   *session.Manager
	Gate      *widget.Gate
	Tokens    *session.TokenIssuer
	Directory hotels.Directory
	Metrics   *metrics.WidgetMetrics
	Logger    *logging.Logger
}

func NewWidgetHandler(cfg WidgetHandlerConfig) *WidgetHandler {
	if cfg.Manager == nil {
		panic("handlers: session manager required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Gate == nil {
		cfg.Gate = widget.NewGate(0, cfg.Logger)
	}
	return &WidgetHandler{
		manager:   cfg.Manager,
		gate:      cfg.Gate,
		tokens:    cfg.Tokens,
		directory: cfg.Directory,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
}

type createSessionRequest struct {
	Attributes       map[string]string `json:"attributes"`
	AdditionalParams json.RawMessage   `json:"additionalParams,omitempty"`
}

type createSessionResponse struct {
	SessionID string      `json:"session_id"`
	Token     string      `json:"token,omitempty"`
	State     widget.View `json:"state"`
}

type rejectionResponse struct {
	Error  string         `json:"error"`
	Banner *widget.Banner `json:"banner,omitempty"`
	State  *widget.View   `json:"state,omitempty"`
}

// CreateSession handles POST /widget/sessions.
func (h *WidgetHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg := widget.ParseAttributes(req.Attributes, h.logger)
	params, err := paramsFromRaw(req.AdditionalParams)
	if err != nil {
		// the embed ignores an unparsable additional-params attribute
		h.logger.Warn("widget: ignoring additionalParams", "book_id", cfg.BookID, "error", err)
		params = nil
	}

	id, view, err := h.manager.Create(r.Context(), cfg, params)
	if err != nil {
		h.logger.Error("widget: create session failed", "book_id", cfg.BookID, "error", err)
		jsonError(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	token, err := h.tokens.Issue(id)
	if err != nil {
		h.logger.Error("widget: issue token failed", "session_id", id, "error", err)
		jsonError(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveSessionCreated()

	writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: id, Token: token, State: view})
}

// GetSession handles GET /widget/sessions/{id}.
func (h *WidgetHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var view widget.View
	err := h.manager.Read(r.Context(), id, func(wd *widget.Widget) error {
		view = wd.View()
		return nil
	})
	if err != nil {
		h.writeError(w, id, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles DELETE /widget/sessions/{id}.
func (h *WidgetHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Delete(r.Context(), id); err != nil {
		h.writeError(w, id, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectDate handles POST /widget/sessions/{id}/dates.
func (h *WidgetHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	day, err := widget.ParseISODate(req.Date)
	if err != nil {
		jsonError(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(wd *widget.Widget) error {
		_, err := wd.SelectDate(day)
		return err
	})
}

// SelectQuickDate handles POST /widget/sessions/{id}/quick-dates/{option}.
func (h *WidgetHandler) SelectQuickDate(w http.ResponseWriter, r *http.Request) {
	option := chi.URLParam(r, "option")
	h.mutate(w, r, func(wd *widget.Widget) error {
		_, err := wd.SelectQuickDate(option)
		return err
	})
}

// Calendar handles GET /widget/sessions/{id}/calendar. A month parameter
// moves the cursor before rendering.
func (h *WidgetHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		h.renderCalendar(w, r, false, func(*widget.Widget) {})
		return
	}
	month, err := widget.ParseMonth(raw)
	if err != nil {
		jsonError(w, "month must be YYYY-MM", http.StatusBadRequest)
		return
	}
	h.renderCalendar(w, r, true, func(wd *widget.Widget) { wd.ShowMonth(month) })
}

func (h *WidgetHandler) NextMonth(w http.ResponseWriter, r *http.Request) {
	h.renderCalendar(w, r, true, (*widget.Widget).NextMonth)
}

func (h *WidgetHandler) PrevMonth(w http.ResponseWriter, r *http.Request) {
	h.renderCalendar(w, r, true, (*widget.Widget).PrevMonth)
}

func (h *WidgetHandler) renderCalendar(w http.ResponseWriter, r *http.Request, write bool, move func(*widget.Widget)) {
	id := chi.URLParam(r, "id")
	var cal widget.CalendarMonth
	fn := func(wd *widget.Widget) error {
		move(wd)
		cal = wd.Calendar()
		return nil
	}
	var err error
	if write {
		err = h.manager.Do(r.Context(), id, fn)
	} else {
		err = h.manager.Read(r.Context(), id, fn)
	}
	if err != nil {
		h.writeError(w, id, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

// AddRoom handles POST /widget/sessions/{id}/rooms.
func (h *WidgetHandler) AddRoom(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*widget.Widget).AddRoom)
}

// RemoveRoom handles DELETE /widget/sessions/{id}/rooms/{index}.
func (h *WidgetHandler) RemoveRoom(w http.ResponseWriter, r *http.Request) {
	index, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	h.mutate(w, r, func(wd *widget.Widget) error { return wd.RemoveRoom(index) })
}

// ChangeCounter handles POST /widget/sessions/{id}/rooms/{index}/counters.
func (h *WidgetHandler) ChangeCounter(w http.ResponseWriter, r *http.Request) {
	index, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	var req struct {
		Field     string `json:"field"`
		Direction int    `json:"direction"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(wd *widget.Widget) error {
		return wd.ChangeCounter(index, widget.CounterField(req.Field), req.Direction)
	})
}

// SetChildAge handles PUT /widget/sessions/{id}/rooms/{index}/children/{child}/age.
func (h *WidgetHandler) SetChildAge(w http.ResponseWriter, r *http.Request) {
	index, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	child, ok := intParam(w, r, "child")
	if !ok {
		return
	}
	var req struct {
		Age *int `json:"age"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Age == nil {
		jsonError(w, "age is required", http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(wd *widget.Widget) error { return wd.SetChildAge(index, child, *req.Age) })
}

// SelectHotel handles PUT /widget/sessions/{id}/hotel.
func (h *WidgetHandler) SelectHotel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(req.ID)
	if hotels.IsConcrete(id) && h.directory != nil {
		hotel, err := h.directory.Get(r.Context(), id)
		if err != nil {
			h.logger.Error("widget: hotel lookup failed", "hotel_id", id, "error", err)
			jsonError(w, "failed to resolve hotel", http.StatusInternalServerError)
			return
		}
		if hotel == nil {
			jsonError(w, "unknown hotel", http.StatusBadRequest)
			return
		}
	}
	h.mutate(w, r, func(wd *widget.Widget) error {
		wd.SelectHotel(id)
		return nil
	})
}

// SetPromoCode handles PUT /widget/sessions/{id}/promo.
func (h *WidgetHandler) SetPromoCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(wd *widget.Widget) error {
		wd.SetPromoCode(req.Code)
		return nil
	})
}

// DismissBanner handles DELETE /widget/sessions/{id}/banners/{kind}.
func (h *WidgetHandler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	kind := widget.BannerKind(chi.URLParam(r, "kind"))
	h.mutate(w, r, func(wd *widget.Widget) error {
		wd.DismissBanner(kind)
		return nil
	})
}

type updateDataResponse struct {
	Applied []string    `json:"applied"`
	Ignored []string    `json:"ignored"`
	State   widget.View `json:"state"`
}

// UpdateData handles POST /widget/sessions/{id}/update-data.
func (h *WidgetHandler) UpdateData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req widget.UpdateData
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var resp updateDataResponse
	err := h.manager.Do(r.Context(), id, func(wd *widget.Widget) error {
		res := wd.ApplyUpdate(req)
		resp = updateDataResponse{Applied: res.Applied, Ignored: res.Ignored, State: wd.View()}
		return nil
	})
	if err != nil {
		h.writeError(w, id, err, nil)
		return
	}
	h.logger.Debug("widget: host update", "session_id", id, "applied", resp.Applied, "ignored", resp.Ignored)
	writeJSON(w, http.StatusOK, resp)
}

// UpdateParams handles POST /widget/sessions/{id}/update-params. The body is
// a JSON object, or a string holding one.
func (h *WidgetHandler) UpdateParams(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := paramsFromRaw(raw)
	if err != nil {
		jsonError(w, "params must be a JSON object", http.StatusBadRequest)
		return
	}
	h.mutate(w, r, func(wd *widget.Widget) error {
		wd.UpdateParams(params)
		return nil
	})
}

// Search handles POST /widget/sessions/{id}/search.
func (h *WidgetHandler) Search(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out, err := h.manager.Search(r.Context(), id, h.gate)
	if err != nil {
		var rejected *widget.RejectedError
		if errors.As(err, &rejected) {
			h.metrics.ObserveSearch(string(out.Kind))
			h.metrics.ObserveRejection(widget.RejectionKind(err))
			writeJSON(w, http.StatusUnprocessableEntity, out)
			return
		}
		h.writeError(w, id, err, nil)
		return
	}
	h.metrics.ObserveSearch(string(out.Kind))
	h.logger.Info("widget: search", "session_id", id, "outcome", out.Kind)
	writeJSON(w, http.StatusOK, out)
}

// mutate runs fn under the session lock and replies with the resulting view.
func (h *WidgetHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(*widget.Widget) error) {
	id := chi.URLParam(r, "id")
	var view widget.View
	err := h.manager.Do(r.Context(), id, func(wd *widget.Widget) error {
		err := fn(wd)
		view = wd.View()
		return err
	})
	if err != nil {
		h.writeError(w, id, err, &view)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *WidgetHandler) writeError(w http.ResponseWriter, id string, err error, view *widget.View) {
	var rejected *widget.RejectedError
	switch {
	case errors.Is(err, session.ErrNotFound):
		jsonError(w, "session not found", http.StatusNotFound)
	case errors.Is(err, widget.ErrSearchInProgress):
		h.metrics.ObserveRejection(widget.RejectionKind(err))
		jsonError(w, "search already in progress", http.StatusConflict)
	case errors.As(err, &rejected):
		kind := widget.RejectionKind(err)
		h.metrics.ObserveRejection(kind)
		writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{Error: kind, Banner: &rejected.Banner, State: view})
	case isBadInput(err):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("widget: request failed", "session_id", id, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

var badInput = []error{
	widget.ErrRoomIndex,
	widget.ErrChildIndex,
	widget.ErrChildAge,
	widget.ErrInvalidField,
	widget.ErrInvalidDirection,
	widget.ErrUnknownQuickDate,
}

func isBadInput(err error) bool {
	for _, target := range badInput {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		jsonError(w, name+" must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// paramsFromRaw accepts a JSON object or a JSON string containing one. An
// empty value yields no params.
func paramsFromRaw(raw json.RawMessage) (widget.Params, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		raw = []byte(s)
	}
	return widget.ParseParamsJSON(raw)
}
