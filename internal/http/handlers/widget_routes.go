package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the session API for mounting at /widget/sessions.
// sessionAuth, when set, guards every per-session route.
func (h *WidgetHandler) Routes(sessionAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateSession)
	r.Route("/{id}", func(s chi.Router) {
		if sessionAuth != nil {
			s.Use(sessionAuth)
		}
		s.Get("/", h.GetSession)
		s.Delete("/", h.DeleteSession)
		s.Get("/events", h.Events)

		s.Post("/dates", h.SelectDate)
		s.Post("/quick-dates/{option}", h.SelectQuickDate)

		s.Get("/calendar", h.Calendar)
		s.Post("/calendar/next", h.NextMonth)
		s.Post("/calendar/prev", h.PrevMonth)

		s.Post("/rooms", h.AddRoom)
		s.Delete("/rooms/{index}", h.RemoveRoom)
		s.Post("/rooms/{index}/counters", h.ChangeCounter)
		s.Put("/rooms/{index}/children/{child}/age", h.SetChildAge)

		s.Put("/hotel", h.SelectHotel)
		s.Put("/promo", h.SetPromoCode)
		s.Delete("/banners/{kind}", h.DismissBanner)

		s.Post("/update-data", h.UpdateData)
		s.Post("/update-params", h.UpdateParams)
		s.Post("/search", h.Search)
	})
	return r
}
