package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"

	"github.com/muzammilspiralsols/widget-booking/internal/session"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

// streamMessage is one frame on the event stream.
type streamMessage struct {
	Type    string         `json:"type"`
	State   *widget.View   `json:"state,omitempty"`
	Banner  *widget.Banner `json:"banner,omitempty"`
	URL     string         `json:"url,omitempty"`
	DelayMS int64          `json:"delay_ms,omitempty"`
}

type inboundMessage struct {
	Type string `json:"type"`
}

// Events handles GET /widget/sessions/{id}/events. It upgrades to a
// WebSocket that carries state refreshes, banner changes and navigation.
func (h *WidgetHandler) Events(w http.ResponseWriter, r *http.Request) {
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

	server := websocket.Server{
		// embeds run on third-party pages; the session token is the gate
		Handshake: func(cfg *websocket.Config, req *http.Request) error {
			cfg.Origin, _ = websocket.Origin(cfg, req)
			return nil
		},
		Handler: func(conn *websocket.Conn) {
			h.serveEvents(conn, r, id, view)
		},
	}
	server.ServeHTTP(w, r)
}

func (h *WidgetHandler) serveEvents(conn *websocket.Conn, r *http.Request, id string, view widget.View) {
	defer conn.Close()
	events, cancel := h.manager.Hub().Subscribe(id)
	defer cancel()
	closeStream := h.metrics.StreamOpened()
	defer closeStream()

	if err := websocket.JSON.Send(conn, streamMessage{Type: session.EventState, State: &view}); err != nil {
		return
	}
	h.logger.Info("widget: event stream opened", "session_id", id)

	pings := make(chan struct{}, 1)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var msg inboundMessage
			if err := websocket.JSON.Receive(conn, &msg); err != nil {
				return
			}
			if msg.Type == "ping" {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	for {
		var msg streamMessage
		select {
		case <-closed:
			h.logger.Debug("widget: event stream closed", "session_id", id)
			return
		case <-pings:
			msg = streamMessage{Type: "pong"}
		case e, ok := <-events:
			if !ok {
				return
			}
			msg = streamMessage{Type: e.Type, Banner: e.Banner, URL: e.URL, DelayMS: e.DelayMS}
			if e.Type == session.EventState {
				var v widget.View
				err := h.manager.Read(r.Context(), id, func(wd *widget.Widget) error {
					v = wd.View()
					return nil
				})
				if errors.Is(err, session.ErrNotFound) {
					return
				}
				if err != nil {
					h.logger.Warn("widget: event stream refresh failed", "session_id", id, "error", err)
					continue
				}
				msg.State = &v
			}
		}
		if err := websocket.JSON.Send(conn, msg); err != nil {
			h.logger.Debug("widget: event stream send failed", "session_id", id, "error", err)
			return
		}
	}
}
