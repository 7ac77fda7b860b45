package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/muzammilspiralsols/widget-booking/internal/observability/metrics"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
)

func dialEvents(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/widget/sessions/" + id + "/events"
	conn, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	return conn
}

// receiveUntil reads frames until one of type want arrives.
func receiveUntil(t *testing.T, conn *websocket.Conn, want string) streamMessage {
	t.Helper()
	for {
		var msg streamMessage
		require.NoError(t, websocket.JSON.Receive(conn, &msg))
		if msg.Type == want {
			return msg
		}
	}
}

func TestEventStream(t *testing.T) {
	env := newTestEnv(t, "")
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	id := env.create(t, bookAttrs()).SessionID
	conn := dialEvents(t, srv, id)
	defer conn.Close()

	first := receiveUntil(t, conn, "state")
	require.NotNil(t, first.State)
	assert.Equal(t, 1, first.State.RoomCount)
	require.Eventually(t, func() bool {
		return metrics.Snapshot(env.reg).StreamConnections == 1
	}, time.Second, 10*time.Millisecond)

	rec := env.do(t, http.MethodPost, "/widget/sessions/"+id+"/rooms", "")
	require.Equal(t, http.StatusOK, rec.Code)
	update := receiveUntil(t, conn, "state")
	require.NotNil(t, update.State)
	assert.Equal(t, 2, update.State.RoomCount)

	rec = env.do(t, http.MethodPost, "/widget/sessions/"+id+"/dates", `{"date":"2020-01-01"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	shown := receiveUntil(t, conn, widget.EventBannerShown)
	require.NotNil(t, shown.Banner)
	assert.Equal(t, widget.BannerDateValidation, shown.Banner.Kind)

	require.NoError(t, websocket.JSON.Send(conn, inboundMessage{Type: "ping"}))
	receiveUntil(t, conn, "pong")
}

func TestEventStreamNavigate(t *testing.T) {
	env := newTestEnv(t, "")
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	id := env.create(t, bookAttrs()).SessionID
	base := "/widget/sessions/" + id
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-15"}`).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-18"}`).Code)

	conn := dialEvents(t, srv, id)
	defer conn.Close()
	receiveUntil(t, conn, "state")

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/search", "").Code)
	nav := receiveUntil(t, conn, widget.EventNavigate)
	assert.Equal(t, "https://book.example.com?entry=2024-08-15&exit=2024-08-18&adults=2", nav.URL)
}

func TestEventStreamUnknownSession(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodGet, "/widget/sessions/missing/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
