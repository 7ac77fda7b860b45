package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
	"github.com/muzammilspiralsols/widget-booking/internal/http/middleware"
	"github.com/muzammilspiralsols/widget-booking/internal/observability/metrics"
	"github.com/muzammilspiralsols/widget-booking/internal/session"
	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

var handlerNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	router  chi.Router
	manager *session.Manager
	reg     *prometheus.Registry
	tokens  *session.TokenIssuer
}

func newTestEnv(t *testing.T, secret string) *testEnv {
	t.Helper()
	logger := logging.New("error")
	reg := prometheus.NewRegistry()
	manager := session.NewManager(session.NewMemoryStore(time.Minute), session.NewHub(logger), widget.Options{
		Now:           func() time.Time { return handlerNow },
		BannerTTLs:    widget.DefaultBannerTTLs(time.Minute, time.Minute),
		FallbackDelay: 2 * time.Second,
	}, time.Minute, logger)
	tokens := session.NewTokenIssuer(secret, time.Hour)

	h := NewWidgetHandler(WidgetHandlerConfig{
		Manager:   manager,
		Gate:      widget.NewGate(time.Second, logger),
		Tokens:    tokens,
		Directory: hotels.NewStaticDirectory(nil),
		Metrics:   metrics.NewWidgetMetrics(reg),
		Logger:    logger,
	})
	r := chi.NewRouter()
	r.Mount("/widget/sessions", h.Routes(middleware.WidgetSession(tokens, "id")))
	return &testEnv{router: r, manager: manager, reg: reg, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return e.doWithToken(t, method, path, body, "")
}

func (e *testEnv) doWithToken(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.WidgetTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) create(t *testing.T, attrs map[string]string) createSessionResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{"attributes": attrs})
	require.NoError(t, err)
	rec := e.do(t, http.MethodPost, "/widget/sessions", string(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp createSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) widget.View {
	t.Helper()
	var view widget.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view), rec.Body.String())
	return view
}

func bookAttrs() map[string]string {
	return map[string]string{
		"data-book-id":  "BK1",
		"data-base-url": "https://book.example.com",
	}
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t, "")
	body := `{"attributes":{"data-book-id":"BK1","data-max-rooms":"3"},"additionalParams":"{\"utm\":\"mail\"}"}`
	rec := env.do(t, http.MethodPost, "/widget/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp createSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Empty(t, resp.Token)
	assert.Equal(t, widget.NoSelection, resp.State.Selection)
	assert.Equal(t, 2, resp.State.TotalAdults)
	assert.Equal(t, widget.Params{{Key: "utm", Value: "mail"}}, resp.State.State.AdditionalParams)
	assert.EqualValues(t, 1, metrics.Snapshot(env.reg).SessionsCreated)
}

func TestCreateSessionIgnoresBadAdditionalParams(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodPost, "/widget/sessions", `{"attributes":{"data-book-id":"BK1"},"additionalParams":"not json"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp createSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.State.State.AdditionalParams)
}

func TestCreateSessionRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodPost, "/widget/sessions", `{"attributes":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownSession(t *testing.T) {
	env := newTestEnv(t, "")
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/widget/sessions/missing", ""},
		{http.MethodPost, "/widget/sessions/missing/rooms", ""},
		{http.MethodPost, "/widget/sessions/missing/search", ""},
		{http.MethodDelete, "/widget/sessions/missing", ""},
	} {
		rec := env.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestDateSelectionAndSearch(t *testing.T) {
	env := newTestEnv(t, "")
	id := env.create(t, bookAttrs()).SessionID
	base := "/widget/sessions/" + id

	rec := env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-15"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, widget.AwaitingCheckout, decodeView(t, rec).Selection)

	rec = env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-18"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Equal(t, widget.RangeComplete, view.Selection)
	assert.Equal(t, 3, view.Nights)

	rec = env.do(t, http.MethodPut, base+"/promo", `{"code":"vip-10!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vip10", decodeView(t, rec).State.PromoCode)

	rec = env.do(t, http.MethodPost, base+"/search", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out widget.SearchOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, widget.SearchNavigate, out.Kind)
	assert.Equal(t, "https://book.example.com?entry=2024-08-15&exit=2024-08-18&adults=2&promo=vip10", out.URL)
	assert.EqualValues(t, 1, metrics.Snapshot(env.reg).Searches["navigate"])
}

func TestSelectDateRejections(t *testing.T) {
	env := newTestEnv(t, "")
	id := env.create(t, bookAttrs()).SessionID
	base := "/widget/sessions/" + id

	rec := env.do(t, http.MethodPost, base+"/dates", `{"date":"15/08/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-05-01"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp rejectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "date_out_of_range", resp.Error)
	require.NotNil(t, resp.Banner)
	assert.Equal(t, widget.BannerDateValidation, resp.Banner.Kind)
	require.NotNil(t, resp.State)
	assert.Equal(t, widget.NoSelection, resp.State.Selection)
	require.Len(t, resp.State.Banners, 1)

	assert.EqualValues(t, 1, metrics.Snapshot(env.reg).Rejections["date_out_of_range"])

	rec = env.do(t, http.MethodDelete, base+"/banners/date_validation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeView(t, rec).Banners)
}

func TestQuickDates(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, bookAttrs()).SessionID

	rec := env.do(t, http.MethodPost, base+"/quick-dates/tomorrow", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, widget.NewDate(2024, time.June, 2), decodeView(t, rec).State.Dates.CheckIn)

	rec = env.do(t, http.MethodPost, base+"/quick-dates/someday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRejectedWithoutDates(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, bookAttrs()).SessionID

	rec := env.do(t, http.MethodPost, base+"/search", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var out widget.SearchOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, widget.SearchRejected, out.Kind)
	assert.Empty(t, out.URL)
	require.NotNil(t, out.Banner)
	assert.Equal(t, widget.BannerAlert, out.Banner.Kind)

	summary := metrics.Snapshot(env.reg)
	assert.EqualValues(t, 1, summary.Searches["rejected"])
	assert.EqualValues(t, 1, summary.Rejections["missing_dates"])
}

func TestSearchAvailabilityOutcomes(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		wantKind  widget.SearchOutcomeKind
		wantURL   bool
		wantDelay int64
	}{
		{name: "available", status: http.StatusOK, body: `{"available":true}`, wantKind: widget.SearchNavigate, wantURL: true},
		{name: "unavailable", status: http.StatusOK, body: `{"available":false,"message":"Full"}`, wantKind: widget.SearchBlocked},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantKind: widget.SearchFallback, wantURL: true, wantDelay: 2000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer api.Close()

			env := newTestEnv(t, "")
			attrs := bookAttrs()
			attrs["data-api-url"] = api.URL
			base := "/widget/sessions/" + env.create(t, attrs).SessionID
			require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-15"}`).Code)
			require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-18"}`).Code)

			rec := env.do(t, http.MethodPost, base+"/search", "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var out widget.SearchOutcome
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, tc.wantKind, out.Kind)
			assert.Equal(t, tc.wantURL, out.URL != "")
			assert.Equal(t, tc.wantDelay, out.DelayMS)
			if tc.wantKind == widget.SearchBlocked {
				require.NotNil(t, out.Banner)
				assert.Equal(t, "Full", out.Banner.Message)
			}

			view := decodeView(t, env.do(t, http.MethodGet, base, ""))
			assert.False(t, view.SubmitDisabled)
		})
	}
}

func TestSearchInProgressConflict(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"available":true}`))
	}))
	defer api.Close()
	defer close(release)

	env := newTestEnv(t, "")
	attrs := bookAttrs()
	attrs["data-api-url"] = api.URL
	base := "/widget/sessions/" + env.create(t, attrs).SessionID
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-15"}`).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/dates", `{"date":"2024-08-18"}`).Code)

	first := make(chan int, 1)
	go func() {
		first <- env.do(t, http.MethodPost, base+"/search", "").Code
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	view := decodeView(t, env.do(t, http.MethodGet, base, ""))
	assert.True(t, view.SubmitDisabled)

	rec := env.do(t, http.MethodPost, base+"/search", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	release <- struct{}{}
	assert.Equal(t, http.StatusOK, <-first)
}

func TestRoomsAndCounters(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, bookAttrs()).SessionID

	rec := env.do(t, http.MethodPost, base+"/rooms/0/counters", `{"field":"adults","direction":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeView(t, rec).TotalAdults)

	rec = env.do(t, http.MethodPost, base+"/rooms/0/counters", `{"field":"children","direction":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{0}, decodeView(t, rec).State.Occupancy.Rooms[0].ChildAges)

	rec = env.do(t, http.MethodPut, base+"/rooms/0/children/0/age", `{"age":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{7}, decodeView(t, rec).State.Occupancy.Rooms[0].ChildAges)

	rec = env.do(t, http.MethodPost, base+"/rooms", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeView(t, rec).RoomCount)

	rec = env.do(t, http.MethodDelete, base+"/rooms/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeView(t, rec).RoomCount)

	rec = env.do(t, http.MethodDelete, base+"/rooms/0", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp rejectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "last_room", resp.Error)
	assert.Equal(t, 1, resp.State.RoomCount)
}

func TestRoomsBadInput(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, bookAttrs()).SessionID

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodDelete, base + "/rooms/x", ""},
		{http.MethodDelete, base + "/rooms/9", ""},
		{http.MethodPost, base + "/rooms/0/counters", `{"field":"pets","direction":1}`},
		{http.MethodPost, base + "/rooms/0/counters", `{"field":"adults","direction":3}`},
		{http.MethodPut, base + "/rooms/0/children/0/age", `{"age":5}`},
		{http.MethodPut, base + "/rooms/0/children/0/age", `{}`},
	} {
		rec := env.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s %s", tc.method, tc.path, tc.body)
	}
}

func TestCalendarEndpoints(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, bookAttrs()).SessionID

	rec := env.do(t, http.MethodGet, base+"/calendar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cal widget.CalendarMonth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cal))
	assert.Equal(t, widget.NewDate(2024, time.June, 1), cal.Month)
	assert.Len(t, cal.Cells, widget.CalendarCells)

	rec = env.do(t, http.MethodGet, base+"/calendar?month=2024-08", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cal))
	assert.Equal(t, "August 2024", cal.Header)

	rec = env.do(t, http.MethodPost, base+"/calendar/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cal))
	assert.Equal(t, widget.NewDate(2024, time.September, 1), cal.Month)

	rec = env.do(t, http.MethodPost, base+"/calendar/prev", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cal))
	assert.Equal(t, widget.NewDate(2024, time.August, 1), cal.Month)

	rec = env.do(t, http.MethodGet, base+"/calendar?month=august", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectHotel(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, map[string]string{"data-book-id": "BK1", "data-type": "chain"}).SessionID

	rec := env.do(t, http.MethodPut, base+"/hotel", `{"id":"no-such-hotel"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, base+"/hotel", `{"id":"alcudia-garden-aparthotel"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Equal(t, "alcudia-garden-aparthotel", view.State.SelectedHotel)
	assert.True(t, view.ShowPrice)

	rec = env.do(t, http.MethodPut, base+"/hotel", `{"id":"all-hotels"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeView(t, rec).ShowPrice)
}

func TestHostUpdates(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, bookAttrs()).SessionID

	rec := env.do(t, http.MethodPost, base+"/update-data", `{"checkIn":"10-08-2024","checkOut":"12-08-2024","minDate":"soon","promoCode":"HOST1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp updateDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"promoCode", "checkIn", "checkOut"}, resp.Applied)
	assert.Equal(t, []string{"minDate"}, resp.Ignored)
	assert.Equal(t, 2, resp.State.Nights)

	rec = env.do(t, http.MethodPost, base+"/update-params", `{"utm":"mail","ref":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, base+"/update-params", `"{\"utm\":\"web\"}"`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, widget.Params{{Key: "utm", Value: "web"}, {Key: "ref", Value: "x"}}, decodeView(t, rec).State.AdditionalParams)

	rec = env.do(t, http.MethodPost, base+"/update-params", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t, "")
	base := "/widget/sessions/" + env.create(t, bookAttrs()).SessionID

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, base, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, base, "").Code)
}

func TestSessionTokenEnforced(t *testing.T) {
	env := newTestEnv(t, "secret")
	created := env.create(t, bookAttrs())
	require.NotEmpty(t, created.Token)
	base := "/widget/sessions/" + created.SessionID

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, base, "").Code)
	assert.Equal(t, http.StatusOK, env.doWithToken(t, http.MethodGet, base, "", created.Token).Code)

	other := env.create(t, bookAttrs())
	assert.Equal(t, http.StatusUnauthorized, env.doWithToken(t, http.MethodGet, base, "", other.Token).Code)
}

func TestParamsFromRaw(t *testing.T) {
	p, err := paramsFromRaw(nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = paramsFromRaw(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = paramsFromRaw(json.RawMessage(`""`))
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = paramsFromRaw(json.RawMessage(`{"a":1,"b":"two"}`))
	require.NoError(t, err)
	assert.Equal(t, widget.Params{{Key: "a", Value: "1"}, {Key: "b", Value: "two"}}, p)

	_, err = paramsFromRaw(json.RawMessage(`"nope"`))
	assert.Error(t, err)
}
