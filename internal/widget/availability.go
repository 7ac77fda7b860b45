package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/muzammilspiralsols/widget-booking/internal/hotels"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

const (
	availabilityPath       = "/api/disponibilidad"
	defaultGateTimeout     = 10 * time.Second
	maxAvailabilityBodyLen = 1 << 20
)

var gateTracer = otel.Tracer("booking-widget.internal.widget.gate")

// Outcome is the exit edge of an availability check.
type Outcome string

const (
	OutcomeAvailable   Outcome = "available"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFailed      Outcome = "failed"
)

// AvailabilityQuery identifies the stay being checked.
type AvailabilityQuery struct {
	HotelID  string
	CheckIn  Date
	CheckOut Date
}

// Encode renders hotel_id, fecha_inicio and fecha_fin. An unset hotel is
// sent as all-hotels.
func (q AvailabilityQuery) Encode() string {
	hotel := q.HotelID
	if strings.TrimSpace(hotel) == "" {
		hotel = hotels.AllHotels
	}
	var b queryBuilder
	b.add("hotel_id", hotel)
	b.add("fecha_inicio", q.CheckIn.Format(FormatISO))
	b.add("fecha_fin", q.CheckOut.Format(FormatISO))
	return b.String()
}

// AvailabilityResult is the outcome of one check. Message is only set for
// OutcomeUnavailable, and only when the endpoint supplied one.
type AvailabilityResult struct {
	Outcome  Outcome
	Message  string
	Err      error
	Skipped  bool
	Duration time.Duration
}

// AvailabilityResponse is the JSON body of the availability endpoint.
type AvailabilityResponse struct {
	Available *bool  `json:"available"`
	Message   string `json:"message,omitempty"`
}

// GateObserver records check outcomes.
type GateObserver interface {
	ObserveAvailabilityCheck(outcome string, d time.Duration)
}

// Gate performs the optional pre-navigation availability check.
type Gate struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *logging.Logger
	observer   GateObserver
	group      singleflight.Group
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) GateOption {
	return func(g *Gate) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithObserver records every completed check.
func WithObserver(o GateObserver) GateOption {
	return func(g *Gate) { g.observer = o }
}

// NewGate builds a gate whose checks give up after timeout.
func NewGate(timeout time.Duration, logger *logging.Logger, opts ...GateOption) *Gate {
	if timeout <= 0 {
		timeout = defaultGateTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	g := &Gate{
		httpClient: &http.Client{},
		timeout:    timeout,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check asks apiURL whether the stay is available. With no apiURL the check
// is skipped and reported as available. Identical checks already in flight
// share one request.
func (g *Gate) Check(ctx context.Context, apiURL string, q AvailabilityQuery) AvailabilityResult {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		return AvailabilityResult{Outcome: OutcomeAvailable, Skipped: true}
	}

	endpoint := apiURL + availabilityPath + "?" + q.Encode()
	// the request is shared, so one caller going away must not fail the rest
	shared := context.WithoutCancel(ctx)
	v, _, _ := g.group.Do(endpoint, func() (any, error) {
		return g.check(shared, endpoint, q), nil
	})
	return v.(AvailabilityResult)
}

// CheckPlan runs the check a search plan needs. Plans without an endpoint
// are reported as available and skipped.
func (g *Gate) CheckPlan(ctx context.Context, plan SearchPlan) AvailabilityResult {
	if !plan.NeedsCheck() {
		return AvailabilityResult{Outcome: OutcomeAvailable, Skipped: true}
	}
	return g.Check(ctx, plan.APIURL, plan.Query)
}

func (g *Gate) check(ctx context.Context, endpoint string, q AvailabilityQuery) AvailabilityResult {
	ctx, span := gateTracer.Start(ctx, "widget.availability.check")
	defer span.End()
	span.SetAttributes(
		attribute.String("widget.hotel_id", q.HotelID),
		attribute.String("widget.check_in", q.CheckIn.String()),
		attribute.String("widget.check_out", q.CheckOut.String()),
	)

	start := time.Now()
	res := g.fetch(ctx, endpoint)
	res.Duration = time.Since(start)

	span.SetAttributes(attribute.String("widget.availability.outcome", string(res.Outcome)))
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "availability check failed")
		g.logger.Warn("gate: availability check failed", "endpoint", endpoint, "error", res.Err)
	}
	if g.observer != nil {
		g.observer.ObserveAvailabilityCheck(string(res.Outcome), res.Duration)
	}
	return res
}

func (g *Gate) fetch(ctx context.Context, endpoint string) AvailabilityResult {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failed(fmt.Errorf("gate: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return failed(fmt.Errorf("gate: request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAvailabilityBodyLen))
	if err != nil {
		return failed(fmt.Errorf("gate: read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failed(fmt.Errorf("gate: endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload AvailabilityResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return failed(fmt.Errorf("gate: decode response: %w", err))
	}
	if payload.Available != nil && !*payload.Available {
		return AvailabilityResult{Outcome: OutcomeUnavailable, Message: payload.Message}
	}
	return AvailabilityResult{Outcome: OutcomeAvailable}
}

func failed(err error) AvailabilityResult {
	return AvailabilityResult{Outcome: OutcomeFailed, Err: err}
}

// IsTimeout reports whether a failed result was caused by the check deadline.
func (r AvailabilityResult) IsTimeout() bool {
	return r.Err != nil && errors.Is(r.Err, context.DeadlineExceeded)
}
