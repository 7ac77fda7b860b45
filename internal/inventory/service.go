package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

// MaxNights is the longest stay that can be checked.
const MaxNights = 30

// UnavailableMessage is returned with every negative answer.
const UnavailableMessage = "No rooms available for selected dates"

// ErrInvalidRange rejects stays that are empty, reversed or too long.
var ErrInvalidRange = errors.New("inventory: invalid date range")

// Result is the availability answer, shaped like widget.AvailabilityResponse.
type Result struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

type coverageSource interface {
	MinAvailable(ctx context.Context, hotelID string, from, to widget.Date) (Coverage, error)
}

// Service decides availability from inventory coverage.
type Service struct {
	repo   coverageSource
	logger *logging.Logger
}

func NewService(repo coverageSource, logger *logging.Logger) *Service {
	if repo == nil {
		panic("inventory: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Check reports whether every night of [from, to) has at least one room.
// Nights with no inventory row count as unavailable.
func (s *Service) Check(ctx context.Context, hotelID string, from, to widget.Date) (Result, error) {
	nights := from.DaysUntil(to)
	if nights <= 0 || nights > MaxNights {
		return Result{}, fmt.Errorf("%w: %s to %s", ErrInvalidRange, from, to)
	}

	cov, err := s.repo.MinAvailable(ctx, hotelID, from, to)
	if err != nil {
		return Result{}, err
	}
	if cov.Nights < nights || cov.MinRooms <= 0 {
		s.logger.Debug("inventory: unavailable", "hotel_id", hotelID, "from", from.String(), "to", to.String(),
			"nights_covered", cov.Nights, "min_rooms", cov.MinRooms)
		return Result{Available: false, Message: UnavailableMessage}, nil
	}
	return Result{Available: true}, nil
}
