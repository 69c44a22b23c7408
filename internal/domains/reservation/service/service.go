package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/facility/layout"
	"campus/internal/domains/reservation/model"
	"campus/internal/domains/reservation/model/dto"
	"campus/internal/domains/reservation/repository"
	"campus/internal/session"
	"campus/shared/constant"
	"campus/shared/failure"
)

type Reservation interface {
	Occupancy(ctx context.Context, facilityID string) (model.OccupancyIndex, error)
	Reserve(ctx context.Context, sel dto.Selection) (SubmissionResult, error)
	Extend(ctx context.Context, reservationID string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, reservationID, facilityID string) error
	Mine(ctx context.Context) (dto.MyReservationsResponse, error)
}

type serviceImpl struct {
	repo    repository.Reservation
	session session.Provider
	cfg     *config.Config
	otel    otel.Otel

	// submission and mutation guards; simple busy flags, the backend
	// owns true at-most-once enforcement
	mu         sync.Mutex
	submitting bool
	extending  bool
	cancelling bool

	// per-facility occupancy with last-request-wins reconciliation
	fetchSeq uint64
	fetchMu  sync.Mutex
	indexes  map[string]*facilityIndex
}

type facilityIndex struct {
	appliedSeq uint64
	index      model.OccupancyIndex
	valid      bool
}

func New(repo repository.Reservation, session session.Provider, cfg *config.Config, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:    repo,
		session: session,
		cfg:     cfg,
		otel:    otel,
		indexes: map[string]*facilityIndex{},
	}
}

// Occupancy fetches the facility's reservation list and rebuilds the
// occupancy index from scratch. Two guarantees hold:
//
//   - a failed fetch never clears a previously built index: the caller
//     gets the last good index together with the error, so a network
//     blip cannot make every seat look free;
//   - responses apply in issue order. Each fetch is tagged with a
//     monotonically increasing sequence, and a response older than the
//     newest applied one is discarded instead of overwriting fresher
//     server truth.
func (s *serviceImpl) Occupancy(ctx context.Context, facilityID string) (res model.OccupancyIndex, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	l, ok := layout.ForFacility(facilityID)
	if !ok {
		return res, failure.NotFound(fmt.Sprintf("no reservation layout for facility %s", facilityID)) //nolint:wrapcheck
	}

	seq := atomic.AddUint64(&s.fetchSeq, 1)

	records, err := s.repo.ListForFacility(ctx, facilityID)

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	entry, ok := s.indexes[facilityID]
	if !ok {
		entry = &facilityIndex{}
		s.indexes[facilityID] = entry
	}

	if err != nil {
		log.Error().Err(err).Str("facilityId", facilityID).Msg("failed to fetch reservations, keeping previous occupancy")

		if entry.valid {
			return entry.index, fmt.Errorf("failed to refresh occupancy: %w", err)
		}

		return model.BuildOccupancyIndex(l, nil), fmt.Errorf("failed to fetch occupancy: %w", err)
	}

	if entry.valid && seq < entry.appliedSeq {
		log.Debug().Str("facilityId", facilityID).Msg("discarding stale occupancy response")

		return entry.index, nil
	}

	index := model.BuildOccupancyIndex(l, records)

	entry.appliedSeq = seq
	entry.index = index
	entry.valid = true

	return index, nil
}

func (s *serviceImpl) Mine(ctx context.Context) (res dto.MyReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Mine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := s.session.UserID()
	if userID == constant.Empty {
		return res, failure.NotAuthenticatedError
	}

	records, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list user reservations")

		return res, fmt.Errorf("failed to list reservations: %w", err)
	}

	res.FromModels(records)

	return res, nil
}

func (s *serviceImpl) Extend(ctx context.Context, reservationID string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Extend")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	if s.extending {
		s.mu.Unlock()

		return res, failure.BadRequestFromString("an extension is already in progress") //nolint:wrapcheck
	}
	s.extending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.extending = false
		s.mu.Unlock()
	}()

	updated, err := s.repo.Extend(ctx, reservationID)
	if err != nil {
		log.Error().Err(err).Str("reservationId", reservationID).Msg("failed to extend reservation")

		return res, fmt.Errorf("failed to extend reservation: %w", err)
	}

	s.refresh(ctx, updated.FacilityID)

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, reservationID, facilityID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	if s.cancelling {
		s.mu.Unlock()

		return failure.BadRequestFromString("a cancellation is already in progress") //nolint:wrapcheck
	}
	s.cancelling = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cancelling = false
		s.mu.Unlock()
	}()

	if err := s.repo.Cancel(ctx, reservationID); err != nil {
		log.Error().Err(err).Str("reservationId", reservationID).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	s.refresh(ctx, facilityID)

	return nil
}

// refresh resynchronizes the occupancy index after a mutation. A failed
// refresh is logged, not surfaced: the mutation itself already
// succeeded and the stale-index guarantees of Occupancy still hold.
func (s *serviceImpl) refresh(ctx context.Context, facilityID string) {
	if facilityID == constant.Empty {
		return
	}

	if _, err := s.Occupancy(ctx, facilityID); err != nil {
		log.Warn().Err(err).Str("facilityId", facilityID).Msg("failed to refresh occupancy after mutation")
	}
}
