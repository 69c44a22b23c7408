package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"campus/internal/domains/facility/layout"
	"campus/internal/domains/reservation/model"
	"campus/internal/domains/reservation/model/dto"
	"campus/shared/constant"
	"campus/shared/failure"
	"campus/shared/timezone"
	"campus/shared/validator"
)

// SubmissionState is the submission machine's position:
// Idle -> Submitting -> Succeeded | Conflicted | Failed. Every terminal
// state returns the machine to Idle for the next selection; nothing is
// retried automatically.
type SubmissionState int

const (
	StateIdle SubmissionState = iota + 1
	StateSubmitting
	StateSucceeded
	StateConflicted
	StateFailed
)

func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateConflicted:
		return "conflicted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmissionResult reports where a submission ended up and what the
// screen should do about it. Index carries the re-fetched occupancy for
// the Succeeded and Conflicted outcomes, so the grid renders server
// truth rather than an optimistic local mutation.
type SubmissionResult struct {
	State            SubmissionState
	Notice           string
	Index            model.OccupancyIndex
	SelectionCleared bool
}

const (
	noticeSucceeded  = "Reservation confirmed."
	noticeConflicted = "You already have an active reservation for this selection."
	noticeFailed     = "Reservation failed, please try again shortly."
)

// Reserve runs one pass of the submission machine for a confirmed
// selection.
//
// Precondition failures (missing login, incomplete selection, unknown
// label) block the Idle -> Submitting transition and come back as plain
// errors: nothing was sent, nothing changed. Once submitted, the
// outcome is reported in the result:
//
//   - Succeeded: selection cleared, occupancy re-fetched;
//   - Conflicted: occupancy re-fetched exactly once so the contested
//     slot shows occupied, previous index never cleared, distinct
//     non-fatal notice; the selection is dropped only if the re-fetch
//     confirms it is now taken;
//   - Failed: no index mutation, generic retryable notice.
func (s *serviceImpl) Reserve(ctx context.Context, sel dto.Selection) (res SubmissionResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	l, ok := layout.ForFacility(sel.FacilityID)
	if !ok {
		return SubmissionResult{State: StateIdle}, failure.NotFound("no reservation layout for facility " + sel.FacilityID) //nolint:wrapcheck
	}

	req, err := s.buildRequest(l, sel)
	if err != nil {
		return SubmissionResult{State: StateIdle}, err
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return SubmissionResult{State: StateIdle}, err
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()

		return SubmissionResult{State: StateSubmitting}, failure.BadRequestFromString("a reservation is already being submitted") //nolint:wrapcheck
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	scope.SetAttributes(map[string]any{
		"facility.id":      sel.FacilityID,
		"resource.label":   sel.Label,
		"reservation.slot": sel.Slot,
	})

	_, err = s.repo.Create(ctx, req)

	switch {
	case err == nil:
		index, refreshErr := s.Occupancy(ctx, sel.FacilityID)
		if refreshErr != nil {
			log.Warn().Err(refreshErr).Msg("reservation confirmed but occupancy refresh failed")
		}

		return SubmissionResult{
			State:            StateSucceeded,
			Notice:           noticeSucceeded,
			Index:            index,
			SelectionCleared: true,
		}, nil

	case failure.IsConflict(err):
		log.Info().Str("facilityId", sel.FacilityID).Str("label", sel.Label).Msg("reservation conflict reported by backend")

		index, refreshErr := s.Occupancy(ctx, sel.FacilityID)
		if refreshErr != nil {
			log.Warn().Err(refreshErr).Msg("occupancy refresh after conflict failed")
		}

		return SubmissionResult{
			State:            StateConflicted,
			Notice:           noticeConflicted,
			Index:            index,
			SelectionCleared: selectionTaken(l, index, sel),
		}, nil

	default:
		log.Error().Err(err).Str("facilityId", sel.FacilityID).Msg("reservation submission failed")

		return SubmissionResult{
			State:  StateFailed,
			Notice: noticeFailed,
		}, err
	}
}

func (s *serviceImpl) buildRequest(l layout.Layout, sel dto.Selection) (dto.CreateReservationRequest, error) {
	userID := s.session.UserID()

	if l.Slotted() {
		return dto.BuildRoomRequest(l, sel, userID, timezone.Now())
	}

	return dto.BuildSeatRequest(l, sel, userID, s.cfg.Reservation.SeatHoldHours, timezone.Now())
}

func selectionTaken(l layout.Layout, index model.OccupancyIndex, sel dto.Selection) bool {
	if l.Slotted() {
		return index.SlotOccupied(sel.Label, sel.Slot)
	}

	return index.ResourceOccupied(sel.Label)
}
