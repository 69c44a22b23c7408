package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"campus/infras/otel"
	"campus/infras/rest"
	"campus/internal/domains/reservation/model"
	"campus/internal/domains/reservation/model/dto"
	"campus/shared/constant"
)

type Reservation interface {
	ListForFacility(ctx context.Context, facilityID string) ([]model.Reservation, error)
	ListForUser(ctx context.Context, userID string) ([]model.Reservation, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (model.Reservation, error)
	Extend(ctx context.Context, reservationID string) (model.Reservation, error)
	Cancel(ctx context.Context, reservationID string) error
}

type repositoryImpl struct {
	client *rest.Client
	otel   otel.Otel
}

func New(client *rest.Client, otel otel.Otel) Reservation {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) ListForFacility(ctx context.Context, facilityID string) (res []model.Reservation, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ListFacilityReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	var raw json.RawMessage

	if err = r.client.Get(ctx, "/api/reservations/seats/"+facilityID, &raw); err != nil {
		return nil, fmt.Errorf("failed to list reservations for facility %s: %w", facilityID, err)
	}

	return decodeFacilityReservations(raw)
}

// decodeFacilityReservations accepts both payload shapes this endpoint
// has shipped with: the current list of reservation records, and the
// earlier bare array of occupied seat numbers.
func decodeFacilityReservations(raw json.RawMessage) ([]model.Reservation, error) {
	if len(raw) == 0 {
		return []model.Reservation{}, nil
	}

	var records []model.Reservation
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var seatNumbers []int
	if err := json.Unmarshal(raw, &seatNumbers); err != nil {
		return nil, fmt.Errorf("unrecognized reservation list payload: %w", err)
	}

	records = make([]model.Reservation, len(seatNumbers))
	for i, n := range seatNumbers {
		records[i] = model.Reservation{
			SeatNumber: n,
			Status:     constant.StatusActive,
			Active:     true,
		}
	}

	return records, nil
}

func (r *repositoryImpl) ListForUser(ctx context.Context, userID string) (res []model.Reservation, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ListUserReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Get(ctx, "/api/reservations/my/"+userID, &res); err != nil {
		return nil, fmt.Errorf("failed to list reservations for user: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res model.Reservation, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".CreateReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, "/api/reservations", req, &res); err != nil {
		return model.Reservation{}, fmt.Errorf("failed to create reservation: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Extend(ctx context.Context, reservationID string) (res model.Reservation, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ExtendReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Put(ctx, "/api/reservations/extend/"+reservationID, nil, &res); err != nil {
		return model.Reservation{}, fmt.Errorf("failed to extend reservation %s: %w", reservationID, err)
	}

	return res, nil
}

func (r *repositoryImpl) Cancel(ctx context.Context, reservationID string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".CancelReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Put(ctx, "/api/reservations/cancel/"+reservationID, nil, nil); err != nil {
		return fmt.Errorf("failed to cancel reservation %s: %w", reservationID, err)
	}

	return nil
}
