package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"campus/infras/otel"
	"campus/internal/domains/facility/layout"
	"campus/internal/domains/facility/model/dto"
	"campus/internal/domains/facility/repository"
	"campus/shared/constant"
	"campus/shared/failure"
)

type Facility interface {
	List(ctx context.Context) ([]dto.FacilityResponse, error)
	Get(ctx context.Context, id string) (dto.FacilityResponse, error)
	Layout(id string) (layout.Layout, error)
}

type serviceImpl struct {
	repo repository.Facility
	otel otel.Otel
}

func New(repo repository.Facility, otel otel.Otel) Facility {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListFacilities")
	defer scope.End()
	defer scope.TraceIfError(err)

	facilities, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list facilities")

		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}

	res = make([]dto.FacilityResponse, len(facilities))
	for i, facility := range facilities {
		res[i].FromModel(facility)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetFacility")
	defer scope.End()
	defer scope.TraceIfError(err)

	facility, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("facilityId", id).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	res.FromModel(facility)

	return res, nil
}

// Layout returns the compiled-in grid for a facility. Facilities without
// one are information-only and cannot be reserved through this client.
func (s *serviceImpl) Layout(id string) (layout.Layout, error) {
	l, ok := layout.ForFacility(id)
	if !ok {
		return layout.Layout{}, failure.NotFound(fmt.Sprintf("no reservation layout for facility %s", id)) //nolint:wrapcheck
	}

	return l, nil
}
