package repository

import (
	"context"
	"fmt"

	"campus/infras/otel"
	"campus/infras/rest"
	"campus/internal/domains/facility/model"
	"campus/shared/constant"
)

type Facility interface {
	List(ctx context.Context) ([]model.Facility, error)
	Get(ctx context.Context, id string) (model.Facility, error)
}

type repositoryImpl struct {
	client *rest.Client
	otel   otel.Otel
}

func New(client *rest.Client, otel otel.Otel) Facility {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) List(ctx context.Context) (res []model.Facility, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ListFacilities")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Get(ctx, "/api/facilities", &res); err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (res model.Facility, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetFacility")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Get(ctx, "/api/facilities/"+id, &res); err != nil {
		return model.Facility{}, fmt.Errorf("failed to get facility %s: %w", id, err)
	}

	return res, nil
}
