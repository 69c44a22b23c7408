package repository

import (
	"context"
	"fmt"

	"campus/infras/otel"
	"campus/infras/rest"
	"campus/internal/domains/user/model"
	"campus/internal/domains/user/model/dto"
	"campus/shared/constant"
)

type User interface {
	Login(ctx context.Context, req dto.LoginRequest) (model.User, error)
	Register(ctx context.Context, req dto.RegisterRequest) (model.User, error)
	SearchPassword(ctx context.Context, req dto.SearchPasswordRequest) error
	Get(ctx context.Context, id string) (model.User, error)
	Update(ctx context.Context, id string, req dto.UpdateProfileRequest) (model.User, error)
}

type repositoryImpl struct {
	client *rest.Client
	otel   otel.Otel
}

func New(client *rest.Client, otel otel.Otel) User {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) Login(ctx context.Context, req dto.LoginRequest) (res model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, "/api/users/login", req, &res); err != nil {
		return model.User{}, fmt.Errorf("failed to log in: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Register(ctx context.Context, req dto.RegisterRequest) (res model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, "/api/users/register", req, &res); err != nil {
		return model.User{}, fmt.Errorf("failed to register: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) SearchPassword(ctx context.Context, req dto.SearchPasswordRequest) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SearchPassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Post(ctx, "/api/users/search-password", req, nil); err != nil {
		return fmt.Errorf("failed to request password recovery: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (res model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Get(ctx, "/api/users/"+id, &res); err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id string, req dto.UpdateProfileRequest) (res model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.client.Put(ctx, "/api/users/"+id, req, &res); err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return res, nil
}
