package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"campus/infras/otel"
	"campus/internal/domains/user/model/dto"
	"campus/internal/domains/user/repository"
	"campus/internal/session"
	"campus/shared/constant"
	"campus/shared/failure"
	"campus/shared/validator"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.UserResponse, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error)
	SearchPassword(ctx context.Context, req dto.SearchPasswordRequest) error
	Profile(ctx context.Context) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo    repository.User
	session session.Provider
	otel    otel.Otel
}

func New(repo repository.User, session session.Provider, otel otel.Otel) Auth {
	return &serviceImpl{
		repo:    repo,
		session: session,
		otel:    otel,
	}
}

// Login resolves the user's identity against the backend and publishes
// it through the session provider, so every screen observes the same
// sign-in at the same time.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	user, err := s.repo.Login(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("login failed")

		return res, fmt.Errorf("login failed: %w", err)
	}

	if err = s.session.SignIn(user.ID, user.AccessToken); err != nil {
		log.Error().Err(err).Msg("failed to persist session")

		return res, fmt.Errorf("failed to persist session: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.session.SignOut(); err != nil {
		log.Error().Err(err).Msg("failed to clear session")

		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	user, err := s.repo.Register(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("registration failed")

		return res, fmt.Errorf("registration failed: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) SearchPassword(ctx context.Context, req dto.SearchPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchPassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	if err = s.repo.SearchPassword(ctx, req); err != nil {
		log.Error().Err(err).Msg("password recovery failed")

		return fmt.Errorf("password recovery failed: %w", err)
	}

	return nil
}

func (s *serviceImpl) Profile(ctx context.Context) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := s.session.UserID()
	if userID == constant.Empty {
		return res, failure.NotAuthenticatedError
	}

	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load profile")

		return res, fmt.Errorf("failed to load profile: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := s.session.UserID()
	if userID == constant.Empty {
		return res, failure.NotAuthenticatedError
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	user, err := s.repo.Update(ctx, userID, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	res.FromModel(user)

	return res, nil
}
