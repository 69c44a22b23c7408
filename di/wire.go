//go:build wireinject
// +build wireinject

package di

import (
	"io"
	"os"

	"github.com/google/wire"

	"campus/config"
	"campus/infras/jwt"
	"campus/infras/otel"
	"campus/infras/rest"
	"campus/internal/cli"
	"campus/internal/session"
	"campus/internal/stub"

	facilityRepository "campus/internal/domains/facility/repository"
	facilityService "campus/internal/domains/facility/service"
	reservationRepository "campus/internal/domains/reservation/repository"
	reservationService "campus/internal/domains/reservation/service"
	userRepository "campus/internal/domains/user/repository"
	userService "campus/internal/domains/user/service"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	jwt.New,
	rest.New,
)

var sessions = wire.NewSet(
	session.NewFileStore,
	wire.Bind(new(session.Store), new(*session.FileStore)),
	session.NewProvider,
	wire.Bind(new(rest.TokenProvider), new(session.Provider)),
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	facilityDomain,
	reservationDomain,
	userDomain,
)

func provideOutput() io.Writer {
	return os.Stdout
}

func InitializeApp() (*cli.App, error) {
	wire.Build(
		configurations,
		infrastructures,
		sessions,
		domains,
		provideOutput,
		cli.New,
	)

	return &cli.App{}, nil
}

func InitializeStubServer() *stub.Server {
	wire.Build(
		configurations,
		otel.New,
		jwt.New,
		stub.NewStore,
		stub.New,
		stub.NewServer,
	)

	return &stub.Server{}
}
