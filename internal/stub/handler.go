package stub

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"campus/config"
	"campus/infras/jwt"
	"campus/infras/otel"
	reservationModel "campus/internal/domains/reservation/model"
	reservationDto "campus/internal/domains/reservation/model/dto"
	userModel "campus/internal/domains/user/model"
	userDto "campus/internal/domains/user/model/dto"
	"campus/shared/constant"
	"campus/shared/failure"
	"campus/shared/validator"
)

// Handler serves the documented backend contract off the in-memory
// store. Routes, payload shapes and status codes mirror the deployment
// the client talks to, so integration tests run against the real
// rest.Client unmodified.
type Handler struct {
	store *Store
	jwt   jwt.JWT
	otel  otel.Otel
	cfg   *config.Config
}

func New(store *Store, jwtService jwt.JWT, otel otel.Otel, cfg *config.Config) Handler {
	return Handler{
		store: store,
		jwt:   jwtService,
		otel:  otel,
		cfg:   cfg,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Post("/users/login", handler.Login)
		routerGroup.Post("/users/register", handler.Register)
		routerGroup.Post("/users/search-password", handler.SearchPassword)

		routerGroup.Get("/facilities", handler.ListFacilities)
		routerGroup.Get("/facilities/{id}", handler.GetFacility)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.auth)

			protected.Get("/users/{id}", handler.GetUser)
			protected.Put("/users/{id}", handler.UpdateUser)

			protected.Get("/reservations/seats/{id}", handler.ListFacilityReservations)
			protected.Get("/reservations/my/{userId}", handler.ListUserReservations)
			protected.Post("/reservations", handler.CreateReservation)
			protected.Put("/reservations/extend/{id}", handler.ExtendReservation)
			protected.Put("/reservations/cancel/{id}", handler.CancelReservation)
		})
	})
}

// auth validates the bearer token and stashes the caller's user id.
func (handler *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		header := request.Header.Get(constant.RequestHeaderAuthorization)

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == constant.Empty {
			withError(writer, failure.Unauthorized("missing bearer token"))

			return
		}

		claims, err := handler.jwt.Validate(token)
		if err != nil {
			withError(writer, failure.Unauthorized("invalid or expired token"))

			return
		}

		ctx := context.WithValue(request.Context(), constant.ContextKeyUserID, claims.UserID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := userDto.LoginRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	user, err := handler.store.Authenticate(req.UserID, req.Password)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Str("userId", req.UserID).Msg("login rejected")

		withError(writer, err)

		return
	}

	token, err := handler.jwt.Generate(user.ID)
	if err != nil {
		scope.TraceError(err)
		withError(writer, failure.InternalError(err))

		return
	}

	user.AccessToken = token

	withData(writer, http.StatusOK, "login succeeded", user)
}

func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := userDto.RegisterRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	user, err := handler.store.Register(userModel.User{
		ID:          req.UserID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}, req.Password)
	if err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	withData(writer, http.StatusCreated, "user registered", user)
}

func (handler *Handler) SearchPassword(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchPassword")
	defer scope.End()

	req := userDto.SearchPasswordRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	if !handler.store.HasUserWithPhone(req.UserID, req.PhoneNumber) {
		withError(writer, failure.NotFound(userModel.EntityName))

		return
	}

	withData(writer, http.StatusOK, "recovery instructions sent", nil)
}

func (handler *Handler) GetUser(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUser")
	defer scope.End()

	user, err := handler.store.GetUser(chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	withData(writer, http.StatusOK, "ok", user)
}

func (handler *Handler) UpdateUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if caller, _ := ctx.Value(constant.ContextKeyUserID).(string); caller != id {
		withError(writer, failure.Unauthorized("cannot update another user's profile"))

		return
	}

	req := userDto.UpdateProfileRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	user, err := handler.store.UpdateUser(id, req.Name, req.PhoneNumber, req.Password)
	if err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	withData(writer, http.StatusOK, "profile updated", user)
}

func (handler *Handler) ListFacilities(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListFacilities")
	defer scope.End()

	withData(writer, http.StatusOK, "ok", handler.store.ListFacilities())
}

func (handler *Handler) GetFacility(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacility")
	defer scope.End()

	facility, err := handler.store.GetFacility(chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	withData(writer, http.StatusOK, "ok", facility)
}

func (handler *Handler) ListFacilityReservations(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListFacilityReservations")
	defer scope.End()

	records := handler.store.ListFacilityReservations(chi.URLParam(request, "id"))

	withData(writer, http.StatusOK, "ok", records)
}

func (handler *Handler) ListUserReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListUserReservations")
	defer scope.End()

	userID := chi.URLParam(request, "userId")

	if caller, _ := ctx.Value(constant.ContextKeyUserID).(string); caller != userID {
		withError(writer, failure.Unauthorized("cannot read another user's reservations"))

		return
	}

	withData(writer, http.StatusOK, "ok", handler.store.ListUserReservations(userID))
}

func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := reservationDto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	if caller, _ := ctx.Value(constant.ContextKeyUserID).(string); caller != req.UserID {
		withError(writer, failure.Unauthorized("cannot reserve on behalf of another user"))

		return
	}

	record, err := handler.store.CreateReservation(reservationModel.Reservation{
		FacilityID: req.FacilityID,
		UserID:     req.UserID,
		SeatNumber: req.SeatNumber,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("facilityId", req.FacilityID).Int("seatNumber", req.SeatNumber).Msg("reservation rejected")

		withError(writer, err)

		return
	}

	withData(writer, http.StatusCreated, "reservation created", record)
}

func (handler *Handler) ExtendReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExtendReservation")
	defer scope.End()

	caller, _ := ctx.Value(constant.ContextKeyUserID).(string)
	extendBy := time.Duration(handler.cfg.Reservation.SlotHours) * time.Hour

	record, err := handler.store.ExtendReservation(chi.URLParam(request, "id"), caller, extendBy)
	if err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	withData(writer, http.StatusOK, "reservation extended", record)
}

func (handler *Handler) CancelReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	caller, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.store.CancelReservation(chi.URLParam(request, "id"), caller); err != nil {
		scope.TraceError(err)
		withError(writer, err)

		return
	}

	withData(writer, http.StatusOK, "reservation cancelled", nil)
}
