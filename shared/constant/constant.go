package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID  contextKey = "user_id"
	ContextKeyTokenID contextKey = "token_id"
)

// Application error codes carried in the response envelope. The backend
// signals a duplicate booking either with HTTP 409 or with this code.
const (
	CodeSuccess                    = "SUCCESS"
	CodeDuplicateActiveReservation = "DUPLICATE_ACTIVE_RESERVATION"
	CodeInvalidCredentials         = "INVALID_CREDENTIALS"
	CodeNotFound                   = "NOT_FOUND"
	CodeBadRequest                 = "BAD_REQUEST"
	CodeInternalError              = "INTERNAL_ERROR"
)

// Reservation status markers as stored by the backend. The cancellation
// marker is the literal Korean word the production backend writes.
const (
	StatusActive    = "ACTIVE"
	StatusCancelled = "취소"
)

const (
	SessionKeyUserID      = "userId"
	SessionKeyAccessToken = "accessToken"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelTransportScopeName  = "transport"
	OtelHandlerScopeName    = "handler"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderRequestID     = "X-Request-ID"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

const (
	Empty = ""
)
