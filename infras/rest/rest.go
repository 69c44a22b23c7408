package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"campus/config"
	"campus/infras/otel"
	"campus/shared/constant"
	"campus/shared/dto"
	"campus/shared/failure"
)

// TokenProvider supplies the bearer token for authenticated calls.
// An empty string means the request goes out unauthenticated.
type TokenProvider interface {
	AccessToken() string
}

// Client is the HTTP layer shared by all domain repositories. It speaks
// the backend's envelope dialect and maps transport and application
// errors onto the failure code space, so repositories never see a raw
// *http.Response.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	otel    otel.Otel
}

func New(cfg *config.Config, tokens TokenProvider, otel otel.Otel) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		http: &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		},
		tokens: tokens,
		otel:   otel,
	}
}

// Get issues a GET request and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the envelope data into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the envelope data into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelTransportScopeName, fmt.Sprintf("%s %s", method, path))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	requestID := uuid.NewString()

	scope.SetAttributes(map[string]any{
		"http.method":     method,
		"http.path":       path,
		"http.request_id": requestID,
	})

	var reader io.Reader

	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return failure.InternalError(fmt.Errorf("failed to encode request body: %w", marshalErr)) //nolint:wrapcheck
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return failure.InternalError(fmt.Errorf("failed to build request: %w", err)) //nolint:wrapcheck
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderRequestID, requestID)

	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("request failed in transport")

		return failure.Unavailable(fmt.Errorf("backend unreachable: %w", err)) //nolint:wrapcheck
	}
	defer res.Body.Close()

	scope.SetAttribute("http.status_code", res.StatusCode)

	var envelope dto.Envelope

	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to decode response envelope")

		return failure.Unavailable(fmt.Errorf("malformed response: %w", err)) //nolint:wrapcheck
	}

	if err := c.checkEnvelope(res.StatusCode, envelope); err != nil {
		return err
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to decode response data")

			return failure.Unavailable(fmt.Errorf("malformed response data: %w", err)) //nolint:wrapcheck
		}
	}

	return nil
}

// checkEnvelope maps the HTTP status and the application code onto the
// failure taxonomy. The duplicate-booking conflict is recognised by
// either signal: some backend revisions answer 409, others answer 200
// with the application code set.
func (c *Client) checkEnvelope(status int, envelope dto.Envelope) error {
	if status == http.StatusConflict || envelope.Code == constant.CodeDuplicateActiveReservation {
		return failure.Conflict(envelope.Message) //nolint:wrapcheck
	}

	if status == http.StatusUnauthorized || envelope.Code == constant.CodeInvalidCredentials {
		return failure.Unauthorized(envelope.Message) //nolint:wrapcheck
	}

	if status == http.StatusNotFound {
		return failure.NotFound(envelope.Message) //nolint:wrapcheck
	}

	if status >= http.StatusInternalServerError {
		return failure.Unavailable(fmt.Errorf("backend error: %s", envelope.Message)) //nolint:wrapcheck
	}

	if status >= http.StatusBadRequest || !envelope.IsSucess {
		return failure.BadRequestFromString(envelope.Message) //nolint:wrapcheck
	}

	return nil
}
