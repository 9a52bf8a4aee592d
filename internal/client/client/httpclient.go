package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/authn"
	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/common"
	"github.com/dmitrijs2005/carrental/internal/logging"
	"github.com/dmitrijs2005/carrental/internal/netx"
	"github.com/google/uuid"
)

const (
	pathUserData = "/api/user/data"
	pathCars     = "/api/user/cars"
	pathLogin    = "/api/user/login"
	pathRegister = "/api/user/register"
	pathAddCar   = "/api/owner/add-car"

	maxResponseBytes = 4 << 20
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	auth       *authn.Authenticator
	logger     logging.Logger
}

// NewHTTPClient builds a client for baseURL. auth is shared with the session
// controller, which is its only writer.
func NewHTTPClient(baseURL string, timeout time.Duration, auth *authn.Authenticator, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		auth:       auth,
		logger:     logger.With("component", "api_client"),
	}
}

type request struct {
	method        string
	path          string
	body          io.Reader
	contentType   string
	authenticated bool
}

// do sends r and decodes a JSON body into out. The body is decoded for any
// status so the server's message can be surfaced in an APIError.
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.authenticated {
		c.auth.Decorate(req)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if netx.IsNetworkError(err) && ctx.Err() == nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "api call",
		"method", r.method, "path", r.path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	decodeErr := error(nil)
	if len(bytes.TrimSpace(data)) > 0 {
		decodeErr = json.Unmarshal(data, out)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: messageOf(out), RequestID: requestID}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s response: %w", r.path, decodeErr)
	}
	return nil
}

// messageOf digs the server message out of a decoded envelope.
func messageOf(out any) string {
	switch v := out.(type) {
	case *models.UserResponse:
		return v.Message
	case *models.CarsResponse:
		return v.Message
	case *models.TokenResponse:
		return v.Message
	case *models.MessageResponse:
		return v.Message
	}
	return ""
}

func rejected(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Message: msg}
}

func (c *HTTPClient) FetchUser(ctx context.Context) (*models.User, error) {
	var body models.UserResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: pathUserData, authenticated: true}, &body); err != nil {
		return nil, err
	}
	if !body.Success || body.User == nil {
		return nil, rejected(http.StatusOK, body.Message)
	}
	return body.User, nil
}

func (c *HTTPClient) FetchCars(ctx context.Context) ([]models.Car, error) {
	var body models.CarsResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: pathCars}, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, rejected(http.StatusOK, body.Message)
	}
	if body.Cars == nil {
		return []models.Car{}, nil
	}
	return body.Cars, nil
}

func (c *HTTPClient) AddCar(ctx context.Context, listing models.CarListing, image Image) (string, error) {
	meta, err := json.Marshal(listing)
	if err != nil {
		return "", fmt.Errorf("encode listing: %w", err)
	}

	payload, contentType, err := netx.BuildMultipart(
		[][2]string{{"carData", string(meta)}},
		netx.FilePart{Field: "image", FileName: image.FileName, ContentType: image.ContentType, Content: bytes.NewReader(image.Data)},
	)
	if err != nil {
		return "", err
	}

	var body models.MessageResponse
	err = c.do(ctx, request{
		method:        http.MethodPost,
		path:          pathAddCar,
		body:          payload,
		contentType:   contentType,
		authenticated: true,
	}, &body)
	if err != nil {
		return "", err
	}
	if !body.Success {
		return "", rejected(http.StatusOK, body.Message)
	}
	return body.Message, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (credential.Credential, error) {
	return c.token(ctx, pathLogin, map[string]string{"email": email, "password": password})
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (credential.Credential, error) {
	return c.token(ctx, pathRegister, map[string]string{"name": name, "email": email, "password": password})
}

func (c *HTTPClient) token(ctx context.Context, path string, payload map[string]string) (credential.Credential, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var body models.TokenResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(b),
		contentType: "application/json",
	}, &body)
	if err != nil {
		return "", err
	}
	if !body.Success || body.Token == "" {
		return "", rejected(http.StatusOK, body.Message)
	}
	if !credential.ValidateShape(body.Token) {
		return "", fmt.Errorf("server issued token: %w", common.ErrMalformedCredential)
	}
	return credential.Credential(body.Token), nil
}

// IsTransportFailure reports whether err means the server was unreachable.
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
