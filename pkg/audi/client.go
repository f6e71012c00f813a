package audi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/openiov/audictl/pkg/log"
)

// httpClient is the real implementation of Client over the service's
// REST/JSON API.
type httpClient struct {
	cfg  *ClientConfig
	http *http.Client

	// accessToken is set after a successful login handshake and sent as a
	// bearer credential on every subsequent call. The CLI is a single
	// logical flow, so no locking is needed.
	accessToken string
}

var _ Client = (*httpClient)(nil)

// NewClient creates a new vehicle cloud client.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("audi config is required")
	}

	setDefaultConfig(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid audi config: %w", err)
	}

	return &httpClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Wire shapes. The service wraps most payloads in a thin envelope carrying
// either data or an error string.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Country  string `json:"country"`
	APILevel int    `json:"apiLevel"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	Error       string `json:"error,omitempty"`
}

type actionRequest struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type actionResponse struct {
	Status ActionStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

type vehiclesResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
}

type tripsResponse struct {
	Trips []Trip `json:"trips"`
}

func (c *httpClient) AttemptLogin(ctx context.Context, username, password, country string) (bool, error) {
	body := loginRequest{
		Username: username,
		Password: password,
		Country:  country,
		APILevel: c.cfg.APILevel,
	}

	log.Debug("requesting login to vehicle cloud service", "country", country)

	resp, err := c.do(ctx, http.MethodPost, "/login/v1/session", body)
	if err != nil {
		return false, classify("login", err)
	}
	defer resp.Body.Close()

	var out loginResponse
	if err := c.decode("login", resp, &out); err != nil {
		return false, err
	}

	if out.AccessToken == "" {
		// The service answered but did not grant a session. A plain
		// rejection is reported via the boolean contract; throttle-marked
		// rejections surface as classified faults so the caller can stop
		// retrying.
		if out.Error != "" && containsThrottleMarker(out.Error) {
			return false, &ServiceError{Kind: KindThrottled, Op: "login", Message: out.Error, HTTPStatus: resp.StatusCode}
		}
		log.Debug("login rejected by service", "reason", out.Error)
		return false, nil
	}

	c.accessToken = out.AccessToken
	log.Debug("login to vehicle cloud service successful")
	return true, nil
}

func (c *httpClient) ExecuteAction(ctx context.Context, vin, action string, params map[string]any) (ActionStatus, error) {
	body := actionRequest{Action: action, Parameters: params}

	path := fmt.Sprintf("/vehicle/v1/vehicles/%s/actions", strings.ToLower(vin))
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return ActionRejected, classify(action, err)
	}
	defer resp.Body.Close()

	var out actionResponse
	if err := c.decode(action, resp, &out); err != nil {
		return ActionRejected, err
	}

	switch out.Status {
	case ActionAccepted, ActionRejected, ActionDisabled:
		return out.Status, nil
	default:
		return ActionRejected, &ServiceError{
			Kind:    KindOther,
			Op:      action,
			Message: fmt.Sprintf("unrecognized action status %q", out.Status),
		}
	}
}

func (c *httpClient) Vehicles(ctx context.Context) ([]Vehicle, error) {
	resp, err := c.do(ctx, http.MethodGet, "/vehicle/v1/vehicles", nil)
	if err != nil {
		return nil, classify("vehicles", err)
	}
	defer resp.Body.Close()

	var out vehiclesResponse
	if err := c.decode("vehicles", resp, &out); err != nil {
		return nil, err
	}
	return out.Vehicles, nil
}

func (c *httpClient) VehicleStatus(ctx context.Context, vin string) (*VehicleStatus, error) {
	path := fmt.Sprintf("/vehicle/v1/vehicles/%s/status", strings.ToLower(vin))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, classify("status", err)
	}
	defer resp.Body.Close()

	out := &VehicleStatus{}
	if err := c.decode("status", resp, out); err != nil {
		return nil, err
	}
	out.VIN = strings.ToLower(vin)
	return out, nil
}

func (c *httpClient) TripData(ctx context.Context, vin string) ([]Trip, error) {
	path := fmt.Sprintf("/vehicle/v1/vehicles/%s/trips", strings.ToLower(vin))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, classify("trip-data", err)
	}
	defer resp.Body.Close()

	var out tripsResponse
	if err := c.decode("trip-data", resp, &out); err != nil {
		return nil, err
	}
	return out.Trips, nil
}

// do issues one HTTP request with the configured base URL, auth header and
// JSON encoding. Timeouts are owned here; callers only bound attempt counts.
func (c *httpClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	return c.http.Do(req)
}

// decode parses a JSON response body, converting non-2xx responses into
// classified service errors.
func (c *httpClient) decode(op string, resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ServiceError{
			Kind:       kindForStatus(resp.StatusCode, string(raw)),
			Op:         op,
			Message:    strings.TrimSpace(string(raw)),
			HTTPStatus: resp.StatusCode,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{Kind: KindOther, Op: op, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

// kindForStatus maps an HTTP status (plus body text) to an error kind.
// 429 and throttle-marked bodies are the lockout condition; 5xx and 408
// are worth retrying.
func kindForStatus(status int, body string) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindThrottled
	case containsThrottleMarker(body):
		return KindThrottled
	case status >= 500, status == http.StatusRequestTimeout:
		return KindTransient
	default:
		return KindOther
	}
}

// classify wraps transport-level failures in a ServiceError so callers see a
// uniform fault type. Network errors are transient by definition here; the
// cause is preserved so context cancellation stays detectable.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}

	kind := KindOther
	var netErr net.Error
	if errors.As(err, &netErr) {
		kind = KindTransient
	}

	return &ServiceError{Kind: kind, Op: op, Message: err.Error(), Err: err}
}

func containsThrottleMarker(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range throttleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
