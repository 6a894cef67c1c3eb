// Package client is a Go client for the Trip Planner REST API, plus the
// TripCache that keeps a caller's trips in memory between requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the API error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	// Fields maps a field path such as "budget.amount" to its message.
	// Only validation errors carry fields.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	msgs := make([]string, len(paths))
	for i, p := range paths {
		msgs[i] = e.Fields[p]
	}
	return e.Message + ": " + strings.Join(msgs, "; ")
}

// Client talks to one Trip Planner API server.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer token on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client, which has a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// New returns a Client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTrips returns the caller's trips, newest first.
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := c.do(ctx, http.MethodGet, "/api/trips", nil, &trips); err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// GetTrip returns one trip of the caller.
func (c *Client) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	var trip domain.Trip
	err := c.do(ctx, http.MethodGet, "/api/trips/"+id.String(), nil, &trip)
	return trip, err
}

// CreateTrip creates a trip from in, which may be a domain.Trip or any value
// that marshals to the trip JSON shape, and returns the stored record.
func (c *Client) CreateTrip(ctx context.Context, in any) (domain.Trip, error) {
	var trip domain.Trip
	err := c.do(ctx, http.MethodPost, "/api/trips", in, &trip)
	return trip, err
}

// UpdateTrip sends a partial update. Only the keys present in patch change,
// so pass a map or a struct with omitempty fields rather than a full Trip
// unless every field should be replaced.
func (c *Client) UpdateTrip(ctx context.Context, id uuid.UUID, patch any) (domain.Trip, error) {
	var trip domain.Trip
	err := c.do(ctx, http.MethodPut, "/api/trips/"+id.String(), patch, &trip)
	return trip, err
}

// DeleteTrip deletes one trip of the caller.
func (c *Client) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/trips/"+id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client.Client.do: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client.Client.do: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Client.do: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client.Client.do: decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads the error envelope. Bodies that are not an envelope,
// such as a proxy's HTML error page, still yield an APIError with the status.
func decodeAPIError(resp *http.Response) error {
	var env struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Fields  map[string]string `json:"fields"`
		} `json:"error"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error.Message != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Fields = env.Error.Fields
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
