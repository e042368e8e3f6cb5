package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/types"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultBaseURL                = "https://router.project-osrm.org"
	defaultProfile                = "driving"
	requestBodyReadLimit    int64 = 1024
	metersPerKilometre            = 1000.0
	defaultFailureThreshold       = 5
	defaultOpenTimeout            = 30 * time.Second
)

// Client queries an OSRM-compatible routing service for road distances.
type Client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	timeout    time.Duration

	failureThreshold uint32
	openTimeout      time.Duration
	breaker          *gobreaker.CircuitBreaker[*Route]
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the routing service base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithProfile selects the routing profile ("driving" for trucks and vans).
func WithProfile(profile string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(profile)
		if trimmed != "" {
			c.profile = trimmed
		}
	}
}

// WithTimeout sets the request timeout on a copy of whichever HTTP client is in use.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithBreaker stops calling the provider for openFor after threshold
// consecutive failed lookups.
func WithBreaker(threshold uint32, openFor time.Duration) Option {
	return func(c *Client) {
		if threshold > 0 {
			c.failureThreshold = threshold
		}
		if openFor > 0 {
			c.openTimeout = openFor
		}
	}
}

// NewClient builds the routing client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:          defaultBaseURL,
		profile:          defaultProfile,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
		failureThreshold: defaultFailureThreshold,
		openTimeout:      defaultOpenTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.timeout > 0 {
		httpClient := *client.httpClient
		httpClient.Timeout = client.timeout
		client.httpClient = &httpClient
	}
	threshold := client.failureThreshold
	client.breaker = gobreaker.NewCircuitBreaker[*Route](gobreaker.Settings{
		Name:        "routing",
		MaxRequests: 1,
		Timeout:     client.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
	return client
}

// Route is the summary of the shortest routed path between two points.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// DistanceKm returns the route length in kilometres.
func (r Route) DistanceKm() float64 {
	return r.DistanceMeters / metersPerKilometre
}

// Route asks the provider for the road route from origin to destination.
func (c *Client) Route(ctx context.Context, origin, destination types.Coordinate) (*Route, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "routing client not configured")
	}
	if !origin.Valid() || !destination.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "route coordinates are out of range")
	}

	route, err := c.breaker.Execute(func() (*Route, error) {
		return c.fetchRoute(ctx, origin, destination)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "routing provider unavailable")
	}
	return route, err
}

func (c *Client) fetchRoute(ctx context.Context, origin, destination types.Coordinate) (*Route, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.routeURL(origin, destination), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build route request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute route request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "route request failed")
	}

	var apiResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Routes  []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode route response")
	}
	if apiResp.Code != "" && apiResp.Code != "Ok" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("route not found: %s %s", apiResp.Code, apiResp.Message))
	}
	if len(apiResp.Routes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "route not found")
	}

	best := apiResp.Routes[0]
	return &Route{DistanceMeters: best.Distance, DurationSeconds: best.Duration}, nil
}

// DistanceKm returns the routed path length in kilometres.
func (c *Client) DistanceKm(ctx context.Context, origin, destination types.Coordinate) (float64, error) {
	route, err := c.Route(ctx, origin, destination)
	if err != nil {
		return 0, err
	}
	return route.DistanceKm(), nil
}

// OSRM takes lng,lat pairs.
func (c *Client) routeURL(origin, destination types.Coordinate) string {
	return fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=false",
		strings.TrimRight(c.baseURL, "/"), c.profile,
		origin.Lng, origin.Lat, destination.Lng, destination.Lat,
	)
}
