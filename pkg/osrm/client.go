// Package osrm acquires driving routes from an OSRM-compatible HTTP service.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/1F47E/go-navigator/pkg/models"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://router.project-osrm.org"
	DefaultProfile = "driving"
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 4 << 10
)

var (
	// ErrNoRoute means the service found no path between the points
	ErrNoRoute = errors.New("no route between the selected points")
	// ErrMalformedResponse means the response did not have the expected shape
	ErrMalformedResponse = errors.New("malformed routing response")
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("routing service returned %d: %s", e.Code, e.Body)
}

// Client requests routes from one routing service.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	session  *http.Client
	baseURL  string
	profile  string
	geometry Geometry
	timeout  time.Duration
	log      *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.session = hc }
}

func WithProfile(profile string) Option {
	return func(c *Client) {
		if profile != "" {
			c.profile = profile
		}
	}
}

func WithGeometry(g Geometry) Option {
	return func(c *Client) { c.geometry = g }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid routing base url %q", baseURL)
	}

	c := &Client{
		session:  &http.Client{},
		baseURL:  baseURL,
		profile:  DefaultProfile,
		geometry: GeometryGeoJSON,
		timeout:  DefaultTimeout,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Route requests a route from start to end and normalizes the first candidate.
// Coordinates go on the wire in (lng, lat) order.
func (c *Client) Route(ctx context.Context, start, end models.Coordinate) (_ *models.Route, err error) {
	defer c.timed("osrm.Route", start, end)(&err)

	if !start.Valid() || !end.Valid() {
		return nil, fmt.Errorf("route request: invalid coordinates %v -> %v", start, end)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.routeURL(start, end), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrMalformedResponse, err)
	}

	route, err := decoded.toRoute(c.geometry)
	if err != nil {
		return nil, err
	}
	return route, nil
}

func (c *Client) routeURL(start, end models.Coordinate) string {
	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", string(c.geometry))
	q.Set("steps", "true")

	return fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?%s",
		c.baseURL, url.PathEscape(c.profile), start.Lng, start.Lat, end.Lng, end.Lat, q.Encode())
}

// statusError maps a failed response, recognising OSRM's NoRoute code in 4xx bodies
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var decoded routeResponse
	if json.Unmarshal(body, &decoded) == nil && decoded.Code == "NoRoute" {
		return ErrNoRoute
	}
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func (c *Client) timed(op string, start, end models.Coordinate) func(errp *error) {
	began := time.Now()
	return func(errp *error) {
		fields := []zap.Field{
			zap.String("op", op),
			zap.String("profile", c.profile),
			zap.Stringer("start", start),
			zap.Stringer("end", end),
			zap.Duration("dur", time.Since(began)),
		}
		if errp != nil && *errp != nil {
			c.log.Warn("route request failed", append(fields, zap.Error(*errp))...)
			return
		}
		c.log.Debug("route request", fields...)
	}
}
