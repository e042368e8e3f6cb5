package routing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/types"
)

var (
	warehouse = types.Coordinate{Lat: 59.820540, Lng: 30.370800}
	customer  = types.Coordinate{Lat: 59.934280, Lng: 30.335099}
)

func TestClientRouteRequest(t *testing.T) {
	const expectedURL = "http://osrm.test/route/v1/driving/30.370800,59.820540;30.335099,59.934280?overview=false"
	respBody := `{"code":"Ok","routes":[{"distance":15234.5,"duration":1320.2}]}`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		if req.Method != http.MethodGet {
			t.Fatalf("unexpected method %s", req.Method)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client := NewClient(WithBaseURL("http://osrm.test/"), WithHTTPClient(&http.Client{Transport: rt}))
	route, err := client.Route(context.Background(), warehouse, customer)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if route.DistanceKm() != 15.2345 {
		t.Fatalf("unexpected distance %f", route.DistanceKm())
	}
}

func TestClientRouteProfileOption(t *testing.T) {
	var capturedPath string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"code":"Ok","routes":[{"distance":1000}]}`)),
			Header:     http.Header{},
		}, nil
	})
	client := NewClient(WithBaseURL("http://osrm.test"), WithProfile("truck"), WithHTTPClient(&http.Client{Transport: rt}))

	km, err := client.DistanceKm(context.Background(), warehouse, customer)
	if err != nil {
		t.Fatalf("distance: %v", err)
	}
	if km != 1 {
		t.Fatalf("expected 1km, got %f", km)
	}
	if !strings.HasPrefix(capturedPath, "/route/v1/truck/") {
		t.Fatalf("unexpected path %q", capturedPath)
	}
}

func TestClientRouteErrors(t *testing.T) {
	cases := []struct {
		name string
		rt   roundTripFunc
	}{
		{
			name: "transport",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
		},
		{
			name: "status",
			rt: func(*http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusTooManyRequests, Body: io.NopCloser(strings.NewReader("slow down")), Header: http.Header{}}, nil
			},
		},
		{
			name: "no route",
			rt: func(*http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"code":"NoRoute","message":"Impossible route","routes":[]}`)), Header: http.Header{}}, nil
			},
		},
	}

	for _, tc := range cases {
		client := NewClient(WithBaseURL("http://osrm.test"), WithHTTPClient(&http.Client{Transport: tc.rt}))
		_, err := client.Route(context.Background(), warehouse, customer)
		if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
			t.Fatalf("%s: expected dependency error, got %v", tc.name, err)
		}
	}
}

func TestClientRouteValidatesCoordinates(t *testing.T) {
	client := NewClient()
	_, err := client.Route(context.Background(), warehouse, types.Coordinate{Lat: 120, Lng: 0})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var nilClient *Client
	if _, err := nilClient.Route(context.Background(), warehouse, customer); err == nil {
		t.Fatal("expected nil client to fail")
	}
}

func TestClientBreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("dial tcp: connection refused")
	})
	client := NewClient(
		WithBaseURL("http://osrm.test"),
		WithHTTPClient(&http.Client{Transport: rt}),
		WithBreaker(2, time.Minute),
	)

	for i := 0; i < 2; i++ {
		if _, err := client.Route(context.Background(), warehouse, customer); err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
	}
	_, err := client.Route(context.Background(), warehouse, customer)
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error from open breaker, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("open breaker should not reach the provider, got %d calls", calls)
	}

	// validation runs before the breaker
	if _, err := client.Route(context.Background(), warehouse, types.Coordinate{Lat: 95}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClientTimeoutKeepsCustomTransport(t *testing.T) {
	var calls int
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"code":"Ok","routes":[{"distance":1000}]}`)),
			Header:     http.Header{},
		}, nil
	})
	caller := &http.Client{Transport: rt}
	client := NewClient(WithTimeout(2*time.Second), WithBaseURL("http://osrm.test"), WithHTTPClient(caller))

	if _, err := client.Route(context.Background(), warehouse, customer); err != nil {
		t.Fatalf("route: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the custom transport to serve the call, got %d calls", calls)
	}
	if client.httpClient.Timeout != 2*time.Second {
		t.Fatalf("unexpected timeout %s", client.httpClient.Timeout)
	}
	if caller.Timeout != 0 {
		t.Fatalf("caller client was modified: timeout %s", caller.Timeout)
	}
}
