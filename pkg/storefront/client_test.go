package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

func TestSubmitBatchOrderSendsPayload(t *testing.T) {
	var got BatchOrder
	var requestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/item-order/batch", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		requestID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	err := client.SubmitBatchOrder(context.Background(), BatchOrder{
		Items: []BatchItem{{ItemID: "a", Title: "Арматура А500С", Qty: 3, Price: 1200}},
		Phone: "+7 (999) 123-45-67",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Qty)
	assert.Equal(t, "+7 (999) 123-45-67", got.Phone)
}

func TestNonSuccessStatusIsRejectedWithBodyVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "empty items", http.StatusBadRequest)
	})

	err := client.SubmitBatchOrder(context.Background(), BatchOrder{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeRejected))
	assert.Equal(t, "empty items", pkgerrors.UserMessage(err))
	assert.Equal(t, http.StatusBadRequest, pkgerrors.StatusOf(err))
}

func TestTransportFailureIsDependencyError(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	client, err := NewClient("http://shop.test", WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	err = client.Login(context.Background(), Credentials{Email: "a@b.co", Password: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.False(t, client.SessionActive(context.Background()))
}

func TestSessionCookieRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "user_session", Value: "token", Path: "/"})
		case "/api/me":
			if c, err := r.Cookie("user_session"); err != nil || c.Value != "token" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"name":"Иван Петров","email":"ivan@example.com"}`))
		}
	})

	ctx := context.Background()
	assert.False(t, client.SessionActive(ctx))
	require.NoError(t, client.Login(ctx, Credentials{Email: "ivan@example.com", Password: "secret"}))
	assert.True(t, client.SessionActive(ctx))

	profile, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ИП", profile.Initials())

	// a fresh client restored from saved cookies keeps the session
	restored, err := NewClient(client.BaseURL())
	require.NoError(t, err)
	restored.SetCookies(client.Cookies())
	assert.True(t, restored.SessionActive(ctx))
}

func TestNewsSendsYearQuery(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":1,"title":"Новое поступление","short_text":"s","full_text":"f","published_at":"2024-03-01T10:00:00Z"}]`))
	})

	items, err := client.News(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, "year=2024", query)
	require.Len(t, items, 1)
	assert.Equal(t, 2024, items[0].PublishedAt.Year())

	_, err = client.News(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestClearServerCartAndServiceRequest(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
		if r.URL.Path == "/api/orders" {
			_, _ = w.Write([]byte(`{"id":7,"status":"ok"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	ctx := context.Background()
	require.NoError(t, client.ClearServerCart(ctx))
	receipt, err := client.SubmitServiceRequest(ctx, ServiceOrder{Service: "Резка металла", Name: "Иван", Phone: "+7 (999) 123-45-67"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), receipt.ID)
	assert.Equal(t, []string{"DELETE /api/cart?all=1", "POST /api/orders?"}, calls)
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"vk_link":" https://vk.com/x "}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL + "/shop/")
	require.NoError(t, err)
	links, err := client.Social(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/shop/api/social", path)
	assert.Equal(t, "https://vk.com/x", links.VK)
}

func TestNewClientRequiresAbsoluteURL(t *testing.T) {
	_, err := NewClient("/relative")
	assert.Error(t, err)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTimeoutOptionLeavesCallerClientAlone(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts func(hc *http.Client) []Option
	}{
		{"timeout first", func(hc *http.Client) []Option { return []Option{WithTimeout(3 * time.Second), WithHTTPClient(hc)} }},
		{"timeout last", func(hc *http.Client) []Option { return []Option{WithHTTPClient(hc), WithTimeout(3 * time.Second)} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			caller := &http.Client{Timeout: time.Minute}
			client, err := NewClient("https://metall-dk.ru", tc.opts(caller)...)
			require.NoError(t, err)

			assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
			assert.NotNil(t, client.httpClient.Jar)
			assert.Equal(t, time.Minute, caller.Timeout)
			assert.Nil(t, caller.Jar)
		})
	}

	client, err := NewClient("https://metall-dk.ru")
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}
