package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/remote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

const productsBody = `[
  {"id": 7, "title": "Backpack", "price": 9.99, "image": "https://img/7.png",
   "description": "fits 15 inch laptops", "category": "men's clothing",
   "rating": {"rate": 3.9, "count": 120}},
  {"id": 8, "title": "Ring", "price": 168, "image": "https://img/8.png",
   "description": "gold", "category": "jewelery"}
]`

func TestFetchProducts(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLen   int
		wantError bool
	}{
		{
			name:    "decode products: ok",
			status:  http.StatusOK,
			body:    productsBody,
			wantLen: 2,
		},
		{
			name:      "server error: error",
			status:    http.StatusInternalServerError,
			body:      `oops`,
			wantError: true,
		},
		{
			name:      "malformed body: error",
			status:    http.StatusOK,
			body:      `{"id":`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)

			products, err := remote.NewProductClient(srv.URL, time.Second).FetchProducts(t.Context())
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, products, tt.wantLen)

			assert.Equal(t, domain.Product{
				ID:          7,
				Title:       "Backpack",
				Price:       decimal.RequireFromString("9.99"),
				Image:       "https://img/7.png",
				Description: "fits 15 inch laptops",
				Category:    "men's clothing",
			}, products[0])
		})
	}
}

func TestFetchRates(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      domain.RateTable
		wantError bool
	}{
		{
			name:   "decode rates: ok",
			status: http.StatusOK,
			body:   `{"base":"USD","date":"2025-01-01","rates":{"USD":1,"EUR":0.9,"JPY":151.2}}`,
			want: domain.RateTable{
				"USD": decimal.RequireFromString("1"),
				"EUR": decimal.RequireFromString("0.9"),
				"JPY": decimal.RequireFromString("151.2"),
			},
		},
		{
			name:      "missing rates: error",
			status:    http.StatusOK,
			body:      `{"base":"USD"}`,
			wantError: true,
		},
		{
			name:      "not found: error",
			status:    http.StatusNotFound,
			body:      `{}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)

			rates, err := remote.NewRateClient(srv.URL, time.Second).FetchRates(t.Context())
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, rates, len(tt.want))
			for code, rate := range tt.want {
				assert.True(t, rate.Equal(rates[code]), "rate for %s: %s", code, rates[code])
			}
		})
	}
}

func TestFetchRespectsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := remote.NewRateClient(srv.URL, time.Minute).FetchRates(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}
