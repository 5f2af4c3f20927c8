package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const DefaultRatesURL = "https://api.exchangerate-api.com/v4/latest/USD"

type rateClient struct {
	url  string
	http *http.Client
}

func NewRateClient(url string, timeout time.Duration) port.RateSource {
	return &rateClient{
		url:  url,
		http: newHTTPClient(timeout),
	}
}

type ratesResponse struct {
	Rates domain.RateTable `json:"rates"`
}

func (c *rateClient) FetchRates(ctx context.Context) (domain.RateTable, error) {
	var resp ratesResponse
	if err := getJSON(ctx, c.http, c.url, &resp); err != nil {
		return nil, fmt.Errorf("getJSON: %w", err)
	}

	if resp.Rates == nil {
		return nil, fmt.Errorf("response has no rates")
	}

	return resp.Rates, nil
}
