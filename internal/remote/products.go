package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const DefaultProductsURL = "https://fakestoreapi.com/products"

type productClient struct {
	url  string
	http *http.Client
}

func NewProductClient(url string, timeout time.Duration) port.ProductSource {
	return &productClient{
		url:  url,
		http: newHTTPClient(timeout),
	}
}

func (c *productClient) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := getJSON(ctx, c.http, c.url, &products); err != nil {
		return nil, fmt.Errorf("getJSON: %w", err)
	}

	return products, nil
}
