package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductSource interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

type RateSource interface {
	FetchRates(ctx context.Context) (domain.RateTable, error)
}
