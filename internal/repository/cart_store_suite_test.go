package repository_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// cartStoreSuite holds the behaviour every CartStore backend must share.
// Backend suites embed it and fill in store, putRaw and deleteAll.
type cartStoreSuite struct {
	suite.Suite

	store     port.CartStore
	putRaw    func(ownerID string, data []byte)
	deleteAll func()
}

func (suite *cartStoreSuite) TestLoad() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		setup     []domain.CartLine
		raw       []byte
		wantError string
	}{
		{
			name:    "load saved cart: ok",
			ownerID: gofakeit.UUID(),
			setup:   []domain.CartLine{randomLine(1), randomLine(2)},
		},
		{
			name:    "load absent slot: empty",
			ownerID: gofakeit.UUID(),
		},
		{
			name:    "load malformed slot: empty",
			ownerID: gofakeit.UUID(),
			raw:     []byte(`{"not":"a list"}`),
		},
		{
			name:    "load slot with zero quantity: empty",
			ownerID: gofakeit.UUID(),
			raw:     []byte(`[{"id":1,"title":"x","price":1,"quantity":0}]`),
		},
		{
			name:      "load with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if len(tt.setup) > 0 {
				err := suite.store.Save(ctx, domain.Cart{OwnerID: tt.ownerID, Lines: tt.setup})
				require.NoError(t, err)
			}
			if tt.raw != nil {
				suite.putRaw(tt.ownerID, tt.raw)
			}

			cart, err := suite.store.Load(ctx, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			assertLines(t, tt.setup, cart.Lines)
		})
	}
}

func (suite *cartStoreSuite) TestSave() {
	defer suite.deleteAll()

	p := randomLine(7)

	tests := []struct {
		name      string
		cart      domain.Cart
		wantError string
	}{
		{
			name: "save cart: ok",
			cart: domain.Cart{OwnerID: gofakeit.UUID(), Lines: []domain.CartLine{randomLine(1)}},
		},
		{
			name: "save empty cart: ok",
			cart: domain.Cart{OwnerID: gofakeit.UUID()},
		},
		{
			name:      "save with empty owner ID: error",
			cart:      domain.Cart{Lines: []domain.CartLine{randomLine(1)}},
			wantError: "ownerID is empty",
		},
		{
			name:      "save duplicated lines: error",
			cart:      domain.Cart{OwnerID: gofakeit.UUID(), Lines: []domain.CartLine{p, p}},
			wantError: "cart.Validate: line[1] product[7] is duplicated: cart slot is corrupt",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.store.Save(ctx, tt.cart)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			cart, err := suite.store.Load(ctx, tt.cart.OwnerID)
			require.NoError(t, err)
			assertLines(t, tt.cart.Lines, cart.Lines)
		})
	}
}

func (suite *cartStoreSuite) TestSaveOverwrites() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	require.NoError(t, suite.store.Save(ctx, domain.Cart{OwnerID: ownerID, Lines: []domain.CartLine{randomLine(1), randomLine(2)}}))

	second := []domain.CartLine{randomLine(3)}
	require.NoError(t, suite.store.Save(ctx, domain.Cart{OwnerID: ownerID, Lines: second}))

	cart, err := suite.store.Load(ctx, ownerID)
	require.NoError(t, err)
	assertLines(t, second, cart.Lines)
}

func (suite *cartStoreSuite) TestClear() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	other := gofakeit.UUID()

	require.NoError(t, suite.store.Save(ctx, domain.Cart{OwnerID: ownerID, Lines: []domain.CartLine{randomLine(1)}}))
	require.NoError(t, suite.store.Save(ctx, domain.Cart{OwnerID: other, Lines: []domain.CartLine{randomLine(1)}}))

	require.NoError(t, suite.store.Clear(ctx, ownerID))
	// clearing an absent slot is fine
	require.NoError(t, suite.store.Clear(ctx, ownerID))

	cart, err := suite.store.Load(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	cart, err = suite.store.Load(ctx, other)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)

	require.EqualError(t, suite.store.Clear(ctx, ""), "ownerID is empty")
}

func (suite *cartStoreSuite) TestUpdate() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	product := randomLine(9).Product

	for range 2 {
		_, err := suite.store.Update(ctx, ownerID, func(cart *domain.Cart) error {
			cart.Add(product)
			return nil
		})
		require.NoError(t, err)
	}

	cart, err := suite.store.Load(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	wantErr := errors.New("boom")
	_, err = suite.store.Update(ctx, ownerID, func(cart *domain.Cart) error {
		cart.Lines = nil
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	cart, err = suite.store.Load(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1, "failed update must not be saved")

	cart, err = suite.store.Update(ctx, ownerID, func(cart *domain.Cart) error {
		cart.Decrease(0)
		cart.Decrease(0)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func (suite *cartStoreSuite) TestUpdateConcurrent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	product := randomLine(11).Product

	const n = 20

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.store.Update(ctx, ownerID, func(cart *domain.Cart) error {
				cart.Add(product)
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var failed int
	for err := range errs {
		if err != nil {
			failed++
		}
	}

	cart, err := suite.store.Load(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, n-failed, cart.Lines[0].Quantity)
	assert.NoError(t, cart.Validate())
}

func randomLine(id int64) domain.CartLine {
	return domain.CartLine{
		Product: domain.Product{
			ID:          id,
			Title:       gofakeit.ProductName(),
			Price:       decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
			Image:       gofakeit.URL(),
			Description: gofakeit.ProductDescription(),
			Category:    gofakeit.ProductCategory(),
		},
		Quantity: gofakeit.IntRange(1, 5),
	}
}

func assertLines(t *testing.T, expected, actual []domain.CartLine) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	if len(expected) == 0 {
		assert.Empty(t, actual)
		return
	}

	diff := cmp.Diff(expected, actual, decimalComparer)
	assert.Empty(t, diff)
}
