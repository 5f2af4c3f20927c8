package repository

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

func encodeLines(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

func decodeLines(data []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w: %w", domain.ErrCorruptCart, err)
	}

	if err := (domain.Cart{Lines: lines}).Validate(); err != nil {
		return nil, err
	}

	return lines, nil
}

// slotCart turns raw slot contents into a cart. Undecodable contents degrade to an empty cart.
func slotCart(log *zap.Logger, ownerID string, data []byte) domain.Cart {
	cart := domain.Cart{OwnerID: ownerID}
	if len(data) == 0 {
		return cart
	}

	lines, err := decodeLines(data)
	if err != nil {
		log.Warn("cart slot unreadable, treating as empty",
			zap.String("owner_id", ownerID),
			zap.Error(err))
		return cart
	}

	cart.Lines = lines
	return cart
}

func validateCart(cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if err := cart.Validate(); err != nil {
		return fmt.Errorf("cart.Validate: %w", err)
	}
	return nil
}
