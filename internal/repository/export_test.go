package repository

import "github.com/nikolayk812/storefront/internal/port"

// PutRawSlot writes raw bytes into a memory store slot.
func PutRawSlot(store port.CartStore, ownerID string, data []byte) {
	r := store.(*memoryCartRepository)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[ownerID] = data
}
