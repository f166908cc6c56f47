// Package market is the listing store surface the replication workflow
// talks to. Implementations live under external/.
package market

import (
	"context"
	"errors"

	"github.com/rentlab/lotclone/internal/lot"
)

var ErrLotNotFound = errors.New("market: lot not found")

// InventoryItem is one entry of the account's lot inventory, as much of it
// as identifier recovery needs.
type InventoryItem struct {
	ID    int64
	Title string
}

// SaveResult carries whatever the store disclosed about a completed save.
// Any field may be zero, identifier recovery probes them in order.
type SaveResult struct {
	OfferID int64
	URL     string
	Raw     string
	Fields  map[string]string
}

type Client interface {
	// FetchLotFields returns the editable field mapping of one lot.
	FetchLotFields(ctx context.Context, lotID int64) (lot.Fields, error)
	// SaveLot submits a lot's fields, injecting the submission token.
	SaveLot(ctx context.Context, fields lot.Fields) (SaveResult, error)
	// ListInventory returns the account's lots for reverse id lookup.
	ListInventory(ctx context.Context) ([]InventoryItem, error)
}
