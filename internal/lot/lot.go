package lot

import (
	"strconv"
	"strings"
)

// Field keys the listing store's edit form cares about. Everything else in
// a lot's field mapping passes through untouched.
const (
	FieldPrice     = "price"
	FieldOfferID   = "offer_id"
	FieldCSRFToken = "csrf_token"

	FieldSummaryRU = "fields[summary][ru]"
	FieldSummaryEN = "fields[summary][en]"
	FieldDescRU    = "fields[desc][ru]"
	FieldDescEN    = "fields[desc][en]"
)

// NewListingMarker is the offer_id value that tells the store to create a
// new lot instead of updating an existing one.
const NewListingMarker = "0"

// Fields is the opaque field mapping of one lot as the listing store serves it.
type Fields map[string]string

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Base is an immutable snapshot of one source lot, captured once per
// replication session.
type Base struct {
	Fields       Fields
	TitleRU      string
	TitleEN      string
	PricePerHour float64
}

func NewBase(fields Fields) Base {
	return Base{
		Fields:       fields.Clone(),
		TitleRU:      strings.TrimSpace(fields[FieldSummaryRU]),
		TitleEN:      strings.TrimSpace(fields[FieldSummaryEN]),
		PricePerHour: parsePrice(fields[FieldPrice]),
	}
}

func parsePrice(raw string) float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
