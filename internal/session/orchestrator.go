package session

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentlab/lotclone/internal/lot"
	"github.com/rentlab/lotclone/internal/market"
)

// Outcome records one successfully submitted variant. NewID is 0 when the
// store accepted the write but no identifier could be recovered.
type Outcome struct {
	SourceID int64
	Hours    float64
	NewID    int64
}

// BatchResult aggregates one orchestration pass.
type BatchResult struct {
	Outcomes []Outcome
	Created  int
	Failed   int
}

var responseIDRE = regexp.MustCompile(`(\d{6,})`)

// runBatch walks the sources x durations cross product, submitting one
// variant at a time. A failed variant is counted and skipped, it never
// aborts the batch.
func (m *Manager) runBatch(ctx context.Context, sess *Replication) BatchResult {
	batchID := uuid.NewString()
	delay := time.Duration(m.cfg.SaveDelayMS) * time.Millisecond
	slog.Info("replication batch started",
		"batch_id", batchID,
		"channel_id", sess.ChannelID,
		"sources", len(sess.LotIDs),
		"durations", len(sess.Durations),
		"discount", sess.Discount)

	var result BatchResult
	for _, sourceID := range sess.LotIDs {
		base := sess.Bases[sourceID]
		for _, hours := range sess.Durations {
			fields := lot.BuildVariant(base, hours, sess.Discount)
			// The store throttles rapid form submissions.
			time.Sleep(delay)
			saved, err := m.market.SaveLot(ctx, fields)
			if err != nil {
				result.Failed++
				slog.Error("variant save failed",
					"error", err, "batch_id", batchID, "source_id", sourceID, "hours", hours)
				continue
			}
			result.Created++
			newID := m.recoverLotID(ctx, saved, fields)
			if newID == 0 {
				slog.Warn("created lot id not recovered",
					"batch_id", batchID, "source_id", sourceID, "hours", hours)
			}
			result.Outcomes = append(result.Outcomes, Outcome{SourceID: sourceID, Hours: hours, NewID: newID})
		}
	}

	slog.Info("replication batch finished",
		"batch_id", batchID, "created", result.Created, "failed", result.Failed)
	return result
}

// recoverLotID determines the id the store assigned to a just-saved lot.
// Strategies run in order, the first hit wins: structured response, bare
// integer body, echoed id fields, inventory title lookup.
func (m *Manager) recoverLotID(ctx context.Context, saved market.SaveResult, submitted lot.Fields) int64 {
	if id := recoverFromResponse(saved); id > 0 {
		return id
	}
	if id := recoverFromRawBody(saved); id > 0 {
		return id
	}
	if id := recoverFromEchoedFields(saved); id > 0 {
		return id
	}
	items, err := m.market.ListInventory(ctx)
	if err != nil {
		slog.Debug("inventory lookup failed during id recovery", "error", err)
		return 0
	}
	return matchInventoryByTitle(items, submitted)
}

func recoverFromResponse(saved market.SaveResult) int64 {
	if saved.OfferID > 0 {
		return saved.OfferID
	}
	if m := responseIDRE.FindStringSubmatch(saved.URL); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return 0
}

func recoverFromRawBody(saved market.SaveResult) int64 {
	raw := strings.TrimSpace(saved.Raw)
	if raw == "" || !isDigits(raw) {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func recoverFromEchoedFields(saved market.SaveResult) int64 {
	for _, key := range []string{"lot_id", "id", "offer_id"} {
		v := strings.TrimSpace(saved.Fields[key])
		if v == "" || !isDigits(v) {
			continue
		}
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return 0
}

// matchInventoryByTitle finds the freshly created lot by exact title match
// against the titles that were just submitted.
func matchInventoryByTitle(items []market.InventoryItem, submitted lot.Fields) int64 {
	titles := make(map[string]struct{}, 2)
	for _, key := range []string{lot.FieldSummaryRU, lot.FieldSummaryEN} {
		if title := strings.TrimSpace(submitted[key]); title != "" {
			titles[title] = struct{}{}
		}
	}
	if len(titles) == 0 {
		return 0
	}
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		if _, ok := titles[title]; ok {
			return item.ID
		}
	}
	return 0
}
