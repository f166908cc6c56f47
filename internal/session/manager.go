package session

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rentlab/lotclone/internal/chat"
	"github.com/rentlab/lotclone/internal/config"
	"github.com/rentlab/lotclone/internal/lot"
	"github.com/rentlab/lotclone/internal/market"
)

var (
	idSplitRE  = regexp.MustCompile(`[,;\s]+`)
	discountRE = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*%?$`)
)

// Manager drives the conversational replication workflow, one step per
// incoming chat event, serialized per conversation key.
type Manager struct {
	cfg    *config.Config
	chat   chat.Client
	market market.Client
	store  *Store
}

func NewManager(cfg *config.Config, ct chat.Client, mk market.Client, store *Store) *Manager {
	return &Manager{cfg: cfg, chat: ct, market: mk, store: store}
}

// CommandDefinitions lists the chat commands the bot registers on startup.
func CommandDefinitions() []chat.CommandDefinition {
	return []chat.CommandDefinition{{Name: CommandName, Description: commandDescription}}
}

func (m *Manager) HandleCommand(event chat.CommandEvent) {
	if event.CommandName != CommandName {
		return
	}
	release := m.store.Acquire(event.ChannelID)
	defer release()

	// Restarting the dialog silently discards whatever the key gathered so far.
	m.store.Delete(event.ChannelID)

	slog.Info("replication dialog started", "channel_id", event.ChannelID, "user_id", event.UserID)
	if err := event.Respond(messageAskLots); err != nil {
		slog.Error("failed to respond to command", "error", err, "channel_id", event.ChannelID)
		return
	}
	m.chat.SetPending(event.ChannelID, event.UserID, pendingWaitLots)
}

func (m *Manager) HandleMessage(event chat.MessageEvent) {
	release := m.store.Acquire(event.ChannelID)
	defer release()

	pending := m.chat.Pending(event.ChannelID, event.UserID)
	if pending == "" {
		return
	}
	m.chat.ClearPending(event.ChannelID, event.UserID)

	switch pending {
	case pendingWaitLots:
		m.stepLotIDs(event)
	case pendingWaitDurations:
		m.stepDurations(event)
	case pendingWaitDiscount:
		m.stepDiscount(event)
	}
}

func (m *Manager) HandleButton(event chat.ButtonEvent) {
	switch event.Action {
	case actionCancel:
		m.cancel(event)
	case actionCreate:
		m.confirm(event)
	}
}

func (m *Manager) stepLotIDs(event chat.MessageEvent) {
	ids := parseLotIDs(event.Text)
	if len(ids) == 0 {
		m.send(event.ChannelID, messageNoLotIDs)
		m.chat.SetPending(event.ChannelID, event.UserID, pendingWaitLots)
		return
	}

	ctx := context.Background()
	bases := make(map[int64]lot.Base, len(ids))
	for _, id := range ids {
		fields, err := m.market.FetchLotFields(ctx, id)
		if err != nil {
			// One bad id aborts the whole step so the session never holds a
			// partial snapshot.
			slog.Error("lot fetch failed", "error", err, "lot_id", id, "channel_id", event.ChannelID)
			m.send(event.ChannelID, fmt.Sprintf(messageFetchFailedFormat, id))
			return
		}
		bases[id] = lot.NewBase(fields)
	}
	slog.Info("source lots captured", "channel_id", event.ChannelID, "lot_ids", ids)

	m.store.Put(event.ChannelID, &Replication{
		ChannelID: event.ChannelID,
		LotIDs:    ids,
		Bases:     bases,
		State:     StateWaitDurations,
	})
	reference := bases[ids[0]]
	m.send(event.ChannelID, fmt.Sprintf(messageAskDurationsFormat, ids[0], int64(math.Round(reference.PricePerHour))))
	m.chat.SetPending(event.ChannelID, event.UserID, pendingWaitDurations)
}

func (m *Manager) stepDurations(event chat.MessageEvent) {
	sess := m.store.Get(event.ChannelID)
	if sess == nil || sess.State != StateWaitDurations {
		m.send(event.ChannelID, messageSessionLost)
		return
	}
	durations := lot.ParseDurations(event.Text)
	if len(durations) == 0 {
		m.send(event.ChannelID, messageBadDurations)
		m.chat.SetPending(event.ChannelID, event.UserID, pendingWaitDurations)
		return
	}

	sess.Durations = durations
	sess.State = StateWaitDiscount
	m.store.Put(event.ChannelID, sess)
	m.send(event.ChannelID, messageAskDiscount)
	m.chat.SetPending(event.ChannelID, event.UserID, pendingWaitDiscount)
}

func (m *Manager) stepDiscount(event chat.MessageEvent) {
	sess := m.store.Get(event.ChannelID)
	if sess == nil || sess.State != StateWaitDiscount {
		m.send(event.ChannelID, messageSessionLost)
		return
	}
	discount, ok := parseDiscount(event.Text)
	if !ok {
		m.send(event.ChannelID, messageBadDiscount)
		m.chat.SetPending(event.ChannelID, event.UserID, pendingWaitDiscount)
		return
	}

	sess.Discount = discount
	sess.State = StateAwaitConfirm
	m.store.Put(event.ChannelID, sess)

	buttons := []chat.Button{
		{Action: actionCreate, Label: buttonCreateLabel},
		{Action: actionCancel, Label: buttonCancelLabel, Danger: true},
	}
	if _, err := m.chat.SendMessageWithButtons(event.ChannelID, previewMessage(sess), buttons); err != nil {
		slog.Error("failed to send preview", "error", err, "channel_id", event.ChannelID)
	}
}

func (m *Manager) cancel(event chat.ButtonEvent) {
	release := m.store.Acquire(event.ChannelID)
	defer release()

	m.store.Delete(event.ChannelID)
	slog.Info("replication dialog cancelled", "channel_id", event.ChannelID, "user_id", event.UserID)
	if err := m.chat.EditMessage(event.ChannelID, event.MessageID, messageCancelled); err != nil {
		slog.Warn("failed to edit cancelled preview", "error", err, "channel_id", event.ChannelID)
	}
}

func (m *Manager) confirm(event chat.ButtonEvent) {
	release := m.store.Acquire(event.ChannelID)
	defer release()

	sess := m.store.Get(event.ChannelID)
	if sess == nil || sess.State != StateAwaitConfirm {
		if event.RespondNotice != nil {
			_ = event.RespondNotice(messageSessionLost)
		}
		return
	}
	if err := m.chat.EditMessage(event.ChannelID, event.MessageID, messageCreating); err != nil {
		slog.Warn("failed to edit preview to progress notice", "error", err, "channel_id", event.ChannelID)
	}

	result := m.runBatch(context.Background(), sess)
	m.store.Delete(event.ChannelID)

	m.send(event.ChannelID, fmt.Sprintf(messageDoneFormat, result.Created, result.Failed))
	for _, report := range buildReports(sess.LotIDs, result.Outcomes) {
		m.send(event.ChannelID, report)
	}
}

func (m *Manager) send(channelID, content string) {
	if err := m.chat.SendMessage(channelID, content); err != nil {
		slog.Error("failed to send message", "error", err, "channel_id", channelID)
	}
}

// parseLotIDs extracts positive integer lot ids, de-duplicated in
// first-seen order. Tokens carrying any non-digit are dropped.
func parseLotIDs(text string) []int64 {
	tokens := idSplitRE.Split(strings.TrimSpace(text), -1)
	seen := make(map[int64]struct{}, len(tokens))
	ids := make([]int64, 0, len(tokens))
	for _, token := range tokens {
		if token == "" || !isDigits(token) {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// parseDiscount accepts a plain or percent-suffixed number in [0, 90].
func parseDiscount(text string) (float64, bool) {
	m := discountRE.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || v < 0 || v > 90 {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
