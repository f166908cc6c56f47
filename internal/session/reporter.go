package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rentlab/lotclone/internal/lot"
)

// reportChunkLimit caps one chat message's worth of report lines.
const reportChunkLimit = 3500

// buildReports renders both result views, grouped by source lot in batch
// order and chunked to the message budget: recovered ids alone, then ids
// paired with duration phrases.
func buildReports(order []int64, outcomes []Outcome) []string {
	bySource := make(map[int64][]Outcome, len(order))
	for _, o := range outcomes {
		bySource[o.SourceID] = append(bySource[o.SourceID], o)
	}

	var idLines, hourLines []string
	for _, sourceID := range order {
		group := bySource[sourceID]
		if len(group) == 0 {
			continue
		}
		ids := recoveredIDs(group)
		if len(ids) > 0 {
			idLines = append(idLines, fmt.Sprintf(`(из "%d") %s`, sourceID, strings.Join(ids, ", ")))
		}

		phrases := make([]string, 0, len(group))
		for _, o := range group {
			phrases = append(phrases, lot.DurationPhraseRU(o.Hours))
		}
		joinedIDs := "—"
		if len(ids) > 0 {
			joinedIDs = strings.Join(ids, ", ")
		}
		hourLines = append(hourLines, fmt.Sprintf(`(из "%d") %s - %s`, sourceID, joinedIDs, strings.Join(phrases, ", ")))
	}

	var messages []string
	messages = append(messages, chunkLines(reportHeaderIDs, idLines)...)
	messages = append(messages, chunkLines(reportHeaderByHours, hourLines)...)
	return messages
}

func recoveredIDs(group []Outcome) []string {
	ids := make([]string, 0, len(group))
	for _, o := range group {
		if o.NewID > 0 {
			ids = append(ids, strconv.FormatInt(o.NewID, 10))
		}
	}
	return ids
}

// chunkLines packs lines greedily under the budget, flushing a message
// before the next line would overflow it. The header rides every message.
func chunkLines(header string, lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	var messages []string
	chunk := make([]string, 0, len(lines))
	size := 0
	for _, line := range lines {
		if size+len(line)+1 > reportChunkLimit && len(chunk) > 0 {
			messages = append(messages, header+"\n"+strings.Join(chunk, "\n"))
			chunk = chunk[:0]
			size = 0
		}
		chunk = append(chunk, line)
		size += len(line) + 1
	}
	if len(chunk) > 0 {
		messages = append(messages, header+"\n"+strings.Join(chunk, "\n"))
	}
	return messages
}
