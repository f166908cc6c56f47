package session

import "github.com/rentlab/lotclone/internal/lot"

// State tags the workflow step a replication session waits on.
type State string

const (
	StateWaitDurations State = "waiting_durations"
	StateWaitDiscount  State = "waiting_discount"
	StateAwaitConfirm  State = "awaiting_confirm"
)

// Replication holds everything one conversation has gathered so far.
// The first lot id is the reference lot used for preview pricing.
type Replication struct {
	ChannelID string
	LotIDs    []int64
	Bases     map[int64]lot.Base
	Durations []float64
	Discount  float64
	State     State
}

func (r *Replication) Reference() lot.Base {
	return r.Bases[r.LotIDs[0]]
}

func (r *Replication) VariantCount() int {
	return len(r.LotIDs) * len(r.Durations)
}
