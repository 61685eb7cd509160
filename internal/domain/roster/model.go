package roster

import "github.com/riskibarqy/fantasy-assistant/internal/domain/player"

// Entry is one lineup slot on a fantasy roster, valid only for the duration
// of a roster fetch.
type Entry struct {
	Player          player.Player
	SlotID          int
	Slot            string
	AcquisitionType string
	AcquisitionDate int64
}

// Roster is a team's full lineup for the requested scoring period.
type Roster struct {
	TeamID  int64
	Week    int
	Entries []Entry
}

// Bench slots on the upstream platform: bench and injured reserve.
const (
	SlotBench = "BE"
	SlotIR    = "IR"
)

// Starters returns entries in active lineup slots, preserving order.
func (r Roster) Starters() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Slot != SlotBench && e.Slot != SlotIR {
			out = append(out, e)
		}
	}
	return out
}

// Bench returns entries in bench or IR slots, preserving order.
func (r Roster) Bench() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Slot == SlotBench || e.Slot == SlotIR {
			out = append(out, e)
		}
	}
	return out
}
