package mines

import "fmt"

type Phase uint8

const (
	NotStarted Phase = iota
	InProgress
	Won
	Lost
)

func (p Phase) Terminal() bool {
	return p == Won || p == Lost
}

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type Ending uint8

const (
	NotEnded Ending = iota
	EndedWon
	EndedLost
)

func (e Ending) String() string {
	switch e {
	case EndedWon:
		return "won"
	case EndedLost:
		return "lost"
	default:
		return "none"
	}
}

func (e Ending) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

type RevealOutcome struct {
	Cleared []RevealedCell `json:"cleared"`
	Mines   []Point        `json:"mines,omitempty"` // set on loss
	Ended   Ending         `json:"ended"`
}

type FlagOutcome struct {
	Placed bool `json:"placed"`
	// FlagsRemaining is MineCount minus flags placed; negative when the
	// player over-flags.
	FlagsRemaining int    `json:"flags_remaining"`
	Ended          Ending `json:"ended"`
	NewRecord      bool   `json:"new_record"`
}
