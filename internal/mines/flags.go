package mines

import "fmt"

// FlagTracker places and removes flags and keeps the counters used for win
// detection.
type FlagTracker struct {
	board   *Board
	placed  int
	correct int
}

func NewFlagTracker(b *Board) *FlagTracker {
	return &FlagTracker{board: b}
}

func (t *FlagTracker) Place(p Point) error {
	if err := t.board.checkBounds(p); err != nil {
		return err
	}
	if s := t.board.State(p); s != Hidden {
		return fmt.Errorf("%w: cannot flag %s cell %s", ErrInvalidTransition, s, p)
	}
	t.board.setState(p, Flagged)
	t.placed++
	if t.board.IsMine(p) {
		t.correct++
	}
	return nil
}

func (t *FlagTracker) Remove(p Point) error {
	if err := t.board.checkBounds(p); err != nil {
		return err
	}
	if s := t.board.State(p); s != Flagged {
		return fmt.Errorf("%w: cannot unflag %s cell %s", ErrInvalidTransition, s, p)
	}
	t.board.setState(p, Hidden)
	t.placed--
	if t.board.IsMine(p) {
		t.correct--
	}
	return nil
}

func (t *FlagTracker) Placed() int {
	return t.placed
}

func (t *FlagTracker) Correct() int {
	return t.correct
}

// AllMinesFlagged reports whether every mine and nothing else is flagged.
func (t *FlagTracker) AllMinesFlagged() bool {
	return t.correct == t.board.MineCount && t.board.MineCount == t.placed
}
