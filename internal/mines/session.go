package mines

import (
	"context"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// RecordStore keeps the best completion time per level.
type RecordStore interface {
	Best(ctx context.Context, level string) (seconds int, ok bool, err error)
	Submit(ctx context.Context, level string, seconds int) (newRecord bool, err error)
}

type SessionOption func(*Session)

func WithRecordStore(store RecordStore) SessionOption {
	return func(s *Session) {
		s.store = store
	}
}

func WithRand(r *rand.Rand) SessionOption {
	return func(s *Session) {
		s.rnd = r
	}
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Session drives one game from the first reveal to a win or a loss. All
// methods are safe for concurrent use; commands are serialized.
type Session struct {
	mu sync.Mutex

	board  *Board
	engine *RevealEngine
	flags  *FlagTracker

	phase     Phase
	startedAt time.Time
	endedAt   time.Time
	exploded  *Point
	hints     bool
	quit      bool
	done      chan struct{}

	store RecordStore
	rnd   *rand.Rand
	now   func() time.Time
	opts  []SessionOption
}

func NewSession(params GameParams, opts ...SessionOption) (*Session, error) {
	board, err := NewBoard(params)
	if err != nil {
		return nil, err
	}
	s := &Session{
		board:  board,
		engine: NewRevealEngine(board),
		flags:  NewFlagTracker(board),
		phase:  NotStarted,
		done:   make(chan struct{}),
		now:    time.Now,
		opts:   opts,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = newRand()
	}
	return s, nil
}

// Restart returns a fresh session for the same level with the same options.
func (s *Session) Restart() (*Session, error) {
	return NewSession(s.board.GameParams, s.opts...)
}

func (s *Session) log() *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"level": s.board.Level,
		"board": s.board.Seed(),
		"phase": s.phase.String(),
	})
}

func (s *Session) Reveal(x, y int) (RevealOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Point{X: x, Y: y}
	if s.over() {
		return RevealOutcome{}, ErrSessionOver
	}
	if err := s.board.checkBounds(p); err != nil {
		return RevealOutcome{}, err
	}

	if s.phase == NotStarted {
		if _, err := s.board.PlaceMines(p, s.rnd); err != nil {
			return RevealOutcome{}, err
		}
		s.phase = InProgress
		s.startedAt = s.now()
	}

	res, err := s.engine.Reveal(p)
	if err != nil {
		return RevealOutcome{}, err
	}

	if res.MineHit {
		s.lose(p)
		return RevealOutcome{Mines: s.board.Mines(), Ended: EndedLost}, nil
	}

	return RevealOutcome{Cleared: res.Cleared}, nil
}

// ToggleFlag flags a hidden cell or unflags a flagged one. Every flag change
// re-checks the win condition.
func (s *Session) ToggleFlag(ctx context.Context, x, y int) (FlagOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Point{X: x, Y: y}
	if s.over() {
		return FlagOutcome{}, ErrSessionOver
	}
	if err := s.board.checkBounds(p); err != nil {
		return FlagOutcome{}, err
	}
	if s.phase == NotStarted {
		return FlagOutcome{}, ErrNotStarted
	}

	var out FlagOutcome
	switch s.board.State(p) {
	case Hidden:
		if err := s.flags.Place(p); err != nil {
			return FlagOutcome{}, err
		}
		out.Placed = true
	case Flagged:
		if err := s.flags.Remove(p); err != nil {
			return FlagOutcome{}, err
		}
	default:
		return FlagOutcome{}, fmt.Errorf(
			"%w: cannot flag revealed cell %s", ErrInvalidTransition, p,
		)
	}
	out.FlagsRemaining = s.board.MineCount - s.flags.Placed()

	if !s.flags.AllMinesFlagged() {
		return out, nil
	}

	s.win()
	out.Ended = EndedWon

	if s.hints || s.store == nil {
		return out, nil
	}
	newRecord, err := s.store.Submit(ctx, s.board.Level, s.elapsed())
	if err != nil {
		s.log().WithError(err).Warn("unable to submit record")
		return out, fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
	}
	out.NewRecord = newRecord
	return out, nil
}

func (s *Session) over() bool {
	return s.quit || s.phase.Terminal()
}

// Quit abandons the session without a win or a loss. Done is closed and
// later commands fail with ErrSessionOver.
func (s *Session) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over() {
		return
	}
	s.quit = true
	s.endedAt = s.now()
	close(s.done)
	s.log().Info("game abandoned")
}

func (s *Session) finish(phase Phase) {
	s.phase = phase
	s.endedAt = s.now()
	close(s.done)
	s.log().WithField("elapsed", s.elapsed()).Info("game over")
}

// lose exposes every mine, flagged or not.
func (s *Session) lose(hit Point) {
	for _, m := range s.board.Mines() {
		s.board.setState(m, Revealed)
	}
	s.exploded = &hit
	s.finish(Lost)
}

// win leaves the mines flagged; Grid marks them as correct flags.
func (s *Session) win() {
	s.finish(Won)
}

// SetHintMode disqualifies the session from record keeping.
func (s *Session) SetHintMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hints = true
}

// Answer shows where the mines are and switches hint mode on. It is only
// available once the mines exist.
func (s *Session) Answer() ([]Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == NotStarted {
		return nil, ErrNotStarted
	}
	s.hints = true
	return s.board.Mines(), nil
}

func (s *Session) elapsed() int {
	switch {
	case s.phase == NotStarted:
		return 0
	case s.over():
		return int(s.endedAt.Sub(s.startedAt) / time.Second)
	default:
		return int(s.now().Sub(s.startedAt) / time.Second)
	}
}

// Elapsed is the number of whole seconds since the first reveal, frozen once
// the game is over.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Done is closed when the session reaches a terminal phase.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Params() GameParams {
	return s.board.GameParams
}

func (s *Session) FlagsPlaced() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.Placed()
}

func (s *Session) CorrectFlags() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.Correct()
}

func (s *Session) HintsShown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hints
}

func (s *Session) CellState(x, y int) (CellState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Point{X: x, Y: y}
	if err := s.board.checkBounds(p); err != nil {
		return 0, err
	}
	return s.board.State(p), nil
}

// Grid is the player's view of the board. Mines only show up once the game
// is over.
func (s *Session) Grid() GridInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.board
	over := s.phase.Terminal()
	grid := make(GridInfo, len(b.cells))
	for i, state := range b.cells {
		p := b.point(i)
		mine := b.mines[i]
		switch {
		case state == Flagged && over && mine:
			grid[i] = CorrectFlag
		case state == Flagged && over:
			grid[i] = WrongFlag
		case state == Flagged:
			grid[i] = Flag
		case mine && s.exploded != nil && *s.exploded == p:
			grid[i] = ExplodedMine
		case mine && over:
			grid[i] = UnflaggedMine
		case state == Revealed:
			grid[i] = CellStatus(b.AdjacentMines(p))
		default:
			grid[i] = Unknown
		}
	}
	return grid
}
