package mines

type RevealedCell struct {
	Point
	AdjacentMines int `json:"adjacent_mines"`
}

type RevealResult struct {
	MineHit bool
	Cleared []RevealedCell
}

// RevealEngine turns Hidden cells into Revealed ones, spreading through
// zero-count cells.
type RevealEngine struct {
	board *Board
}

func NewRevealEngine(b *Board) *RevealEngine {
	return &RevealEngine{board: b}
}

// Reveal opens p. Revealed and Flagged cells are left alone and produce an
// empty result. Hitting a mine mutates nothing; the caller decides what a
// loss looks like.
func (e *RevealEngine) Reveal(p Point) (RevealResult, error) {
	b := e.board
	if err := b.checkBounds(p); err != nil {
		return RevealResult{}, err
	}
	if !b.placed {
		return RevealResult{}, ErrNotStarted
	}
	if b.State(p) != Hidden {
		return RevealResult{}, nil
	}
	if b.IsMine(p) {
		return RevealResult{MineHit: true}, nil
	}

	/*
	 * Go through the queue opening cells. Every time one of them turns out
	 * to have no neighbouring mines, all its still hidden neighbours join
	 * the queue as well. Flagged cells are never queued.
	 */
	var cleared []RevealedCell
	todo := newCellTodo(len(b.cells))
	todo.add(b.index(p))
	for {
		i, ok := todo.pop()
		if !ok {
			break
		}
		q := b.point(i)
		if b.cells[i] != Hidden {
			continue
		}
		b.cells[i] = Revealed
		n := b.AdjacentMines(q)
		cleared = append(cleared, RevealedCell{Point: q, AdjacentMines: n})
		if n != 0 {
			continue
		}
		for r := range b.Neighbors(q) {
			if j := b.index(r); b.cells[j] == Hidden && !b.mines[j] {
				todo.add(j)
			}
		}
	}

	return RevealResult{Cleared: cleared}, nil
}
