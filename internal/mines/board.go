package mines

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

// Board owns cell storage and the mine layout. Mines are absent until
// PlaceMines is called; after that the layout never changes.
type Board struct {
	GameParams
	cells  []CellState
	mines  []bool
	placed bool
}

func NewBoard(params GameParams) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := &Board{
		GameParams: params,
		cells:      make([]CellState, params.Width*params.Height),
		mines:      make([]bool, params.Width*params.Height),
	}
	return b, nil
}

func (b *Board) index(p Point) int {
	return p.Y*b.Width + p.X
}

func (b *Board) point(i int) Point {
	return Point{X: i % b.Width, Y: i / b.Width}
}

func (b *Board) Contains(p Point) bool {
	return b.PointInBounds(p.X, p.Y)
}

func (b *Board) checkBounds(p Point) error {
	if !b.Contains(p) {
		return fmt.Errorf("%w: %s on %dx%d board",
			ErrInvalidCoordinate, p, b.Width, b.Height)
	}
	return nil
}

func (b *Board) Placed() bool {
	return b.placed
}

// PlaceMines picks exactly MineCount distinct cells other than exclude.
// Candidates are drawn by swap-remove from a list of every other cell, so the
// cost is bounded even when only exclude stays free.
func (b *Board) PlaceMines(exclude Point, r *rand.Rand) ([]Point, error) {
	if err := b.checkBounds(exclude); err != nil {
		return nil, err
	}
	if b.placed {
		return nil, ErrMinesPlaced
	}

	excluded := b.index(exclude)
	candidates := make([]int, 0, len(b.cells)-1)
	for i := range b.cells {
		if i != excluded {
			candidates = append(candidates, i)
		}
	}

	placed := make([]Point, 0, b.MineCount)
	k := len(candidates)
	for range b.MineCount {
		i := r.IntN(k)
		b.mines[candidates[i]] = true
		placed = append(placed, b.point(candidates[i]))
		k--
		candidates[i] = candidates[k]
	}
	b.placed = true

	Log.WithFields(logrus.Fields{
		"board":   b.Seed(),
		"exclude": exclude.String(),
	}).Debug("placed mines")

	return placed, nil
}

// Neighbors yields the up to eight cells around p that lie on the board.
func (b *Board) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				q := Point{X: p.X + dx, Y: p.Y + dy}
				if !b.Contains(q) {
					continue
				}
				if !yield(q) {
					return
				}
			}
		}
	}
}

func (b *Board) AdjacentMines(p Point) int {
	n := 0
	for q := range b.Neighbors(p) {
		if b.mines[b.index(q)] {
			n++
		}
	}
	return n
}

func (b *Board) IsMine(p Point) bool {
	return b.Contains(p) && b.mines[b.index(p)]
}

func (b *Board) State(p Point) CellState {
	return b.cells[b.index(p)]
}

func (b *Board) setState(p Point, s CellState) {
	b.cells[b.index(p)] = s
}

// Mines lists mine positions in row-major order; empty before placement.
func (b *Board) Mines() []Point {
	mines := make([]Point, 0, b.MineCount)
	for i, m := range b.mines {
		if m {
			mines = append(mines, b.point(i))
		}
	}
	return mines
}

func (b *Board) String() string {
	var s strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			p := Point{X: x, Y: y}
			switch {
			case b.IsMine(p):
				s.WriteString("* ")
			default:
				fmt.Fprintf(&s, "%d ", b.AdjacentMines(p))
			}
		}
		s.WriteString("\n")
	}
	return s.String()
}
