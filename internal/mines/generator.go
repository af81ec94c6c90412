package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
	Level                    string
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Validate() error {
	switch {
	case p.Width < 1 || p.Height < 1:
		return fmt.Errorf("%w: board must be at least 1x1, have %dx%d",
			ErrInvalidParams, p.Width, p.Height)
	case p.MineCount < 0:
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidParams, p.MineCount)
	case p.MineCount >= p.Width*p.Height:
		/* at least one safe cell for the first click */
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board",
			ErrInvalidParams, p.MineCount, p.Width, p.Height)
	case strings.TrimSpace(p.Level) == "":
		return fmt.Errorf("%w: empty level name", ErrInvalidParams)
	}
	return nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

var (
	Beginner     = GameParams{Width: 8, Height: 8, MineCount: 10, Level: "beginner"}
	Intermediate = GameParams{Width: 16, Height: 16, MineCount: 40, Level: "intermediate"}
	Expert       = GameParams{Width: 24, Height: 24, MineCount: 99, Level: "expert"}
)

// Levels lists the recognized presets from easiest to hardest.
func Levels() []GameParams {
	return []GameParams{Beginner, Intermediate, Expert}
}

func LevelByName(name string) (GameParams, bool) {
	for _, p := range Levels() {
		if strings.EqualFold(p.Level, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return GameParams{}, false
}
