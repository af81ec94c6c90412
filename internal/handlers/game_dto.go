package handlers

import (
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Level     string `schema:"level"`
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
}

// GameParams resolves a preset by name, or a custom board when width is
// given. Custom boards get their own level name so their records do not mix
// with the presets.
func (dto NewGameDTO) GameParams() (mines.GameParams, error) {
	if dto.Width != 0 || dto.Height != 0 {
		params := mines.GameParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
		}
		params.Level = "custom-" + params.Seed()
		return params, params.Validate()
	}
	name := dto.Level
	if strings.TrimSpace(name) == "" {
		name = mines.Beginner.Level
	}
	params, ok := mines.LevelByName(name)
	if !ok {
		return mines.GameParams{}, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return params, nil
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("%w: %w", ErrBadQuery, err)
	}
	return dto, nil
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("%w: %w", ErrBadQuery, err)
	}
	return dto, nil
}

type GameSessionDTO struct {
	GameSessionId  string         `json:"game_session_id"`
	Token          string         `json:"token,omitempty"`
	Level          string         `json:"level"`
	Grid           mines.GridInfo `json:"grid"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	MineCount      int            `json:"mine_count"`
	Phase          mines.Phase    `json:"phase"`
	Elapsed        int            `json:"elapsed"`
	FlagsPlaced    int            `json:"flags_placed"`
	FlagsRemaining int            `json:"flags_remaining"`
	Hints          bool           `json:"hints"`
}

func NewGameSessionDTO(id string, s *mines.Session) *GameSessionDTO {
	params := s.Params()
	flags := s.FlagsPlaced()
	return &GameSessionDTO{
		GameSessionId:  id,
		Level:          params.Level,
		Grid:           s.Grid(),
		Width:          params.Width,
		Height:         params.Height,
		MineCount:      params.MineCount,
		Phase:          s.Phase(),
		Elapsed:        s.Elapsed(),
		FlagsPlaced:    flags,
		FlagsRemaining: params.MineCount - flags,
		Hints:          s.HintsShown(),
	}
}

type RevealResponse struct {
	Outcome mines.RevealOutcome `json:"outcome"`
	Session *GameSessionDTO     `json:"session"`
}

type FlagResponse struct {
	Outcome mines.FlagOutcome `json:"outcome"`
	Session *GameSessionDTO   `json:"session"`
	Warning string            `json:"warning,omitempty"`
}

type HintResponse struct {
	Mines   []mines.Point   `json:"mines"`
	Session *GameSessionDTO `json:"session"`
}
