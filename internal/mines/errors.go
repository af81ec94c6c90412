package mines

import "errors"

var (
	ErrInvalidCoordinate = errors.New("cell coordinates out of bounds")
	ErrInvalidTransition = errors.New("invalid cell state transition")
	ErrInvalidParams     = errors.New("invalid game params")
	ErrSessionOver       = errors.New("game session is over")
	ErrNotStarted        = errors.New("game session has not started")
	ErrMinesPlaced       = errors.New("mines are already placed")

	// ErrRecordNotSaved is returned together with a valid outcome when the
	// game was won but the record store could not be consulted.
	ErrRecordNotSaved = errors.New("record not saved")
)
