package room

import "errors"

// ErrTableNotFound is returned when no tournament exists with the ID
var ErrTableNotFound = errors.New("tournament not found")

// ErrPlayerNotSeated is returned when the player is not seated in the tournament
var ErrPlayerNotSeated = errors.New("player is not seated at this table")

// ErrTournamentSizeInvalid is returned when too few or too many players join a tournament
var ErrTournamentSizeInvalid = errors.New("invalid number of players")

// ErrTournamentExists is returned when a tournament with the ID is already running
var ErrTournamentExists = errors.New("tournament already exists")

// ErrTableAborted is returned after the table detected corrupt state and stopped play
var ErrTableAborted = errors.New("table was aborted")

// ErrNoPendingHand is returned when no hand is scheduled
var ErrNoPendingHand = errors.New("no hand is scheduled")

var errStaleTimer = errors.New("timer is for a previous hand")

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}
