package apperror

import "errors"

// Programmer errors. Returning one means a caller broke a lifecycle rule; the
// state committed before the call is left as it was.
var (
	ErrRoundInProgress  = errors.New("round still has firepower left")
	ErrAttackerLocked   = errors.New("attacker cannot change after a salvo was fired")
	ErrNoFirepowerEntry = errors.New("no firepower entry matches salvo size")
	ErrNoAttackers      = errors.New("no eligible attackers left")
	ErrNotEligible      = errors.New("ship is not eligible to attack this turn")
	ErrNoUnvisitedCells = errors.New("no unvisited cells left")
	ErrUnsupportedSize  = errors.New("unsupported salvo size")
	ErrOutOfBounds      = errors.New("cell is out of bounds")
	ErrNotImplemented   = errors.New("not implemented")
)

// Protocol errors come from a remote peer and are recoverable: the offending
// round is rejected and a resubmission awaited.
var (
	ErrProtocol       = errors.New("protocol violation")
	ErrMalformedRound = errors.New("malformed round")
	ErrWrongShotCount = errors.New("salvos do not match firepower schedule")
	ErrUnknownShip    = errors.New("unknown attacker")
	ErrSunkAttacker   = errors.New("attacker is sunk")
)
