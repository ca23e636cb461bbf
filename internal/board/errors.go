package board

import "errors"

var (
	// ErrOutOfRange is returned for file/rank coordinates outside 0-7.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrIllegalMove is returned when a move is not among the legal moves of its origin square.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidPromotion is returned when no pawn can promote on a square or the target kind is not allowed.
	ErrInvalidPromotion = errors.New("invalid promotion")
	// ErrInvalidFEN is returned for malformed or unplayable FEN strings.
	ErrInvalidFEN = errors.New("invalid FEN")
)
