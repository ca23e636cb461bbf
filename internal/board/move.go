package board

import "fmt"

// Move is a piece move from one square to another. Capture is the square of
// the captured piece, or NoSquare. It differs from To only for en passant.
type Move struct {
	From    Square
	To      Square
	Capture Square
}

// NewMove creates a non-capturing move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Capture: NoSquare}
}

// NewCapture creates a move that captures the piece on the destination square.
func NewCapture(from, to Square) Move {
	return Move{From: from, To: to, Capture: to}
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Capture != NoSquare
}

// IsEnPassant returns true if the captured piece is not on the destination square.
func (m Move) IsEnPassant() bool {
	return m.Capture != NoSquare && m.Capture != m.To
}

// fileDelta returns the signed number of files the move travels.
func (m Move) fileDelta() int {
	return m.To.File() - m.From.File()
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses a coordinate move ("e2e4") against the legal moves of b,
// filling in the capture square.
func ParseMove(s string, b *Board) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("move %q: %w", s, ErrIllegalMove)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	legal, err := b.LegalMoves(from)
	if err != nil {
		return Move{}, err
	}
	for _, m := range legal {
		if m.To == to {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("move %s: %w", s, ErrIllegalMove)
}
