package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// forward is the rank delta of a pawn push for the color.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// homeRank is the back rank of the color.
func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// PieceKind represents the type of a chess piece, or Empty for a vacant square.
type PieceKind uint8

const (
	Empty PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Empty"
	}
}

// Char returns the FEN character for the piece kind (lowercase).
func (k PieceKind) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if k > King {
		return ' '
	}
	return chars[k]
}

// Piece is the occupant of one grid cell. Vacant cells hold a Piece of kind
// Empty, so every cell always has a value.
type Piece struct {
	Kind     PieceKind
	Color    Color
	Position Square
	// CanDoubleMove is true for a pawn that has not moved yet.
	CanDoubleMove bool
}

// NewPiece creates a piece standing on sq.
func NewPiece(kind PieceKind, c Color, sq Square) Piece {
	return Piece{Kind: kind, Color: c, Position: sq, CanDoubleMove: kind == Pawn}
}

// IsEmpty reports whether the piece is the vacant-square placeholder.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black, "." for empty.
func (p Piece) String() string {
	if p.Kind == Empty {
		return "."
	}
	c := p.Kind.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// View is a read-only snapshot of a board, as seen by move generation.
type View interface {
	At(sq Square) Piece
	CastlingRights() CastlingRights
	EnPassant() Square
}

var (
	knightOffsets = [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets   = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
)

// PseudoLegalMoves returns every destination the piece could reach on v,
// ignoring whether the move leaves its own king in check.
func (p Piece) PseudoLegalMoves(v View) []Move {
	var moves []Move
	switch p.Kind {
	case King:
		moves = p.stepMoves(v, kingOffsets[:], moves)
		moves = p.castlingMoves(v, moves)
	case Queen:
		moves = p.slideMoves(v, diagonalDirs[:], moves)
		moves = p.slideMoves(v, straightDirs[:], moves)
	case Rook:
		moves = p.slideMoves(v, straightDirs[:], moves)
	case Bishop:
		moves = p.slideMoves(v, diagonalDirs[:], moves)
	case Knight:
		moves = p.stepMoves(v, knightOffsets[:], moves)
	case Pawn:
		moves = p.pawnMoves(v, moves)
	}
	return moves
}

// target classifies a destination: ok is false for a friendly occupant.
func (p Piece) target(v View, to Square) (m Move, occupied, ok bool) {
	occ := v.At(to)
	if occ.IsEmpty() {
		return Move{From: p.Position, To: to, Capture: NoSquare}, false, true
	}
	if occ.Color == p.Color {
		return Move{}, true, false
	}
	return Move{From: p.Position, To: to, Capture: to}, true, true
}

func (p Piece) stepMoves(v View, offsets [][2]int, moves []Move) []Move {
	for _, d := range offsets {
		to, on := p.Position.offset(d[0], d[1])
		if !on {
			continue
		}
		if m, _, ok := p.target(v, to); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func (p Piece) slideMoves(v View, dirs [][2]int, moves []Move) []Move {
	for _, d := range dirs {
		to, on := p.Position.offset(d[0], d[1])
		for on {
			m, occupied, ok := p.target(v, to)
			if ok {
				moves = append(moves, m)
			}
			if occupied {
				break
			}
			to, on = to.offset(d[0], d[1])
		}
	}
	return moves
}

// castlingMoves adds the two-file king moves allowed by the castling rights
// when the squares between king and rook are empty. Attacked squares are
// filtered later by the board.
func (p Piece) castlingMoves(v View, moves []Move) []Move {
	rank := p.Color.homeRank()
	if p.Position != square(4, rank) {
		return moves
	}
	rights := v.CastlingRights()
	if rights.Has(p.Color, true) && p.ownsRook(v, square(7, rank)) &&
		v.At(square(5, rank)).IsEmpty() && v.At(square(6, rank)).IsEmpty() {
		moves = append(moves, Move{From: p.Position, To: square(6, rank), Capture: NoSquare})
	}
	if rights.Has(p.Color, false) && p.ownsRook(v, square(0, rank)) && v.At(square(1, rank)).IsEmpty() &&
		v.At(square(2, rank)).IsEmpty() && v.At(square(3, rank)).IsEmpty() {
		moves = append(moves, Move{From: p.Position, To: square(2, rank), Capture: NoSquare})
	}
	return moves
}

func (p Piece) ownsRook(v View, sq Square) bool {
	r := v.At(sq)
	return r.Kind == Rook && r.Color == p.Color
}

func (p Piece) pawnMoves(v View, moves []Move) []Move {
	dir := p.Color.forward()

	// Captures, including en passant onto the square behind the target pawn.
	ep := v.EnPassant()
	for _, df := range [2]int{-1, 1} {
		to, on := p.Position.offset(df, dir)
		if !on {
			continue
		}
		if occ := v.At(to); !occ.IsEmpty() && occ.Color != p.Color {
			moves = append(moves, Move{From: p.Position, To: to, Capture: to})
			continue
		}
		if ep == NoSquare {
			continue
		}
		if side, _ := p.Position.offset(df, 0); side == ep {
			if victim := v.At(ep); victim.Kind == Pawn && victim.Color != p.Color && v.At(to).IsEmpty() {
				moves = append(moves, Move{From: p.Position, To: to, Capture: ep})
			}
		}
	}

	one, on := p.Position.offset(0, dir)
	if !on || !v.At(one).IsEmpty() {
		return moves
	}
	moves = append(moves, Move{From: p.Position, To: one, Capture: NoSquare})
	if !p.CanDoubleMove {
		return moves
	}
	if two, on := one.offset(0, dir); on && v.At(two).IsEmpty() {
		moves = append(moves, Move{From: p.Position, To: two, Capture: NoSquare})
	}
	return moves
}
