package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// castlingRight returns the single flag for a color and side.
func castlingRight(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// Has returns true if the given side can castle in the given direction.
func (cr CastlingRights) Has(c Color, kingSide bool) bool {
	return cr&castlingRight(c, kingSide) != 0
}

// Board owns the 8x8 grid and all game-state flags. The zero value is not
// usable; start from New, ParseFEN or Clone.
type Board struct {
	grid [8][8]Piece // [rank][file]

	castling      CastlingRights
	enPassant     Square // square of the pawn that may be captured en passant, NoSquare if none
	halfMoveClock int    // plies since the last pawn move or capture

	// King positions (cached for check detection)
	kingSquare [2]Square

	// Occurrence count per repetition signature since the last pawn move or
	// capture. Nil on scratch boards used for legality simulation.
	repetitions map[uint64]int
}

var backRank = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New creates the standard starting position.
func New() *Board {
	b := empty()
	for file, kind := range backRank {
		b.put(NewPiece(kind, White, square(file, 0)))
		b.put(NewPiece(Pawn, White, square(file, 1)))
		b.put(NewPiece(Pawn, Black, square(file, 6)))
		b.put(NewPiece(kind, Black, square(file, 7)))
	}
	b.castling = AllCastling
	b.kingSquare = [2]Square{E1, E8}
	b.resetRepetitions()
	return b
}

// empty returns a board holding only Empty pieces.
func empty() *Board {
	b := &Board{enPassant: NoSquare, kingSquare: [2]Square{NoSquare, NoSquare}}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			b.grid[rank][file] = NewPiece(Empty, White, square(file, rank))
		}
	}
	return b
}

func (b *Board) put(p Piece) {
	b.grid[p.Position.Rank()][p.Position.File()] = p
}

func (b *Board) cell(sq Square) *Piece {
	return &b.grid[sq.Rank()][sq.File()]
}

// Clone returns an independent deep copy, repetition table included.
func (b *Board) Clone() *Board {
	c := b.scratch()
	if b.repetitions != nil {
		c.repetitions = make(map[uint64]int, len(b.repetitions))
		for k, v := range b.repetitions {
			c.repetitions[k] = v
		}
	}
	return c
}

// scratch copies the grid and scalar state without the repetition table.
// Pieces are values, so the array copy shares nothing with b.
func (b *Board) scratch() *Board {
	c := *b
	c.repetitions = nil
	return &c
}

// At returns the piece on sq. Squares off the board read as Empty.
func (b *Board) At(sq Square) Piece {
	if !sq.IsValid() {
		return Piece{Kind: Empty, Position: NoSquare}
	}
	return *b.cell(sq)
}

// PieceAt returns the piece on sq, or ErrOutOfRange for an invalid square.
func (b *Board) PieceAt(sq Square) (Piece, error) {
	if !sq.IsValid() {
		return Piece{}, fmt.Errorf("square %d: %w", sq, ErrOutOfRange)
	}
	return *b.cell(sq), nil
}

// CastlingRights returns the castling rights still available.
func (b *Board) CastlingRights() CastlingRights {
	return b.castling
}

// EnPassant returns the square of the pawn that may be captured en passant
// on the next move, or NoSquare.
func (b *Board) EnPassant() Square {
	return b.enPassant
}

// HalfMoveClock returns the number of plies since the last pawn move or capture.
func (b *Board) HalfMoveClock() int {
	return b.halfMoveClock
}

// KingSquare returns the cached king position for c.
func (b *Board) KingSquare(c Color) Square {
	return b.kingSquare[c]
}

// Pieces returns every non-empty piece of color c in square order.
func (b *Board) Pieces(c Color) []Piece {
	var out []Piece
	for sq := A1; sq <= H8; sq++ {
		if p := b.cell(sq); !p.IsEmpty() && p.Color == c {
			out = append(out, *p)
		}
	}
	return out
}

// Equal reports whether two boards hold the same grid, flags, clocks and king
// positions. The repetition table is not compared.
func (b *Board) Equal(o *Board) bool {
	return b.grid == o.grid && b.castling == o.castling && b.enPassant == o.enPassant &&
		b.halfMoveClock == o.halfMoveClock && b.kingSquare == o.kingSquare
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(b.grid[rank][file].String() + " ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Castling: %s\n", b.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", b.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", b.halfMoveClock)
	return sb.String()
}
