package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN sets up a board from a FEN string and returns it together with
// the side to move. Pawns on their starting rank may still double move.
// The repetition table starts with the parsed position.
func ParseFEN(fen string) (*Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, White, fmt.Errorf("need at least 4 fields, got %d: %w", len(parts), ErrInvalidFEN)
	}

	b := empty()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, White, err
	}

	// Parse side to move (field 1)
	var toMove Color
	switch parts[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, White, fmt.Errorf("side to move %q: %w", parts[1], ErrInvalidFEN)
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, White, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		if err := parseEnPassant(b, parts[3]); err != nil {
			return nil, White, err
		}
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, White, fmt.Errorf("half-move clock %q: %w", parts[4], ErrInvalidFEN)
		}
		b.halfMoveClock = hmc
	}

	b.resetRepetitions()
	return b, toMove, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("need 8 ranks, got %d: %w", len(ranks), ErrInvalidFEN)
	}

	kings := [2]int{}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d: %w", rank+1, ErrInvalidFEN)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
				continue
			}

			kind, color, ok := pieceFromChar(byte(c))
			if !ok {
				return fmt.Errorf("piece character %q: %w", c, ErrInvalidFEN)
			}
			sq := square(file, rank)
			p := NewPiece(kind, color, sq)
			if kind == Pawn {
				if rank == 0 || rank == 7 {
					return fmt.Errorf("pawn on %s: %w", sq, ErrInvalidFEN)
				}
				p.CanDoubleMove = sq.RelativeRank(color) == 1
			}
			if kind == King {
				kings[color]++
				b.kingSquare[color] = sq
			}
			b.put(p)
			file++
		}

		if file != 8 {
			return fmt.Errorf("rank %d has %d squares: %w", rank+1, file, ErrInvalidFEN)
		}
	}

	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("each side needs exactly one king: %w", ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling section of a FEN string.
func parseCastlingRights(b *Board, s string) error {
	if s == "-" {
		return nil
	}
	for _, c := range s {
		switch c {
		case 'K':
			b.castling |= WhiteKingSideCastle
		case 'Q':
			b.castling |= WhiteQueenSideCastle
		case 'k':
			b.castling |= BlackKingSideCastle
		case 'q':
			b.castling |= BlackQueenSideCastle
		default:
			return fmt.Errorf("castling character %q: %w", c, ErrInvalidFEN)
		}
	}
	return nil
}

// parseEnPassant converts the FEN target square (behind the pawn) into the
// square of the pawn that may be captured.
func parseEnPassant(b *Board, s string) error {
	target, err := ParseSquare(s)
	if err != nil {
		return fmt.Errorf("en passant square %q: %w", s, ErrInvalidFEN)
	}
	var pawnSq Square
	var owner Color
	switch target.Rank() {
	case 2:
		pawnSq, owner = square(target.File(), 3), White
	case 5:
		pawnSq, owner = square(target.File(), 4), Black
	default:
		return fmt.Errorf("en passant square %s: %w", target, ErrInvalidFEN)
	}
	if p := b.At(pawnSq); p.Kind != Pawn || p.Color != owner {
		return fmt.Errorf("no pawn to capture en passant on %s: %w", pawnSq, ErrInvalidFEN)
	}
	b.enPassant = pawnSq
	return nil
}

func pieceFromChar(c byte) (PieceKind, Color, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return Pawn, color, true
	case 'N':
		return Knight, color, true
	case 'B':
		return Bishop, color, true
	case 'R':
		return Rook, color, true
	case 'Q':
		return Queen, color, true
	case 'K':
		return King, color, true
	}
	return Empty, White, false
}

// FEN returns the FEN string of the board with toMove as the side to move.
// The board does not count full moves, so the caller supplies the number.
func (b *Board) FEN(toMove Color, fullMove int) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empties := 0
		for file := 0; file < 8; file++ {
			p := b.grid[rank][file]
			if p.IsEmpty() {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteByte(byte('0' + empties))
				empties = 0
			}
			sb.WriteString(p.String())
		}
		if empties > 0 {
			sb.WriteByte(byte('0' + empties))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if toMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())

	sb.WriteByte(' ')
	if b.enPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		pawn := b.At(b.enPassant)
		behind, _ := b.enPassant.offset(0, -pawn.Color.forward())
		sb.WriteString(behind.String())
	}

	fmt.Fprintf(&sb, " %d %d", b.halfMoveClock, fullMove)
	return sb.String()
}
