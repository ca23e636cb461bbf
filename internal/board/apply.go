package board

import "fmt"

// ApplyMove plays m, which must be one of LegalMoves(m.From). All derived
// state (castling rights, en passant, king cache, clocks, repetition table)
// is updated together. An illegal move leaves the board untouched.
func (b *Board) ApplyMove(m Move) error {
	legal, err := b.LegalMoves(m.From)
	if err != nil {
		return err
	}
	for _, lm := range legal {
		if lm == m {
			b.applyMove(m)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", m, ErrIllegalMove)
}

// applyMove performs m without validation. Used for real moves after the
// legality check and for simulation on scratch boards.
func (b *Board) applyMove(m Move) {
	mover := b.cell(m.From)
	reset := mover.Kind == Pawn || m.IsCapture()

	b.halfMoveClock++
	b.enPassant = NoSquare

	switch mover.Kind {
	case Pawn:
		if abs(m.To.Rank()-m.From.Rank()) == 2 {
			b.enPassant = m.To
		}
		mover.CanDoubleMove = false
	case King:
		b.castling &^= castlingRight(mover.Color, true) | castlingRight(mover.Color, false)
		b.kingSquare[mover.Color] = m.To
		if d := m.fileDelta(); d == 2 {
			b.swap(square(7, m.To.Rank()), square(m.To.File()-1, m.To.Rank()))
		} else if d == -2 {
			b.swap(square(0, m.To.Rank()), square(m.To.File()+1, m.To.Rank()))
		}
	case Rook:
		if m.From.Rank() == mover.Color.homeRank() {
			switch m.From.File() {
			case 0:
				b.castling &^= castlingRight(mover.Color, false)
			case 7:
				b.castling &^= castlingRight(mover.Color, true)
			}
		}
	}

	if m.IsCapture() {
		b.clearCornerRight(m.Capture)
		captured := b.cell(m.Capture)
		*captured = Piece{Kind: Empty, Position: m.Capture}
	}

	b.swap(m.From, m.To)

	if reset {
		b.halfMoveClock = 0
	}
	if b.repetitions != nil {
		if reset {
			clear(b.repetitions)
		}
		b.repetitions[b.Signature()]++
	}
}

// clearCornerRight drops the castling right tied to a corner square,
// whatever piece stood there.
func (b *Board) clearCornerRight(sq Square) {
	switch sq {
	case A1:
		b.castling &^= WhiteQueenSideCastle
	case H1:
		b.castling &^= WhiteKingSideCastle
	case A8:
		b.castling &^= BlackQueenSideCastle
	case H8:
		b.castling &^= BlackKingSideCastle
	}
}

// swap exchanges two grid cells and keeps each piece's Position in sync.
func (b *Board) swap(a, c Square) {
	pa, pc := b.cell(a), b.cell(c)
	*pa, *pc = *pc, *pa
	pa.Position, pc.Position = a, c
}

// CanPromote returns true if the piece on sq is a pawn on its farthest rank.
func (b *Board) CanPromote(sq Square) (bool, error) {
	p, err := b.PieceAt(sq)
	if err != nil {
		return false, err
	}
	return p.Kind == Pawn && sq.RelativeRank(p.Color) == 7, nil
}

// Promote replaces the pawn on sq with a piece of the given kind.
func (b *Board) Promote(sq Square, kind PieceKind) error {
	ok, err := b.CanPromote(sq)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no pawn to promote on %s: %w", sq, ErrInvalidPromotion)
	}
	if !IsPromotionKind(kind) {
		return fmt.Errorf("cannot promote to %s: %w", kind, ErrInvalidPromotion)
	}
	b.cell(sq).Kind = kind
	if b.repetitions != nil {
		// The pawn that just moved cleared the table; restart it from the promoted position.
		clear(b.repetitions)
		b.repetitions[b.Signature()] = 1
	}
	return nil
}

// IsPromotionKind reports whether a pawn may promote to kind.
func IsPromotionKind(kind PieceKind) bool {
	return kind == Knight || kind == Bishop || kind == Rook || kind == Queen
}

func (b *Board) resetRepetitions() {
	b.repetitions = map[uint64]int{b.Signature(): 1}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
