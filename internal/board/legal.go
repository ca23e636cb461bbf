package board

// IsInCheck returns true if any enemy piece can reach the king of color c.
func (b *Board) IsInCheck(c Color) bool {
	return len(b.attackers(c, true)) > 0
}

// Checkers returns the squares of the enemy pieces giving check to c's king.
func (b *Board) Checkers(c Color) []Square {
	return b.attackers(c, false)
}

// attackers scans every enemy piece's pseudo-legal moves for one landing on
// c's king. With first set it stops at the first hit.
func (b *Board) attackers(c Color, first bool) []Square {
	ksq := b.kingSquare[c]
	if ksq == NoSquare {
		return nil
	}
	var out []Square
	for sq := A1; sq <= H8; sq++ {
		p := b.cell(sq)
		if p.IsEmpty() || p.Color == c {
			continue
		}
		for _, m := range p.PseudoLegalMoves(b) {
			if m.To == ksq {
				out = append(out, sq)
				if first {
					return out
				}
				break
			}
		}
	}
	return out
}

// LegalMoves returns the fully legal moves of the piece on sq, in generation
// order. An empty square yields no moves.
func (b *Board) LegalMoves(sq Square) ([]Move, error) {
	p, err := b.PieceAt(sq)
	if err != nil {
		return nil, err
	}
	moves := p.PseudoLegalMoves(b)
	if p.Kind == King {
		moves = b.filterCastling(p, moves)
	}
	return b.filterChecks(p.Color, moves), nil
}

// filterCastling drops castling while in check and castling through an
// attacked square: if the one-file step towards a side leaves the king in
// check, the step and the castling move on that side both go.
func (b *Board) filterCastling(k Piece, moves []Move) []Move {
	if b.IsInCheck(k.Color) {
		moves = removeIf(moves, func(m Move) bool { return abs(m.fileDelta()) == 2 })
	}
	var blocked []int
	for _, m := range moves {
		d := m.fileDelta()
		if abs(d) != 1 || m.To.Rank() != k.Position.Rank() {
			continue
		}
		sim := b.scratch()
		sim.applyMove(m)
		if sim.IsInCheck(k.Color) {
			blocked = append(blocked, d)
		}
	}
	for _, d := range blocked {
		moves = removeIf(moves, func(m Move) bool {
			fd := m.fileDelta()
			return m.To.Rank() == k.Position.Rank() && (fd == d || fd == 2*d)
		})
	}
	return moves
}

// filterChecks keeps the moves after which c's king is not attacked.
func (b *Board) filterChecks(c Color, moves []Move) []Move {
	return removeIf(moves, func(m Move) bool {
		sim := b.scratch()
		sim.applyMove(m)
		return sim.IsInCheck(c)
	})
}

// removeIf filters moves in place, preserving the order of survivors.
func removeIf(moves []Move, drop func(Move) bool) []Move {
	out := moves[:0]
	for _, m := range moves {
		if !drop(m) {
			out = append(out, m)
		}
	}
	return out
}

// AllLegalMoves returns the legal moves of every piece of color c.
func (b *Board) AllLegalMoves(c Color) []Move {
	var all []Move
	for _, p := range b.Pieces(c) {
		moves, _ := b.LegalMoves(p.Position)
		all = append(all, moves...)
	}
	return all
}

// HasLegalMoves returns true if color c has at least one legal move.
func (b *Board) HasLegalMoves(c Color) bool {
	for _, p := range b.Pieces(c) {
		if moves, _ := b.LegalMoves(p.Position); len(moves) > 0 {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if c is in check with no legal move.
func (b *Board) IsCheckmate(c Color) bool {
	return b.IsInCheck(c) && !b.HasLegalMoves(c)
}

// IsStalemate returns true if c is not in check but has no legal move.
func (b *Board) IsStalemate(c Color) bool {
	return !b.IsInCheck(c) && !b.HasLegalMoves(c)
}
