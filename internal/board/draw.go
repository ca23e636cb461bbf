package board

// IsThreefoldRepetition returns true if some position signature has occurred
// at least three times since the last pawn move or capture.
func (b *Board) IsThreefoldRepetition() bool {
	for _, n := range b.repetitions {
		if n >= 3 {
			return true
		}
	}
	return false
}

// RepetitionCount returns how often the current position has occurred since
// the last pawn move or capture.
func (b *Board) RepetitionCount() int {
	return b.repetitions[b.Signature()]
}

// IsFiftyMoveRule returns true once fifty moves by each side have passed
// without a pawn move or capture.
func (b *Board) IsFiftyMoveRule() bool {
	return b.halfMoveClock >= 100
}

// IsInsufficientMaterial returns true if, kings aside, the board holds nothing,
// a single knight, or a single bishop.
func (b *Board) IsInsufficientMaterial() bool {
	var minor PieceKind
	count := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			k := b.grid[rank][file].Kind
			if k == Empty || k == King {
				continue
			}
			count++
			if count > 1 {
				return false
			}
			minor = k
		}
	}
	return count == 0 || minor == Knight || minor == Bishop
}
