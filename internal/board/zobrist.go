package board

// Zobrist keys for repetition signatures.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece    [2][7][64]uint64 // [Color][PieceKind][Square]; Empty and Pawn slots are never hashed
	zobristCastling [16]uint64       // All 16 castling combinations
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for k := Knight; k <= King; k++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][k][sq] = rng.next()
			}
		}
	}

	// Castling rights 0 keeps key 0 so a board without rights hashes pieces only.
	for i := 1; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
}

// Signature returns the repetition signature of the position: every piece
// that is neither a pawn nor empty, plus the castling rights. Pawn structure
// is left out because any pawn move clears the repetition table.
func (b *Board) Signature() uint64 {
	var h uint64
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := &b.grid[rank][file]
			if p.Kind == Empty || p.Kind == Pawn {
				continue
			}
			h ^= zobristPiece[p.Color][p.Kind][p.Position]
		}
	}
	return h ^ zobristCastling[b.castling]
}
