package game

import (
	"errors"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func playAll(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if err := g.PlayString(s); err != nil {
			t.Fatalf("play %s: %v", s, err)
		}
	}
}

func TestNewGame(t *testing.T) {
	g := New()
	if g.Turn() != board.White {
		t.Errorf("Turn = %s, want White", g.Turn())
	}
	if g.Status() != Ongoing {
		t.Errorf("Status = %s, want ongoing", g.Status())
	}
	if got := len(g.LegalMoves()); got != 20 {
		t.Errorf("LegalMoves = %d, want 20", got)
	}
	if g.FEN() != board.StartFEN {
		t.Errorf("FEN = %q", g.FEN())
	}
}

func TestTurnsAlternate(t *testing.T) {
	g := New()
	if err := g.PlayString("e7e5"); !errors.Is(err, ErrWrongTurn) {
		t.Fatalf("Black moving first: err = %v", err)
	}
	playAll(t, g, "e2e4", "e7e5")
	if g.Turn() != board.White {
		t.Errorf("Turn = %s, want White", g.Turn())
	}
	if err := g.PlayString("e5e4"); err == nil {
		t.Error("Blocked pawn push succeeded")
	}
	if err := g.PlayString("d7d5"); !errors.Is(err, ErrWrongTurn) {
		t.Errorf("Black moving twice: err = %v", err)
	}

	h := g.History()
	if len(h) != 2 || h[0].Color != board.White || h[1].Move != board.NewMove(board.E7, board.E5) {
		t.Errorf("History = %+v", h)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if g.FEN() != want {
		t.Errorf("FEN = %q, want %q", g.FEN(), want)
	}
}

func TestCheckmateEndsGame(t *testing.T) {
	g := New()
	playAll(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if g.Status() != Checkmate {
		t.Fatalf("Status = %s, want checkmate", g.Status())
	}
	if !g.InCheck() {
		t.Error("Expected white in check")
	}
	if w, ok := g.Winner(); !ok || w != board.Black {
		t.Errorf("Winner = %s, %v", w, ok)
	}
	if moves := g.LegalMoves(); len(moves) != 0 {
		t.Errorf("LegalMoves after mate = %v", moves)
	}
	if err := g.PlayString("a2a3"); !errors.Is(err, ErrGameOver) {
		t.Errorf("Move after mate: err = %v", err)
	}
}

func TestDrawStatuses(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  Status
	}{
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", nil, Stalemate},
		{"stalemate by move", "7k/4Q3/6K1/8/8/8/8/8 w - - 0 1", []string{"e7f7"}, Stalemate},
		{"insufficient", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", nil, InsufficientMaterial},
		{"bare kings by capture", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", []string{"e1e2"}, InsufficientMaterial},
		{"fifty moves", "4k3/8/8/8/8/8/8/R3K3 w - - 99 70", []string{"a1a2"}, FiftyMoveRule},
		{"threefold", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
			[]string{"a1a2", "e8d8", "a2a1", "d8e8", "a1a2", "e8d8", "a2a1", "d8e8"}, ThreefoldRepetition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := FromFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			playAll(t, g, tc.moves...)
			if g.Status() != tc.want {
				t.Errorf("Status = %s, want %s", g.Status(), tc.want)
			}
			if !g.Status().IsDraw() {
				t.Errorf("%s should be a draw", g.Status())
			}
			if _, ok := g.Winner(); ok {
				t.Error("A draw has no winner")
			}
		})
	}
}

func TestPromotionRules(t *testing.T) {
	g, err := FromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.PlayString("a7a8"); !errors.Is(err, ErrPromotionRequired) {
		t.Fatalf("Promotion without kind: err = %v", err)
	}
	if err := g.Play(board.NewMove(board.A7, board.A8), board.King); !errors.Is(err, ErrPromotionRequired) {
		t.Fatalf("Promotion to king: err = %v", err)
	}
	if err := g.Play(board.NewMove(board.E1, board.E2), board.Queen); !errors.Is(err, board.ErrInvalidPromotion) {
		t.Fatalf("Promotion kind on a king move: err = %v", err)
	}
	if len(g.History()) != 0 || g.Turn() != board.White {
		t.Fatal("Rejected moves changed the game")
	}

	playAll(t, g, "a7a8r")
	b := g.Board()
	if p := b.At(board.A8); p.Kind != board.Rook || p.Color != board.White {
		t.Errorf("a8 holds %v", p)
	}
	if h := g.History(); h[0].Promotion != board.Rook {
		t.Errorf("Promotion not recorded: %+v", h[0])
	}
	if !g.InCheck() {
		t.Error("Rook on a8 should give check")
	}
	if err := g.PlayString("e8e7x"); !errors.Is(err, board.ErrInvalidPromotion) {
		t.Errorf("Bad promotion letter: err = %v", err)
	}
}

func TestBoardIsACopy(t *testing.T) {
	g := New()
	b := g.Board()
	if err := b.ApplyMove(board.NewMove(board.E2, board.E4)); err != nil {
		t.Fatal(err)
	}
	if g.FEN() != board.StartFEN {
		t.Error("Mutating the returned board changed the game")
	}
}

func TestFromFENFullMove(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 b - - 3 42")
	if err != nil {
		t.Fatal(err)
	}
	playAll(t, g, "e8d8")
	if want := "3k4/8/8/8/8/8/8/R3K3 w - - 4 43"; g.FEN() != want {
		t.Errorf("FEN = %q, want %q", g.FEN(), want)
	}
	if _, err := FromFEN("not a fen"); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("FromFEN err = %v", err)
	}
}

func TestPlayStringAfterStalemate(t *testing.T) {
	g, err := FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	// The string is not even a parseable move; the finished game is reported first.
	for _, s := range []string{"h8h7", "zz99"} {
		if err := g.PlayString(s); !errors.Is(err, ErrGameOver) {
			t.Errorf("PlayString(%q) err = %v, want ErrGameOver", s, err)
		}
	}
}
