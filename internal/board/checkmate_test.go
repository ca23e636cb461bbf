package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ka1, Ra8; Black Kh8 with pawns on g7 and h7
	// blocking the escape. Black to move is already checkmated.
	b, _, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(b)

	if !b.IsInCheck(Black) {
		t.Fatal("Expected black to be in check")
	}
	if got := b.Checkers(Black); len(got) != 1 || got[0] != A8 {
		t.Errorf("Checkers = %v, want [a8]", got)
	}
	if moves := b.AllLegalMoves(Black); len(moves) != 0 {
		t.Errorf("Expected no legal moves, got %v", moves)
	}
	if !b.IsCheckmate(Black) {
		t.Error("Expected checkmate but got false")
	}
	if b.IsStalemate(Black) {
		t.Error("Checkmate must not be reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// The black king on h8 can capture the unprotected rook on g8 or step to h7.
	b, _, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	moves, err := b.LegalMoves(H8)
	if err != nil {
		t.Fatal(err)
	}
	t.Log("Black legal moves:", moves)

	if len(moves) != 2 || !containsMove(moves, NewCapture(H8, G8)) || !containsMove(moves, NewMove(H8, H7)) {
		t.Errorf("Expected h8g8 capture and h8h7, got %v", moves)
	}
	if b.IsCheckmate(Black) {
		t.Error("Expected NOT checkmate but got true")
	}
}

func TestStalemate(t *testing.T) {
	b, _, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if b.IsInCheck(Black) {
		t.Fatal("Black should not be in check")
	}
	if !b.IsStalemate(Black) {
		t.Error("Expected stalemate")
	}
	if b.IsCheckmate(Black) {
		t.Error("Stalemate must not be reported as checkmate")
	}
}

func TestFoolsMate(t *testing.T) {
	b := New()
	play(t, b, "f2f3", "e7e5", "g2g4", "d8h4")
	if !b.IsCheckmate(White) {
		t.Errorf("Expected fool's mate, board:%v", b)
	}
	if got := b.Checkers(White); len(got) != 1 || got[0] != H4 {
		t.Errorf("Checkers = %v, want [h4]", got)
	}
}
