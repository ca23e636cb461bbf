// Package game sequences turns over a board.Board and declares the outcome
// of a game from the board's check, legality and draw primitives.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

var (
	// ErrGameOver is returned when a move is played after the game has ended.
	ErrGameOver = errors.New("game is over")
	// ErrWrongTurn is returned when the moving piece does not belong to the side to move.
	ErrWrongTurn = errors.New("not this side's turn")
	// ErrPromotionRequired is returned when a pawn reaches the last rank without a valid promotion kind.
	ErrPromotionRequired = errors.New("promotion kind required")
)

// Status is the state of a game.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	ThreefoldRepetition
	FiftyMoveRule
	InsufficientMaterial
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case ThreefoldRepetition:
		return "threefold repetition"
	case FiftyMoveRule:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "unknown"
	}
}

// IsDraw returns true for every drawn outcome.
func (s Status) IsDraw() bool {
	return s != Ongoing && s != Checkmate
}

// Ply records one played move.
type Ply struct {
	Color     board.Color
	Move      board.Move
	Promotion board.PieceKind // Empty unless the move promoted a pawn
	FEN       string          // position after the move
}

// Game is a sequence of moves from a starting position with alternating turns.
type Game struct {
	board     *board.Board
	toMove    board.Color
	fullMove  int
	startFEN  string
	history   []Ply
	status    Status
	lastCheck bool
}

// New creates a game from the standard starting position.
func New() *Game {
	g := &Game{board: board.New(), toMove: board.White, fullMove: 1, startFEN: board.StartFEN}
	g.updateStatus()
	return g
}

// FromFEN creates a game from a FEN position.
func FromFEN(fen string) (*Game, error) {
	b, toMove, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{board: b, toMove: toMove, fullMove: 1, startFEN: fen}
	if parts := strings.Fields(fen); len(parts) > 5 {
		if n, err := strconv.Atoi(parts[5]); err == nil && n > 0 {
			g.fullMove = n
		}
	}
	g.updateStatus()
	return g, nil
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color {
	return g.toMove
}

// Status returns the current game status.
func (g *Game) Status() Status {
	return g.status
}

// Winner returns the winning color after checkmate.
func (g *Game) Winner() (board.Color, bool) {
	if g.status != Checkmate {
		return board.White, false
	}
	return g.toMove.Other(), true
}

// InCheck returns true if the side to move is in check.
func (g *Game) InCheck() bool {
	return g.lastCheck
}

// History returns the plies played so far.
func (g *Game) History() []Ply {
	return append([]Ply(nil), g.history...)
}

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// FEN returns the current position.
func (g *Game) FEN() string {
	return g.board.FEN(g.toMove, g.fullMove)
}

// LegalMoves returns every legal move of the side to move.
func (g *Game) LegalMoves() []board.Move {
	if g.status != Ongoing {
		return nil
	}
	return g.board.AllLegalMoves(g.toMove)
}

// IsPromotion reports whether m moves a pawn onto its last rank.
func (g *Game) IsPromotion(m board.Move) bool {
	p := g.board.At(m.From)
	return p.Kind == board.Pawn && m.To.IsValid() && m.To.RelativeRank(p.Color) == 7
}

// Play makes a move for the side to move. promo must name the promotion
// kind when a pawn reaches the last rank and be board.Empty otherwise.
// Nothing changes when an error is returned.
func (g *Game) Play(m board.Move, promo board.PieceKind) error {
	if g.status != Ongoing {
		return fmt.Errorf("%s: %w", g.status, ErrGameOver)
	}
	p, err := g.board.PieceAt(m.From)
	if err != nil {
		return err
	}
	if p.IsEmpty() || p.Color != g.toMove {
		return fmt.Errorf("%s to move, %s: %w", g.toMove, m, ErrWrongTurn)
	}
	if g.IsPromotion(m) {
		if !board.IsPromotionKind(promo) {
			return fmt.Errorf("%s: %w", m, ErrPromotionRequired)
		}
	} else if promo != board.Empty {
		return fmt.Errorf("%s does not promote: %w", m, board.ErrInvalidPromotion)
	}

	if err := g.board.ApplyMove(m); err != nil {
		return err
	}
	if promo != board.Empty {
		// Eligibility was checked above, so this cannot fail.
		if err := g.board.Promote(m.To, promo); err != nil {
			return err
		}
	}

	if g.toMove == board.Black {
		g.fullMove++
	}
	mover := g.toMove
	g.toMove = g.toMove.Other()
	g.history = append(g.history, Ply{Color: mover, Move: m, Promotion: promo, FEN: g.FEN()})
	g.updateStatus()
	return nil
}

// PlayString parses a coordinate move ("e2e4", "e7e8q") and plays it.
func (g *Game) PlayString(s string) error {
	if g.status != Ongoing {
		return fmt.Errorf("%s: %w", g.status, ErrGameOver)
	}
	promo := board.Empty
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = board.Knight
		case 'b':
			promo = board.Bishop
		case 'r':
			promo = board.Rook
		case 'q':
			promo = board.Queen
		default:
			return fmt.Errorf("promotion piece %q: %w", s[4], board.ErrInvalidPromotion)
		}
		s = s[:4]
	}
	m, err := board.ParseMove(s, g.board)
	if err != nil {
		return err
	}
	return g.Play(m, promo)
}

// updateStatus evaluates the position for the side to move. Checkmate and
// stalemate take precedence over the draw rules.
func (g *Game) updateStatus() {
	g.lastCheck = g.board.IsInCheck(g.toMove)
	hasMoves := g.board.HasLegalMoves(g.toMove)
	switch {
	case !hasMoves && g.lastCheck:
		g.status = Checkmate
	case !hasMoves:
		g.status = Stalemate
	case g.board.IsThreefoldRepetition():
		g.status = ThreefoldRepetition
	case g.board.IsFiftyMoveRule():
		g.status = FiftyMoveRule
	case g.board.IsInsufficientMaterial():
		g.status = InsufficientMaterial
	default:
		g.status = Ongoing
	}
}
