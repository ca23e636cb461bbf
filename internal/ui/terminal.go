// Package ui renders boards for terminals.
package ui

import (
	"strings"

	"github.com/fatih/color"
	"github.com/hailam/chessrules/internal/board"
)

// Glyphs for each piece kind, indexed by board.PieceKind.
var glyphs = [2][7]string{
	{" ", "♙", "♘", "♗", "♖", "♕", "♔"},
	{" ", "♟", "♞", "♝", "♜", "♛", "♚"},
}

// Renderer draws a board with coloured squares. White is at the bottom.
type Renderer struct {
	// Highlights marks squares drawn in the highlight colour (last move, checked king).
	Highlights map[board.Square]bool
	// Plain disables escape sequences and uses FEN letters instead of glyphs.
	Plain bool

	light, dark, mark, label *color.Color
}

// NewRenderer creates a renderer. plain disables colour output.
func NewRenderer(plain bool) *Renderer {
	r := &Renderer{
		Highlights: make(map[board.Square]bool),
		Plain:      plain,
		light:      color.New(color.BgHiWhite, color.FgBlack),
		dark:       color.New(color.BgGreen, color.FgBlack),
		mark:       color.New(color.BgYellow, color.FgBlack, color.Bold),
		label:      color.New(color.FgHiBlack),
	}
	if plain {
		for _, c := range []*color.Color{r.light, r.dark, r.mark, r.label} {
			c.DisableColor()
		}
	}
	return r
}

// HighlightMove marks the origin and destination of m.
func (r *Renderer) HighlightMove(m board.Move) {
	r.Highlights[m.From] = true
	r.Highlights[m.To] = true
}

// ClearHighlights removes every highlight.
func (r *Renderer) ClearHighlights() {
	for sq := range r.Highlights {
		delete(r.Highlights, sq)
	}
}

// Render returns the board as text, one line per rank.
func (r *Renderer) Render(b *board.Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(r.label.Sprint(string(rune('1'+rank))) + " ")
		for file := 0; file < 8; file++ {
			sq, _ := board.NewSquare(file, rank)
			sb.WriteString(r.cell(sq, b.At(sq)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	for file := 0; file < 8; file++ {
		sb.WriteString(r.label.Sprint(" " + string(rune('a'+file)) + " "))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (r *Renderer) cell(sq board.Square, p board.Piece) string {
	s := glyphs[p.Color][p.Kind]
	if r.Plain {
		s = p.String()
	}
	s = " " + s + " "

	if r.Plain {
		if r.Highlights[sq] {
			return "[" + strings.TrimSpace(s) + "]"
		}
		return s
	}
	switch {
	case r.Highlights[sq]:
		return r.mark.Sprint(s)
	case (sq.File()+sq.Rank())%2 == 0:
		return r.dark.Sprint(s)
	default:
		return r.light.Sprint(s)
	}
}
