// Package viewer draws boards, walks and analysis reports for the terminal.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rninformatics/battlesnake-utils/analysis"
	"github.com/rninformatics/battlesnake-utils/game"
)

// Styles colour the glyphs of a rendered board.
type Styles struct {
	Axis    lipgloss.Style
	Food    lipgloss.Style
	Hazard  lipgloss.Style
	Head    lipgloss.Style
	Tail    lipgloss.Style
	Crumb   lipgloss.Style
	Walker  lipgloss.Style
	Snakes  []lipgloss.Style // body colour by snake index
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Heading lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Axis:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Food:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Hazard: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Head:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Tail:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Crumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Walker: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Snakes: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		},
		Good:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Heading: lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

func (s Styles) cell(c game.Cell) lipgloss.Style {
	switch c {
	case game.CellFood:
		return s.Food
	case game.CellHazard:
		return s.Hazard
	case game.CellHead:
		return s.Head
	case game.CellTail:
		return s.Tail
	case game.CellCrumb:
		return s.Crumb
	}
	if i, ok := c.SnakeIndex(); ok && len(s.Snakes) > 0 {
		return s.Snakes[i%len(s.Snakes)]
	}
	return lipgloss.NewStyle()
}

// Board draws b like game.Board.Render, with colour.
func Board(b *game.Board, s Styles) string {
	return render(b, s, nil)
}

// Walk draws the walk's board with its crumbs and walker.
func Walk(w *analysis.Walk, s Styles) string {
	return render(w.Board(), s, func(p game.Point) (string, bool) {
		glyph, ok := w.Overlay(p)
		if !ok {
			return "", false
		}
		if p == w.Pos() {
			return s.Walker.Render(glyph), true
		}
		return s.Crumb.Render(glyph), true
	})
}

func render(b *game.Board, s Styles, overlay func(game.Point) (string, bool)) string {
	var sb strings.Builder
	for y := b.Height - 1; y >= 0; y-- {
		sb.WriteString(s.Axis.Render(fmt.Sprintf("%2d ", y)))
		for x := 0; x < b.Width; x++ {
			p := game.Point{X: x, Y: y}
			if overlay != nil {
				if glyph, ok := overlay(p); ok {
					sb.WriteString(glyph)
					continue
				}
			}
			c := b.Cell(p)
			sb.WriteString(s.cell(c).Render(string(c.Rune())))
		}
		sb.WriteByte('\n')
	}
	var axis strings.Builder
	axis.WriteString("   ")
	for x := 0; x < b.Width; x++ {
		axis.WriteByte(byte('0' + x%10))
	}
	sb.WriteString(s.Axis.Render(axis.String()))
	sb.WriteByte('\n')
	return sb.String()
}

// Report lays out one line per direction followed by the food summary.
func Report(r analysis.Report, s Styles) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn %d  you %s  head %v  facing %v  t-choice %v\n", r.Turn, r.YouID, r.Head, r.Facing, r.TChoice)
	if len(r.Verdicts) == 0 {
		sb.WriteString(s.Bad.Render("no ego snake on the board"))
		sb.WriteByte('\n')
		return sb.String()
	}

	sb.WriteString(s.Heading.Render(fmt.Sprintf("%-6s %-5s %-5s %-8s %-8s %s", "dir", "free", "legal", "deadend", "tchoice", "area")))
	sb.WriteByte('\n')
	for _, v := range r.Verdicts {
		area := "-"
		if v.Walked {
			area = fmt.Sprintf("%d", v.Area)
			if v.Tripped {
				area += "!"
			}
		}
		line := fmt.Sprintf("%-6s %-5v %-5v %-8v %-8v %s", v.Direction.Arrow()+" "+v.Direction.String(), v.Free, v.Legal, v.DeadEnd, v.TChoice, area)
		style := s.Good
		if !v.Legal || v.DeadEnd {
			style = s.Bad
		}
		sb.WriteString(style.Render(line))
		sb.WriteByte('\n')
	}

	sb.WriteString("food: ")
	sb.WriteString(foodLine(r.Food))
	sb.WriteString("  clear: ")
	sb.WriteString(foodLine(r.Clear))
	sb.WriteByte('\n')
	return sb.String()
}

func foodLine(f analysis.Food) string {
	if !f.Found {
		return "none"
	}
	dirs := make([]string, len(f.Direction))
	for i, d := range f.Direction {
		dirs[i] = d.String()
	}
	return fmt.Sprintf("%s at %.2f", strings.Join(dirs, "+"), f.Distance)
}
