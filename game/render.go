package game

import (
	"fmt"
	"strings"
)

// String renders the grid with increasing y going up.
func (b *Board) String() string {
	return b.Render(nil)
}

// Render draws the grid top row first. overlay, when non-nil, may replace the
// glyph of any cell.
func (b *Board) Render(overlay func(p Point) (string, bool)) string {
	var sb strings.Builder
	for y := b.Height - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < b.Width; x++ {
			p := Point{X: x, Y: y}
			if overlay != nil {
				if glyph, ok := overlay(p); ok {
					sb.WriteString(glyph)
					continue
				}
			}
			sb.WriteRune(b.Cell(p).Rune())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for x := 0; x < b.Width; x++ {
		sb.WriteByte(byte('0' + x%10))
	}
	sb.WriteByte('\n')
	return sb.String()
}
