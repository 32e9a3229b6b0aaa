package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// PreviewLegend explains the characters used by Preview.
const PreviewLegend = "Legend: █=bright ▓=medium ▒=dim ░=faint ·=very dim (space)=dark or transparent"

// Preview writes buf as ASCII art scaled to cols characters wide. Terminal
// cells are about twice as tall as wide, so rows are halved.
func Preview(w io.Writer, buf *domain.PixelBuffer, cols int) error {
	if cols < 1 {
		cols = 64
	}
	cols = min(cols, buf.Width())
	rows := max(1, (buf.Height()*cols+buf.Width())/(2*buf.Width()))
	small := Scale(buf, cols, rows)

	var b strings.Builder
	b.WriteString("   ┌" + strings.Repeat("─", cols) + "┐\n")
	for y := 0; y < rows; y++ {
		fmt.Fprintf(&b, "%3d│", y)
		for x := 0; x < cols; x++ {
			c, _ := small.At(x, y)
			b.WriteString(shade(Brightness(c)))
		}
		b.WriteString("│\n")
	}
	b.WriteString("   └" + strings.Repeat("─", cols) + "┘\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func shade(brightness int) string {
	switch {
	case brightness > 200:
		return "█"
	case brightness > 150:
		return "▓"
	case brightness > 100:
		return "▒"
	case brightness > 50:
		return "░"
	case brightness > 10:
		return "·"
	default:
		return " "
	}
}
