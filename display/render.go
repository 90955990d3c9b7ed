package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// QRArt renders a module matrix as half-block art, two module rows
// per text line. Light modules paint and dark modules stay blank,
// which scans correctly from the dark terminals the loop runs in.
// Rows past the bottom of an odd-height matrix count as light, like
// the quiet zone they border.
func QRArt(matrix [][]bool) string {
	var b strings.Builder
	for y := 0; y < len(matrix); y += 2 {
		for x := range matrix[y] {
			topDark := matrix[y][x]
			bottomDark := false
			if y+1 < len(matrix) {
				bottomDark = matrix[y+1][x]
			}
			switch {
			case !topDark && !bottomDark:
				b.WriteRune('█')
			case !topDark && bottomDark:
				b.WriteRune('▀')
			case topDark && !bottomDark:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

// ImageArt renders an image as colored half-block art, two pixel rows
// per text line, foreground over background. Meant for the small
// fingerprint images, where one pixel per half cell is legible.
func ImageArt(img image.Image) string {
	bounds := img.Bounds()
	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(pixelColor(img, x, y))
			if y+1 < bounds.Max.Y {
				style = style.Background(pixelColor(img, x, y+1))
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func pixelColor(img image.Image, x, y int) lipgloss.Color {
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
