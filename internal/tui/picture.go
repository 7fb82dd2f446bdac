// internal/tui/picture.go
//
// Terminal rendering of images.
//   - Pictures: nearest-neighbour scaled, two pixel rows per text row using
//     the upper half block (foreground = top pixel, background = bottom).
//   - QR codes: module bitmap from go-qrcode drawn with the same blocks.

package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	qrcode "github.com/skip2/go-qrcode"
)

const upperHalf = "▀"

// renderPicture draws img cols characters wide. Transparent pixels take the
// backdrop colour.
func renderPicture(img image.Image, cols int, backdrop lipgloss.Color) string {
	b := img.Bounds()
	if cols <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}
	if cols > b.Dx() {
		cols = b.Dx()
	}
	rows := b.Dy() * cols / b.Dx()
	if rows%2 == 1 {
		rows++
	}

	sample := func(x, y int) lipgloss.Color {
		sx := b.Min.X + x*b.Dx()/cols
		sy := b.Min.Y + y*b.Dy()/rows
		if sy >= b.Max.Y {
			return backdrop
		}
		return hexColor(img.At(sx, sy), backdrop)
	}

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			cell := lipgloss.NewStyle().Foreground(sample(x, y)).Background(sample(x, y+1))
			sb.WriteString(cell.Render(upperHalf))
		}
	}
	return sb.String()
}

// hexColor flattens c onto the backdrop: anything under half opacity is
// treated as transparent.
func hexColor(c color.Color, backdrop lipgloss.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 0x80 {
		return backdrop
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B))
}

// renderQR encodes content and draws it in half blocks, dark modules on a
// light field so phone cameras read it on any terminal theme.
func renderQR(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", err
	}
	bits := q.Bitmap()
	dark, light := lipgloss.Color("#000000"), lipgloss.Color("#FFFFFF")
	at := func(x, y int) lipgloss.Color {
		if y < len(bits) && bits[y][x] {
			return dark
		}
		return light
	}

	var sb strings.Builder
	for y := 0; y < len(bits); y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range bits[y] {
			sb.WriteString(lipgloss.NewStyle().Foreground(at(x, y)).Background(at(x, y+1)).Render(upperHalf))
		}
	}
	return sb.String(), nil
}
