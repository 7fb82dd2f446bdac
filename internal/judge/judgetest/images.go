package judgetest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/robalobadob/silhouette-quiz/assets"
)

const imageSize = 64

var typeColors = map[string]color.NRGBA{
	"fire":     {R: 0xee, G: 0x81, B: 0x30, A: 0xff},
	"water":    {R: 0x63, G: 0x90, B: 0xf0, A: 0xff},
	"grass":    {R: 0x7a, G: 0xc7, B: 0x4c, A: 0xff},
	"electric": {R: 0xf7, G: 0xd0, B: 0x2c, A: 0xff},
	"psychic":  {R: 0xf9, G: 0x55, B: 0x87, A: 0xff},
	"ground":   {R: 0xe2, G: 0xbf, B: 0x65, A: 0xff},
	"fighting": {R: 0xc2, G: 0x2e, B: 0x28, A: 0xff},
}

// drawCreature paints a body and head blob whose proportions depend on the
// entry id. With silhouette set every opaque pixel is black.
func drawCreature(e assets.Entry, silhouette bool) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, imageSize, imageSize))
	fill := color.NRGBA{R: 0xa8, G: 0xa8, B: 0x78, A: 0xff}
	if len(e.Types) > 0 {
		if c, ok := typeColors[e.Types[0]]; ok {
			fill = c
		}
	}
	if silhouette {
		fill = color.NRGBA{A: 0xff}
	}

	bodyR := 14 + e.ID%8
	headR := 8 + e.ID%5
	cx, bodyY := imageSize/2, imageSize-bodyR-2
	headY := bodyY - bodyR - headR/2
	for y := 0; y < imageSize; y++ {
		for x := 0; x < imageSize; x++ {
			if inCircle(x, y, cx, bodyY, bodyR) || inCircle(x, y, cx, headY, headR) {
				img.SetNRGBA(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func inCircle(x, y, cx, cy, r int) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
