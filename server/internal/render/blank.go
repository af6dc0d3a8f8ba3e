package render

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const noDataText = "No launches match the current selection"

// blank writes a white placeholder image with title and a no-data notice.
func blank(w io.Writer, title string, o Options) error {
	if o.Format == SVG {
		_, err := fmt.Fprintf(w,
			`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
				`<rect width="100%%" height="100%%" fill="white"/>`+
				`<text x="50%%" y="24" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+
				`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="13" fill="#888">%s</text>`+
				`</svg>`,
			o.Width, o.Height, html.EscapeString(title), noDataText)
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	drawCentered(img, title, 24, color.Black)
	drawCentered(img, noDataText, o.Height/2, color.Gray{Y: 0x88})
	return png.Encode(w, img)
}

// drawCentered writes s horizontally centred at baseline y.
func drawCentered(img *image.RGBA, s string, y int, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(s).Ceil()
	x := (img.Bounds().Dx() - width) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}
