package pivot

import (
	"image"
)

// rgbToGrayscale converts the image into the row major luminance array expected by the face classifier.
func rgbToGrayscale(src *image.NRGBA) []uint8 {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, dx*dy)

	for y := 0; y < dy; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < dx; x++ {
			r, g, b := row[x*4], row[x*4+1], row[x*4+2]
			lum := float32(r)*0.299 + float32(g)*0.587 + float32(b)*0.114
			gray[y*dx+x] = uint8(lum + 0.5)
		}
	}
	return gray
}
