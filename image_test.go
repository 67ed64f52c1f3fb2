package pivot

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "Gray",
			img:  image.NewGray(rect),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := imgToNRGBA(tc.img)
			r := tc.img.Bounds()
			require.Equal(t, image.Rect(0, 0, r.Dx(), r.Dy()), dst.Bounds())

			for y := r.Min.Y; y < r.Max.Y; y++ {
				got := dst.Pix[(y-r.Min.Y)*dst.Stride : (y-r.Min.Y)*dst.Stride+r.Dx()*4]
				want := readRow(tc.img, y)
				if !compareBytes(got, want, 1) {
					t.Errorf("horizontal line (y=%d): got %v want %v", y, got, want)
				}
			}
		})
	}

	// Images already in the expected layout are not copied.
	nrgba := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, nrgba, imgToNRGBA(nrgba))
}

func TestImage_EncodeDecode(t *testing.T) {
	src := makeNRGBAImage(image.Rect(0, 0, 16, 8), palette.Plan9)
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0xff
	}

	for _, ext := range []string{".jpg", ".png", ".bmp", ".tiff", ".webp"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encodeAs(&buf, src, ext))

			size, _, err := DecodeSize(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, Size{Width: 16, Height: 8}, size)

			img, err := decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 16, img.Bounds().Dx())
			assert.Equal(t, 8, img.Bounds().Dy())
		})
	}
}

func TestImage_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := encodeAs(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1)), ".gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.True(t, isValidExtension(".JPG"))
	assert.False(t, isValidExtension(".gif"))

	_, err = decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestImage_EncodeByFileExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, encodeImg(f, image.NewGray(image.Rect(0, 0, 3, 2))))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = png.DecodeConfig(f)
	assert.NoError(t, err, "the image should be encoded as png")
}

func TestImage_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 7, 5))))
	require.NoError(t, f.Close())

	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 7, Height: 5}, sizeOf(img))

	text := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("plain text file"), 0644))
	_, err = Open(text)
	assert.Error(t, err)
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func fillDrawImage(img draw.Image, colors []color.Color) {
	colorsNRGBA := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = uint8(i % 256)
		colorsNRGBA[i] = nrgba
	}
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colorsNRGBA[i%len(colorsNRGBA)])
			i++
		}
	}
}

func readRow(img image.Image, y int) []uint8 {
	row := make([]byte, img.Bounds().Dx()*4)
	i := 0
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
		i += 4
	}
	return row
}

func compareBytes(a, b []uint8, delta int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if absint(int(a[i])-int(b[i])) > delta {
			return false
		}
	}
	return true
}

func absint(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
