package pivot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Render(t *testing.T) {
	src := solidImage(200, 100, red)

	p := &Processor{Viewport: Size{Width: 80, Height: 60}, Background: black}
	dst, inst, err := p.Render(src)
	require.NoError(t, err)
	assert.Equal(t, 0.4, inst.Scale)
	assert.True(t, inst.Fitted)
	assertColor(t, black, dst.NRGBAAt(40, 5))

	p.Fit = FitHeight
	dst, inst, err = p.Render(src)
	require.NoError(t, err)
	assert.Equal(t, 0.6, inst.Scale)
	assertColor(t, red, dst.NRGBAAt(40, 5))

	p.Actions = []Action{{Kind: ActSetScale, X: 10}, {Kind: ActResize, X: 20, Y: 10}}
	dst, inst, err = p.Render(src)
	require.NoError(t, err)
	assert.Equal(t, ScaleMax, inst.Scale)
	assert.Equal(t, image.Rect(0, 0, 20, 10), dst.Bounds())
}

func TestProcessor_DefaultViewport(t *testing.T) {
	p := &Processor{}
	dst, inst, err := p.Render(solidImage(30, 20, red))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), dst.Bounds())
	assert.Equal(t, 1.0, inst.Scale)

	p.Viewport = Size{Width: -1, Height: 10}
	_, _, err = p.Render(solidImage(30, 20, red))
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

func TestProcessor_Process(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, solidImage(200, 100, red)))

	p := &Processor{
		Viewport:   Size{Width: 80, Height: 60},
		Actions:    []Action{{Kind: ActSetRotation, X: 90}},
		Background: color.White,
	}
	var out bytes.Buffer
	require.NoError(t, p.Process(&in, &out))

	img, format, err := image.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 80, 60), img.Bounds())

	err = p.Process(bytes.NewReader([]byte("garbage")), &out)
	assert.Error(t, err)
}

func TestProcessor_ExecuteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 200, 100)

	p := &Processor{Viewport: Size{Width: 80, Height: 60}}
	op := &Ops{Src: src, Dst: filepath.Join(dir, "dst.bmp"), PipeName: "-"}
	require.NoError(t, p.Execute(op))

	f, err := os.Open(op.Dst)
	require.NoError(t, err)
	defer f.Close()

	size, format, err := DecodeSize(f)
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
	assert.Equal(t, Size{Width: 80, Height: 60}, size)

	op.Dst = filepath.Join(dir, "dst.gif")
	assert.ErrorIs(t, p.Execute(op), ErrUnsupportedFormat)
}

func TestProcessor_ExecuteDir(t *testing.T) {
	srcDir := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "nested"), 0755))
	writePNG(t, filepath.Join(srcDir, "a.png"), 40, 20)
	writePNG(t, filepath.Join(srcDir, "nested", "b.png"), 20, 40)
	writePNG(t, filepath.Join(srcDir, "nested", "a.png"), 30, 30)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("skip"), 0644))

	dstDir := filepath.Join(t.TempDir(), "dst")
	p := &Processor{Viewport: Size{Width: 16, Height: 16}}
	require.NoError(t, p.Execute(&Ops{Src: srcDir, Dst: dstDir, PipeName: "-", Workers: 2}))

	var names []string
	err := filepath.WalkDir(dstDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dstDir, path)
		names = append(names, filepath.ToSlash(rel))
		return err
	})
	require.NoError(t, err)
	// Same named images from different directories do not overwrite each other.
	assert.ElementsMatch(t, []string{"a.png", "nested/a.png", "nested/b.png"}, names)
}

func TestProcessor_ExecuteDirInvalidDestination(t *testing.T) {
	srcDir := t.TempDir()
	writePNG(t, filepath.Join(srcDir, "a.png"), 40, 20)

	p := &Processor{Viewport: Size{Width: 16, Height: 16}}
	for _, dst := range []string{"-", "", filepath.Join(t.TempDir(), "out.png")} {
		err := p.Execute(&Ops{Src: srcDir, Dst: dst, PipeName: "-"})
		assert.ErrorIs(t, err, ErrInvalidDestination, dst)
	}
	_, err := os.Stat("-")
	assert.True(t, os.IsNotExist(err))
}

func TestExec_OutputName(t *testing.T) {
	assert.Equal(t, "/tmp/a.jpg", outputName("/tmp/a.jpg"))
	assert.Equal(t, filepath.Join("dir", "anim.png"), outputName(filepath.Join("dir", "anim.gif")))
}

func TestExec_DestPath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "src")
	dest := t.TempDir()

	dst, err := destPath(root, dest, filepath.Join(root, "x", "y", "img.gif"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "x", "y", "img.png"), dst)
	assert.DirExists(t, filepath.Join(dest, "x", "y"))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solidImage(w, h, red)))
	require.NoError(t, f.Close())
}
