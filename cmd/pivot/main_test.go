package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/pivot"
	"github.com/esimov/pivot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmd_ParseViewport(t *testing.T) {
	size, err := parseViewport("800x600")
	require.NoError(t, err)
	assert.Equal(t, pivot.Size{Width: 800, Height: 600}, size)

	size, err = parseViewport(" 1024X768 ")
	require.NoError(t, err)
	assert.Equal(t, pivot.Size{Width: 1024, Height: 768}, size)

	for _, s := range []string{"", "800", "800x", "x600", "0x600", "-1x10", "axb"} {
		_, err := parseViewport(s)
		assert.Error(t, err, "viewport %q", s)
	}
}

func TestCmd_Fit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 200, 100))))
	require.NoError(t, f.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"fit", path, "--viewport", "80x60"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "200x100 (png)")
	assert.Contains(t, out.String(), "40.0%") // contain and width
	assert.Contains(t, out.String(), "60.0%") // height
}

func TestCmd_Config(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config"})
	require.NoError(t, rootCmd.Execute())

	cfg, err := config.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestCmd_Render(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")

	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 200, 100))))
	require.NoError(t, f.Close())

	rootCmd.SetArgs([]string{"render", "-i", src, "-o", dst, "--viewport", "80x60", "--do", "zoom-in", "--do", "rotate:90"})
	require.NoError(t, rootCmd.Execute())

	out, err := os.Open(dst)
	require.NoError(t, err)
	defer out.Close()

	size, _, err := pivot.DecodeSize(out)
	require.NoError(t, err)
	assert.Equal(t, pivot.Size{Width: 80, Height: 60}, size)
}
