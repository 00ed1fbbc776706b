package imageproc

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocrop(t *testing.T) {
	t.Parallel()

	t.Run("removes uniform border", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 100, 100))
		white := color.RGBA{255, 255, 255, 255}
		red := color.RGBA{255, 0, 0, 255}
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				img.Set(x, y, white)
			}
		}
		for y := 30; y < 70; y++ {
			for x := 20; x < 60; x++ {
				img.Set(x, y, red)
			}
		}

		cropped := Autocrop(img)
		assert.Equal(t, 40, cropped.Bounds().Dx())
		assert.Equal(t, 40, cropped.Bounds().Dy())
	})

	t.Run("uniform image unchanged", func(t *testing.T) {
		img := imaging.New(50, 50, color.RGBA{10, 20, 30, 255})
		cropped := Autocrop(img)
		assert.Equal(t, img.Bounds(), cropped.Bounds())
	})

	t.Run("no border means no crop", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 10, 10))
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				img.Set(x, y, color.RGBA{uint8(x * 25), uint8(y * 25), 0, 255})
			}
		}
		cropped := Autocrop(img)
		assert.Equal(t, img.Bounds(), cropped.Bounds())
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "wide.jpg")

	src := image.NewRGBA(image.Rect(0, 0, 1000, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 1000; x++ {
			src.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 200, 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, src, nil))
	require.NoError(t, f.Close())

	require.NoError(t, Normalize(path, 250))

	out, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 250, out.Bounds().Dx())
	assert.Equal(t, 250, out.Bounds().Dy())
}

func TestNormalizeRejectsNonImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	assert.Error(t, Normalize(path, 250))
}
