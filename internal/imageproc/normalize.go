// Package imageproc normalizes staged avatar images.
package imageproc

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Per-channel tolerance for border detection, on the 16-bit scale
// returned by color.Color.RGBA. Roughly 2% per channel.
const cropTolerance = 1311

// Normalize rewrites the image at path in place: uniform borders are
// cropped away, then the result is cover-resized to a size×size square,
// centered on both axes with overflow cropped.
func Normalize(path string, size int) error {
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}

	img = Autocrop(img)
	img = imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	return imaging.Save(img, path)
}

// Autocrop removes border regions whose color matches the top-left
// pixel within tolerance. An image that is uniform all over is returned
// unchanged.
func Autocrop(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Empty() {
		return img
	}

	bg := img.At(bounds.Min.X, bounds.Min.Y)

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !matches(bg, img.At(x, y)) {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		// Uniform image, nothing to crop against.
		return img
	}

	content := image.Rect(minX, minY, maxX+1, maxY+1)
	if content == bounds {
		return img
	}
	return imaging.Crop(img, content)
}

func matches(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return within(ar, br) && within(ag, bg) && within(ab, bb) && within(aa, ba)
}

func within(a, b uint32) bool {
	if a > b {
		return a-b <= cropTolerance
	}
	return b-a <= cropTolerance
}
