package mattekit

import (
	"image"

	"github.com/disintegration/imaging"
)

// Resize returns img resampled to exactly targetW x targetH using a Lanczos
// kernel. No cropping and no aspect-ratio preservation takes place; callers
// are responsible for requesting the correct aspect ratio upstream. If the
// image is already at the target size it is returned unchanged.
func Resize(img *image.NRGBA, targetW, targetH int) *image.NRGBA {
	if img.Rect.Dx() == targetW && img.Rect.Dy() == targetH {
		return img
	}
	return imaging.Resize(img, targetW, targetH, imaging.Lanczos)
}

// ResizeFile resizes the image stored at path to exact dimensions and
// persists the result back to the same location as PNG. It returns the
// original and new dimensions; equal pairs signal a no-op so callers can
// skip logging a resize.
func ResizeFile(path string, targetW, targetH int) (origW, origH, newW, newH int, err error) {
	img, err := LoadImage(path)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	origW, origH = img.Rect.Dx(), img.Rect.Dy()
	if origW == targetW && origH == targetH {
		return origW, origH, origW, origH, nil
	}
	resized := Resize(img, targetW, targetH)
	if err := SaveImage(resized, path); err != nil {
		return 0, 0, 0, 0, err
	}
	return origW, origH, targetW, targetH, nil
}
