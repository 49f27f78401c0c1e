package mattekit

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"

	"github.com/disintegration/imaging"
)

// RGB is an 8-bit color triple used for background and foreground
// reference comparisons.
type RGB struct {
	R, G, B uint8
}

// Distance returns the Euclidean distance between two colors in RGB space.
func (c RGB) Distance(o RGB) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// distanceRGB avoids building an RGB value in the hot pixel loops.
func distanceRGB(r, g, b uint8, ref RGB) float64 {
	dr := float64(r) - float64(ref.R)
	dg := float64(g) - float64(ref.G)
	db := float64(b) - float64(ref.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func clampU8(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}

// Decode interprets raw bytes as a raster image and converts the result to
// an NRGBA buffer with origin-anchored bounds. PNG, JPEG and GIF inputs are
// accepted.
func Decode(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return imaging.Clone(img), nil
}

// EncodePNG serializes an image as alpha-preserving PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadImage reads and decodes the image at path.
func LoadImage(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// SaveImage writes an image to path as PNG.
func SaveImage(img image.Image, path string) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ImageDimensions returns the pixel width and height of the image at path.
func ImageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: decode image: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// HasAlpha reports whether any pixel in the buffer carries an alpha value
// below 255. It scans the actual pixel data, never an assumption from the
// image's generation path.
func HasAlpha(img *image.NRGBA) bool {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			if img.Pix[row+x*4+3] != 255 {
				return true
			}
		}
	}
	return false
}
