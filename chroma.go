package mattekit

import (
	"fmt"
	"image"
)

// KeyColor selects the saturated key color a chroma-keyed render was
// generated against.
type KeyColor int

const (
	KeyGreen KeyColor = iota
	KeyWhite
)

func (k KeyColor) String() string {
	switch k {
	case KeyWhite:
		return "white"
	default:
		return "green"
	}
}

// ChromaKey removes a pure, saturated key color with a hard threshold:
// matching pixels become fully transparent, everything else is untouched.
// No graduated edge and no decontamination; the generator is instructed to
// render hard edges against the key, so soft matting is unnecessary.
type ChromaKey struct {
	Key KeyColor
}

func (k *ChromaKey) Name() string { return "chroma-" + k.Key.String() }

func (k *ChromaKey) Extract(img *image.NRGBA) (*MatteResult, error) {
	if k.Key != KeyGreen && k.Key != KeyWhite {
		return nil, fmt.Errorf("chroma key: unknown key color %d", k.Key)
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]

			var isKey bool
			if k.Key == KeyGreen {
				isKey = int(g) > int(r)+30 && int(g) > int(b)+30 && g > 100
			} else {
				isKey = r > 240 && g > 240 && b > 240
			}
			if isKey {
				img.Pix[i+3] = 0
			}
		}
	}
	return &MatteResult{Image: img}, nil
}
