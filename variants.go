package mattekit

import "image"

// AssetVariant is a named derived image with its output buffer, final
// dimensions and an alpha-presence flag computed from the actual pixels.
type AssetVariant struct {
	Name     string
	Image    *image.NRGBA
	Width    int
	Height   int
	HasAlpha bool
}

// Duplicate returns a byte-identical copy of src, used when a color variant
// is just a re-export of the canonical extracted asset.
func Duplicate(src *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// Monochrome returns a flat-color copy of src: every pixel with alpha above
// zero gets its RGB replaced by target while the alpha channel is preserved
// exactly. Fully transparent pixels keep their original RGB, which is
// cosmetically irrelevant once alpha is zero.
func Monochrome(src *image.NRGBA, target RGB) *image.NRGBA {
	out := Duplicate(src)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	for y := 0; y < h; y++ {
		row := y * out.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			if out.Pix[i+3] == 0 {
				continue
			}
			out.Pix[i] = target.R
			out.Pix[i+1] = target.G
			out.Pix[i+2] = target.B
		}
	}
	return out
}

// logoVariantSpecs is the fixed presentation set derived from one canonical
// extracted logo. A nil mono color means a plain duplicate.
var logoVariantSpecs = []struct {
	name string
	mono *RGB
}{
	{"logo_dark_color", nil},
	{"logo_dark_black", &RGB{R: 0, G: 0, B: 0}},
	{"logo_light_color", nil},
	{"logo_light_white", &RGB{R: 255, G: 255, B: 255}},
}

// LogoVariants derives the fixed named variant set from a single canonical
// extracted logo: the color original re-exported for dark and light themes
// plus black-on-dark and white-on-light monochrome derivatives.
func LogoVariants(src *image.NRGBA) []AssetVariant {
	out := make([]AssetVariant, 0, len(logoVariantSpecs))
	for _, spec := range logoVariantSpecs {
		var img *image.NRGBA
		if spec.mono != nil {
			img = Monochrome(src, *spec.mono)
		} else {
			img = Duplicate(src)
		}
		out = append(out, AssetVariant{
			Name:     spec.name,
			Image:    img,
			Width:    img.Rect.Dx(),
			Height:   img.Rect.Dy(),
			HasAlpha: HasAlpha(img),
		})
	}
	return out
}
