package mattekit

import (
	"log"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/mattekit/palette"
)

// QuantizeStats reports the outcome of the lossy palette-reduction pass.
// When Applied is false the returned bytes are the unchanged original.
type QuantizeStats struct {
	Applied bool
	// Colors is the palette size used for the reduced image.
	Colors int
	// Quality is the implied output quality in [0,100], derived from the
	// mean Lab error the reduction introduced.
	Quality        int
	OriginalBytes  int
	QuantizedBytes int
}

// labErrorBudget maps quality 0 to this RMS Lab distance; smaller
// reduction error implies proportionally higher quality.
const labErrorBudget = 0.25

// Quantize reduces the color count of PNG-encodable image bytes within the
// configured quality floor and ceiling. It is purely an output-size
// optimization: on any internal failure, or when the reduction would fall
// below the quality floor or not shrink the output, the original bytes are
// returned unchanged with zero-reduction stats. This path is never fatal.
func Quantize(data []byte, cfg Config) ([]byte, QuantizeStats) {
	return QuantizeWith(data, cfg.QualityMin, cfg.QualityMax, palette.MethodDominant)
}

// QuantizeWith is Quantize with an explicit palette extraction method.
func QuantizeWith(data []byte, qualityMin, qualityMax int, method palette.Method) ([]byte, QuantizeStats) {
	unchanged := QuantizeStats{
		OriginalBytes:  len(data),
		QuantizedBytes: len(data),
	}

	img, err := Decode(data)
	if err != nil {
		log.Println("quantize warning: undecodable input, keeping original:", err)
		return data, unchanged
	}

	colors := max(8, min(256, qualityMax*256/100))
	pal := palette.Extract(img, colors, method)
	if len(pal) == 0 {
		log.Println("quantize warning: empty palette, keeping original")
		return data, unchanged
	}
	palette.SortByBrightness(pal)

	palLab := make([][3]float64, len(pal))
	for i, c := range pal {
		l, a, b := c.Lab()
		palLab[i] = [3]float64{l, a, b}
	}

	out := Duplicate(img)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	nearest := make(map[RGB]int)
	var errSum float64
	var opaqueCount int
	for y := 0; y < h; y++ {
		row := y * out.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			if out.Pix[i+3] == 0 {
				continue
			}
			key := RGB{R: out.Pix[i], G: out.Pix[i+1], B: out.Pix[i+2]}
			pl, pa, pb := colorful.Color{
				R: float64(key.R) / 255,
				G: float64(key.G) / 255,
				B: float64(key.B) / 255,
			}.Lab()
			idx, seen := nearest[key]
			if !seen {
				bestD := 0.0
				for j, lab := range palLab {
					d0 := pl - lab[0]
					d1 := pa - lab[1]
					d2 := pb - lab[2]
					d := d0*d0 + d1*d1 + d2*d2
					if j == 0 || d < bestD {
						bestD = d
						idx = j
					}
				}
				nearest[key] = idx
			}
			r8, g8, b8 := pal[idx].RGB255()
			out.Pix[i] = r8
			out.Pix[i+1] = g8
			out.Pix[i+2] = b8

			d0 := pl - palLab[idx][0]
			d1 := pa - palLab[idx][1]
			d2 := pb - palLab[idx][2]
			errSum += d0*d0 + d1*d1 + d2*d2
			opaqueCount++
		}
	}

	quality := 100
	if opaqueCount > 0 {
		rmsErr := math.Sqrt(errSum / float64(opaqueCount))
		quality = int(100 * (1 - min(1, rmsErr/labErrorBudget)))
	}
	if quality < qualityMin {
		log.Printf("quantize warning: implied quality %d below floor %d, keeping original", quality, qualityMin)
		return data, unchanged
	}

	encoded, err := EncodePNG(out)
	if err != nil {
		log.Println("quantize warning: re-encode failed, keeping original:", err)
		return data, unchanged
	}
	if len(encoded) >= len(data) {
		return data, unchanged
	}

	return encoded, QuantizeStats{
		Applied:        true,
		Colors:         len(pal),
		Quality:        quality,
		OriginalBytes:  len(data),
		QuantizedBytes: len(encoded),
	}
}
