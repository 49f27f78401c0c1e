package mattekit

import (
	"errors"
	"image"
	"math"
)

// ErrDimensionMismatch reports that the two renders fed to DifferenceMatte
// differ in size. The operation aborts with no partial output.
var ErrDimensionMismatch = errors.New("mattekit: input images differ in size")

// DifferenceMatteStats summarizes a two-pass difference matte.
type DifferenceMatteStats struct {
	TransparentPct     float64
	SemiTransparentPct float64
	OpaquePct          float64
}

// whiteBlackDist is the RGB distance between pure white and pure black,
// the maximum a background-only pixel can move between the two composites.
var whiteBlackDist = math.Sqrt(3 * 255 * 255)

// ExtractDifference computes exact alpha and foreground color from two
// renders of the identical foreground composited over pure white and pure
// black. Per pixel, alpha = 1 - dist(white,black)/dist(pure white,
// pure black); the foreground color is recovered by un-premultiplying the
// black-background sample, which is exact because compositing over black
// leaves no background term to subtract. A new output image is produced;
// neither input is mutated.
func ExtractDifference(whiteBG, blackBG *image.NRGBA) (*image.NRGBA, *DifferenceMatteStats, error) {
	w, h := whiteBG.Rect.Dx(), whiteBG.Rect.Dy()
	if w != blackBG.Rect.Dx() || h != blackBG.Rect.Dy() {
		return nil, nil, ErrDimensionMismatch
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	var transparent, semi, opaque int
	for y := 0; y < h; y++ {
		wRow := y * whiteBG.Stride
		bRow := y * blackBG.Stride
		oRow := y * out.Stride
		for x := 0; x < w; x++ {
			wi := wRow + x*4
			bi := bRow + x*4
			oi := oRow + x*4

			dr := float64(whiteBG.Pix[wi]) - float64(blackBG.Pix[bi])
			dg := float64(whiteBG.Pix[wi+1]) - float64(blackBG.Pix[bi+1])
			db := float64(whiteBG.Pix[wi+2]) - float64(blackBG.Pix[bi+2])
			pixelDist := math.Sqrt(dr*dr + dg*dg + db*db)

			alpha := max(0, min(1, 1-pixelDist/whiteBlackDist))
			if alpha > edgeNoiseFloor {
				// Observed black-composite color equals alpha*foreground.
				out.Pix[oi] = clampU8(float64(blackBG.Pix[bi]) / alpha)
				out.Pix[oi+1] = clampU8(float64(blackBG.Pix[bi+1]) / alpha)
				out.Pix[oi+2] = clampU8(float64(blackBG.Pix[bi+2]) / alpha)
			}
			a := clampU8(alpha * 255)
			out.Pix[oi+3] = a

			switch a {
			case 0:
				transparent++
			case 255:
				opaque++
			default:
				semi++
			}
		}
	}

	total := float64(w * h)
	return out, &DifferenceMatteStats{
		TransparentPct:     float64(transparent) / total * 100,
		SemiTransparentPct: float64(semi) / total * 100,
		OpaquePct:          float64(opaque) / total * 100,
	}, nil
}

// DifferenceMatte adapts the two-pass technique to the AlphaExtractor
// interface: the black-background render is fixed at construction and
// Extract receives the white-background render.
type DifferenceMatte struct {
	Black *image.NRGBA
}

func (m *DifferenceMatte) Name() string { return "difference" }

func (m *DifferenceMatte) Extract(whiteBG *image.NRGBA) (*MatteResult, error) {
	out, stats, err := ExtractDifference(whiteBG, m.Black)
	if err != nil {
		return nil, err
	}
	return &MatteResult{Image: out, DiffStats: stats}, nil
}
