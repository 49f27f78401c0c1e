package mattekit

import (
	"fmt"
	"image"
	"log"
)

// AlphaMatteStats summarizes a uniform matte pass over one image.
type AlphaMatteStats struct {
	// Background is the corner-detected background color.
	Background RGB
	// TransparentPct, EdgePct and OpaquePct are the percentages of pixels
	// classified fully transparent, partially transparent and fully opaque.
	TransparentPct float64
	EdgePct        float64
	OpaquePct      float64
}

// MatteResult carries the output of an extraction strategy. Fields beyond
// Image are populated only where a strategy produces them.
type MatteResult struct {
	// Image holds the matted pixels. In-place strategies return the input
	// buffer; DifferenceMatte allocates a new one.
	Image *image.NRGBA
	// Background is the background color the strategy keyed on, when the
	// strategy detects one itself.
	Background RGB
	// Stats is set by UniformMatte.
	Stats *AlphaMatteStats
	// DiffStats is set by DifferenceMatte.
	DiffStats *DifferenceMatteStats
	// Pattern holds detected checkerboard colors. Nil means no pattern was
	// found, which is a normal outcome rather than a failure.
	Pattern *CheckerPattern
}

// AlphaExtractor is implemented by every transparency-extraction strategy.
// The caller selects a concrete strategy per asset type; there is no
// implicit fallback between strategies.
type AlphaExtractor interface {
	// Name identifies the strategy in reports.
	Name() string
	// Extract computes per-pixel alpha for img. In-place strategies mutate
	// img and return it inside the result; a returned error means the
	// buffer was left untouched.
	Extract(img *image.NRGBA) (*MatteResult, error)
}

// decontaminate inverts observed = w*foreground + (1-w)*background to
// recover the true foreground channel value of a background-mixed edge
// pixel. Callers guard w against the 0.01 noise floor.
func decontaminate(observed uint8, background uint8, w float64) uint8 {
	return clampU8((float64(observed) - (1-w)*float64(background)) / w)
}

// edgeNoiseFloor is the alpha weight below which division in the
// decontamination equation blows up; such pixels keep their observed color.
const edgeNoiseFloor = 0.01

// UniformMatte removes a uniform background with graduated edge alpha and
// color decontamination. The actual background color is always detected
// from the image corners; Reference is the color the generator was asked
// to render against and only triggers a warning when the detected
// background strays far from it.
type UniformMatte struct {
	Class       BackgroundClass
	Reference   RGB
	BGThreshold float64
	FGThreshold float64
}

// NewUniformMatte builds the strategy from an explicit configuration so
// extraction behavior is fully reproducible from inputs alone.
func NewUniformMatte(class BackgroundClass, cfg Config) *UniformMatte {
	return &UniformMatte{
		Class:       class,
		Reference:   cfg.Reference(class),
		BGThreshold: cfg.BGThreshold,
		FGThreshold: cfg.FGThreshold,
	}
}

func (m *UniformMatte) Name() string { return "uniform-" + m.Class.String() }

func (m *UniformMatte) Extract(img *image.NRGBA) (*MatteResult, error) {
	if m.FGThreshold <= m.BGThreshold {
		return nil, fmt.Errorf("uniform matte: fg threshold %g must exceed bg threshold %g", m.FGThreshold, m.BGThreshold)
	}

	bg := DetectBackground(img)
	if bg.Distance(m.Reference) >= m.FGThreshold {
		log.Printf("matte warning: detected background %s far from %s reference %s", bg, m.Class, m.Reference)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	span := m.FGThreshold - m.BGThreshold

	var transparent, edges, opaque int
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			dist := distanceRGB(r, g, b, bg)

			switch {
			case dist <= m.BGThreshold:
				img.Pix[i+3] = 0
				transparent++
			case dist >= m.FGThreshold:
				img.Pix[i+3] = 255
				opaque++
			default:
				t := (dist - m.BGThreshold) / span
				if t > edgeNoiseFloor {
					img.Pix[i] = decontaminate(r, bg.R, t)
					img.Pix[i+1] = decontaminate(g, bg.G, t)
					img.Pix[i+2] = decontaminate(b, bg.B, t)
				}
				img.Pix[i+3] = clampU8(t * 255)
				edges++
			}
		}
	}

	total := float64(w * h)
	return &MatteResult{
		Image:      img,
		Background: bg,
		Stats: &AlphaMatteStats{
			Background:     bg,
			TransparentPct: float64(transparent) / total * 100,
			EdgePct:        float64(edges) / total * 100,
			OpaquePct:      float64(opaque) / total * 100,
		},
	}, nil
}
