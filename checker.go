package mattekit

import "image"

// CheckerPattern holds the two tile colors of a detected artificial
// transparency checkerboard.
type CheckerPattern struct {
	A, B RGB
}

// Checkerboard acceptance rule: each of the two most common corner-block
// colors must cover at least 25% of sampled pixels, and together at least
// 80%, before the pattern hypothesis is accepted.
const (
	checkerMinEachCoverage = 0.25
	checkerMinPairCoverage = 0.80
)

// CheckerboardDetect detects the two-color tiled pattern some generators
// render in place of true alpha output and converts it back to real
// transparency. Finding no pattern is a normal outcome, reported through a
// nil Pattern in the result.
type CheckerboardDetect struct {
	// Tolerance is the color distance to either tile color within which a
	// pixel is made transparent once the pattern is accepted.
	Tolerance float64
}

func NewCheckerboardDetect(cfg Config) *CheckerboardDetect {
	return &CheckerboardDetect{Tolerance: cfg.ChromaTolerance}
}

func (c *CheckerboardDetect) Name() string { return "checkerboard" }

func (c *CheckerboardDetect) Extract(img *image.NRGBA) (*MatteResult, error) {
	pattern, ok := c.detect(img)
	if !ok {
		return &MatteResult{Image: img}, nil
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			if distanceRGB(r, g, b, pattern.A) <= c.Tolerance ||
				distanceRGB(r, g, b, pattern.B) <= c.Tolerance {
				img.Pix[i+3] = 0
			}
		}
	}
	return &MatteResult{Image: img, Pattern: &pattern}, nil
}

// detect samples the corner blocks and tests the dual-color coverage rule.
// A uniform background never passes: its dominant color alone may cover
// everything, but the runner-up cannot reach 25%.
func (c *CheckerboardDetect) detect(img *image.NRGBA) (CheckerPattern, bool) {
	tally := tallyCornerBlocks(img)
	top := tally.top(2)
	if len(top) < 2 || tally.total == 0 {
		return CheckerPattern{}, false
	}

	total := float64(tally.total)
	covA := float64(tally.counts[top[0]]) / total
	covB := float64(tally.counts[top[1]]) / total
	if covA < checkerMinEachCoverage || covB < checkerMinEachCoverage {
		return CheckerPattern{}, false
	}
	if covA+covB < checkerMinPairCoverage {
		return CheckerPattern{}, false
	}
	return CheckerPattern{A: top[0], B: top[1]}, true
}
