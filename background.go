package mattekit

import "image"

// colorTally counts color occurrences while preserving first-encounter
// order, so plurality ties resolve deterministically.
type colorTally struct {
	counts map[RGB]int
	order  []RGB
	total  int
}

func newColorTally() *colorTally {
	return &colorTally{counts: make(map[RGB]int)}
}

func (t *colorTally) add(c RGB) {
	if _, seen := t.counts[c]; !seen {
		t.order = append(t.order, c)
	}
	t.counts[c]++
	t.total++
}

// top returns the n most frequent colors, ties broken by encounter order.
func (t *colorTally) top(n int) []RGB {
	picked := make(map[RGB]bool, n)
	out := make([]RGB, 0, n)
	for len(out) < n {
		best := RGB{}
		bestCount := 0
		found := false
		for _, c := range t.order {
			if picked[c] {
				continue
			}
			if t.counts[c] > bestCount {
				best = c
				bestCount = t.counts[c]
				found = true
			}
		}
		if !found {
			break
		}
		picked[best] = true
		out = append(out, best)
	}
	return out
}

func pixelRGB(img *image.NRGBA, x, y int) RGB {
	i := y*img.Stride + x*4
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// DetectBackground samples the four corner pixels and returns the most
// frequent color among them. Corners are assumed to lie outside the
// foreground subject.
func DetectBackground(img *image.NRGBA) RGB {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	tally := newColorTally()
	tally.add(pixelRGB(img, 0, 0))
	tally.add(pixelRGB(img, w-1, 0))
	tally.add(pixelRGB(img, 0, h-1))
	tally.add(pixelRGB(img, w-1, h-1))
	return tally.top(1)[0]
}

// cornerBlockSize and cornerBlockInset define the wider sampling windows
// used by checkerboard detection.
const (
	cornerBlockSize  = 64
	cornerBlockInset = 5
)

// tallyCornerBlocks samples a block at each of the four corners, inset by
// a small margin, and tallies color frequency across all four. Blocks are
// clipped to the image for small inputs.
func tallyCornerBlocks(img *image.NRGBA) *colorTally {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	size, inset := cornerBlockSize, cornerBlockInset
	if inset >= w/2 || inset >= h/2 {
		inset = 0
	}

	tally := newColorTally()
	origins := [4][2]int{
		{inset, inset},
		{w - inset - size, inset},
		{inset, h - inset - size},
		{w - inset - size, h - inset - size},
	}
	for _, o := range origins {
		x0 := max(0, o[0])
		y0 := max(0, o[1])
		x1 := min(w, o[0]+size)
		y1 := min(h, o[1]+size)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				tally.add(pixelRGB(img, x, y))
			}
		}
	}
	return tally
}
