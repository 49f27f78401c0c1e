package mattekit

import "image"

var (
	dx4 = []int{-1, 0, 1, 0}
	dy4 = []int{0, -1, 0, 1}
	dx8 = []int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy8 = []int{-1, -1, -1, 0, 0, 1, 1, 1}
)

// FloodErode removes an imperfectly keyed background in three passes:
// a 4-connected flood fill from every border pixel, a global sweep at a
// tighter tolerance for background trapped inside concavities, and
// iterative erosion of near-background edge pixels adjacent to already
// transparent ones. The background color is detected from the corners.
type FloodErode struct {
	// Tolerance is the color distance to the detected background below
	// which a border-connected pixel is flooded away. The global sweep
	// uses 0.6 of it.
	Tolerance float64
	// ErosionPasses bounds the erosion rounds; rounds stop early at a
	// fixed point.
	ErosionPasses int
}

func NewFloodErode(cfg Config) *FloodErode {
	return &FloodErode{
		Tolerance:     cfg.ChromaTolerance,
		ErosionPasses: cfg.ErosionPasses,
	}
}

func (f *FloodErode) Name() string { return "flood-erode" }

func (f *FloodErode) Extract(img *image.NRGBA) (*MatteResult, error) {
	bg := DetectBackground(img)
	w, h := img.Rect.Dx(), img.Rect.Dy()

	f.floodFromBorders(img, bg, w, h)
	f.sweepTrapped(img, bg, w, h)
	if bg.G > bg.R && bg.G > bg.B {
		sweepGreenSpill(img, w, h)
	}
	f.erodeEdges(img, bg, w, h)

	return &MatteResult{Image: img, Background: bg}, nil
}

// floodFromBorders marks transparent every pixel reachable from the image
// border through 4-connected neighbors within Tolerance of the background.
// This removes connected background regardless of tolerance precision but
// cannot reach background trapped inside concavities.
func (f *FloodErode) floodFromBorders(img *image.NRGBA, bg RGB, w, h int) {
	visited := make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))

	seed := func(x, y int) {
		idx := y*w + x
		if visited[idx] {
			return
		}
		visited[idx] = true
		i := y*img.Stride + x*4
		if distanceRGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2], bg) < f.Tolerance {
			img.Pix[i+3] = 0
			queue = append(queue, idx)
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		cx, cy := cur%w, cur/w
		for k := 0; k < 4; k++ {
			nx, ny := cx+dx4[k], cy+dy4[k]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nIdx := ny*w + nx
			if visited[nIdx] {
				continue
			}
			visited[nIdx] = true
			i := ny*img.Stride + nx*4
			if distanceRGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2], bg) < f.Tolerance {
				img.Pix[i+3] = 0
				queue = append(queue, nIdx)
			}
		}
	}
}

// sweepTrapped clears isolated background pixels the flood could not reach,
// using a tighter tolerance so foreground near the background color stays.
func (f *FloodErode) sweepTrapped(img *image.NRGBA, bg RGB, w, h int) {
	tight := 0.6 * f.Tolerance
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			if img.Pix[i+3] == 0 {
				continue
			}
			if distanceRGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2], bg) <= tight {
				img.Pix[i+3] = 0
			}
		}
	}
}

// sweepGreenSpill removes shadowed or reflected green that fails the strict
// distance test: any pixel whose green channel dominates and exceeds 80.
// Only applied when the detected background itself is green-dominant.
func sweepGreenSpill(img *image.NRGBA, w, h int) {
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			if img.Pix[i+3] == 0 {
				continue
			}
			r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			if g >= r && g >= b && g > 80 {
				img.Pix[i+3] = 0
			}
		}
	}
}

// erodeEdges converges fringe pixels toward full transparency: each round
// clears every remaining pixel within Tolerance of the background that has
// a transparent 8-neighbor at the start of the round. Classifying against
// the round-start state keeps the result independent of scan order.
func (f *FloodErode) erodeEdges(img *image.NRGBA, bg RGB, w, h int) {
	candidates := make([]int, 0, 256)
	for pass := 0; pass < f.ErosionPasses; pass++ {
		candidates = candidates[:0]
		for y := 0; y < h; y++ {
			row := y * img.Stride
			for x := 0; x < w; x++ {
				i := row + x*4
				if img.Pix[i+3] == 0 {
					continue
				}
				if distanceRGB(img.Pix[i], img.Pix[i+1], img.Pix[i+2], bg) > f.Tolerance {
					continue
				}
				for k := 0; k < 8; k++ {
					nx, ny := x+dx8[k], y+dy8[k]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if img.Pix[ny*img.Stride+nx*4+3] == 0 {
						candidates = append(candidates, i)
						break
					}
				}
			}
		}
		if len(candidates) == 0 {
			break
		}
		for _, i := range candidates {
			img.Pix[i+3] = 0
		}
	}
}
