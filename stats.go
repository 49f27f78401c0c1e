package mattekit

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// AlphaSummary describes the alpha distribution of a processed image, for
// diagnostic reporting alongside the per-strategy matte statistics.
type AlphaSummary struct {
	// Mean and StdDev are computed over all alpha values scaled to [0,1].
	Mean   float64
	StdDev float64
	// Transparent, Edge and Opaque count pixels with alpha 0, in (0,255)
	// and exactly 255.
	Transparent int
	Edge        int
	Opaque      int
	Total       int
}

// SummarizeAlpha scans the buffer and summarizes its alpha channel.
func SummarizeAlpha(img *image.NRGBA) AlphaSummary {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	values := make([]float64, 0, w*h)
	s := AlphaSummary{Total: w * h}
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			a := img.Pix[row+x*4+3]
			values = append(values, float64(a)/255)
			switch a {
			case 0:
				s.Transparent++
			case 255:
				s.Opaque++
			default:
				s.Edge++
			}
		}
	}
	if len(values) > 0 {
		m, sd := stat.MeanStdDev(values, nil)
		s.Mean = m
		if s.Total > 1 {
			s.StdDev = sd
		}
	}
	return s
}
