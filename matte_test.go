package mattekit

import (
	"image"
	"testing"
)

// fill builds a w x h NRGBA image with every pixel set to c at full alpha.
func fill(w, h int, c RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 255
		}
	}
	return img
}

func setPix(img *image.NRGBA, x, y int, c RGB, a uint8) {
	i := y*img.Stride + x*4
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = a
}

func pixAt(img *image.NRGBA, x, y int) (RGB, uint8) {
	i := y*img.Stride + x*4
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}, img.Pix[i+3]
}

var (
	white = RGB{R: 255, G: 255, B: 255}
	black = RGB{R: 0, G: 0, B: 0}
)

func TestUniformMatteEndToEnd(t *testing.T) {
	// 4x4 white image with a 2x2 near-black center block.
	img := fill(4, 4, white)
	center := RGB{R: 10, G: 10, B: 10}
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		setPix(img, p[0], p[1], center, 255)
	}

	m := NewUniformMatte(BackgroundLight, DefaultConfig())
	res, err := m.Extract(img)
	if err != nil {
		t.Fatal(err)
	}

	if res.Background != white {
		t.Errorf("detected background = %v, want %v", res.Background, white)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c, a := pixAt(img, x, y)
			inCenter := x >= 1 && x <= 2 && y >= 1 && y <= 2
			if inCenter {
				if a != 255 {
					t.Errorf("center (%d,%d) alpha = %d, want 255", x, y, a)
				}
				if c != center {
					t.Errorf("center (%d,%d) color = %v, want %v (opaque pixels keep their color)", x, y, c, center)
				}
			} else if a != 0 {
				t.Errorf("border (%d,%d) alpha = %d, want 0", x, y, a)
			}
		}
	}

	s := res.Stats
	if s.TransparentPct != 75 || s.OpaquePct != 25 || s.EdgePct != 0 {
		t.Errorf("stats = %.1f/%.1f/%.1f, want 75/0/25", s.TransparentPct, s.EdgePct, s.OpaquePct)
	}
}

func TestUniformMatteEdgeGradation(t *testing.T) {
	img := fill(5, 5, white)
	setPix(img, 1, 1, RGB{R: 230, G: 230, B: 230}, 255) // distance 43.3
	setPix(img, 3, 3, RGB{R: 215, G: 215, B: 215}, 255) // distance 69.3

	m := NewUniformMatte(BackgroundLight, DefaultConfig())
	if _, err := m.Extract(img); err != nil {
		t.Fatal(err)
	}

	_, aNear := pixAt(img, 1, 1)
	_, aFar := pixAt(img, 3, 3)
	if aNear != 111 {
		t.Errorf("alpha at distance 43.3 = %d, want 111", aNear)
	}
	if aFar != 213 {
		t.Errorf("alpha at distance 69.3 = %d, want 213", aFar)
	}
	if aNear >= aFar {
		t.Errorf("alpha must grow with distance: %d >= %d", aNear, aFar)
	}

	// Decontamination pulls the edge color toward the true foreground,
	// away from the white background contamination.
	c, _ := pixAt(img, 1, 1)
	if c.R >= 230 {
		t.Errorf("edge color not decontaminated: R = %d, want < 230", c.R)
	}
}

func TestUniformMatteThresholdOrder(t *testing.T) {
	img := fill(2, 2, white)
	m := &UniformMatte{BGThreshold: 80, FGThreshold: 15}
	if _, err := m.Extract(img); err == nil {
		t.Fatal("expected error for inverted thresholds")
	}
}

func TestDecontaminateRecoversBlend(t *testing.T) {
	// observed = w*fg + (1-w)*bg, so inverting must return fg.
	bg := RGB{R: 200, G: 100, B: 50}
	fg := RGB{R: 20, G: 220, B: 120}
	w := 0.4
	for ch, pair := range [][2]uint8{{bg.R, fg.R}, {bg.G, fg.G}, {bg.B, fg.B}} {
		observed := clampU8(w*float64(pair[1]) + (1-w)*float64(pair[0]))
		got := decontaminate(observed, pair[0], w)
		diff := int(got) - int(pair[1])
		if diff < -2 || diff > 2 {
			t.Errorf("channel %d: decontaminate(%d) = %d, want ~%d", ch, observed, got, pair[1])
		}
	}
}
