package palette

import (
	"image"
	"image/color"
	"testing"
)

func twoToneImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := color.NRGBA{R: 200, G: 40, B: 40, A: 255}
			if x >= 16 {
				c = color.NRGBA{R: 40, G: 40, B: 200, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestExtractDominant(t *testing.T) {
	pal := ExtractDominant(twoToneImage(), 2)
	if len(pal) == 0 || len(pal) > 2 {
		t.Fatalf("palette size = %d, want 1-2", len(pal))
	}
}

func TestExtractKMeansFallback(t *testing.T) {
	// A fully transparent image yields no kmeans observations; Extract must
	// still return a palette through the dominant-color fallback.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	pal := Extract(img, 2, MethodKMeans)
	if len(pal) == 0 {
		t.Fatal("expected non-empty palette from fallback")
	}
}

func TestExtractZeroColors(t *testing.T) {
	if pal := Extract(twoToneImage(), 0, MethodDominant); pal != nil {
		t.Fatalf("palette = %v, want nil for k=0", pal)
	}
}

func TestSortByBrightness(t *testing.T) {
	pal := ExtractDominant(twoToneImage(), 2)
	SortByBrightness(pal)
	for i := 1; i < len(pal); i++ {
		ri, gi, bi := pal[i-1].LinearRgb()
		rj, gj, bj := pal[i].LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi > yj {
			t.Fatalf("palette not ordered dark to bright at %d", i)
		}
	}
}
