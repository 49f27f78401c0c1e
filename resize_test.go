package mattekit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestResizeNoOpReturnsSameBuffer(t *testing.T) {
	img := fill(8, 8, white)
	if out := Resize(img, 8, 8); out != img {
		t.Fatal("resize to current size must return the image unchanged")
	}
}

func TestResizeExactDimensions(t *testing.T) {
	img := fill(10, 6, RGB{R: 120, G: 40, B: 200})
	out := Resize(img, 7, 3)
	if out.Rect.Dx() != 7 || out.Rect.Dy() != 3 {
		t.Fatalf("dimensions = %dx%d, want 7x3", out.Rect.Dx(), out.Rect.Dy())
	}
	// Direct resample of a solid image stays that color, no letterboxing.
	if c, a := pixAt(out, 3, 1); a != 255 || c != (RGB{R: 120, G: 40, B: 200}) {
		t.Errorf("resampled center = %v alpha %d", c, a)
	}
}

func TestResizeFileIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.png")
	if err := SaveImage(fill(8, 8, RGB{R: 10, G: 200, B: 30}), path); err != nil {
		t.Fatal(err)
	}

	ow, oh, nw, nh, err := ResizeFile(path, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if ow != 8 || oh != 8 || nw != 4 || nh != 4 {
		t.Fatalf("first resize = %d,%d -> %d,%d, want 8,8 -> 4,4", ow, oh, nw, nh)
	}

	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	ow, oh, nw, nh, err = ResizeFile(path, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if ow != 4 || oh != 4 || nw != 4 || nh != 4 {
		t.Fatalf("second resize = %d,%d -> %d,%d, want no-op 4,4 -> 4,4", ow, oh, nw, nh)
	}

	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("no-op resize rewrote the file; repeated calls must not drift")
	}

	w, h, err := ImageDimensions(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 4 || h != 4 {
		t.Fatalf("persisted dimensions = %dx%d, want 4x4", w, h)
	}
}
