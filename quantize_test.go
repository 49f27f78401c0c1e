package mattekit

import (
	"bytes"
	"testing"

	"github.com/setanarut/mattekit/palette"
)

func TestQuantizeUndecodableInputFallsBack(t *testing.T) {
	junk := []byte("not an image at all")
	out, stats := Quantize(junk, DefaultConfig())
	if !bytes.Equal(out, junk) {
		t.Fatal("fallback must return the original bytes unchanged")
	}
	if stats.Applied {
		t.Error("Applied = true on fallback")
	}
	if stats.OriginalBytes != len(junk) || stats.QuantizedBytes != len(junk) {
		t.Errorf("fallback stats = %+v, want zero reduction", stats)
	}
}

func TestQuantizeNeverGrowsOutput(t *testing.T) {
	// Noisy gradient so quantization has something to reduce.
	img := fill(64, 64, white)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			setPix(img, x, y, RGB{R: uint8(x * 4), G: uint8(y * 4), B: uint8((x + y) * 2)}, 255)
		}
	}
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}

	out, stats := QuantizeWith(data, 0, 80, palette.MethodDominant)
	if stats.QuantizedBytes > stats.OriginalBytes {
		t.Errorf("quantized %d bytes > original %d", stats.QuantizedBytes, stats.OriginalBytes)
	}
	if stats.Applied {
		if _, err := Decode(out); err != nil {
			t.Fatalf("quantized output not decodable: %v", err)
		}
	} else if !bytes.Equal(out, data) {
		t.Error("declined quantization must return the original bytes")
	}
}

func TestQuantizePreservesAlpha(t *testing.T) {
	img := fill(16, 16, RGB{R: 90, G: 140, B: 30})
	for x := 0; x < 16; x++ {
		setPix(img, x, 0, white, 0)
	}
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}

	out, _ := QuantizeWith(data, 0, 80, palette.MethodDominant)
	decoded, err := Decode(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, a := pixAt(decoded, 3, 0); a != 0 {
		t.Error("transparent pixel lost its alpha")
	}
	if _, a := pixAt(decoded, 3, 5); a != 255 {
		t.Error("opaque pixel lost its alpha")
	}
}

func TestQuantizeQualityFloorDeclines(t *testing.T) {
	img := fill(32, 32, white)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			setPix(img, x, y, RGB{R: uint8(x * 8), G: uint8(y * 8), B: uint8(x * y / 4)}, 255)
		}
	}
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}

	// An impossible floor forces the decline path.
	out, stats := QuantizeWith(data, 101, 80, palette.MethodDominant)
	if stats.Applied {
		t.Error("Applied = true with unreachable quality floor")
	}
	if !bytes.Equal(out, data) {
		t.Error("declined quantization must return the original bytes")
	}
}
