package mattekit

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundClass selects which reference background convention a generated
// asset was rendered against.
type BackgroundClass int

const (
	BackgroundDark BackgroundClass = iota
	BackgroundLight
)

func (c BackgroundClass) String() string {
	switch c {
	case BackgroundLight:
		return "light"
	default:
		return "dark"
	}
}

type Config struct {
	// BGThreshold is the color distance to the detected background at or
	// below which a pixel is fully transparent.
	// Ideal start: 10-20. Too high eats thin foreground strokes.
	BGThreshold float64
	// FGThreshold is the color distance at or above which a pixel is fully
	// opaque. Pixels between the two thresholds get graduated alpha.
	// Ideal start: 60-100. Too low leaves background fringe opaque.
	FGThreshold float64
	// DarkBackground is the reference color assets of class BackgroundDark
	// are rendered against.
	DarkBackground RGB
	// LightBackground is the reference color for BackgroundLight assets.
	LightBackground RGB
	// ChromaTolerance is the color distance used by flood-fill and
	// checkerboard removal. Ideal start: 40-80.
	ChromaTolerance float64
	// ErosionPasses bounds the iterative edge erosion rounds in FloodErode.
	// Passes stop early once a round changes nothing.
	ErosionPasses int
	// QualityMin and QualityMax bound the lossy quantization pass.
	// QualityMax drives the palette size; below QualityMin the quantizer
	// declines and returns the original bytes.
	QualityMin int
	QualityMax int
	// DeviceWidth and DeviceHeight are the exact output dimensions for
	// device renders.
	DeviceWidth  int
	DeviceHeight int
	// LogoWidth and LogoHeight are the exact output dimensions for logos.
	LogoWidth  int
	LogoHeight int
	// Quantize enables the optional palette-reduction pass on pipeline
	// outputs. Never required for correctness.
	Quantize bool
}

func DefaultConfig() Config {
	return Config{
		BGThreshold:     15,
		FGThreshold:     80,
		DarkBackground:  RGB{R: 37, G: 40, B: 59}, // #25283B
		LightBackground: RGB{R: 255, G: 255, B: 255},
		ChromaTolerance: 60,
		ErosionPasses:   3,
		QualityMin:      65,
		QualityMax:      80,
		DeviceWidth:     2160,
		DeviceHeight:    2160,
		LogoWidth:       1920,
		LogoHeight:      510,
		Quantize:        true,
	}
}

// Reference returns the configured reference background color for a class.
func (c Config) Reference(class BackgroundClass) RGB {
	if class == BackgroundLight {
		return c.LightBackground
	}
	return c.DarkBackground
}

// ParseRGB parses a hex color string such as "#25283B" into an RGB triple.
func ParseRGB(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := col.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
