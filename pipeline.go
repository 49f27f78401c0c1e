package mattekit

import (
	"fmt"
	"image"

	"github.com/setanarut/mattekit/palette"
)

// Asset is one finished output: named PNG bytes plus the metadata the
// deployment layer needs.
type Asset struct {
	Name   string
	Data   []byte
	Width  int
	Height int
	// HasAlpha reflects the actual presence of non-255 alpha values in the
	// encoded buffer.
	HasAlpha bool
	// Matte carries the extraction result when the asset went through a
	// strategy, for diagnostic reporting.
	Matte *MatteResult
	// Quantized reports the outcome of the optional compression pass.
	Quantized QuantizeStats
}

// Pipeline runs the full processing chain on raw generator output. Each
// call owns its buffers for the duration of the call; a Pipeline holds no
// mutable state and may be shared across goroutines processing unrelated
// assets.
type Pipeline struct {
	Config Config
	// PaletteMethod selects the quantizer's palette extraction algorithm.
	PaletteMethod palette.Method
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{Config: cfg, PaletteMethod: palette.MethodDominant}
}

// ProcessDevice normalizes a device render to the configured exact
// dimensions and optionally quantizes it. Device renders keep their full
// background; no extraction runs.
func (p *Pipeline) ProcessDevice(data []byte) (Asset, error) {
	img, err := Decode(data)
	if err != nil {
		return Asset{}, fmt.Errorf("device: %w", err)
	}
	img = Resize(img, p.Config.DeviceWidth, p.Config.DeviceHeight)
	return p.finishAsset("device", img, nil)
}

// ProcessLogo normalizes a logo render, extracts transparency with the
// caller-selected strategy and derives the fixed variant set. The returned
// assets are ordered as the variant set defines them.
func (p *Pipeline) ProcessLogo(data []byte, extractor AlphaExtractor) ([]Asset, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}
	img = Resize(img, p.Config.LogoWidth, p.Config.LogoHeight)

	result, err := extractor.Extract(img)
	if err != nil {
		return nil, fmt.Errorf("logo: %s matte: %w", extractor.Name(), err)
	}

	variants := LogoVariants(result.Image)
	assets := make([]Asset, 0, len(variants))
	for _, v := range variants {
		asset, err := p.finishAsset(v.Name, v.Image, result)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// finishAsset encodes, optionally quantizes, and records metadata from the
// final buffer rather than from the generation path.
func (p *Pipeline) finishAsset(name string, img *image.NRGBA, matte *MatteResult) (Asset, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return Asset{}, fmt.Errorf("%s: %w", name, err)
	}

	var qstats QuantizeStats
	if p.Config.Quantize {
		data, qstats = QuantizeWith(data, p.Config.QualityMin, p.Config.QualityMax, p.PaletteMethod)
	} else {
		qstats = QuantizeStats{OriginalBytes: len(data), QuantizedBytes: len(data)}
	}

	return Asset{
		Name:      name,
		Data:      data,
		Width:     img.Rect.Dx(),
		Height:    img.Rect.Dy(),
		HasAlpha:  HasAlpha(img),
		Matte:     matte,
		Quantized: qstats,
	}, nil
}
