// Package config describes augmentation pipelines as TOML files and compiles
// them into transforms.
package config

import (
	"fmt"
	"image"

	"github.com/BurntSushi/toml"

	"github.com/menta2k/augment/pkg/transform"
)

// Config holds one augmentation pipeline description.
type Config struct {
	Seed    int64   `toml:"seed"`
	Fill    []uint8 `toml:"fill"`
	Variant int     `toml:"variants"`
	Steps   []Step  `toml:"step"`
}

// Step is one transform in the pipeline, selected by Op. Only the fields
// relevant to the chosen op need to be set.
type Step struct {
	Op      string    `toml:"op"`
	Sizes   []int     `toml:"sizes"`
	Ratios  []float64 `toml:"ratios"`
	Degrees float64   `toml:"degrees"`
	Range   []float64 `toml:"range"`
	Offset  []float64 `toml:"offset"`
	By      int       `toml:"by"`
	Anchor  string    `toml:"anchor"`
	Rect    []int     `toml:"rect"`
}

// Default returns a pipeline with sensible training defaults.
func Default() *Config {
	return &Config{
		Seed:    0,
		Variant: 1,
		Steps: []Step{
			{Op: "random-resize-crop", Sizes: []int{224, 224}},
		},
	}
}

// Load reads a pipeline description from a TOML file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline file: %w", err)
	}
	if cfg.Variant == 0 {
		cfg.Variant = 1
	}
	return &cfg, nil
}

// Validate checks the pipeline description before it is compiled.
func (c *Config) Validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("pipeline has no steps")
	}
	if c.Variant < 1 {
		return fmt.Errorf("variants must be at least 1")
	}
	if len(c.Fill) != 0 && len(c.Fill) != 3 {
		return fmt.Errorf("fill must be three RGB components")
	}
	for i, s := range c.Steps {
		if _, err := buildStep(s); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Build compiles the pipeline into a single composed transform.
func (c *Config) Build() (transform.Transform, error) {
	tfms := make([]transform.Transform, 0, len(c.Steps))
	for i, s := range c.Steps {
		t, err := buildStep(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		tfms = append(tfms, t)
	}
	return transform.Compose(tfms...), nil
}

func buildStep(s Step) (transform.Transform, error) {
	switch s.Op {
	case "scale-fixed":
		w, h, err := twoSizes(s.Sizes)
		if err != nil {
			return nil, err
		}
		return transform.ScaleFixed(w, h), nil
	case "scale-ratio":
		rx, ry, err := twoRatios(s.Ratios)
		if err != nil {
			return nil, err
		}
		return transform.ScaleRatio(rx, ry), nil
	case "scale-keep-aspect":
		w, h, err := twoSizes(s.Sizes)
		if err != nil {
			return nil, err
		}
		return transform.ScaleKeepAspect(w, h), nil
	case "rotate":
		return transform.Rotate(s.Degrees), nil
	case "reflect":
		return transform.Reflect(s.Degrees), nil
	case "flip-x":
		return transform.FlipX(), nil
	case "flip-y":
		return transform.FlipY(), nil
	case "zoom":
		if len(s.Range) != 2 {
			return nil, fmt.Errorf("zoom needs a two-element range")
		}
		return transform.Zoom(s.Range[0], s.Range[1]), nil
	case "translate":
		if len(s.Offset) != 2 {
			return nil, fmt.Errorf("translate needs a two-element offset")
		}
		return transform.Translate(s.Offset[0], s.Offset[1]), nil
	case "crop":
		w, h, err := twoSizes(s.Sizes)
		if err != nil {
			return nil, err
		}
		anchor, err := parseAnchor(s.Anchor)
		if err != nil {
			return nil, err
		}
		return transform.Crop(w, h, anchor), nil
	case "crop-ratio":
		rx, ry, err := twoRatios(s.Ratios)
		if err != nil {
			return nil, err
		}
		anchor, err := parseAnchor(s.Anchor)
		if err != nil {
			return nil, err
		}
		return transform.CropRatio(rx, ry, anchor), nil
	case "crop-indices":
		if len(s.Rect) != 4 {
			return nil, fmt.Errorf("crop-indices needs rect = [x0, y0, x1, y1]")
		}
		return transform.CropIndices(image.Rect(s.Rect[0], s.Rect[1], s.Rect[2], s.Rect[3])), nil
	case "pad-divisible":
		if s.By < 1 {
			return nil, fmt.Errorf("pad-divisible needs by >= 1")
		}
		return transform.PadDivisible(s.By), nil
	case "pin-origin":
		return transform.PinOrigin(), nil
	case "random-resize-crop":
		w, h, err := twoSizes(s.Sizes)
		if err != nil {
			return nil, err
		}
		return transform.RandomResizeCrop(w, h), nil
	case "center-resize-crop":
		w, h, err := twoSizes(s.Sizes)
		if err != nil {
			return nil, err
		}
		return transform.CenterResizeCrop(w, h), nil
	case "resize-pad-divisible":
		w, h, err := twoSizes(s.Sizes)
		if err != nil {
			return nil, err
		}
		if s.By < 1 {
			return nil, fmt.Errorf("resize-pad-divisible needs by >= 1")
		}
		return transform.ResizePadDivisible(w, h, s.By), nil
	case "":
		return nil, fmt.Errorf("missing op")
	default:
		return nil, fmt.Errorf("unknown op %q", s.Op)
	}
}

func twoSizes(sizes []int) (int, int, error) {
	if len(sizes) != 2 {
		return 0, 0, fmt.Errorf("need sizes = [width, height]")
	}
	if sizes[0] < 1 || sizes[1] < 1 {
		return 0, 0, fmt.Errorf("sizes must be positive, got %dx%d", sizes[0], sizes[1])
	}
	return sizes[0], sizes[1], nil
}

func twoRatios(ratios []float64) (float64, float64, error) {
	if len(ratios) != 2 {
		return 0, 0, fmt.Errorf("need ratios = [rx, ry]")
	}
	if ratios[0] <= 0 || ratios[1] <= 0 {
		return 0, 0, fmt.Errorf("ratios must be positive, got %gx%g", ratios[0], ratios[1])
	}
	return ratios[0], ratios[1], nil
}

func parseAnchor(s string) (transform.Anchor, error) {
	switch s {
	case "", "center":
		return transform.AnchorCenter, nil
	case "origin":
		return transform.AnchorOrigin, nil
	case "random":
		return transform.AnchorRandom, nil
	default:
		return 0, fmt.Errorf("unknown anchor %q", s)
	}
}
