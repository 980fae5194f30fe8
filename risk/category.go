/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultPreset names the band set used when none is selected.
const DefaultPreset = "default"

// Band is a named risk range starting at Lower percent.
type Band struct {
	Name  string  `yaml:"name" json:"name"`
	Lower float64 `yaml:"lower" json:"lower"`
}

// bandFile is the layout of a band preset file.
type bandFile struct {
	Presets map[string][]Band `yaml:"presets"`
}

//go:embed bands.yaml
var embeddedBands []byte

var builtinPresets = mustParseBands(embeddedBands)

// Categorizer maps a risk percentage to a named band.
type Categorizer struct {
	bands []Band
}

// NewCategorizer returns a categorizer over bands, which must be non-empty,
// start at zero and have strictly increasing lower bounds.
func NewCategorizer(bands []Band) (*Categorizer, error) {
	if err := validateBands(bands); err != nil {
		return nil, err
	}

	return &Categorizer{bands: slices.Clone(bands)}, nil
}

// DefaultCategorizer returns the Low / Moderate / High categorizer.
func DefaultCategorizer() *Categorizer {
	c, _ := Preset(DefaultPreset)
	return c
}

// Preset returns the categorizer for a built-in preset.
func Preset(name string) (*Categorizer, error) {
	bands, ok := builtinPresets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return &Categorizer{bands: slices.Clone(bands)}, nil
}

// PresetNames lists the built-in presets in name order.
func PresetNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// LoadBandsFile reads presets from a YAML file laid out like the built-in
// set and returns the named one.
func LoadBandsFile(path, name string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bands file: %w", err)
	}

	presets, err := parseBands(data)
	if err != nil {
		return nil, err
	}

	bands, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in %s", ErrUnknownPreset, name, path)
	}

	return &Categorizer{bands: bands}, nil
}

// Bands returns a copy of the bands in order.
func (c *Categorizer) Bands() []Band {
	return slices.Clone(c.bands)
}

// Categorize returns the name of the last band whose lower bound percent
// reaches. Negative and NaN values fall in the first band.
func (c *Categorizer) Categorize(percent float64) string {
	name := c.bands[0].Name
	if math.IsNaN(percent) {
		return name
	}

	for _, b := range c.bands[1:] {
		if percent < b.Lower {
			break
		}

		name = b.Name
	}

	return name
}

func parseBands(data []byte) (map[string][]Band, error) {
	var f bandFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bands: %w", err)
	}

	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("%w: no presets defined", ErrInvalidBands)
	}

	for name, bands := range f.Presets {
		if err := validateBands(bands); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}

	return f.Presets, nil
}

func mustParseBands(data []byte) map[string][]Band {
	presets, err := parseBands(data)
	if err != nil {
		panic(err)
	}

	return presets
}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: at least one band is required", ErrInvalidBands)
	}

	if bands[0].Lower != 0 {
		return fmt.Errorf("%w: first band must start at 0, got %g", ErrInvalidBands, bands[0].Lower)
	}

	for i, b := range bands {
		if b.Name == "" {
			return fmt.Errorf("%w: band %d has no name", ErrInvalidBands, i)
		}

		if i > 0 && !(b.Lower > bands[i-1].Lower) {
			return fmt.Errorf("%w: %q must start above %q", ErrInvalidBands, b.Name, bands[i-1].Name)
		}
	}

	return nil
}
