/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/humaidq/cvdrisk/risk"
)

// Flag names shared by the calculation commands.
const (
	flagModel     = "model"
	flagBands     = "bands"
	flagBandsFile = "bands-file"
)

// calculationFlags returns fresh copies of the flags shared by calculate
// and batch.
func calculationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagModel,
			Value: "both",
			Usage: "risk model: framingham, qrisk3 or both",
		},
		&cli.StringFlag{
			Name:    flagBands,
			Sources: cli.EnvVars("CVDRISK_BANDS"),
			Value:   risk.DefaultPreset,
			Usage:   "risk band preset used for the category",
		},
		&cli.StringFlag{
			Name:    flagBandsFile,
			Sources: cli.EnvVars("CVDRISK_BANDS_FILE"),
			Usage:   "YAML file with additional band presets",
		},
	}
}

// readProfile decodes a single YAML (or JSON) profile.
func readProfile(path string) (risk.RawProfile, error) {
	var raw risk.RawProfile

	data, err := os.ReadFile(path)
	if err != nil {
		return raw, fmt.Errorf("failed to read profile: %w", err)
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	return raw, nil
}

// readProfiles decodes a YAML list of profiles.
func readProfiles(path string) ([]risk.RawProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}

	var profiles []risk.RawProfile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse batch input %s: %w", path, err)
	}

	if len(profiles) == 0 {
		return nil, errEmptyBatch
	}

	return profiles, nil
}

// selectModels resolves the --model flag.
func selectModels(name string) ([]risk.Model, error) {
	if strings.EqualFold(strings.TrimSpace(name), "both") {
		return risk.Models(), nil
	}

	model, err := risk.ParseModel(name)
	if err != nil {
		return nil, err
	}

	return []risk.Model{model}, nil
}

// selectCategorizer resolves --bands and --bands-file. A preset file takes
// precedence over the built-in presets.
func selectCategorizer(name, file string) (*risk.Categorizer, error) {
	if file != "" {
		return risk.LoadBandsFile(file, name)
	}

	return risk.Preset(name)
}

// newCalculator builds the normalizer and calculator from the shared flags.
func newCalculator(cmd *cli.Command) (*risk.Normalizer, *risk.Calculator, []risk.Model, error) {
	models, err := selectModels(cmd.String(flagModel))
	if err != nil {
		return nil, nil, nil, err
	}

	categorizer, err := selectCategorizer(cmd.String(flagBands), cmd.String(flagBandsFile))
	if err != nil {
		return nil, nil, nil, err
	}

	normalizer := risk.NewNormalizer(nil)
	calc := risk.NewCalculator(risk.DefaultCoefficients(), categorizer, nil)

	return normalizer, calc, models, nil
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
