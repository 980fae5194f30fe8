/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/cvdrisk/risk"
)

var CmdBatch = &cli.Command{
	Name:  "batch",
	Usage: "Calculate risk for every profile in a YAML list, one JSON outcome per line",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "YAML file containing a list of profiles",
		},
	}, calculationFlags()...),
	Action: batch,
}

// outcome is one line of calculation output. Exactly one of Result and
// Failure is set.
type outcome struct {
	ID      string           `json:"id"`
	Model   risk.Model       `json:"model,omitempty"`
	Result  *risk.RiskResult `json:"result,omitempty"`
	Failure *risk.Failure    `json:"failure,omitempty"`

	err error
}

func batch(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("input")
	if path == "" {
		return errInputRequired
	}

	profiles, err := readProfiles(path)
	if err != nil {
		return err
	}

	normalizer, calc, models, err := newCalculator(cmd)
	if err != nil {
		return err
	}

	failed, err := runBatch(ctx, cmd.Root().Writer, normalizer, calc, profiles, models)
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d profiles", errBatchFailures, failed, len(profiles))
	}

	return nil
}

// runBatch writes every outcome as a JSON line and returns the number of
// profiles with at least one failed model.
func runBatch(ctx context.Context, w io.Writer, normalizer *risk.Normalizer, calc *risk.Calculator, profiles []risk.RawProfile, models []risk.Model) (int, error) {
	logger := cliLogger()
	failed := 0

	for i, raw := range profiles {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		if raw.ID == "" {
			raw.ID = uuid.NewString()
		}

		profileFailed := false

		for _, o := range evaluate(normalizer, calc, raw, models) {
			if o.err != nil {
				profileFailed = true

				logger.Warn("Profile calculation failed", "index", i, "id", o.ID, "model", o.Model, "err", o.err)
			}

			if err := writeJSON(w, o, false); err != nil {
				return failed, err
			}
		}

		if profileFailed {
			failed++
		}
	}

	return failed, nil
}

// evaluate normalizes raw and runs each model. A normalization failure
// yields a single outcome without a model.
func evaluate(normalizer *risk.Normalizer, calc *risk.Calculator, raw risk.RawProfile, models []risk.Model) []outcome {
	p, err := normalizer.Normalize(raw)
	if err != nil {
		return []outcome{{ID: raw.ID, Failure: risk.FailureFrom(err), err: err}}
	}

	outcomes := make([]outcome, 0, len(models))

	for _, model := range models {
		o := outcome{ID: raw.ID, Model: model}

		o.Result, o.err = calc.Calculate(model, p)
		o.Failure = risk.FailureFrom(o.err)

		outcomes = append(outcomes, o)
	}

	return outcomes
}
