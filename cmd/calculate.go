/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
)

var CmdCalculate = &cli.Command{
	Name:    "calculate",
	Aliases: []string{"calc"},
	Usage:   "Calculate the 10-year CVD risk for a profile file",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "YAML or JSON profile file",
		},
	}, calculationFlags()...),
	Action: calculate,
}

func calculate(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("profile")
	if path == "" {
		return errProfileRequired
	}

	raw, err := readProfile(path)
	if err != nil {
		return err
	}

	normalizer, calc, models, err := newCalculator(cmd)
	if err != nil {
		return err
	}

	outcomes := evaluate(normalizer, calc, raw, models)

	if err := writeJSON(cmd.Root().Writer, outcomes, true); err != nil {
		return err
	}

	var errs []error
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
		}
	}

	return errors.Join(errs...)
}
