/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/cvdrisk/risk"
)

var CmdBands = &cli.Command{
	Name:   "bands",
	Usage:  "List the built-in risk band presets",
	Action: bands,
}

func bands(ctx context.Context, cmd *cli.Command) error {
	return writePresets(cmd.Root().Writer)
}

func writePresets(w io.Writer) error {
	for _, name := range risk.PresetNames() {
		c, err := risk.Preset(name)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%s:", name); err != nil {
			return err
		}

		for _, b := range c.Bands() {
			if _, err := fmt.Fprintf(w, " %s≥%g", b.Name, b.Lower); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
