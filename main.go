/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/cvdrisk/cmd"
	"github.com/humaidq/cvdrisk/logging"
)

func main() {
	app := &cli.Command{
		Name:  "cvdrisk",
		Usage: "cvdrisk - 10-year cardiovascular risk calculator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Sources: cli.EnvVars("CVDRISK_LOG_LEVEL"),
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, logging.SetLevel(c.String("log-level"))
		},
		Commands: []*cli.Command{
			cmd.CmdCalculate,
			cmd.CmdBatch,
			cmd.CmdBands,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.StdLogger(logging.SourceCLI).Fatal(err)
	}
}
