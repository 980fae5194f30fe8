/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"github.com/charmbracelet/log"

	"github.com/humaidq/cvdrisk/logging"
)

// cliLogger is resolved per command so that --log-level applies.
func cliLogger() *log.Logger {
	return logging.Logger(logging.SourceCLI)
}
