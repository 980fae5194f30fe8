/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errProfileRequired = errors.New("profile is required (set via --profile)")
	errInputRequired   = errors.New("input is required (set via --input)")
	errEmptyBatch      = errors.New("batch input contains no profiles")
	errBatchFailures   = errors.New("some profiles could not be calculated")
)
