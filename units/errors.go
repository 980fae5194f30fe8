/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package units

import "errors"

var (
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrUnsupportedUnit = errors.New("unsupported unit")
)
