/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"math"

	"github.com/charmbracelet/log"
)

// survivalRisk turns a linear predictor into a 10-year risk percentage,
// 100·(1 − S0^exp(lp)), clamped to [0,100].
func survivalRisk(model Model, baseline, lp float64, logger *log.Logger) (float64, error) {
	if math.IsNaN(lp) {
		return 0, &ComputationError{Model: model, Stage: "linear predictor", Value: lp}
	}

	hazard := math.Exp(lp)
	if math.IsInf(hazard, 1) {
		logger.Warn("Linear predictor overflowed, clamping risk", "model", model, "linear_predictor", lp)
		return 100, nil
	}

	risk := 1 - math.Pow(baseline, hazard)
	if math.IsNaN(risk) {
		return 0, &ComputationError{Model: model, Stage: "survival", Value: risk}
	}

	if risk < 0 || risk > 1 {
		logger.Warn("Risk outside [0,1], clamping", "model", model, "risk", risk)
	}

	return 100 * math.Min(math.Max(risk, 0), 1), nil
}
