/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/humaidq/cvdrisk/logging"
)

// RiskProbe returns the risk percentage of the ideal profile at age.
type RiskProbe func(age float64) (float64, error)

// Ideal risk-factor values used for heart age.
const (
	idealBMI              = 22
	idealSystolicBP       = 110
	idealTotalCholesterol = 4.9
	idealHDL              = 1.4
	idealTownsend         = -7

	// risks at or below this are treated as zero
	negligibleRiskPercent = 1e-6
)

// HeartAgeEstimator finds the age at which an ideal-risk person of the same
// sex and ethnicity reaches a target risk.
type HeartAgeEstimator struct {
	MinAge        float64
	MaxAge        float64
	MaxIterations int

	// Tolerance is relative: a probe converges when |risk − target| is at
	// most Tolerance·target.
	Tolerance float64

	logger *log.Logger
}

// NewHeartAgeEstimator returns an estimator searching ages 20 to 95. A nil
// logger selects the heart age logger.
func NewHeartAgeEstimator(logger *log.Logger) *HeartAgeEstimator {
	if logger == nil {
		logger = logging.Logger(logging.SourceHeartAge)
	}

	return &HeartAgeEstimator{
		MinAge:        20,
		MaxAge:        95,
		MaxIterations: 25,
		Tolerance:     0.0005,
		logger:        logger,
	}
}

// IdealProfile returns the reference profile for p: same sex and ethnicity,
// non-smoker, no diabetes or conditions, optimal blood pressure, lipids,
// BMI and deprivation.
func IdealProfile(p Profile) Profile {
	return Profile{
		Age:              p.Age,
		Sex:              p.Sex,
		Ethnicity:        p.Ethnicity,
		Smoking:          SmokingNon,
		Diabetes:         DiabetesNone,
		SystolicBP:       idealSystolicBP,
		BMI:              idealBMI,
		TotalCholesterol: idealTotalCholesterol,
		HDL:              idealHDL,
		CholesterolRatio: idealTotalCholesterol / idealHDL,
		Townsend:         idealTownsend,
	}
}

// Estimate returns the heart age, in whole years, for target risk. It falls
// back to chronological when no age can be determined.
func (h *HeartAgeEstimator) Estimate(target, chronological float64, probe RiskProbe) float64 {
	if math.IsNaN(target) || target <= negligibleRiskPercent {
		h.logger.Debug("Target risk negligible, using chronological age", "target", target)
		return math.Round(chronological)
	}

	low, err := probe(h.MinAge)
	if err != nil || !isFinite(low) {
		h.logger.Warn("Heart age probe failed", "age", h.MinAge, "err", err)
		return math.Round(chronological)
	}

	if target <= low {
		return h.MinAge
	}

	high, err := probe(h.MaxAge)
	if err != nil || !isFinite(high) {
		h.logger.Warn("Heart age probe failed", "age", h.MaxAge, "err", err)
		return math.Round(chronological)
	}

	if target >= high {
		return h.MaxAge
	}

	age, ok := h.bisect(target, probe, h.MinAge, h.MaxAge, 0)
	if !ok {
		h.logger.Warn("Heart age did not converge, using chronological age",
			"target", target, "iterations", h.MaxIterations)
		return math.Round(chronological)
	}

	return math.Round(age)
}

func (h *HeartAgeEstimator) bisect(target float64, probe RiskProbe, low, high float64, iteration int) (float64, bool) {
	if iteration >= h.MaxIterations {
		return 0, false
	}

	mid := (low + high) / 2

	r, err := probe(mid)
	if err != nil || !isFinite(r) {
		h.logger.Warn("Heart age probe failed", "age", mid, "err", err)
		return 0, false
	}

	if math.Abs(r-target) <= h.Tolerance*target {
		return mid, true
	}

	if r < target {
		return h.bisect(target, probe, mid, high, iteration+1)
	}

	return h.bisect(target, probe, low, mid, iteration+1)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
