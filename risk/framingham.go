/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/humaidq/cvdrisk/logging"
	"github.com/humaidq/cvdrisk/units"
)

// FraminghamEngine computes the Framingham General CVD (2008) 10-year risk.
// It is safe for concurrent use.
type FraminghamEngine struct {
	table  CoefficientTable
	logger *log.Logger
}

// NewFraminghamEngine returns an engine over table. A nil logger selects the
// engine's default logger.
func NewFraminghamEngine(table CoefficientTable, logger *log.Logger) *FraminghamEngine {
	if logger == nil {
		logger = logging.Logger(logging.SourceEngine)
	}

	return &FraminghamEngine{table: table, logger: logger}
}

// Risk returns the base 10-year risk percentage for p.
func (e *FraminghamEngine) Risk(p Profile) (float64, error) {
	p, err := e.prepare(p)
	if err != nil {
		return 0, err
	}

	return e.risk(p)
}

// prepare substitutes baseline categories for unknown codes and validates
// the result.
func (e *FraminghamEngine) prepare(p Profile) (Profile, error) {
	p = withBaselineCategories(p, e.logger)

	return p, e.validate(p)
}

func (e *FraminghamEngine) validate(p Profile) error {
	if !p.Sex.Valid() {
		return &ValidationError{Field: "sex", Reason: "must be female or male"}
	}

	t := e.table.Framingham(p.Sex)
	if !t.Age.Contains(p.Age) {
		return outOfRange("age", p.Age, t.Age)
	}

	if !(p.TotalCholesterol > 0) {
		return missingField("totalCholesterol")
	}

	if !(p.HDL > 0) {
		return missingField("hdl")
	}

	if !(p.SystolicBP > 0) {
		return missingField("systolicBP")
	}

	return nil
}

// risk evaluates the model without domain checks. Heart age probes call it
// directly with ages outside the validated range.
func (e *FraminghamEngine) risk(p Profile) (float64, error) {
	t := e.table.Framingham(p.Sex)
	c := t.Coefficients

	sbp := c.LogSBPUntreated
	if p.Conditions.TreatedHypertension {
		sbp = c.LogSBPTreated
	}

	lp := c.LogAge*math.Log(p.Age) +
		c.LogTotalCholesterol*math.Log(units.CholesterolToMg(p.TotalCholesterol)) +
		c.LogHDL*math.Log(units.CholesterolToMg(p.HDL)) +
		sbp*math.Log(p.SystolicBP) +
		c.Smoker*indicator(p.Smoking.Current()) +
		c.Diabetes*indicator(p.Diabetes.Diabetic()) -
		t.MeanPredictor

	return survivalRisk(ModelFramingham, t.BaselineSurvival, lp, e.logger)
}
