/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/humaidq/cvdrisk/logging"
)

// Calculator runs a profile through a model, the modifier stage, heart age
// and categorisation. It is safe for concurrent use.
type Calculator struct {
	framingham  *FraminghamEngine
	qrisk3      *QRISK3Engine
	modifiers   ModifierStage
	heartAge    *HeartAgeEstimator
	categorizer *Categorizer
	logger      *log.Logger
}

// NewCalculator wires the engines over table. A nil categorizer selects
// the default bands and a nil logger the engine logger; the logger is shared
// by the engines and the heart age estimator.
func NewCalculator(table CoefficientTable, categorizer *Categorizer, logger *log.Logger) *Calculator {
	if logger == nil {
		logger = logging.Logger(logging.SourceEngine)
	}

	if categorizer == nil {
		categorizer = DefaultCategorizer()
	}

	return &Calculator{
		framingham:  NewFraminghamEngine(table, logger),
		qrisk3:      NewQRISK3Engine(table, logger),
		modifiers:   DefaultModifierStage(),
		heartAge:    NewHeartAgeEstimator(logger),
		categorizer: categorizer,
		logger:      logger,
	}
}

// Calculate dispatches to the calculation for model.
func (c *Calculator) Calculate(model Model, p Profile) (*RiskResult, error) {
	switch model {
	case ModelFramingham:
		return c.CalculateFramingham(p)
	case ModelQRISK3:
		return c.CalculateQRISK3(p)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
}

// CalculateFramingham returns the Framingham result for p. The category and
// heart age follow the modified risk.
func (c *Calculator) CalculateFramingham(p Profile) (*RiskResult, error) {
	p, err := c.framingham.prepare(p)
	if err != nil {
		c.logger.Debug("Framingham calculation failed", "err", err)
		return nil, err
	}

	base, err := c.framingham.risk(p)
	if err != nil {
		c.logger.Debug("Framingham calculation failed", "err", err)
		return nil, err
	}

	modified, mods := c.modifiers.Apply(base, p)

	ideal := IdealProfile(p)
	heartAge := c.heartAge.Estimate(modified, p.Age, func(age float64) (float64, error) {
		probe := ideal
		probe.Age = age

		return c.framingham.risk(probe)
	})

	return &RiskResult{
		Model:               ModelFramingham,
		BaseRiskPercent:     base,
		ModifiedRiskPercent: modified,
		Modifiers:           mods,
		RiskCategory:        c.categorizer.Categorize(modified),
		HeartAge:            heartAge,
		Input:               p,
	}, nil
}

// CalculateQRISK3 returns the QRISK3 result for p. No modifiers apply, so
// the modified risk equals the base risk.
func (c *Calculator) CalculateQRISK3(p Profile) (*RiskResult, error) {
	p, err := c.qrisk3.prepare(p)
	if err != nil {
		c.logger.Debug("QRISK3 calculation failed", "err", err)
		return nil, err
	}

	base, err := c.qrisk3.risk(p)
	if err != nil {
		c.logger.Debug("QRISK3 calculation failed", "err", err)
		return nil, err
	}

	ideal := IdealProfile(p)
	heartAge := c.heartAge.Estimate(base, p.Age, func(age float64) (float64, error) {
		probe := ideal
		probe.Age = age

		return c.qrisk3.risk(probe)
	})

	return &RiskResult{
		Model:               ModelQRISK3,
		BaseRiskPercent:     base,
		ModifiedRiskPercent: base,
		Modifiers:           []Modifier{},
		RiskCategory:        c.categorizer.Categorize(base),
		HeartAge:            heartAge,
		Input:               p,
	}, nil
}

// CalculateFraminghamRisk computes the Framingham result for p with the
// published coefficients and default bands.
func CalculateFraminghamRisk(p Profile) (*RiskResult, error) {
	return NewCalculator(DefaultCoefficients(), nil, nil).CalculateFramingham(p)
}

// CalculateQRISK3Risk computes the QRISK3 result for p with the published
// coefficients and default bands.
func CalculateQRISK3Risk(p Profile) (*RiskResult, error) {
	return NewCalculator(DefaultCoefficients(), nil, nil).CalculateQRISK3(p)
}
