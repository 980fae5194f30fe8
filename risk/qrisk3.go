/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"github.com/charmbracelet/log"

	"github.com/humaidq/cvdrisk/logging"
)

// QRISK3Engine computes the QRISK3-2017 10-year risk. It is safe for
// concurrent use.
type QRISK3Engine struct {
	table  CoefficientTable
	logger *log.Logger
}

// NewQRISK3Engine returns an engine over table. A nil logger selects the
// engine's default logger.
func NewQRISK3Engine(table CoefficientTable, logger *log.Logger) *QRISK3Engine {
	if logger == nil {
		logger = logging.Logger(logging.SourceEngine)
	}

	return &QRISK3Engine{table: table, logger: logger}
}

// Risk returns the 10-year risk percentage for p.
func (e *QRISK3Engine) Risk(p Profile) (float64, error) {
	p, err := e.prepare(p)
	if err != nil {
		return 0, err
	}

	return e.risk(p)
}

// prepare substitutes baseline categories for unknown codes and validates
// the result.
func (e *QRISK3Engine) prepare(p Profile) (Profile, error) {
	p = withBaselineCategories(p, e.logger)

	return p, e.validate(p)
}

func (e *QRISK3Engine) validate(p Profile) error {
	if !p.Sex.Valid() {
		return &ValidationError{Field: "sex", Reason: "must be female or male"}
	}

	d := e.table.QRISK3(p.Sex).Domain

	if !d.Age.Contains(p.Age) {
		return outOfRange("age", p.Age, d.Age)
	}

	if !(p.BMI > 0) {
		return missingField("bmi")
	}

	ratio := p.ratio()
	if ratio == 0 {
		return missingField("cholesterolRatio")
	}

	if !d.Ratio.Contains(ratio) {
		return outOfRange("cholesterolRatio", ratio, d.Ratio)
	}

	if !d.SBP.Contains(p.SystolicBP) {
		return outOfRange("systolicBP", p.SystolicBP, d.SBP)
	}

	if !d.SBPSD.Contains(p.SystolicBPSD) {
		return outOfRange("systolicBPSD", p.SystolicBPSD, d.SBPSD)
	}

	if !d.Townsend.Contains(p.Townsend) {
		return outOfRange("townsend", p.Townsend, d.Townsend)
	}

	return nil
}

// risk evaluates the model without domain checks. BMI is still clamped, as
// the transform is undefined at zero.
func (e *QRISK3Engine) risk(p Profile) (float64, error) {
	t := e.table.QRISK3(p.Sex)

	bmi := t.Domain.BMI.Clamp(p.BMI)
	if bmi != p.BMI {
		e.logger.Warn("BMI outside model range, clamping", "bmi", p.BMI, "clamped", bmi)
	}

	age1, age2 := t.Age.Transform(p.Age / 10)
	bmi1, bmi2 := t.BMI.Transform(bmi / 10)

	x := QRISK3Terms{
		Age1:     age1 - t.Means.Age1,
		Age2:     age2 - t.Means.Age2,
		BMI1:     bmi1 - t.Means.BMI1,
		BMI2:     bmi2 - t.Means.BMI2,
		Ratio:    p.ratio() - t.Means.Ratio,
		SBP:      p.SystolicBP - t.Means.SBP,
		SBPSD:    p.SystolicBPSD - t.Means.SBPSD,
		Townsend: p.Townsend - t.Means.Townsend,
	}

	smoking := int(SmokingNon)
	if p.Smoking.Known() {
		smoking = int(p.Smoking)
	}

	flags := qrisk3Flags(p)

	lp := t.Ethnicity[p.Ethnicity.qriskGroup()] + t.Smoking[smoking]
	lp += dotTerms(t.Linear, x)
	lp += dotConditions(t.Conditions, flags)
	lp += x.Age1 * interaction(t.Age1, smoking, flags, x)
	lp += x.Age2 * interaction(t.Age2, smoking, flags, x)

	return survivalRisk(ModelQRISK3, t.BaselineSurvival, lp, e.logger)
}

// qrisk3Flags holds each binary covariate as 0 or 1, laid out like the
// condition coefficients.
func qrisk3Flags(p Profile) QRISK3Conditions {
	c := p.Conditions

	return QRISK3Conditions{
		AtrialFibrillation:     indicator(c.AtrialFibrillation),
		AtypicalAntipsychotics: indicator(c.AtypicalAntipsychotics),
		Corticosteroids:        indicator(c.Corticosteroids),
		ErectileDysfunction:    indicator(c.ErectileDysfunction && p.Sex == SexMale),
		Migraine:               indicator(c.Migraine),
		RheumatoidArthritis:    indicator(c.RheumatoidArthritis),
		ChronicKidneyDisease:   indicator(c.ChronicKidneyDisease),
		SevereMentalIllness:    indicator(c.SevereMentalIllness),
		SLE:                    indicator(c.SLE),
		TreatedHypertension:    indicator(c.TreatedHypertension),
		Type1Diabetes:          indicator(p.Diabetes == DiabetesType1),
		Type2Diabetes:          indicator(p.Diabetes == DiabetesType2),
		FamilyHistoryCVD:       indicator(c.FamilyHistoryCVD),
	}
}

func dotTerms(beta, x QRISK3Terms) float64 {
	return beta.Age1*x.Age1 +
		beta.Age2*x.Age2 +
		beta.BMI1*x.BMI1 +
		beta.BMI2*x.BMI2 +
		beta.Ratio*x.Ratio +
		beta.SBP*x.SBP +
		beta.SBPSD*x.SBPSD +
		beta.Townsend*x.Townsend
}

func dotConditions(beta, f QRISK3Conditions) float64 {
	return beta.AtrialFibrillation*f.AtrialFibrillation +
		beta.AtypicalAntipsychotics*f.AtypicalAntipsychotics +
		beta.Corticosteroids*f.Corticosteroids +
		beta.ErectileDysfunction*f.ErectileDysfunction +
		beta.Migraine*f.Migraine +
		beta.RheumatoidArthritis*f.RheumatoidArthritis +
		beta.ChronicKidneyDisease*f.ChronicKidneyDisease +
		beta.SevereMentalIllness*f.SevereMentalIllness +
		beta.SLE*f.SLE +
		beta.TreatedHypertension*f.TreatedHypertension +
		beta.Type1Diabetes*f.Type1Diabetes +
		beta.Type2Diabetes*f.Type2Diabetes +
		beta.FamilyHistoryCVD*f.FamilyHistoryCVD
}

// interaction returns the sum that multiplies one centred age term.
func interaction(beta QRISK3AgeInteractions, smoking int, f QRISK3Conditions, x QRISK3Terms) float64 {
	return beta.Smoking[smoking] +
		beta.AtrialFibrillation*f.AtrialFibrillation +
		beta.Corticosteroids*f.Corticosteroids +
		beta.ErectileDysfunction*f.ErectileDysfunction +
		beta.Migraine*f.Migraine +
		beta.ChronicKidneyDisease*f.ChronicKidneyDisease +
		beta.SLE*f.SLE +
		beta.TreatedHypertension*f.TreatedHypertension +
		beta.Type1Diabetes*f.Type1Diabetes +
		beta.Type2Diabetes*f.Type2Diabetes +
		beta.FamilyHistoryCVD*f.FamilyHistoryCVD +
		beta.BMI1*x.BMI1 +
		beta.BMI2*x.BMI2 +
		beta.SBP*x.SBP +
		beta.Townsend*x.Townsend
}
