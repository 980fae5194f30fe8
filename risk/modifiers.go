/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import "math"

// Modifier names reported in RiskResult.Modifiers.
const (
	ModifierLipoproteinA  = "lipoprotein_a"
	ModifierFamilyHistory = "family_history"
	ModifierSouthAsian    = "south_asian_ancestry"
)

const maxModifiedRiskPercent = 99.9

// LipoproteinATier multiplies risk when Lp(a) reaches Threshold mg/dL.
type LipoproteinATier struct {
	Threshold float64
	Factor    float64
}

// ModifierStage applies the multiplicative risk enhancers used after the
// Framingham base risk.
type ModifierStage struct {
	// LipoproteinA is ordered from the highest threshold down; only the
	// first tier reached applies.
	LipoproteinA  []LipoproteinATier
	FamilyHistory float64
	SouthAsian    float64
}

// DefaultModifierStage returns the published enhancer factors.
func DefaultModifierStage() ModifierStage {
	return ModifierStage{
		LipoproteinA: []LipoproteinATier{
			{Threshold: 100, Factor: 1.7},
			{Threshold: 50, Factor: 1.4},
			{Threshold: 30, Factor: 1.2},
		},
		FamilyHistory: 1.6,
		SouthAsian:    1.5,
	}
}

// Modifiers lists the factors that apply to p.
func (s ModifierStage) Modifiers(p Profile) []Modifier {
	mods := []Modifier{}

	if p.LipoproteinA != nil {
		for _, tier := range s.LipoproteinA {
			if *p.LipoproteinA >= tier.Threshold {
				mods = append(mods, Modifier{Name: ModifierLipoproteinA, Factor: tier.Factor})
				break
			}
		}
	}

	if p.Conditions.FamilyHistoryCVD {
		mods = append(mods, Modifier{Name: ModifierFamilyHistory, Factor: s.FamilyHistory})
	}

	if p.Ethnicity.SouthAsian() {
		mods = append(mods, Modifier{Name: ModifierSouthAsian, Factor: s.SouthAsian})
	}

	return mods
}

// Apply multiplies basePercent by every applicable factor and caps the
// result. With no factors the base risk is returned unchanged.
func (s ModifierStage) Apply(basePercent float64, p Profile) (float64, []Modifier) {
	mods := s.Modifiers(p)
	if len(mods) == 0 {
		return basePercent, mods
	}

	modified := basePercent
	for _, m := range mods {
		modified *= m.Factor
	}

	return math.Min(modified, maxModifiedRiskPercent), mods
}
