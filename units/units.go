/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package units

import (
	"fmt"
	"strings"
)

// Conversion factors between laboratory unit systems.
const (
	// CholesterolMgPerMmol converts total, HDL and LDL cholesterol.
	CholesterolMgPerMmol = 38.67

	// TriglycerideMgPerMmol converts triglycerides.
	TriglycerideMgPerMmol = 88.57

	// LipoproteinANmolPerMg is the single Lp(a) factor used everywhere in
	// this module. Published factors range from about 2.0 to 2.5 because
	// the mass of apo(a) varies with isoform size.
	LipoproteinANmolPerMg = 2.5

	cmPerInch  = 2.54
	kgPerPound = 0.45359237
)

// Unit is a unit tag attached to a raw measurement.
type Unit string

// Unit values accepted on raw measurements.
const (
	MmolPerL Unit = "mmol/L"
	MgPerDL  Unit = "mg/dL"
	NmolPerL Unit = "nmol/L"

	Centimetre Unit = "cm"
	Metre      Unit = "m"
	Inch       Unit = "in"

	Kilogram Unit = "kg"
	Pound    Unit = "lb"
)

// ParseUnit normalizes a unit tag, accepting common spellings.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mmol/l", "mmol":
		return MmolPerL, nil
	case "mg/dl", "mg":
		return MgPerDL, nil
	case "nmol/l", "nmol":
		return NmolPerL, nil
	case "cm":
		return Centimetre, nil
	case "m":
		return Metre, nil
	case "in", "inch", "inches":
		return Inch, nil
	case "kg":
		return Kilogram, nil
	case "lb", "lbs", "pound", "pounds":
		return Pound, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// CholesterolToMmol converts a cholesterol value in unit u to mmol/L.
func CholesterolToMmol(value float64, u Unit) (float64, error) {
	switch u {
	case MmolPerL, "":
		return value, nil
	case MgPerDL:
		return value / CholesterolMgPerMmol, nil
	}

	return 0, fmt.Errorf("%w: cholesterol in %s", ErrUnsupportedUnit, u)
}

// CholesterolToMg converts a cholesterol value in mmol/L to mg/dL.
func CholesterolToMg(mmol float64) float64 {
	return mmol * CholesterolMgPerMmol
}

// TriglyceridesToMmol converts a triglyceride value in unit u to mmol/L.
func TriglyceridesToMmol(value float64, u Unit) (float64, error) {
	switch u {
	case MmolPerL, "":
		return value, nil
	case MgPerDL:
		return value / TriglycerideMgPerMmol, nil
	}

	return 0, fmt.Errorf("%w: triglycerides in %s", ErrUnsupportedUnit, u)
}

// LipoproteinAToMg converts an Lp(a) value in unit u to mg/dL.
func LipoproteinAToMg(value float64, u Unit) (float64, error) {
	switch u {
	case MgPerDL, "":
		return value, nil
	case NmolPerL:
		return value / LipoproteinANmolPerMg, nil
	}

	return 0, fmt.Errorf("%w: Lp(a) in %s", ErrUnsupportedUnit, u)
}

// LipoproteinAToNmol converts an Lp(a) value in mg/dL to nmol/L.
func LipoproteinAToNmol(mg float64) float64 {
	return mg * LipoproteinANmolPerMg
}

// HeightToCm converts a height in unit u to centimetres.
func HeightToCm(value float64, u Unit) (float64, error) {
	switch u {
	case Centimetre, "":
		return value, nil
	case Metre:
		return value * 100, nil
	case Inch:
		return value * cmPerInch, nil
	}

	return 0, fmt.Errorf("%w: height in %s", ErrUnsupportedUnit, u)
}

// WeightToKg converts a weight in unit u to kilograms.
func WeightToKg(value float64, u Unit) (float64, error) {
	switch u {
	case Kilogram, "":
		return value, nil
	case Pound:
		return value * kgPerPound, nil
	}

	return 0, fmt.Errorf("%w: weight in %s", ErrUnsupportedUnit, u)
}

// BMI returns body-mass index from weight in kg and height in cm.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// FriedewaldLDL estimates LDL cholesterol (mmol/L). The estimate is only
// valid below 4.5 mmol/L triglycerides; ok is false otherwise.
func FriedewaldLDL(total, hdl, triglycerides float64) (ldl float64, ok bool) {
	if triglycerides >= FriedewaldMaxTriglycerides {
		return 0, false
	}

	return total - hdl - triglycerides/2.2, true
}

// FriedewaldMaxTriglycerides is the upper triglyceride limit (mmol/L) for
// the Friedewald estimate.
const FriedewaldMaxTriglycerides = 4.5
