/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Sex selects the coefficient table used by every model.
type Sex string

// Sex values. There is no third value; the models are fitted per sex.
const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// Valid reports whether s is one of the two supported values.
func (s Sex) Valid() bool {
	return s == SexFemale || s == SexMale
}

// SmokingStatus is the five-level smoking category.
type SmokingStatus int

// SmokingStatus values, ordered as in the QRISK3 smoking array.
const (
	SmokingNon SmokingStatus = iota
	SmokingEx
	SmokingLight
	SmokingModerate
	SmokingHeavy
)

var smokingNames = [...]string{"non", "ex", "light", "moderate", "heavy"}

func (s SmokingStatus) String() string {
	if !s.Known() {
		return "unknown"
	}

	return smokingNames[s]
}

// Known reports whether s is one of the five categories.
func (s SmokingStatus) Known() bool {
	return s >= SmokingNon && s <= SmokingHeavy
}

// Current reports whether s is any current-smoker category.
func (s SmokingStatus) Current() bool {
	return s >= SmokingLight && s <= SmokingHeavy
}

// MarshalText implements encoding.TextMarshaler.
func (s SmokingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SmokingStatus) UnmarshalText(text []byte) error {
	status, ok := smokingCodes[code(string(text))]
	if !ok {
		return &ValidationError{Field: "smoking", Reason: fmt.Sprintf("unknown category %q", text)}
	}

	*s = status

	return nil
}

// DiabetesStatus is the three-level diabetes category.
type DiabetesStatus int

// DiabetesStatus values.
const (
	DiabetesNone DiabetesStatus = iota
	DiabetesType1
	DiabetesType2
)

var diabetesNames = [...]string{"none", "type1", "type2"}

// Known reports whether d is one of the three categories.
func (d DiabetesStatus) Known() bool {
	return d >= DiabetesNone && d <= DiabetesType2
}

// Diabetic reports whether d is either diabetes type.
func (d DiabetesStatus) Diabetic() bool {
	return d == DiabetesType1 || d == DiabetesType2
}

func (d DiabetesStatus) String() string {
	if !d.Known() {
		return "unknown"
	}

	return diabetesNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d DiabetesStatus) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DiabetesStatus) UnmarshalText(text []byte) error {
	status, ok := diabetesCodes[strings.ReplaceAll(code(string(text)), "_", "")]
	if !ok {
		return &ValidationError{Field: "diabetes", Reason: fmt.Sprintf("unknown category %q", text)}
	}

	*d = status

	return nil
}

// Conditions holds the boolean comorbidity and treatment flags.
type Conditions struct {
	AtrialFibrillation     bool `json:"atrialFibrillation" yaml:"atrialFibrillation"`
	RheumatoidArthritis    bool `json:"rheumatoidArthritis" yaml:"rheumatoidArthritis"`
	ChronicKidneyDisease   bool `json:"chronicKidneyDisease" yaml:"chronicKidneyDisease"`
	Migraine               bool `json:"migraine" yaml:"migraine"`
	SLE                    bool `json:"sle" yaml:"sle"`
	SevereMentalIllness    bool `json:"severeMentalIllness" yaml:"severeMentalIllness"`
	ErectileDysfunction    bool `json:"erectileDysfunction" yaml:"erectileDysfunction"`
	TreatedHypertension    bool `json:"treatedHypertension" yaml:"treatedHypertension"`
	FamilyHistoryCVD       bool `json:"familyHistoryCVD" yaml:"familyHistoryCVD"`
	Corticosteroids        bool `json:"corticosteroids" yaml:"corticosteroids"`
	AtypicalAntipsychotics bool `json:"atypicalAntipsychotics" yaml:"atypicalAntipsychotics"`
}

// Profile is a patient in canonical units: years, mmol/L lipids, kg/m²,
// mmHg and mg/dL for Lp(a). A zero lipid or BMI means the value is unknown.
type Profile struct {
	Age       float64        `json:"age"`
	Sex       Sex            `json:"sex"`
	Ethnicity Ethnicity      `json:"ethnicity"`
	Smoking   SmokingStatus  `json:"smoking"`
	Diabetes  DiabetesStatus `json:"diabetes"`

	SystolicBP   float64 `json:"systolicBP"`
	SystolicBPSD float64 `json:"systolicBPSD"`
	BMI          float64 `json:"bmi,omitempty"`

	TotalCholesterol float64 `json:"totalCholesterol,omitempty"`
	HDL              float64 `json:"hdl,omitempty"`
	LDL              float64 `json:"ldl,omitempty"`
	Triglycerides    float64 `json:"triglycerides,omitempty"`
	CholesterolRatio float64 `json:"cholesterolRatio,omitempty"`

	// LipoproteinA is nil when not measured.
	LipoproteinA *float64 `json:"lipoproteinA,omitempty"`

	Conditions Conditions `json:"conditions"`
	Townsend   float64    `json:"townsend"`
}

// ratio returns the total/HDL ratio, deriving it when only the panel is set.
func (p Profile) ratio() float64 {
	if p.CholesterolRatio > 0 {
		return p.CholesterolRatio
	}

	if p.TotalCholesterol > 0 && p.HDL > 0 {
		return p.TotalCholesterol / p.HDL
	}

	return 0
}

// withBaselineCategories replaces unrecognised categorical values with the
// baseline category and logs a ConfigurationError for each.
func withBaselineCategories(p Profile, logger *log.Logger) Profile {
	if !p.Ethnicity.Known() {
		warnConfiguration(logger, &ConfigurationError{Field: "ethnicity", Code: string(p.Ethnicity), Fallback: "white"})
		p.Ethnicity = EthnicityNotStated
	}

	if !p.Smoking.Known() {
		warnConfiguration(logger, &ConfigurationError{Field: "smoking", Code: fmt.Sprint(int(p.Smoking)), Fallback: SmokingNon.String()})
		p.Smoking = SmokingNon
	}

	if !p.Diabetes.Known() {
		warnConfiguration(logger, &ConfigurationError{Field: "diabetes", Code: fmt.Sprint(int(p.Diabetes)), Fallback: DiabetesNone.String()})
		p.Diabetes = DiabetesNone
	}

	return p
}

func warnConfiguration(logger *log.Logger, err *ConfigurationError) {
	logger.Warn("Unrecognised code, using baseline", "field", err.Field, "code", err.Code, "fallback", err.Fallback)
}

func indicator(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
