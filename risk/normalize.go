/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/humaidq/cvdrisk/logging"
	"github.com/humaidq/cvdrisk/units"
)

// RawProfile is a patient as entered, with unit tags. Numeric fields are
// pointers so that an absent value is distinguishable from zero.
type RawProfile struct {
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	Age       *float64 `yaml:"age" json:"age" validate:"required,gt=0"`
	Sex       string   `yaml:"sex" json:"sex" validate:"required"`
	Ethnicity string   `yaml:"ethnicity" json:"ethnicity"`
	Smoking   string   `yaml:"smoking" json:"smoking"`
	Diabetes  string   `yaml:"diabetes" json:"diabetes"`

	SystolicBP   *float64 `yaml:"systolicBP" json:"systolicBP" validate:"required,gt=0"`
	SystolicBPSD *float64 `yaml:"systolicBPSD" json:"systolicBPSD" validate:"omitempty,gte=0"`

	BMI        *float64 `yaml:"bmi" json:"bmi" validate:"omitempty,gt=0"`
	Height     *float64 `yaml:"height" json:"height" validate:"omitempty,gt=0"`
	HeightUnit string   `yaml:"heightUnit" json:"heightUnit"`
	Weight     *float64 `yaml:"weight" json:"weight" validate:"omitempty,gt=0"`
	WeightUnit string   `yaml:"weightUnit" json:"weightUnit"`

	TotalCholesterol *float64 `yaml:"totalCholesterol" json:"totalCholesterol" validate:"omitempty,gt=0"`
	HDL              *float64 `yaml:"hdl" json:"hdl" validate:"omitempty,gt=0"`
	LDL              *float64 `yaml:"ldl" json:"ldl" validate:"omitempty,gt=0"`
	Triglycerides    *float64 `yaml:"triglycerides" json:"triglycerides" validate:"omitempty,gt=0"`
	CholesterolRatio *float64 `yaml:"cholesterolRatio" json:"cholesterolRatio" validate:"omitempty,gt=0"`
	LipidUnit        string   `yaml:"lipidUnit" json:"lipidUnit"`

	LipoproteinA     *float64 `yaml:"lipoproteinA" json:"lipoproteinA" validate:"omitempty,gte=0"`
	LipoproteinAUnit string   `yaml:"lipoproteinAUnit" json:"lipoproteinAUnit"`

	Conditions Conditions `yaml:"conditions" json:"conditions"`
	Townsend   *float64   `yaml:"townsend" json:"townsend"`
}

var profileValidate = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their file names rather than Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

var sexCodes = map[string]Sex{
	"female": SexFemale,
	"f":      SexFemale,
	"male":   SexMale,
	"m":      SexMale,
}

var smokingCodes = map[string]SmokingStatus{
	"":         SmokingNon,
	"non":      SmokingNon,
	"never":    SmokingNon,
	"ex":       SmokingEx,
	"former":   SmokingEx,
	"light":    SmokingLight,
	"moderate": SmokingModerate,
	"heavy":    SmokingHeavy,
}

var diabetesCodes = map[string]DiabetesStatus{
	"":      DiabetesNone,
	"none":  DiabetesNone,
	"no":    DiabetesNone,
	"type1": DiabetesType1,
	"t1":    DiabetesType1,
	"type2": DiabetesType2,
	"t2":    DiabetesType2,
}

// Normalizer converts raw profiles to canonical units and fills derived
// values. It is safe for concurrent use.
type Normalizer struct {
	logger *log.Logger
}

// NewNormalizer returns a normalizer. A nil logger selects the normalizer
// logger.
func NewNormalizer(logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Logger(logging.SourceNormalizer)
	}

	return &Normalizer{logger: logger}
}

// Normalize returns the canonical profile for raw. Unknown ethnicity,
// smoking or diabetes codes are logged and replaced with the baseline
// category; any other problem is a *ValidationError.
func (n *Normalizer) Normalize(raw RawProfile) (Profile, error) {
	if err := checkFinite(raw); err != nil {
		return Profile{}, err
	}

	if err := profileValidate.Struct(raw); err != nil {
		return Profile{}, validationFrom(err)
	}

	sex, ok := sexCodes[code(raw.Sex)]
	if !ok {
		return Profile{}, &ValidationError{Field: "sex", Reason: "must be female or male"}
	}

	p := Profile{
		Age:        *raw.Age,
		Sex:        sex,
		Ethnicity:  n.ethnicity(raw.Ethnicity),
		Smoking:    n.smoking(raw.Smoking),
		Diabetes:   n.diabetes(raw.Diabetes),
		SystolicBP: *raw.SystolicBP,
		Conditions: raw.Conditions,
	}

	if raw.SystolicBPSD != nil {
		p.SystolicBPSD = *raw.SystolicBPSD
	}

	if raw.Townsend != nil {
		p.Townsend = *raw.Townsend
	}

	if err := n.lipids(raw, &p); err != nil {
		return Profile{}, err
	}

	if err := n.body(raw, &p); err != nil {
		return Profile{}, err
	}

	if raw.LipoproteinA != nil {
		u, err := parseUnitField("lipoproteinAUnit", raw.LipoproteinAUnit)
		if err != nil {
			return Profile{}, err
		}

		mg, err := units.LipoproteinAToMg(*raw.LipoproteinA, u)
		if err != nil {
			return Profile{}, &ValidationError{Field: "lipoproteinAUnit", Reason: err.Error()}
		}

		p.LipoproteinA = &mg
	}

	return p, nil
}

func (n *Normalizer) lipids(raw RawProfile, p *Profile) error {
	u, err := parseUnitField("lipidUnit", raw.LipidUnit)
	if err != nil {
		return err
	}

	cholesterol := []struct {
		field string
		value *float64
		dst   *float64
	}{
		{"totalCholesterol", raw.TotalCholesterol, &p.TotalCholesterol},
		{"hdl", raw.HDL, &p.HDL},
		{"ldl", raw.LDL, &p.LDL},
	}

	for _, c := range cholesterol {
		if c.value == nil {
			continue
		}

		mmol, err := units.CholesterolToMmol(*c.value, u)
		if err != nil {
			return &ValidationError{Field: "lipidUnit", Reason: err.Error()}
		}

		*c.dst = mmol
	}

	if raw.Triglycerides != nil {
		mmol, err := units.TriglyceridesToMmol(*raw.Triglycerides, u)
		if err != nil {
			return &ValidationError{Field: "lipidUnit", Reason: err.Error()}
		}

		p.Triglycerides = mmol
	}

	// The ratio is unitless.
	if raw.CholesterolRatio != nil {
		p.CholesterolRatio = *raw.CholesterolRatio
	} else if p.TotalCholesterol > 0 && p.HDL > 0 {
		p.CholesterolRatio = p.TotalCholesterol / p.HDL
	}

	if p.LDL == 0 && p.TotalCholesterol > 0 && p.HDL > 0 && p.Triglycerides > 0 {
		if ldl, ok := units.FriedewaldLDL(p.TotalCholesterol, p.HDL, p.Triglycerides); ok && ldl > 0 {
			p.LDL = ldl
		} else {
			n.logger.Debug("LDL not derived", "triglycerides", p.Triglycerides)
		}
	}

	return nil
}

func (n *Normalizer) body(raw RawProfile, p *Profile) error {
	if raw.BMI != nil {
		p.BMI = *raw.BMI
		return nil
	}

	if raw.Height == nil || raw.Weight == nil {
		return nil
	}

	hu, err := parseUnitField("heightUnit", raw.HeightUnit)
	if err != nil {
		return err
	}

	cm, err := units.HeightToCm(*raw.Height, hu)
	if err != nil {
		return &ValidationError{Field: "heightUnit", Reason: err.Error()}
	}

	wu, err := parseUnitField("weightUnit", raw.WeightUnit)
	if err != nil {
		return err
	}

	kg, err := units.WeightToKg(*raw.Weight, wu)
	if err != nil {
		return &ValidationError{Field: "weightUnit", Reason: err.Error()}
	}

	p.BMI = units.BMI(kg, cm)

	return nil
}

func (n *Normalizer) ethnicity(s string) Ethnicity {
	e, ok := parseEthnicity(s)
	if !ok {
		warnConfiguration(n.logger, &ConfigurationError{Field: "ethnicity", Code: s, Fallback: "white"})
		return EthnicityNotStated
	}

	return e
}

func (n *Normalizer) smoking(s string) SmokingStatus {
	status, ok := smokingCodes[code(s)]
	if !ok {
		warnConfiguration(n.logger, &ConfigurationError{Field: "smoking", Code: s, Fallback: SmokingNon.String()})
		return SmokingNon
	}

	return status
}

func (n *Normalizer) diabetes(s string) DiabetesStatus {
	status, ok := diabetesCodes[strings.ReplaceAll(code(s), "_", "")]
	if !ok {
		warnConfiguration(n.logger, &ConfigurationError{Field: "diabetes", Code: s, Fallback: DiabetesNone.String()})
		return DiabetesNone
	}

	return status
}

func code(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func parseUnitField(field, s string) (units.Unit, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}

	u, err := units.ParseUnit(s)
	if err != nil {
		return "", &ValidationError{Field: field, Reason: err.Error()}
	}

	return u, nil
}

func checkFinite(raw RawProfile) error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"age", raw.Age},
		{"systolicBP", raw.SystolicBP},
		{"systolicBPSD", raw.SystolicBPSD},
		{"bmi", raw.BMI},
		{"height", raw.Height},
		{"weight", raw.Weight},
		{"totalCholesterol", raw.TotalCholesterol},
		{"hdl", raw.HDL},
		{"ldl", raw.LDL},
		{"triglycerides", raw.Triglycerides},
		{"cholesterolRatio", raw.CholesterolRatio},
		{"lipoproteinA", raw.LipoproteinA},
		{"townsend", raw.Townsend},
	}

	for _, f := range fields {
		if f.value != nil && (math.IsNaN(*f.value) || math.IsInf(*f.value, 0)) {
			return &ValidationError{Field: f.name, Reason: "value must be a finite number"}
		}
	}

	return nil
}

func validationFrom(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "profile", Reason: err.Error()}
	}

	fe := fieldErrs[0]

	switch fe.Tag() {
	case "required":
		return missingField(fe.Field())
	case "gt":
		return &ValidationError{Field: fe.Field(), Reason: "value must be greater than " + fe.Param()}
	case "gte":
		return &ValidationError{Field: fe.Field(), Reason: "value must not be below " + fe.Param()}
	}

	return &ValidationError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " check"}
}
