// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package risk

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// scenarioB is a 55-year-old white man with BMI 28, SBP 130 (SD 8) and a
// cholesterol ratio of 4.5.
func scenarioB() Profile {
	return Profile{
		Age:              55,
		Sex:              SexMale,
		Ethnicity:        EthnicityWhite,
		Smoking:          SmokingNon,
		Diabetes:         DiabetesNone,
		BMI:              28,
		SystolicBP:       130,
		SystolicBPSD:     8,
		CholesterolRatio: 4.5,
	}
}

func newTestQRISK3() *QRISK3Engine {
	return NewQRISK3Engine(DefaultCoefficients(), quietLogger())
}

func TestQRISK3Fixtures(t *testing.T) {
	t.Parallel()

	female := scenarioB()
	female.Sex = SexFemale

	tests := []struct {
		name    string
		profile Profile
		want    float64
	}{
		{"scenario B", scenarioB(), 7.251080417107492},
		{"scenario B female", female, 4.089881168759179},
		{
			name: "indian woman with migraine and treated hypertension",
			profile: Profile{
				Age:              50,
				Sex:              SexFemale,
				Ethnicity:        EthnicityIndian,
				Smoking:          SmokingLight,
				BMI:              27,
				SystolicBP:       128,
				SystolicBPSD:     6,
				CholesterolRatio: 4.0,
				Townsend:         1,
				Conditions:       Conditions{Migraine: true, TreatedHypertension: true},
			},
			want: 9.620093855011703,
		},
		{
			name: "black african man with type 2 diabetes",
			profile: Profile{
				Age:              45,
				Sex:              SexMale,
				Ethnicity:        EthnicityBlackAfrican,
				Smoking:          SmokingEx,
				Diabetes:         DiabetesType2,
				BMI:              24,
				SystolicBP:       122,
				SystolicBPSD:     5,
				CholesterolRatio: 3.8,
				Townsend:         -2,
				Conditions:       Conditions{ErectileDysfunction: true},
			},
			want: 4.83417135104498,
		},
	}

	engine := newTestQRISK3()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.Risk(tt.profile)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertFloatClose(t, got, tt.want)
		})
	}
}

func TestQRISK3DerivesRatioFromPanel(t *testing.T) {
	t.Parallel()

	p := scenarioB()
	p.CholesterolRatio = 0
	p.TotalCholesterol = 5.4
	p.HDL = 1.2

	got, err := newTestQRISK3().Risk(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertFloatClose(t, got, 7.251080417107492)
}

func TestQRISK3ClampsBMIWithWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	engine := NewQRISK3Engine(DefaultCoefficients(), log.New(&buf))

	high := scenarioB()
	high.BMI = 55

	capped := scenarioB()
	capped.BMI = 47

	got, err := engine.Risk(high)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, err := engine.Risk(capped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != want {
		t.Fatalf("expected BMI 55 to be clamped to 47: got %v, want %v", got, want)
	}

	if !strings.Contains(buf.String(), "BMI outside model range") {
		t.Fatalf("expected clamping warning, got %q", buf.String())
	}
}

func TestQRISK3RejectsInvalidProfiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Profile)
		field  string
	}{
		{"scenario C age", func(p *Profile) { p.Age = 10 }, "age"},
		{"age above domain", func(p *Profile) { p.Age = 85 }, "age"},
		{"missing sex", func(p *Profile) { p.Sex = "other" }, "sex"},
		{"missing BMI", func(p *Profile) { p.BMI = 0 }, "bmi"},
		{"missing ratio", func(p *Profile) { p.CholesterolRatio = 0 }, "cholesterolRatio"},
		{"ratio too high", func(p *Profile) { p.CholesterolRatio = 13 }, "cholesterolRatio"},
		{"SBP too low", func(p *Profile) { p.SystolicBP = 69 }, "systolicBP"},
		{"SBP deviation too high", func(p *Profile) { p.SystolicBPSD = 41 }, "systolicBPSD"},
		{"Townsend too high", func(p *Profile) { p.Townsend = 12 }, "townsend"},
		{"Townsend NaN", func(p *Profile) { p.Townsend = math.NaN() }, "townsend"},
	}

	engine := newTestQRISK3()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := scenarioB()
			tt.modify(&p)

			got, err := engine.Risk(p)
			if err == nil {
				t.Fatalf("expected validation error, got risk %v", got)
			}

			assertValidationField(t, err, tt.field)
		})
	}
}

func TestQRISK3SubstitutesUnknownCategories(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	engine := NewQRISK3Engine(DefaultCoefficients(), log.New(&buf))

	p := scenarioB()
	p.Smoking = SmokingStatus(9)
	p.Diabetes = DiabetesStatus(7)

	got, err := engine.Risk(p)
	if err != nil {
		t.Fatalf("unknown categories must not fail: %v", err)
	}

	assertFloatClose(t, got, 7.251080417107492)

	out := buf.String()
	for _, field := range []string{"smoking", "diabetes"} {
		if !strings.Contains(out, "field="+field) {
			t.Fatalf("expected a warning for %s, got %q", field, out)
		}
	}
}

func TestQRISK3EthnicityBaseline(t *testing.T) {
	t.Parallel()

	engine := newTestQRISK3()

	white, err := engine.Risk(scenarioB())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range []Ethnicity{EthnicityNotStated, EthnicityWhiteIrish, EthnicityWhiteOther, Ethnicity("martian")} {
		p := scenarioB()
		p.Ethnicity = e

		got, err := engine.Risk(p)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", e, err)
		}

		if got != white {
			t.Fatalf("%q: expected baseline risk %v, got %v", e, white, got)
		}
	}

	p := scenarioB()
	p.Ethnicity = EthnicityBangladeshi

	got, err := engine.Risk(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got <= white {
		t.Fatalf("expected Bangladeshi risk %v above baseline %v", got, white)
	}
}

func TestQRISK3Monotonicity(t *testing.T) {
	t.Parallel()

	female := scenarioB()
	female.Sex = SexFemale

	smoker := female
	smoker.Smoking = SmokingLight
	smoker.BMI = 24
	smoker.CholesterolRatio = 4.0
	smoker.SystolicBP = 125
	smoker.SystolicBPSD = 5

	elderly := female
	elderly.Age = 80

	young := female
	young.Age = 30

	panel := scenarioB()
	panel.CholesterolRatio = 0
	panel.TotalCholesterol = 6
	panel.HDL = 1.2

	sweeps := []struct {
		name       string
		base       Profile
		from, to   float64
		step       float64
		set        func(*Profile, float64)
		increasing bool
	}{
		{"male age", scenarioB(), 25, 84, 0.5, func(p *Profile, v float64) { p.Age = v }, true},
		{"female age", female, 25, 84, 0.5, func(p *Profile, v float64) { p.Age = v }, true},
		{"female smoker age", smoker, 25, 84, 0.5, func(p *Profile, v float64) { p.Age = v }, true},
		{"male SBP", scenarioB(), 70, 210, 1, func(p *Profile, v float64) { p.SystolicBP = v }, true},
		{"elderly female SBP", elderly, 70, 210, 1, func(p *Profile, v float64) { p.SystolicBP = v }, true},
		{"young female SBP", young, 70, 210, 1, func(p *Profile, v float64) { p.SystolicBP = v }, true},
		{"total cholesterol", panel, 3, 10, 0.1, func(p *Profile, v float64) { p.TotalCholesterol = v }, true},
		{"HDL", panel, 0.6, 3, 0.05, func(p *Profile, v float64) { p.HDL = v }, false},
	}

	engine := newTestQRISK3()

	for _, sweep := range sweeps {
		t.Run(sweep.name, func(t *testing.T) {
			t.Parallel()

			prev := math.NaN()

			for v := sweep.from; v <= sweep.to; v += sweep.step {
				p := sweep.base
				sweep.set(&p, v)

				got, err := engine.Risk(p)
				if err != nil {
					t.Fatalf("%s=%v: unexpected error: %v", sweep.name, v, err)
				}

				if !math.IsNaN(prev) {
					if sweep.increasing && got < prev {
						t.Fatalf("%s=%v: risk fell from %v to %v", sweep.name, v, prev, got)
					}

					if !sweep.increasing && got > prev {
						t.Fatalf("%s=%v: risk rose from %v to %v", sweep.name, v, prev, got)
					}
				}

				prev = got
			}
		})
	}
}

func TestQRISK3RiskIsBounded(t *testing.T) {
	t.Parallel()

	extreme := Profile{
		Age:              84,
		Sex:              SexMale,
		Ethnicity:        EthnicityOther,
		Smoking:          SmokingHeavy,
		Diabetes:         DiabetesType1,
		BMI:              47,
		SystolicBP:       210,
		SystolicBPSD:     40,
		CholesterolRatio: 12,
		Townsend:         11,
		Conditions: Conditions{
			AtrialFibrillation:   true,
			ChronicKidneyDisease: true,
		},
	}

	got, err := newTestQRISK3().Risk(extreme)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got < 0 || got > 100 {
		t.Fatalf("risk %v outside [0,100]", got)
	}
}
