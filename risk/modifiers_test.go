// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package risk

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T {
	return &v
}

func TestModifierStageWithoutModifiersKeepsBase(t *testing.T) {
	t.Parallel()

	stage := DefaultModifierStage()
	base := 11.347651821085003

	got, mods := stage.Apply(base, scenarioA())
	if got != base {
		t.Fatalf("expected modified risk to equal base exactly, got %v", got)
	}

	if mods == nil || len(mods) != 0 {
		t.Fatalf("expected empty non-nil modifiers, got %#v", mods)
	}
}

func TestModifierStageLipoproteinATiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lpa  *float64
		want []Modifier
	}{
		{nil, []Modifier{}},
		{ptr(29.9), []Modifier{}},
		{ptr(30.0), []Modifier{{Name: ModifierLipoproteinA, Factor: 1.2}}},
		{ptr(50.0), []Modifier{{Name: ModifierLipoproteinA, Factor: 1.4}}},
		{ptr(99.9), []Modifier{{Name: ModifierLipoproteinA, Factor: 1.4}}},
		{ptr(100.0), []Modifier{{Name: ModifierLipoproteinA, Factor: 1.7}}},
		{ptr(250.0), []Modifier{{Name: ModifierLipoproteinA, Factor: 1.7}}},
	}

	stage := DefaultModifierStage()

	for _, tt := range tests {
		p := scenarioA()
		p.LipoproteinA = tt.lpa

		if diff := cmp.Diff(tt.want, stage.Modifiers(p)); diff != "" {
			t.Fatalf("modifiers mismatch for Lp(a) %v (-want +got):\n%s", tt.lpa, diff)
		}
	}
}

func TestModifierStageCompoundsFactors(t *testing.T) {
	t.Parallel()

	p := scenarioA()
	p.LipoproteinA = ptr(120.0)
	p.Ethnicity = EthnicityPakistani
	p.Conditions.FamilyHistoryCVD = true

	got, mods := DefaultModifierStage().Apply(11.347651821085003, p)

	want := []Modifier{
		{Name: ModifierLipoproteinA, Factor: 1.7},
		{Name: ModifierFamilyHistory, Factor: 1.6},
		{Name: ModifierSouthAsian, Factor: 1.5},
	}

	if diff := cmp.Diff(want, mods); diff != "" {
		t.Fatalf("modifiers mismatch (-want +got):\n%s", diff)
	}

	assertFloatClose(t, got, 46.29841943002682)
}

func TestModifierStageCapsModifiedRisk(t *testing.T) {
	t.Parallel()

	p := scenarioA()
	p.LipoproteinA = ptr(150.0)
	p.Ethnicity = EthnicityIndian
	p.Conditions.FamilyHistoryCVD = true

	got, _ := DefaultModifierStage().Apply(60, p)
	if got != 99.9 {
		t.Fatalf("expected modified risk capped at 99.9, got %v", got)
	}
}

func TestModifierStageSouthAsianAncestry(t *testing.T) {
	t.Parallel()

	stage := DefaultModifierStage()

	for _, e := range []Ethnicity{EthnicityIndian, EthnicityPakistani, EthnicityBangladeshi, EthnicityAsianOther} {
		p := scenarioA()
		p.Ethnicity = e

		got, _ := stage.Apply(10, p)
		assertFloatClose(t, got, 15)
	}

	for _, e := range []Ethnicity{EthnicityChinese, EthnicityMixedWhiteAsian, EthnicityNotStated} {
		p := scenarioA()
		p.Ethnicity = e

		if got, _ := stage.Apply(10, p); got != 10 {
			t.Fatalf("%q: expected no modifier, got %v", e, got)
		}
	}
}
