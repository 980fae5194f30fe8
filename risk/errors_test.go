// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package risk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFailureFrom(t *testing.T) {
	t.Parallel()

	validation := outOfRange("age", 10, Range{Min: 30, Max: 74})

	tests := []struct {
		name string
		err  error
		want *Failure
	}{
		{"nil", nil, nil},
		{
			name: "validation",
			err:  validation,
			want: &Failure{Kind: FailureValidation, Field: "age", Message: validation.Error()},
		},
		{
			name: "wrapped validation",
			err:  fmt.Errorf("profile 3: %w", validation),
			want: &Failure{Kind: FailureValidation, Field: "age", Message: "profile 3: " + validation.Error()},
		},
		{
			name: "computation",
			err:  &ComputationError{Model: ModelQRISK3, Stage: "survival"},
			want: &Failure{Kind: FailureComputation, Message: "qrisk3-2017: non-finite survival (0)"},
		},
		{
			name: "internal",
			err:  errors.New("boom"),
			want: &Failure{Kind: FailureInternal, Message: "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, FailureFrom(tt.err)); diff != "" {
				t.Fatalf("failure mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigurationErrorWrapsSentinel(t *testing.T) {
	t.Parallel()

	err := &ConfigurationError{Field: "ethnicity", Code: "atlantean", Fallback: "white"}

	if !errors.Is(err, ErrConfiguration) {
		t.Fatal("expected ConfigurationError to wrap ErrConfiguration")
	}

	if got, want := err.Error(), `unrecognised ethnicity "atlantean", using "white"`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseModel(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Model{
		"framingham":      ModelFramingham,
		"FRS":             ModelFramingham,
		"framingham-2008": ModelFramingham,
		" QRISK3 ":        ModelQRISK3,
		"qrisk3-2017":     ModelQRISK3,
	} {
		got, err := ParseModel(input)
		if err != nil {
			t.Fatalf("ParseModel(%q): unexpected error: %v", input, err)
		}

		if got != want {
			t.Fatalf("ParseModel(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseModel("score2"); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

func TestParseEthnicity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Ethnicity
		ok    bool
	}{
		{"", EthnicityNotStated, true},
		{"Not Stated", EthnicityNotStated, true},
		{"white-british", EthnicityWhite, true},
		{"Asian Other", EthnicityAsianOther, true},
		{"Mixed White Black Caribbean", EthnicityMixedWhiteBlackCaribbean, true},
		{"martian", Ethnicity("martian"), false},
	}

	for _, tt := range tests {
		got, ok := parseEthnicity(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("parseEthnicity(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}

	if got := EthnicityMixedWhiteAsian.qriskGroup(); got != qriskOther {
		t.Fatalf("expected mixed white/asian in the other group, got %d", got)
	}
}
