/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"fmt"
	"strings"
)

// Model identifies a risk algorithm.
type Model string

// Model values.
const (
	ModelFramingham Model = "framingham-2008"
	ModelQRISK3     Model = "qrisk3-2017"
)

// Models lists every supported model.
func Models() []Model {
	return []Model{ModelFramingham, ModelQRISK3}
}

// ParseModel accepts a model identifier or its short name.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "framingham", string(ModelFramingham), "frs":
		return ModelFramingham, nil
	case "qrisk3", string(ModelQRISK3), "qrisk":
		return ModelQRISK3, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// Modifier is a multiplicative adjustment applied to a base risk.
type Modifier struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// RiskResult is the outcome of one calculation.
type RiskResult struct {
	Model               Model      `json:"model"`
	BaseRiskPercent     float64    `json:"baseRiskPercent"`
	ModifiedRiskPercent float64    `json:"modifiedRiskPercent"`
	Modifiers           []Modifier `json:"modifiers"`
	RiskCategory        string     `json:"riskCategory"`
	HeartAge            float64    `json:"heartAge"`
	Input               Profile    `json:"input"`
}
