/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import "strings"

// Ethnicity is a self-reported ethnicity code. The empty value means
// "not stated" and is treated like White.
type Ethnicity string

// Ethnicity codes follow the sixteen UK census categories.
const (
	EthnicityNotStated                Ethnicity = ""
	EthnicityWhite                    Ethnicity = "white"
	EthnicityWhiteIrish               Ethnicity = "white_irish"
	EthnicityWhiteOther               Ethnicity = "white_other"
	EthnicityMixedWhiteBlackCaribbean Ethnicity = "mixed_white_black_caribbean"
	EthnicityMixedWhiteBlackAfrican   Ethnicity = "mixed_white_black_african"
	EthnicityMixedWhiteAsian          Ethnicity = "mixed_white_asian"
	EthnicityMixedOther               Ethnicity = "mixed_other"
	EthnicityIndian                   Ethnicity = "indian"
	EthnicityPakistani                Ethnicity = "pakistani"
	EthnicityBangladeshi              Ethnicity = "bangladeshi"
	EthnicityAsianOther               Ethnicity = "asian_other"
	EthnicityBlackCaribbean           Ethnicity = "black_caribbean"
	EthnicityBlackAfrican             Ethnicity = "black_african"
	EthnicityBlackOther               Ethnicity = "black_other"
	EthnicityChinese                  Ethnicity = "chinese"
	EthnicityOther                    Ethnicity = "other"
)

// QRISK3 ethnic groups. Index 0 is unused by the published arrays.
const (
	qriskWhiteOrNotStated = 1
	qriskIndian           = 2
	qriskPakistani        = 3
	qriskBangladeshi      = 4
	qriskOtherAsian       = 5
	qriskBlackCaribbean   = 6
	qriskBlackAfrican     = 7
	qriskChinese          = 8
	qriskOther            = 9
)

var ethnicityGroups = map[Ethnicity]int{
	EthnicityNotStated:                qriskWhiteOrNotStated,
	EthnicityWhite:                    qriskWhiteOrNotStated,
	EthnicityWhiteIrish:               qriskWhiteOrNotStated,
	EthnicityWhiteOther:               qriskWhiteOrNotStated,
	EthnicityMixedWhiteBlackCaribbean: qriskOther,
	EthnicityMixedWhiteBlackAfrican:   qriskOther,
	EthnicityMixedWhiteAsian:          qriskOther,
	EthnicityMixedOther:               qriskOther,
	EthnicityIndian:                   qriskIndian,
	EthnicityPakistani:                qriskPakistani,
	EthnicityBangladeshi:              qriskBangladeshi,
	EthnicityAsianOther:               qriskOtherAsian,
	EthnicityBlackCaribbean:           qriskBlackCaribbean,
	EthnicityBlackAfrican:             qriskBlackAfrican,
	EthnicityBlackOther:               qriskOther,
	EthnicityChinese:                  qriskChinese,
	EthnicityOther:                    qriskOther,
}

// Known reports whether e is a recognised code.
func (e Ethnicity) Known() bool {
	_, ok := ethnicityGroups[e]
	return ok
}

// SouthAsian reports whether e counts as South-Asian ancestry.
func (e Ethnicity) SouthAsian() bool {
	switch e {
	case EthnicityIndian, EthnicityPakistani, EthnicityBangladeshi, EthnicityAsianOther:
		return true
	}

	return false
}

// qriskGroup maps e to its QRISK3 ethnic group, falling back to the White
// baseline for unknown codes.
func (e Ethnicity) qriskGroup() int {
	if g, ok := ethnicityGroups[e]; ok {
		return g
	}

	return qriskWhiteOrNotStated
}

var ethnicityAliases = map[string]Ethnicity{
	"not_stated":    EthnicityNotStated,
	"unknown":       EthnicityNotStated,
	"white_british": EthnicityWhite,
}

// parseEthnicity accepts codes case-insensitively with spaces or dashes.
func parseEthnicity(s string) (Ethnicity, bool) {
	code := strings.ToLower(strings.TrimSpace(s))
	code = strings.NewReplacer(" ", "_", "-", "_").Replace(code)

	if e, ok := ethnicityAliases[code]; ok {
		return e, true
	}

	e := Ethnicity(code)

	return e, e.Known()
}
