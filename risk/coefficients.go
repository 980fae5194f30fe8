/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import "math"

// Range is a closed interval of accepted values.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether x lies within the range.
func (r Range) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

// Clamp limits x to the range.
func (r Range) Clamp(x float64) float64 {
	return math.Min(math.Max(x, r.Min), r.Max)
}

// FractionalPolynomial is a degree-two fractional polynomial. A power of
// zero means ln(x); a repeated power p yields x^p and x^p·ln(x).
type FractionalPolynomial struct {
	Powers [2]float64
}

// Transform returns both terms for x, which must be positive.
func (fp FractionalPolynomial) Transform(x float64) (float64, float64) {
	first := fpPower(x, fp.Powers[0])
	if fp.Powers[1] == fp.Powers[0] {
		return first, first * math.Log(x)
	}

	return first, fpPower(x, fp.Powers[1])
}

func fpPower(x, p float64) float64 {
	if p == 0 {
		return math.Log(x)
	}

	return math.Pow(x, p)
}

// FraminghamCoefficients are the log-hazard coefficients of the 2008
// General CVD model. Cholesterol terms are fitted on mg/dL.
type FraminghamCoefficients struct {
	LogAge              float64
	LogTotalCholesterol float64
	LogHDL              float64
	LogSBPUntreated     float64
	LogSBPTreated       float64
	Smoker              float64
	Diabetes            float64
}

// FraminghamTable is the sex-specific Framingham model.
type FraminghamTable struct {
	Coefficients FraminghamCoefficients

	// MeanPredictor is Σβ·x̄ over every term, so the centred predictor is
	// Σβ·x − MeanPredictor.
	MeanPredictor    float64
	BaselineSurvival float64
	Age              Range
}

// QRISK3Terms holds one value per continuous QRISK3 term. It carries both
// centring means and coefficients.
type QRISK3Terms struct {
	Age1     float64
	Age2     float64
	BMI1     float64
	BMI2     float64
	Ratio    float64
	SBP      float64
	SBPSD    float64
	Townsend float64
}

// QRISK3Conditions are the linear coefficients of the binary terms.
type QRISK3Conditions struct {
	AtrialFibrillation     float64
	AtypicalAntipsychotics float64
	Corticosteroids        float64
	ErectileDysfunction    float64
	Migraine               float64
	RheumatoidArthritis    float64
	ChronicKidneyDisease   float64
	SevereMentalIllness    float64
	SLE                    float64
	TreatedHypertension    float64
	Type1Diabetes          float64
	Type2Diabetes          float64
	FamilyHistoryCVD       float64
}

// QRISK3AgeInteractions are the coefficients of one centred age term
// multiplied by each interacting covariate.
type QRISK3AgeInteractions struct {
	Smoking [5]float64

	AtrialFibrillation   float64
	Corticosteroids      float64
	ErectileDysfunction  float64
	Migraine             float64
	ChronicKidneyDisease float64
	SLE                  float64
	TreatedHypertension  float64
	Type1Diabetes        float64
	Type2Diabetes        float64
	FamilyHistoryCVD     float64

	BMI1     float64
	BMI2     float64
	SBP      float64
	Townsend float64
}

// QRISK3Domain holds the validated input ranges of QRISK3.
type QRISK3Domain struct {
	Age      Range
	BMI      Range // clamped, not rejected
	Ratio    Range
	SBP      Range
	SBPSD    Range
	Townsend Range
}

// QRISK3Table is the sex-specific QRISK3 model.
type QRISK3Table struct {
	BaselineSurvival float64

	// Age and BMI are transformed after dividing by ten.
	Age FractionalPolynomial
	BMI FractionalPolynomial

	Means  QRISK3Terms
	Linear QRISK3Terms

	// Ethnicity is indexed by QRISK3 ethnic group (1-9); index 0 is unused.
	Ethnicity [10]float64
	Smoking   [5]float64

	Conditions QRISK3Conditions
	Age1       QRISK3AgeInteractions
	Age2       QRISK3AgeInteractions
	Domain     QRISK3Domain
}

// CoefficientTable bundles every model for both sexes. It holds only
// scalars and arrays, so copies never share state.
type CoefficientTable struct {
	FraminghamFemale FraminghamTable
	FraminghamMale   FraminghamTable
	QRISK3Female     QRISK3Table
	QRISK3Male       QRISK3Table
}

// Framingham returns the Framingham table for sex.
func (t CoefficientTable) Framingham(sex Sex) FraminghamTable {
	if sex == SexFemale {
		return t.FraminghamFemale
	}

	return t.FraminghamMale
}

// QRISK3 returns the QRISK3 table for sex.
func (t CoefficientTable) QRISK3(sex Sex) QRISK3Table {
	if sex == SexFemale {
		return t.QRISK3Female
	}

	return t.QRISK3Male
}

// DefaultCoefficients returns a copy of the published coefficient tables.
func DefaultCoefficients() CoefficientTable {
	return publishedCoefficients
}

var framinghamAge = Range{Min: 30, Max: 74}

var qrisk3Domain = QRISK3Domain{
	Age:      Range{Min: 25, Max: 84},
	BMI:      Range{Min: 15, Max: 47},
	Ratio:    Range{Min: 1, Max: 12},
	SBP:      Range{Min: 70, Max: 210},
	SBPSD:    Range{Min: 0, Max: 40},
	Townsend: Range{Min: -7, Max: 11},
}

var publishedCoefficients = CoefficientTable{
	// ===== FRAMINGHAM GENERAL CVD 2008 =====
	// D'Agostino et al., Circulation 2008;117:743-753, Table 2.
	FraminghamFemale: FraminghamTable{
		Coefficients: FraminghamCoefficients{
			LogAge:              2.32888,
			LogTotalCholesterol: 1.20904,
			LogHDL:              -0.70833,
			LogSBPUntreated:     2.76157,
			LogSBPTreated:       2.82263,
			Smoker:              0.52873,
			Diabetes:            0.69154,
		},
		MeanPredictor:    26.1931,
		BaselineSurvival: 0.95012,
		Age:              framinghamAge,
	},
	FraminghamMale: FraminghamTable{
		Coefficients: FraminghamCoefficients{
			LogAge:              3.06117,
			LogTotalCholesterol: 1.12370,
			LogHDL:              -0.93263,
			LogSBPUntreated:     1.93303,
			LogSBPTreated:       1.99881,
			Smoker:              0.65451,
			Diabetes:            0.57367,
		},
		MeanPredictor:    23.9802,
		BaselineSurvival: 0.88936,
		Age:              framinghamAge,
	},

	// ===== QRISK3-2017 FEMALE =====
	QRISK3Female: QRISK3Table{
		BaselineSurvival: 0.988876402378082,
		Age:              FractionalPolynomial{Powers: [2]float64{-2, 1}},
		BMI:              FractionalPolynomial{Powers: [2]float64{-2, -2}},
		Means: QRISK3Terms{
			Age1:     0.053274843841791,
			Age2:     4.332503318786621,
			BMI1:     0.154946178197861,
			BMI2:     0.144462317228317,
			Ratio:    3.476326465606690,
			SBP:      123.130012512207030,
			SBPSD:    9.002537727355957,
			Townsend: 0.392308831214905,
		},
		Linear: QRISK3Terms{
			Age1:     -8.1388109247726188,
			Age2:     0.79733376689699098,
			BMI1:     0.29236092275460052,
			BMI2:     -4.1513300213837665,
			Ratio:    0.15338035820802554,
			SBP:      0.013131488407103424,
			SBPSD:    0.0078894541014586095,
			Townsend: 0.077223790588590108,
		},
		Ethnicity: [10]float64{
			0,
			0,
			0.28040314332995425,
			0.56298994142075398,
			0.29590000851116516,
			0.072785379877982545,
			-0.17072135508857317,
			-0.39371043314874971,
			-0.32632495283530272,
			-0.17127056883241784,
		},
		Smoking: [5]float64{
			0,
			0.13386833786546262,
			0.56200858012438537,
			0.66749593377502547,
			0.84948177644830847,
		},
		Conditions: QRISK3Conditions{
			AtrialFibrillation:     1.5923354969269663,
			AtypicalAntipsychotics: 0.25237642070115557,
			Corticosteroids:        0.59520725304601851,
			Migraine:               0.301267260870345,
			RheumatoidArthritis:    0.21364803435181942,
			ChronicKidneyDisease:   0.65194569493845833,
			SevereMentalIllness:    0.12555308058820178,
			SLE:                    0.75880938654267693,
			TreatedHypertension:    0.50931593683423004,
			Type1Diabetes:          1.7267977510537347,
			Type2Diabetes:          1.0688773244615468,
			FamilyHistoryCVD:       0.45445319020896213,
		},
		Age1: QRISK3AgeInteractions{
			Smoking: [5]float64{
				0,
				-4.7057161785851891,
				-2.7430383403573337,
				-0.86608088829392182,
				0.90241562369710648,
			},
			AtrialFibrillation:   19.938034889546561,
			Corticosteroids:      -0.98408045235936281,
			Migraine:             1.7634979587872999,
			ChronicKidneyDisease: -3.5874047731694114,
			SLE:                  19.690303738638292,
			TreatedHypertension:  11.872809733921812,
			Type1Diabetes:        -1.2444332714320747,
			Type2Diabetes:        6.8652342000009599,
			FamilyHistoryCVD:     0.99467807940435127,
			BMI1:                 23.802623412141742,
			BMI2:                 -71.184947692087007,
			SBP:                  0.034131842338615485,
			Townsend:             -1.0301180802035639,
		},
		Age2: QRISK3AgeInteractions{
			Smoking: [5]float64{
				0,
				-0.075589244643193026,
				-0.11951192874867074,
				-0.10366306397571923,
				-0.13991853591718389,
			},
			AtrialFibrillation:   -0.076182651011162505,
			Corticosteroids:      -0.12005364946742472,
			Migraine:             -0.065586917898699859,
			ChronicKidneyDisease: -0.22688873086442507,
			SLE:                  0.077347949679016273,
			TreatedHypertension:  0.00096857823588174436,
			Type1Diabetes:        -0.28724064624488949,
			Type2Diabetes:        -0.097112252590695489,
			FamilyHistoryCVD:     -0.076885051698423038,
			BMI1:                 0.52369958933664429,
			BMI2:                 0.045744190122323759,
			SBP:                  -0.0015082501423272358,
			Townsend:             -0.031593414674962329,
		},
		Domain: qrisk3Domain,
	},

	// ===== QRISK3-2017 MALE =====
	QRISK3Male: QRISK3Table{
		BaselineSurvival: 0.977268040180206,
		Age:              FractionalPolynomial{Powers: [2]float64{-1, 3}},
		BMI:              FractionalPolynomial{Powers: [2]float64{-2, -2}},
		Means: QRISK3Terms{
			Age1:     0.234766781330109,
			Age2:     77.284080505371094,
			BMI1:     0.149176135659218,
			BMI2:     0.141913309693336,
			Ratio:    4.300998687744141,
			SBP:      128.571578979492190,
			SBPSD:    8.756621360778809,
			Townsend: 0.526304900646210,
		},
		Linear: QRISK3Terms{
			Age1:     -17.839781666005575,
			Age2:     0.0022964880605765492,
			BMI1:     2.4562776660536358,
			BMI2:     -8.3011122314711354,
			Ratio:    0.17340196856327111,
			SBP:      0.012910126542553305,
			SBPSD:    0.010251914291290456,
			Townsend: 0.033268201277287295,
		},
		Ethnicity: [10]float64{
			0,
			0,
			0.27719248760099509,
			0.47446360714931268,
			0.52961729919689371,
			0.035100159186299017,
			-0.35807899669327919,
			-0.4005648523216514,
			-0.41522792889830173,
			-0.26321348134749967,
		},
		Smoking: [5]float64{
			0,
			0.19128222863388983,
			0.55241588192645552,
			0.63835053027506072,
			0.78983819881858019,
		},
		Conditions: QRISK3Conditions{
			AtrialFibrillation:     0.88209236928054657,
			AtypicalAntipsychotics: 0.13046879855173513,
			Corticosteroids:        0.45485399750445543,
			ErectileDysfunction:    0.22251859086705383,
			Migraine:               0.25584178074159913,
			RheumatoidArthritis:    0.20970658013956567,
			ChronicKidneyDisease:   0.71853261288274384,
			SevereMentalIllness:    0.12133039882047164,
			SLE:                    0.4401572174457522,
			TreatedHypertension:    0.51659871082695474,
			Type1Diabetes:          1.2343425521675175,
			Type2Diabetes:          0.85942071430932221,
			FamilyHistoryCVD:       0.54055469009390156,
		},
		Age1: QRISK3AgeInteractions{
			Smoking: [5]float64{
				0,
				-0.21011133933516346,
				0.75268676447503191,
				0.99315887556405791,
				2.1331163414389076,
			},
			AtrialFibrillation:   3.4896675530623207,
			Corticosteroids:      1.1708133653489108,
			ErectileDysfunction:  -1.506400985745431,
			Migraine:             2.3491159871402441,
			ChronicKidneyDisease: -0.50656716327223694,
			TreatedHypertension:  6.5114581098532671,
			Type1Diabetes:        5.3379864878006531,
			Type2Diabetes:        3.6461817406221311,
			FamilyHistoryCVD:     2.7808628508531887,
			BMI1:                 31.004952956033886,
			BMI2:                 -111.29157184391643,
			SBP:                  0.018858524469865853,
			Townsend:             -0.1007554870063731,
		},
		Age2: QRISK3AgeInteractions{
			Smoking: [5]float64{
				0,
				-0.00049854870275326121,
				-0.00079875633317385414,
				-0.00083706184266251296,
				-0.00078400319155637289,
			},
			AtrialFibrillation:   -0.00034995608340636049,
			Corticosteroids:      -0.0002496045095297166,
			ErectileDysfunction:  -0.0011058218441227373,
			Migraine:             0.00019896446041478631,
			ChronicKidneyDisease: -0.0018325930166498813,
			TreatedHypertension:  0.00063838053104165013,
			Type1Diabetes:        0.0006409780808752897,
			Type2Diabetes:        -0.00024695695588868315,
			FamilyHistoryCVD:     -0.00024791809907396037,
			BMI1:                 0.0050380102356322029,
			BMI2:                 -0.013074483002524319,
			SBP:                  -0.00001271874191588457,
			Townsend:             -0.000093299642323272888,
		},
		Domain: qrisk3Domain,
	},
}
