package mlx90621

import (
	"math"

	"golang.org/x/xerrors"
)

// Plausible ambient range. Anything outside it means the EEPROM or PTAT read
// was bad and initialization has to start over.
const (
	MinAmbient = -40.0
	MaxAmbient = 60.0
)

// Coefficients holds the calibration values derived from the EEPROM once the
// sensor is initialized.
type Coefficients struct {
	ResolutionComp float64

	Emissivity float64
	ACommon    int
	AIScale    int
	BIScale    int

	ACP     float64
	BCP     float64
	AlphaCP float64
	TGC     float64
	KsTa    float64

	Alpha0          float64
	DeltaAlphaScale int
}

func resolutionComp(resolution int) float64 {
	return math.Pow(2, float64(3-resolution))
}

func pow2(e int) float64 {
	return math.Pow(2, float64(e))
}

// ambient solves the chip temperature from the PTAT reading:
//
//	k_t2*x² + k_t1*x + (v_th - ptat) = 0, Ta = x + 25
func ambient(e *EEPROM, resolution, ptat int) (float64, error) {
	rc := resolutionComp(resolution)

	vth := float64(e.value(fieldVTh)) / rc
	kt1 := float64(e.value(fieldKT1)) / (pow2(e.value(fieldKT1Scale)) * rc)
	kt2 := float64(e.value(fieldKT2)) / (pow2(e.value(fieldKT2Scale)) * rc)

	disc := kt1*kt1 - 4*kt2*(vth-float64(ptat))
	if kt2 == 0 || disc < 0 {
		return 0, xerrors.Errorf("ptat %d, k_t1 %g, k_t2 %g: %w", ptat, kt1, kt2, ErrNegativeDiscriminant)
	}

	return (-kt1+math.Sqrt(disc))/(2*kt2) + 25.0, nil
}

func plausibleAmbient(ta float64) bool {
	return ta >= MinAmbient && ta <= MaxAmbient
}

func deriveCoefficients(e *EEPROM, resolution int) Coefficients {
	rc := resolutionComp(resolution)
	c := Coefficients{
		ResolutionComp:  rc,
		Emissivity:      float64(e.value(fieldEmissivity)) / 32768.0,
		ACommon:         e.value(fieldACommon),
		AIScale:         e.value(fieldAIScale),
		BIScale:         e.value(fieldBIScale),
		DeltaAlphaScale: e.value(fieldDeltaAlphaScale),
	}

	alpha0Scale := pow2(e.value(fieldAlpha0Scale))
	// Kept fractional. Rounding it to an integer zeroes it on every real
	// part, since it is of order 1e-8, and drops the TGC term from alpha.
	c.AlphaCP = float64(e.value(fieldAlphaCP)) / (alpha0Scale * rc)
	c.ACP = float64(e.value(fieldACP)) / rc
	c.BCP = float64(e.value(fieldBCP)) / (pow2(c.BIScale) * rc)
	c.TGC = float64(e.value(fieldTGC)) / 32.0
	c.KsTa = float64(e.value(fieldKsTa)) / pow2(20)
	c.Alpha0 = float64(e.value(fieldAlpha0)) / alpha0Scale

	return c
}
