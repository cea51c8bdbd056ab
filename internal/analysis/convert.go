package analysis

import (
	"math"
	"math/cmplx"

	"github.com/user/touchstone_go/internal/parser"
)

// FrequencyMultiplier returns the factor that converts unit to Hz.
func FrequencyMultiplier(unit parser.FrequencyUnit) float64 {
	switch unit {
	case parser.KHz:
		return 1e3
	case parser.MHz:
		return 1e6
	case parser.GHz:
		return 1e9
	default:
		return 1
	}
}

// ToHz converts a frequency expressed in unit to Hz.
func ToHz(freq float64, unit parser.FrequencyUnit) float64 {
	return freq * FrequencyMultiplier(unit)
}

// ToComplex interprets a pair under format.
func ToComplex(p parser.Pair, format parser.ParameterFormat) complex128 {
	switch format {
	case parser.RealImaginary:
		return complex(p.LHS, p.RHS)
	case parser.DecibelAngle:
		return cmplx.Rect(math.Pow(10, p.LHS/20), degToRad(p.RHS))
	default:
		return cmplx.Rect(p.LHS, degToRad(p.RHS))
	}
}

// FromComplex expresses c as a pair in format. Angles are in degrees in (-180, 180].
func FromComplex(c complex128, format parser.ParameterFormat) parser.Pair {
	switch format {
	case parser.RealImaginary:
		return parser.Pair{LHS: real(c), RHS: imag(c)}
	case parser.DecibelAngle:
		return parser.Pair{LHS: 20 * math.Log10(cmplx.Abs(c)), RHS: radToDeg(cmplx.Phase(c))}
	default:
		return parser.Pair{LHS: cmplx.Abs(c), RHS: radToDeg(cmplx.Phase(c))}
	}
}

// ConvertPair re-expresses a pair from one representation in another.
func ConvertPair(p parser.Pair, from, to parser.ParameterFormat) parser.Pair {
	if from == to {
		return p
	}
	return FromComplex(ToComplex(p, from), to)
}

// MagnitudeDB returns the entry's magnitude in dB. A zero magnitude yields -Inf.
func MagnitudeDB(p parser.Pair, format parser.ParameterFormat) float64 {
	switch format {
	case parser.DecibelAngle:
		return p.LHS
	case parser.RealImaginary:
		return 20 * math.Log10(math.Hypot(p.LHS, p.RHS))
	default:
		return 20 * math.Log10(math.Abs(p.LHS))
	}
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
