package parser

import "strings"

// FrequencyUnit is the unit every frequency column in a file is expressed in.
type FrequencyUnit int

const (
	Hz FrequencyUnit = iota
	KHz
	MHz
	GHz
)

// ParameterType is the network parameter family stored in a file.
type ParameterType int

const (
	ParamS ParameterType = iota
	ParamY
	ParamZ
	ParamH
	ParamG
)

// ParameterFormat describes how the two numbers of a pair are to be read.
type ParameterFormat int

const (
	MagnitudeAngle ParameterFormat = iota // MA: linear magnitude, angle in degrees
	DecibelAngle                          // DB: 20*log10 magnitude, angle in degrees
	RealImaginary                         // RI: real part, imaginary part
)

// DefaultReferenceResistance is the impedance assumed when the option line has no R token.
const DefaultReferenceResistance = 50.0

var frequencyUnits = map[string]FrequencyUnit{
	"HZ":  Hz,
	"KHZ": KHz,
	"MHZ": MHz,
	"GHZ": GHz,
}

var parameterTypes = map[string]ParameterType{
	"S": ParamS,
	"Y": ParamY,
	"Z": ParamZ,
	"H": ParamH,
	"G": ParamG,
}

var parameterFormats = map[string]ParameterFormat{
	"MA": MagnitudeAngle,
	"DB": DecibelAngle,
	"RI": RealImaginary,
}

// ParseFrequencyUnit maps a case-insensitive token such as "mhz" to its unit.
func ParseFrequencyUnit(token string) (FrequencyUnit, bool) {
	u, ok := frequencyUnits[strings.ToUpper(token)]
	return u, ok
}

// ParseParameterType maps a case-insensitive token such as "s" to its parameter type.
func ParseParameterType(token string) (ParameterType, bool) {
	t, ok := parameterTypes[strings.ToUpper(token)]
	return t, ok
}

// ParseParameterFormat maps a case-insensitive token such as "ri" to its format.
func ParseParameterFormat(token string) (ParameterFormat, bool) {
	f, ok := parameterFormats[strings.ToUpper(token)]
	return f, ok
}

func (u FrequencyUnit) String() string {
	switch u {
	case Hz:
		return "Hz"
	case KHz:
		return "kHz"
	case MHz:
		return "MHz"
	case GHz:
		return "GHz"
	}
	return "unknown"
}

func (t ParameterType) String() string {
	switch t {
	case ParamS:
		return "S"
	case ParamY:
		return "Y"
	case ParamZ:
		return "Z"
	case ParamH:
		return "H"
	case ParamG:
		return "G"
	}
	return "unknown"
}

func (f ParameterFormat) String() string {
	switch f {
	case MagnitudeAngle:
		return "MA"
	case DecibelAngle:
		return "DB"
	case RealImaginary:
		return "RI"
	}
	return "unknown"
}

// Options holds the file-wide settings declared on the option line.
type Options struct {
	FrequencyUnit       FrequencyUnit
	ParameterType       ParameterType
	ParameterFormat     ParameterFormat
	ReferenceResistance float64
}

// DefaultOptions returns the settings a file without an option line is read with
// (equivalent to "# GHZ S MA R 50").
func DefaultOptions() Options {
	return Options{
		FrequencyUnit:       GHz,
		ParameterType:       ParamS,
		ParameterFormat:     MagnitudeAngle,
		ReferenceResistance: DefaultReferenceResistance,
	}
}

// SideLabel returns a human readable name for one component of a pair under these options.
func (o Options) SideLabel(side Side) string {
	switch o.ParameterFormat {
	case RealImaginary:
		if side == LHS {
			return "Real"
		}
		return "Imaginary"
	case DecibelAngle:
		if side == LHS {
			return "Magnitude (dB)"
		}
		return "Angle (deg)"
	default:
		if side == LHS {
			return "Magnitude"
		}
		return "Angle (deg)"
	}
}

// Side selects one component of a complementary measurement pair.
type Side int

const (
	LHS Side = iota
	RHS
)

func (s Side) String() string {
	if s == RHS {
		return "RHS"
	}
	return "LHS"
}

// Pair is one matrix entry at one frequency, e.g. magnitude/angle or real/imaginary.
type Pair struct {
	LHS float64
	RHS float64
}

// Get returns the component on the requested side.
func (p Pair) Get(side Side) float64 {
	if side == RHS {
		return p.RHS
	}
	return p.LHS
}

// Complement returns the component opposite to side.
func (p Pair) Complement(side Side) float64 {
	if side == RHS {
		return p.LHS
	}
	return p.RHS
}

// DataPoint is one parsed record: a frequency in the file's unit and its matrix entries in file order.
type DataPoint struct {
	Frequency    float64
	Measurements []Pair
}

// ParsedTouchstone is everything a single parse produces.
type ParsedTouchstone struct {
	Options         Options
	Points          []DataPoint
	NumPorts        int // 0 when neither configured, inferred from the extension nor from the data
	OptionLineFound bool
	Warnings        []string // non-fatal issues, e.g. an ignored second option line
}

// NewParsedTouchstone returns an empty result carrying default options.
func NewParsedTouchstone() *ParsedTouchstone {
	return &ParsedTouchstone{
		Options:  DefaultOptions(),
		Points:   make([]DataPoint, 0),
		Warnings: make([]string, 0),
	}
}
