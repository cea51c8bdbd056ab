package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Options
	}{
		{
			name: "full line",
			line: "# GHZ S MA R 50",
			want: Options{FrequencyUnit: GHz, ParameterType: ParamS, ParameterFormat: MagnitudeAngle, ReferenceResistance: 50},
		},
		{
			name: "lower case",
			line: "# ghz s ma r 50",
			want: Options{FrequencyUnit: GHz, ParameterType: ParamS, ParameterFormat: MagnitudeAngle, ReferenceResistance: 50},
		},
		{
			name: "bare hash keeps defaults",
			line: "#",
			want: DefaultOptions(),
		},
		{
			name: "trailing tokens omitted",
			line: "# MHz Y",
			want: Options{FrequencyUnit: MHz, ParameterType: ParamY, ParameterFormat: MagnitudeAngle, ReferenceResistance: 50},
		},
		{
			name: "db format and custom resistance",
			line: "# kHz Z DB R 75.5",
			want: Options{FrequencyUnit: KHz, ParameterType: ParamZ, ParameterFormat: DecibelAngle, ReferenceResistance: 75.5},
		},
		{
			name: "no space after hash and trailing comment",
			line: "#Hz H RI R 1e2 ! bench setup",
			want: Options{FrequencyUnit: Hz, ParameterType: ParamH, ParameterFormat: RealImaginary, ReferenceResistance: 100},
		},
		{
			name: "any order when lenient",
			line: "# RI R 25 G MHZ",
			want: Options{FrequencyUnit: MHz, ParameterType: ParamG, ParameterFormat: RealImaginary, ReferenceResistance: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptionLine(tt.line, 1, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionLine_CaseInsensitiveIdentical(t *testing.T) {
	upper, err := ParseOptionLine("# GHZ S MA R 50", 1, true)
	require.NoError(t, err)
	lower, err := ParseOptionLine("# ghz s ma r 50", 1, true)
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
	assert.Equal(t, DefaultOptions(), upper)
}

func TestParseOptionLine_Errors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		strict bool
		token  string
		column int
	}{
		{name: "unknown token", line: "# GHZ X MA", token: "X", column: 7},
		{name: "missing resistance", line: "# GHZ S MA R", token: "R", column: 12},
		{name: "non-numeric resistance", line: "# GHZ S MA R fifty", token: "fifty", column: 14},
		{name: "zero resistance", line: "# GHZ S MA R 0", token: "0", column: 14},
		{name: "negative resistance", line: "# R -50", token: "-50", column: 5},
		{name: "NaN resistance", line: "# R NaN", token: "NaN", column: 5},
		{name: "infinite resistance", line: "# R Inf", token: "Inf", column: 5},
		{name: "infinite resistance strict", line: "# GHZ S MA R +Inf", strict: true, token: "+Inf", column: 14},
		{name: "duplicate unit", line: "# GHZ MHZ", token: "MHZ", column: 7},
		{name: "strict order", line: "# S GHZ", strict: true, token: "GHZ", column: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptionLine(tt.line, 4, tt.strict)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedOptionToken)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 4, perr.Line)
			assert.Equal(t, tt.token, perr.Token)
			assert.Equal(t, tt.column, perr.Column)
		})
	}
}

func TestParseTokenLookups(t *testing.T) {
	u, ok := ParseFrequencyUnit("kHz")
	assert.True(t, ok)
	assert.Equal(t, KHz, u)

	_, ok = ParseFrequencyUnit("THZ")
	assert.False(t, ok)

	p, ok := ParseParameterType("z")
	assert.True(t, ok)
	assert.Equal(t, ParamZ, p)

	f, ok := ParseParameterFormat("Ri")
	assert.True(t, ok)
	assert.Equal(t, RealImaginary, f)

	_, ok = ParseParameterFormat("DBM")
	assert.False(t, ok)
}

func TestSideLabel(t *testing.T) {
	ri := Options{ParameterFormat: RealImaginary}
	assert.Equal(t, "Real", ri.SideLabel(LHS))
	assert.Equal(t, "Imaginary", ri.SideLabel(RHS))

	db := Options{ParameterFormat: DecibelAngle}
	assert.Equal(t, "Magnitude (dB)", db.SideLabel(LHS))
	assert.Equal(t, "Angle (deg)", db.SideLabel(RHS))

	assert.Equal(t, "Magnitude", DefaultOptions().SideLabel(LHS))
}

func TestPairAccessors(t *testing.T) {
	p := Pair{LHS: 0.5, RHS: -10}
	assert.Equal(t, 0.5, p.Get(LHS))
	assert.Equal(t, -10.0, p.Get(RHS))
	assert.Equal(t, -10.0, p.Complement(LHS))
	assert.Equal(t, 0.5, p.Complement(RHS))
}
