package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// token is a whitespace-delimited word together with its 1-based byte column.
type token struct {
	text string
	col  int
}

// tokenize splits line on whitespace, remembering where each field started.
func tokenize(line string) []token {
	var toks []token
	start := -1
	for i, r := range line {
		if r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f' {
			if start >= 0 {
				toks = append(toks, token{text: line[start:i], col: start + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, token{text: line[start:], col: start + 1})
	}
	return toks
}

// stripComment drops everything from the first '!' on.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '!'); i >= 0 {
		return line[:i]
	}
	return line
}

// option categories in canonical order
const (
	optUnit = iota
	optType
	optFormat
	optResistance
)

var optionNames = [...]string{"frequency unit", "parameter type", "parameter format", "reference resistance"}

// ParseOptionLine parses a "# <unit> <type> <format> R <resistance>" line.
// Tokens are case-insensitive and may be omitted; omitted settings keep their defaults.
// In strict mode the tokens must also appear in the canonical order.
func ParseOptionLine(line string, lineNum int, strict bool) (Options, error) {
	opts := DefaultOptions()

	body := stripComment(line)
	hash := strings.IndexByte(body, '#')
	if hash < 0 {
		return opts, newLineError(ErrMissingOptionLine, lineNum, line, nil)
	}
	// blank out the '#' so token columns stay relative to the raw line
	toks := tokenize(body[:hash] + " " + body[hash+1:])

	var seen [4]bool
	last := -1
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		upper := strings.ToUpper(tok.text)

		category := -1
		switch {
		case upper == "R":
			category = optResistance
			if i+1 >= len(toks) {
				return opts, newTokenError(ErrMalformedOptionToken, lineNum, tok, line,
					fmt.Errorf("reference resistance value missing"))
			}
			i++
			valTok := toks[i]
			r, err := strconv.ParseFloat(valTok.text, 64)
			if err != nil {
				return opts, newTokenError(ErrMalformedOptionToken, lineNum, valTok, line, err)
			}
			if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
				return opts, newTokenError(ErrMalformedOptionToken, lineNum, valTok, line,
					fmt.Errorf("reference resistance must be a positive finite number"))
			}
			opts.ReferenceResistance = r
		default:
			if u, ok := frequencyUnits[upper]; ok {
				category = optUnit
				opts.FrequencyUnit = u
			} else if t, ok := parameterTypes[upper]; ok {
				category = optType
				opts.ParameterType = t
			} else if f, ok := parameterFormats[upper]; ok {
				category = optFormat
				opts.ParameterFormat = f
			}
		}

		if category < 0 {
			return opts, newTokenError(ErrMalformedOptionToken, lineNum, tok, line,
				fmt.Errorf("unrecognized option token at position %d", i+1))
		}
		if seen[category] {
			return opts, newTokenError(ErrMalformedOptionToken, lineNum, tok, line,
				fmt.Errorf("%s given more than once", optionNames[category]))
		}
		if strict && category < last {
			return opts, newTokenError(ErrMalformedOptionToken, lineNum, tok, line,
				fmt.Errorf("%s must precede %s", optionNames[category], optionNames[last]))
		}
		seen[category] = true
		last = category
	}

	return opts, nil
}
