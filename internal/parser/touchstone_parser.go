package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// maxLineBytes bounds a single physical line; wide N-port rows stay far below it.
const maxLineBytes = 1024 * 1024

var portsExtension = regexp.MustCompile(`(?i)^\.s(\d+)p$`)

// Config controls how strictly a file is validated.
type Config struct {
	// Strict requires the option line to come first, tokens in canonical order,
	// and rejects a second option line.
	Strict bool
	// NumPorts fixes the port count. 0 means infer it from the ".sNp" extension or the data.
	NumPorts int
	// ValidatePortCount makes every record carry the same number of pairs
	// (NumPorts² when the port count is known).
	ValidatePortCount bool
	Logger            *zerolog.Logger
}

// DefaultConfig is lenient about the header and strict about row shape.
func DefaultConfig() Config {
	return Config{ValidatePortCount: true}
}

func (c Config) logger() *zerolog.Logger {
	if c.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return c.Logger
}

// PortsFromPath extracts N from a ".sNp" file name.
func PortsFromPath(path string) (int, bool) {
	match := portsExtension.FindStringSubmatch(filepath.Ext(path))
	if len(match) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ParseFile opens a Touchstone file and parses it. The file is closed on every return path.
func ParseFile(path string, cfg Config) (*ParsedTouchstone, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFile, path, err)
	}
	defer file.Close()

	if cfg.NumPorts == 0 {
		if n, ok := PortsFromPath(path); ok {
			cfg.NumPorts = n
		}
	}

	parsed, err := Parse(file, cfg)
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug().
		Str("path", path).
		Int("points", len(parsed.Points)).
		Int("ports", parsed.NumPorts).
		Msg("touchstone file parsed")
	return parsed, nil
}

// lineToken is a token that remembers the physical line it came from,
// since N-port records may span several lines.
type lineToken struct {
	token
	line int
	raw  string
}

// Parse reads a Touchstone stream: comments and blank lines are skipped, the first
// substantive line may be the option line, every other line contributes to data records.
func Parse(r io.Reader, cfg Config) (*ParsedTouchstone, error) {
	log := cfg.logger()
	result := NewParsedTouchstone()
	result.NumPorts = cfg.NumPorts

	expectedPairs := 0
	if cfg.ValidatePortCount && cfg.NumPorts > 0 {
		expectedPairs = cfg.NumPorts * cfg.NumPorts
	}
	// Touchstone v1 wraps rows of 3-port and larger files over several lines.
	wrapped := expectedPairs > 0 && cfg.NumPorts >= 3

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		lineNum     int
		substantive bool
		pending     []lineToken
		recordLine  int
		recordText  string
		firstPairs  int
		uniform     = true
	)

	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "!") {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			if !substantive {
				opts, err := ParseOptionLine(raw, lineNum, cfg.Strict)
				if err != nil {
					return nil, err
				}
				result.Options = opts
				result.OptionLineFound = true
				substantive = true
				log.Debug().
					Int("line", lineNum).
					Str("unit", opts.FrequencyUnit.String()).
					Str("type", opts.ParameterType.String()).
					Str("format", opts.ParameterFormat.String()).
					Float64("resistance", opts.ReferenceResistance).
					Msg("option line parsed")
				continue
			}
			if cfg.Strict {
				return nil, newLineError(ErrDuplicateOptionLine, lineNum, raw, nil)
			}
			warning := fmt.Sprintf("line %d: additional option line ignored", lineNum)
			result.Warnings = append(result.Warnings, warning)
			log.Warn().Msg(warning)
			continue
		}

		if !substantive {
			substantive = true
			if cfg.Strict {
				return nil, newLineError(ErrMissingOptionLine, lineNum, raw,
					fmt.Errorf("data appears before any option line"))
			}
			warning := fmt.Sprintf("line %d: no option line before data, using defaults", lineNum)
			result.Warnings = append(result.Warnings, warning)
			log.Warn().Msg(warning)
		}

		toks := tokenize(stripComment(raw))
		if len(toks) == 0 {
			continue
		}
		if len(pending) == 0 && startsNoiseBlock(toks, result.Points) {
			warning := fmt.Sprintf("line %d: two-port noise parameters ignored", lineNum)
			result.Warnings = append(result.Warnings, warning)
			log.Warn().Msg(warning)
			break
		}
		if len(pending) == 0 {
			recordLine = lineNum
			recordText = raw
		} else {
			recordText += "\n" + raw
		}
		for _, t := range toks {
			pending = append(pending, lineToken{token: t, line: lineNum, raw: raw})
		}

		if wrapped {
			need := 1 + 2*expectedPairs
			if len(pending) < need {
				continue
			}
			if len(pending) > need {
				return nil, newLineError(ErrMalformedDataLine, recordLine, recordText,
					fmt.Errorf("expected %d values for a %d-port record, got %d", need, cfg.NumPorts, len(pending)))
			}
		} else {
			count := len(pending)
			if count < 3 || count%2 == 0 {
				return nil, newLineError(ErrMalformedDataLine, recordLine, recordText,
					fmt.Errorf("expected a frequency followed by value pairs, got %d tokens", count))
			}
			pairs := (count - 1) / 2
			switch {
			case expectedPairs > 0 && pairs != expectedPairs:
				return nil, newLineError(ErrMalformedDataLine, recordLine, recordText,
					fmt.Errorf("expected %d pairs for %d-port data, got %d", expectedPairs, cfg.NumPorts, pairs))
			case cfg.ValidatePortCount && firstPairs > 0 && pairs != firstPairs:
				return nil, newLineError(ErrMalformedDataLine, recordLine, recordText,
					fmt.Errorf("expected %d pairs as in the first record, got %d", firstPairs, pairs))
			}
		}

		point, err := buildPoint(pending)
		if err != nil {
			return nil, err
		}
		if firstPairs == 0 {
			firstPairs = len(point.Measurements)
		} else if len(point.Measurements) != firstPairs {
			uniform = false
		}
		result.Points = append(result.Points, point)
		pending = pending[:0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	if len(pending) > 0 {
		return nil, newLineError(ErrMalformedDataLine, recordLine, recordText,
			fmt.Errorf("record ends after %d of %d values", len(pending), 1+2*expectedPairs))
	}

	if result.NumPorts == 0 && firstPairs > 0 && uniform {
		if n := int(math.Sqrt(float64(firstPairs))); n*n == firstPairs {
			result.NumPorts = n
		}
	}
	return result, nil
}

// startsNoiseBlock reports whether toks open the noise parameter block of a
// two-port file: five values whose frequency does not exceed the last network frequency.
func startsNoiseBlock(toks []token, points []DataPoint) bool {
	if len(toks) != 5 || len(points) == 0 {
		return false
	}
	last := points[len(points)-1]
	if len(last.Measurements) != 4 {
		return false
	}
	freq, err := strconv.ParseFloat(toks[0].text, 64)
	return err == nil && freq <= last.Frequency
}

// buildPoint converts a complete record: the first token is the frequency,
// the rest are consumed two at a time.
func buildPoint(toks []lineToken) (DataPoint, error) {
	freq, err := parseNumber(toks[0])
	if err != nil {
		return DataPoint{}, err
	}
	if freq < 0 {
		return DataPoint{}, newTokenError(ErrInvalidNumericToken, toks[0].line, toks[0].token, toks[0].raw,
			fmt.Errorf("frequency must not be negative"))
	}

	point := DataPoint{
		Frequency:    freq,
		Measurements: make([]Pair, 0, (len(toks)-1)/2),
	}
	for i := 1; i+1 < len(toks); i += 2 {
		lhs, err := parseNumber(toks[i])
		if err != nil {
			return DataPoint{}, err
		}
		rhs, err := parseNumber(toks[i+1])
		if err != nil {
			return DataPoint{}, err
		}
		point.Measurements = append(point.Measurements, Pair{LHS: lhs, RHS: rhs})
	}
	return point, nil
}

func parseNumber(t lineToken) (float64, error) {
	v, err := strconv.ParseFloat(t.token.text, 64)
	if err != nil {
		return 0, newTokenError(ErrInvalidNumericToken, t.line, t.token, t.raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newTokenError(ErrInvalidNumericToken, t.line, t.token, t.raw,
			fmt.Errorf("value is not finite"))
	}
	return v, nil
}
