package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseStat cleans a raw projection cell and converts it to a number.
// Thousands separators, surrounding quotes and whitespace are stripped.
// Anything still unparsable resolves to zero.
func ParseStat(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "--" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// StatLine maps stat codes to projected values.
type StatLine map[string]float64

// UnmarshalJSON accepts both native numbers and string-encoded cells
// ("1,234.5"). Values that cannot be coerced become zero.
func (s *StatLine) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal stats: %w", err)
	}

	out := make(StatLine, len(raw))
	for code, rawVal := range raw {
		var n float64
		if err := json.Unmarshal(rawVal, &n); err == nil {
			out[code] = n
			continue
		}

		// Value is a JSON string; coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var str string
			if err := json.Unmarshal(rawVal, &str); err == nil {
				out[code] = ParseStat(str)
				continue
			}
		}
		out[code] = 0
	}
	*s = out
	return nil
}

// Float is a float64 that encodes non-finite values as JSON null and
// decodes null back to +Inf, the sentinel for a missing market rank.
type Float float64

// Inf is the missing-ADP sentinel.
var Inf = Float(math.Inf(1))

// Finite reports whether f is a real number.
func (f Float) Finite() bool {
	v := float64(f)
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Finite() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(f), 'f', -1, 64), nil
}

func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Inf
		return nil
	}
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*f = Inf
			return nil
		}
		*f = Float(ParseStat(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex unmarshal float: %w", err)
	}
	*f = Float(n)
	return nil
}
