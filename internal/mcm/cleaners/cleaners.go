package cleaners

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"github.com/custodia-labs/seedmerge/internal/mcm/matchers"
)

// NoneValues are strings the default cleaner treats as missing.
var NoneValues = []string{"not available", "not applicable", "n/a"}

// TrueValues are strings the bool cleaner treats as true.
var TrueValues = []string{"true", "yes", "y", "1"}

// Func cleans one raw value.
type Func func(v any) any

// Default passes v through unchanged unless it is an empty string or
// fuzzily matches one of NoneValues, in which case it returns nil.
func Default(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if s == "" {
		return nil
	}
	if matchers.FuzzyInSet(strings.ToLower(s), NoneValues) {
		return nil
	}
	return v
}

// Float converts v to a float64. Strings lose whitespace and every
// punctuation or symbol rune except '.' and a leading '-'. Returns nil
// when v is blank or cannot be parsed.
func Float(v any) any {
	f, ok := ParseFloat(v)
	if !ok {
		return nil
	}
	return f
}

// ParseFloat is Float with an explicit success flag.
func ParseFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		return parseNumeric(string(t))
	case string:
		return parseNumeric(t)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumeric(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}

	var b strings.Builder
	for i, r := range s {
		if r == '-' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r != '.' && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			continue
		}
		b.WriteRune(r)
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Date validates that v is a date. time.Time values pass through;
// parseable strings are returned unchanged. Anything else is nil.
func Date(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		if _, err := dateparse.ParseAny(t); err != nil {
			return nil
		}
		return t
	default:
		return nil
	}
}

// Bool reports whether v is true or fuzzily matches one of TrueValues.
// It never returns nil: no match means false.
func Bool(v any) any {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
	case string:
		return matchers.FuzzyInSet(strings.ToLower(t), TrueValues)
	default:
		return matchers.FuzzyInSet(strings.ToLower(toString(t)), TrueValues)
	}
}

// Enum returns the choice v fuzzily matches, or nil when none is close enough.
func Enum(v any, choices []string) any {
	s, ok := v.(string)
	if !ok || s == "" || len(choices) == 0 {
		return nil
	}
	best := matchers.BestMatch(s, choices, 1)
	if len(best) == 0 || best[0].Score < matchers.InSetThreshold {
		return nil
	}
	return best[0].Target
}

func toString(v any) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
