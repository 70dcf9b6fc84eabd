package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ScalarKind identifies the concrete type held by a Scalar.
type ScalarKind uint8

const (
	ScalarInt ScalarKind = iota
	ScalarFloat
	ScalarToken
)

// Scalar is a panel value: an integer, a float, or an opaque token such as an
// operator on an expression stack.
type Scalar struct {
	kind ScalarKind
	i    int64
	f    float64
	s    string
}

// Int returns an integer scalar.
func Int(v int64) Scalar { return Scalar{kind: ScalarInt, i: v} }

// Float returns a floating point scalar.
func Float(v float64) Scalar { return Scalar{kind: ScalarFloat, f: v} }

// Token returns an opaque string scalar.
func Token(v string) Scalar { return Scalar{kind: ScalarToken, s: v} }

// ParseScalar interprets raw text as an int when it has no decimal point, as a
// float when it does, and falls back to an opaque token otherwise.
func ParseScalar(raw string) Scalar {
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, ".") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Float(f)
		}
		return Token(trimmed)
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}
	return Token(trimmed)
}

// Kind reports the scalar's concrete type.
func (s Scalar) Kind() ScalarKind { return s.kind }

// IsNumeric reports whether the scalar holds an int or a float.
func (s Scalar) IsNumeric() bool { return s.kind != ScalarToken }

// Number returns the numeric value; tokens report 0.
func (s Scalar) Number() float64 {
	switch s.kind {
	case ScalarInt:
		return float64(s.i)
	case ScalarFloat:
		return s.f
	default:
		return 0
	}
}

// String renders the scalar the way it appears in the micro-format.
func (s Scalar) String() string {
	switch s.kind {
	case ScalarInt:
		return strconv.FormatInt(s.i, 10)
	case ScalarFloat:
		out := strconv.FormatFloat(s.f, 'f', -1, 64)
		if !strings.ContainsAny(out, ".eE") {
			out += ".0"
		}
		return out
	default:
		return s.s
	}
}

// Compare orders scalars: numbers numerically, numbers before tokens, tokens
// lexically.
func (s Scalar) Compare(other Scalar) int {
	switch {
	case s.IsNumeric() && other.IsNumeric():
		a, b := s.Number(), other.Number()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case s.IsNumeric():
		return -1
	case other.IsNumeric():
		return 1
	default:
		return strings.Compare(s.s, other.s)
	}
}

// MarshalJSON encodes numbers as JSON numbers and tokens as strings.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case ScalarInt:
		return []byte(strconv.FormatInt(s.i, 10)), nil
	case ScalarFloat:
		return json.Marshal(s.f)
	default:
		return json.Marshal(s.s)
	}
}

// UnmarshalJSON accepts numbers, strings, booleans and null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("scalar: empty value")
	}
	switch trimmed[0] {
	case '"':
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return fmt.Errorf("scalar: %w", err)
		}
		*s = Token(str)
		return nil
	case 'n':
		*s = Token("null")
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return fmt.Errorf("scalar: %w", err)
		}
		*s = Token(strconv.FormatBool(b))
		return nil
	case '{', '[':
		return fmt.Errorf("scalar: unsupported composite value %s", summarize(trimmed))
	}
	text := string(trimmed)
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			*s = Int(i)
			return nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("scalar: %w", err)
	}
	*s = Float(f)
	return nil
}

func summarize(data []byte) string {
	const limit = 40
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
