package decimal

import (
	"fmt"
	"strconv"
	"strings"
)

// MathContext carries a target precision and rounding mode for evaluating a
// Decimal operation. A precision of 0 means the operation is exact (no
// rounding is applied).
type MathContext struct {
	precision int32
	rounding  RoundingMode
}

// Unlimited is a MathContext with precision 0: operations performed under
// it are always exact.
var Unlimited = MathContext{precision: 0, rounding: HalfUp}

// NewMathContext returns a MathContext with the given precision and
// RoundingMode HalfUp, the most commonly wanted rounding behavior when
// one isn't specified.
func NewMathContext(precision int32) (MathContext, error) {
	return NewMathContextMode(precision, HalfUp)
}

// NewMathContextMode returns a MathContext with the given precision and
// rounding mode. A negative precision is an ArgumentError.
func NewMathContextMode(precision int32, mode RoundingMode) (MathContext, error) {
	if precision < 0 {
		return MathContext{}, newArgumentError(fmt.Errorf("%w: got %d", errNegativePrecision, precision))
	}
	return MathContext{precision: precision, rounding: mode}, nil
}

// MustNewMathContext is like NewMathContextMode but panics on error.
func MustNewMathContext(precision int32, mode RoundingMode) MathContext {
	mc, err := NewMathContextMode(precision, mode)
	if err != nil {
		panic(fmt.Sprintf("decimal.MustNewMathContext(%d, %v) failed: %v", precision, mode, err))
	}
	return mc
}

// Precision returns the context's target precision; 0 means unlimited.
func (mc MathContext) Precision() int32 { return mc.precision }

// RoundingMode returns the context's rounding mode.
func (mc MathContext) RoundingMode() RoundingMode { return mc.rounding }

// ParseMathContext parses the canonical text form
// "precision=<digits> roundingMode=<NAME>", with fields separated by
// whitespace and accepted in any order. <NAME> is one of the uppercase
// canonical rounding-mode names (UP, DOWN, CEILING, FLOOR, HALFUP,
// HALFDOWN, HALFEVEN, UNNECESSARY).
func ParseMathContext(s string) (MathContext, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return MathContext{}, newFormatError(fmt.Errorf("%w: %q", errInvalidContext, s))
	}
	var (
		havePrecision bool
		haveMode      bool
		precision     int64
		mode          RoundingMode
	)
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return MathContext{}, newFormatError(fmt.Errorf("%w: %q", errInvalidContext, s))
		}
		switch key {
		case "precision":
			p, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return MathContext{}, newFormatError(fmt.Errorf("%w: %q", errInvalidContext, s))
			}
			precision = p
			havePrecision = true
		case "roundingMode":
			m, err := parseRoundingMode(value)
			if err != nil {
				return MathContext{}, newFormatError(fmt.Errorf("%w: %q", errInvalidContext, s))
			}
			mode = m
			haveMode = true
		default:
			return MathContext{}, newFormatError(fmt.Errorf("%w: %q", errInvalidContext, s))
		}
	}
	if !havePrecision || !haveMode {
		return MathContext{}, newFormatError(fmt.Errorf("%w: %q", errInvalidContext, s))
	}
	if precision < 0 {
		return MathContext{}, newFormatError(fmt.Errorf("%w: %q", errInvalidContext, s))
	}
	return MathContext{precision: int32(precision), rounding: mode}, nil
}

// MustParseMathContext is like ParseMathContext but panics on error.
func MustParseMathContext(s string) MathContext {
	mc, err := ParseMathContext(s)
	if err != nil {
		panic(fmt.Sprintf("decimal.MustParseMathContext(%q) failed: %v", s, err))
	}
	return mc
}

// String returns the canonical text form "precision=<n> roundingMode=<Name>"
// using the mixed-case enumerator name, e.g. "precision=6 roundingMode=HalfDown".
func (mc MathContext) String() string {
	return fmt.Sprintf("precision=%d roundingMode=%s", mc.precision, mc.rounding)
}

// MarshalText implements encoding.TextMarshaler.
func (mc MathContext) MarshalText() ([]byte, error) {
	return []byte(mc.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (mc *MathContext) UnmarshalText(text []byte) error {
	parsed, err := ParseMathContext(string(text))
	if err != nil {
		return err
	}
	*mc = parsed
	return nil
}
