package decimal

import (
	"fmt"
	"strings"

	"github.com/deveel/bigdecimal/bigint"
)

// RoundingMode specifies how to discard the low-order digits of an
// unscaled value when an operation cannot represent its result exactly.
type RoundingMode uint8

// The supported rounding modes.
const (
	// Up rounds away from zero whenever any discarded digit is non-zero.
	Up RoundingMode = iota
	// Down truncates toward zero, discarding digits without rounding.
	Down
	// Ceiling rounds toward positive infinity.
	Ceiling
	// Floor rounds toward negative infinity.
	Floor
	// HalfUp rounds to the nearest neighbor, with ties rounding away from zero.
	HalfUp
	// HalfDown rounds to the nearest neighbor, with ties rounding toward zero.
	HalfDown
	// HalfEven rounds to the nearest neighbor, with ties rounding to the
	// neighbor whose least significant digit is even.
	HalfEven
	// Unnecessary asserts that the requested operation has an exact result;
	// if rounding would in fact be required, it fails with ArithmeticError.
	Unnecessary
)

var roundingModeNames = [...]string{
	Up:          "Up",
	Down:        "Down",
	Ceiling:     "Ceiling",
	Floor:       "Floor",
	HalfUp:      "HalfUp",
	HalfDown:    "HalfDown",
	HalfEven:    "HalfEven",
	Unnecessary: "Unnecessary",
}

// String returns the mixed-case enumerator name, e.g. "HalfDown".
func (m RoundingMode) String() string {
	if int(m) < len(roundingModeNames) {
		return roundingModeNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// parseRoundingMode parses the uppercase canonical names accepted by
// MathContext text: UP, DOWN, CEILING, FLOOR, HALFUP, HALFDOWN, HALFEVEN,
// UNNECESSARY.
func parseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToUpper(s) {
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	case "CEILING":
		return Ceiling, nil
	case "FLOOR":
		return Floor, nil
	case "HALFUP":
		return HalfUp, nil
	case "HALFDOWN":
		return HalfDown, nil
	case "HALFEVEN":
		return HalfEven, nil
	case "UNNECESSARY":
		return Unnecessary, nil
	default:
		return 0, fmt.Errorf("%w: %q", errInvalidRoundingMode, s)
	}
}

// applyRoundingAbs decides whether to adjust a truncated quotient one step
// away from zero, in terms of non-negative magnitudes: qAbs and rAbs come
// from truncating |u| toward zero by some divisor
// (|u| = qAbs*divisorAbs + rAbs, 0 <= rAbs < divisorAbs), and resultSign is
// the sign the final (signed) quotient is to carry. It returns qAbs,
// optionally adjusted one away from zero.
func applyRoundingAbs(resultSign int8, qAbs, rAbs, divisorAbs bigint.Int, mode RoundingMode) (bigint.Int, error) {
	if rAbs.IsZero() {
		return qAbs, nil
	}
	twiceR := bigint.Mul(rAbs, bigint.FromInt64(2))
	cmpHalf := bigint.Cmp(twiceR, divisorAbs)

	isOdd := func(v bigint.Int) bool {
		_, rem, _ := bigint.DivideAndRemainder(v, bigint.FromInt64(2))
		return !rem.IsZero()
	}

	adjust := false
	switch mode {
	case Up:
		adjust = true
	case Down:
		adjust = false
	case Ceiling:
		adjust = resultSign > 0
	case Floor:
		adjust = resultSign < 0
	case HalfUp:
		adjust = cmpHalf >= 0
	case HalfDown:
		adjust = cmpHalf > 0
	case HalfEven:
		adjust = cmpHalf > 0 || (cmpHalf == 0 && isOdd(qAbs))
	case Unnecessary:
		return bigint.Int{}, newArithmeticError(fmt.Errorf("%w", errRoundingNecessary))
	default:
		return bigint.Int{}, newArgumentError(fmt.Errorf("%w: %v", errUnknownRounding, mode))
	}
	if !adjust {
		return qAbs, nil
	}
	return bigint.Add(qAbs, bigint.One), nil
}

// roundDivide computes round(u/d, mode) as a signed bigint.Int, for d != 0.
func roundDivide(u, d bigint.Int, mode RoundingMode) (bigint.Int, error) {
	if d.IsZero() {
		return bigint.Int{}, newArithmeticError(fmt.Errorf("%w", errDivisionByZero))
	}
	resultSign := int8(u.Sign() * d.Sign())
	qAbs, rAbs, _ := bigint.DivideAndRemainder(u.Abs(), d.Abs())
	rounded, err := applyRoundingAbs(resultSign, qAbs, rAbs, d.Abs(), mode)
	if err != nil {
		return bigint.Int{}, err
	}
	if resultSign < 0 {
		return rounded.Neg(), nil
	}
	return rounded, nil
}
