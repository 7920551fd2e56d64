package decimal

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"

	"github.com/deveel/bigdecimal/bigint"
)

// Decimal represents a signed decimal number of the form
// unscaled x 10^(-scale), where unscaled is an arbitrary-precision signed
// integer (bigint.Int) and scale is a signed 32-bit integer. Decimal is
// immutable: every operation returns a new value, so values are safe to
// share across goroutines without synchronization.
type Decimal struct {
	unscaled bigint.Int
	scale    int32
}

// Zero is the decimal value 0, with scale 0.
var Zero = Decimal{}

// One is the decimal value 1, with scale 0.
var One = Decimal{unscaled: bigint.One}

// Ten is the decimal value 10, with scale 0.
var Ten = Decimal{unscaled: bigint.Ten}

// FromBigInt returns the decimal (value, 0).
func FromBigInt(value bigint.Int) Decimal {
	return Decimal{unscaled: value}
}

// FromBigIntScale returns the decimal (value, scale) directly.
func FromBigIntScale(value bigint.Int, scale int32) Decimal {
	return Decimal{unscaled: value, scale: scale}
}

// FromInt64 returns the decimal (bigint.FromInt64(v), 0).
func FromInt64(v int64) Decimal {
	return Decimal{unscaled: bigint.FromInt64(v)}
}

// FromInt64Scale returns the decimal (bigint.FromInt64(v), scale) directly.
func FromInt64Scale(v int64, scale int32) Decimal {
	return Decimal{unscaled: bigint.FromInt64(v), scale: scale}
}

// FromFloat64 converts a float64 to the Decimal representing its exact
// binary value. NaN and +/-Infinity are rejected with a FormatError.
// 0.0 and -0.0 both normalize to exact zero with scale 0. Otherwise the
// IEEE-754 sign, unbiased exponent e, and 53-bit significand m (including
// the implicit bit for normal numbers) are decomposed so that the exact
// value is sign*m*2^(e-52):
//
//   - if e >= 52: unscaled = sign*m*2^(e-52), scale = 0.
//   - if e < 52:  unscaled = sign*m*5^(52-e), scale = 52-e.
//
// (the second case follows from 1/2^k = 5^k/10^k). Trailing factors of 2
// and 5 are not stripped, so the decimal form can be long: this matches
// exact conversion rather than a "nice" rounded value.
func FromFloat64(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, newFormatError(fmt.Errorf("%w: %v", errNonFiniteFloat, f))
	}
	if f == 0 {
		return Decimal{}, nil
	}
	bits := math.Float64bits(f)
	sign := int64(1)
	if bits>>63 != 0 {
		sign = -1
	}
	rawExp := int32((bits >> 52) & 0x7FF)
	mantissaBits := bits & ((1 << 52) - 1)

	var m uint64
	var e int32
	if rawExp == 0 {
		// Subnormal: no implicit leading bit, exponent pinned at -1022.
		m = mantissaBits
		e = -1022
	} else {
		m = mantissaBits | (1 << 52)
		e = rawExp - 1023
	}
	mBig := bigint.FromUint64(m)
	if sign < 0 {
		mBig = mBig.Neg()
	}
	if e >= 52 {
		unscaled := bigint.Mul(mBig, pow2(int(e-52)))
		return Decimal{unscaled: unscaled, scale: 0}, nil
	}
	shift := int(52 - e)
	unscaled := bigint.Mul(mBig, pow5(shift))
	return Decimal{unscaled: unscaled, scale: int32(shift)}, nil
}

// MustFromFloat64 is like FromFloat64 but panics on error.
func MustFromFloat64(f float64) Decimal {
	d, err := FromFloat64(f)
	if err != nil {
		panic(fmt.Sprintf("decimal.MustFromFloat64(%v) failed: %v", f, err))
	}
	return d
}

func pow2(n int) bigint.Int { return binPow(bigint.FromInt64(2), n) }
func pow5(n int) bigint.Int { return binPow(bigint.FromInt64(5), n) }

// binPow computes base^n by exponentiation by squaring, keeping the number
// of big-integer multiplications logarithmic in n.
func binPow(base bigint.Int, n int) bigint.Int {
	result := bigint.One
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = bigint.Mul(result, b)
		}
		b = bigint.Mul(b, b)
		n >>= 1
	}
	return result
}

// Parse converts decimal text to a Decimal. The grammar is:
//
//	sign? (digits ('.' digits?)? | '.' digits) ([eE] sign? digits)?
//
// An empty mantissa (neither integer nor fractional digits) is a
// FormatError, as is a malformed or empty exponent.
func Parse(s string) (Decimal, error) {
	return ParseRange(s, 0, len(s))
}

// ParseRange parses the substring s[offset:offset+length], for callers
// that already hold the text in a larger buffer and want to avoid an
// extra substring allocation.
func ParseRange(s string, offset, length int) (Decimal, error) {
	if offset < 0 || length < 0 || offset+length > len(s) {
		return Decimal{}, newFormatError(fmt.Errorf("%w: range out of bounds", errInvalidDecimal))
	}
	neg, digits, frac, exp, err := parseMantissaExp(s[offset : offset+length])
	if err != nil {
		return Decimal{}, err
	}
	sign := ""
	if neg {
		sign = "-"
	}
	unscaled, err := bigint.Parse(sign + digits)
	if err != nil {
		return Decimal{}, newFormatError(fmt.Errorf("%w: %v", errInvalidDecimal, err))
	}
	scale64 := int64(frac) - int64(exp)
	if scale64 > math.MaxInt32 || scale64 < math.MinInt32 {
		return Decimal{}, newArithmeticError(fmt.Errorf("%w: scale %d", errScaleOverflow, scale64))
	}
	return Decimal{unscaled: unscaled, scale: int32(scale64)}, nil
}

// MustParse is like Parse but panics if s cannot be parsed.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("decimal.MustParse(%q) failed: %v", s, err))
	}
	return d
}

// parseMantissaExp implements the grammar above, returning the sign, the
// concatenated mantissa digits (integer part followed by fractional part),
// the fractional digit count, and the exponent value.
func parseMantissaExp(s string) (neg bool, digits string, frac int, exp int32, err error) {
	n := len(s)
	i := 0
	if i < n && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	j := i
	for j < n && isDigit(s[j]) {
		j++
	}
	intPart := s[i:j]
	i = j

	var fracPart string
	hasDot := false
	if i < n && s[i] == '.' {
		hasDot = true
		i++
		j = i
		for j < n && isDigit(s[j]) {
			j++
		}
		fracPart = s[i:j]
		i = j
	}

	if intPart == "" && (!hasDot || fracPart == "") {
		return false, "", 0, 0, newFormatError(fmt.Errorf("%w: empty mantissa in %q", errInvalidDecimal, s))
	}

	digits = intPart + fracPart
	frac = len(fracPart)

	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		expNeg := false
		if i < n && (s[i] == '+' || s[i] == '-') {
			expNeg = s[i] == '-'
			i++
		}
		j = i
		for j < n && isDigit(s[j]) {
			j++
		}
		if j == i {
			return false, "", 0, 0, newFormatError(fmt.Errorf("%w: empty or malformed exponent in %q", errInvalidDecimal, s))
		}
		v, convErr := strconv.ParseInt(s[i:j], 10, 32)
		if convErr != nil {
			return false, "", 0, 0, newFormatError(fmt.Errorf("%w: exponent out of range in %q", errInvalidDecimal, s))
		}
		if expNeg {
			v = -v
		}
		exp = int32(v)
		i = j
	}

	if i != n {
		return false, "", 0, 0, newFormatError(fmt.Errorf("%w: unexpected trailing characters in %q", errInvalidDecimal, s))
	}
	return neg, digits, frac, exp, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Scale returns the decimal's scale.
func (d Decimal) Scale() int32 { return d.scale }

// UnscaledValue returns the decimal's unscaled value.
func (d Decimal) UnscaledValue() bigint.Int { return d.unscaled }

// Sign returns -1, 0, or +1 according to the sign of d.
func (d Decimal) Sign() int { return d.unscaled.Sign() }

// IsZero reports whether d is zero.
func (d Decimal) IsZero() bool { return d.unscaled.IsZero() }

// IsNegative reports whether d is strictly negative.
func (d Decimal) IsNegative() bool { return d.Sign() < 0 }

// IsPositive reports whether d is strictly positive.
func (d Decimal) IsPositive() bool { return d.Sign() > 0 }

// checkedAddScale computes a+b as an int32, returning ArithmeticError if the
// mathematical sum doesn't fit in int32.
func checkedAddScale(a, b int32) (int32, error) {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return 0, newArithmeticError(fmt.Errorf("%w: %d + %d", errScaleOverflow, a, b))
	}
	return int32(sum), nil
}

// alignUnscaled returns d's unscaled value scaled up to the target scale,
// which must be >= d.scale.
func alignUnscaled(d Decimal, target int32) bigint.Int {
	diff := target - d.scale
	if diff <= 0 {
		return d.unscaled
	}
	return d.unscaled.MultiplyByPowerOfTen(int(diff))
}

// Add returns a+b. The result scale is max(a.scale, b.scale).
func Add(a, b Decimal) Decimal {
	scale := maxInt32(a.scale, b.scale)
	return Decimal{unscaled: bigint.Add(alignUnscaled(a, scale), alignUnscaled(b, scale)), scale: scale}
}

// Sub returns a-b. The result scale is max(a.scale, b.scale).
func Sub(a, b Decimal) Decimal {
	scale := maxInt32(a.scale, b.scale)
	return Decimal{unscaled: bigint.Sub(alignUnscaled(a, scale), alignUnscaled(b, scale)), scale: scale}
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return Decimal{unscaled: d.unscaled.Neg(), scale: d.scale}
}

// Abs returns |d|.
func (d Decimal) Abs() Decimal {
	return Decimal{unscaled: d.unscaled.Abs(), scale: d.scale}
}

// Mul returns a*b, with result scale a.scale+b.scale. It fails with
// ArithmeticError if the sum of scales overflows int32.
func Mul(a, b Decimal) (Decimal, error) {
	scale, err := checkedAddScale(a.scale, b.scale)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{unscaled: bigint.Mul(a.unscaled, b.unscaled), scale: scale}, nil
}

// MustMul is like Mul but panics on error.
func (d Decimal) MustMul(e Decimal) Decimal {
	r, err := Mul(d, e)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", d, err))
	}
	return r
}

// DivideScale returns round(a/b, mode) at the explicit target scale: the
// numerator is aligned by multiplying by 10^(scale+b.scale-a.scale) when
// that exponent is non-negative, or by a rounded division by
// 10^-(exponent) otherwise; the aligned numerator is then divided by b's
// unscaled value with the same rounding mode. It fails with
// ArithmeticError if b is zero.
func DivideScale(a, b Decimal, scale int32, mode RoundingMode) (Decimal, error) {
	if b.unscaled.IsZero() {
		return Decimal{}, newArithmeticError(fmt.Errorf("%w", errDivisionByZero))
	}
	exponent := int64(scale) + int64(b.scale) - int64(a.scale)
	var numerator bigint.Int
	if exponent >= 0 {
		numerator = a.unscaled.MultiplyByPowerOfTen(int(exponent))
	} else {
		divisor := bigint.One.MultiplyByPowerOfTen(int(-exponent))
		n, err := roundDivide(a.unscaled, divisor, mode)
		if err != nil {
			return Decimal{}, err
		}
		numerator = n
	}
	q, err := roundDivide(numerator, b.unscaled, mode)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{unscaled: q, scale: scale}, nil
}

// Divide returns round(a/b, mode) with result scale a.scale.
func Divide(a, b Decimal, mode RoundingMode) (Decimal, error) {
	return DivideScale(a, b, a.scale, mode)
}

// SetScale rescales d to newScale. If newScale >= d.Scale(), the result is
// exact (the unscaled value is multiplied by the corresponding power of
// ten). Otherwise digits are discarded under mode.
func SetScale(d Decimal, newScale int32, mode RoundingMode) (Decimal, error) {
	if newScale >= d.scale {
		diff := int(newScale) - int(d.scale)
		return Decimal{unscaled: d.unscaled.MultiplyByPowerOfTen(diff), scale: newScale}, nil
	}
	k := int(d.scale) - int(newScale)
	divisor := bigint.One.MultiplyByPowerOfTen(k)
	rounded, err := roundDivide(d.unscaled, divisor, mode)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{unscaled: rounded, scale: newScale}, nil
}

// SetScaleExact is SetScale with RoundingMode Unnecessary: it fails with
// ArithmeticError if any digit would actually need to be discarded.
func SetScaleExact(d Decimal, newScale int32) (Decimal, error) {
	return SetScale(d, newScale, Unnecessary)
}

// MovePointLeft returns d with its decimal point moved n places to the
// left: the unscaled value is unchanged and the scale becomes d.Scale()+n
// (n may be negative, which moves the point right). It fails with
// ArithmeticError if the resulting scale overflows int32.
func MovePointLeft(d Decimal, n int32) (Decimal, error) {
	scale, err := checkedAddScale(d.scale, n)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{unscaled: d.unscaled, scale: scale}, nil
}

// MovePointRight returns d with its decimal point moved n places to the
// right: symmetric to MovePointLeft with n reversed.
func MovePointRight(d Decimal, n int32) (Decimal, error) {
	scale := int64(d.scale) - int64(n)
	if scale > math.MaxInt32 || scale < math.MinInt32 {
		return Decimal{}, newArithmeticError(fmt.Errorf("%w: %d - %d", errScaleOverflow, d.scale, n))
	}
	return Decimal{unscaled: d.unscaled, scale: int32(scale)}, nil
}

// StripTrailingZeros repeatedly divides the unscaled value by 10 and
// decrements the scale while the unscaled value is a non-zero multiple of
// ten. A zero decimal strips to the canonical (0, 0).
func StripTrailingZeros(d Decimal) Decimal {
	if d.IsZero() {
		return Decimal{}
	}
	u := d.unscaled
	scale := d.scale
	for {
		q, r, _ := bigint.DivideAndRemainder(u, bigint.Ten)
		if !r.IsZero() {
			break
		}
		u = q
		scale--
	}
	return Decimal{unscaled: u, scale: scale}
}

// RoundToContext rounds d's unscaled value to mc.Precision() significant
// decimal digits using mc.RoundingMode(), adjusting the scale to match. If
// mc.Precision() is 0, d is returned unchanged (exact).
func (d Decimal) RoundToContext(mc MathContext) (Decimal, error) {
	if mc.precision == 0 {
		return d, nil
	}
	digits := d.unscaled.Digits()
	precision := int(mc.precision)
	if digits <= precision {
		return d, nil
	}
	k := digits - precision
	scale := int64(d.scale) - int64(k)
	divisor := bigint.One.MultiplyByPowerOfTen(k)
	rounded, err := roundDivide(d.unscaled, divisor, mc.rounding)
	if err != nil {
		return Decimal{}, err
	}
	// A rounding carry (e.g. 999 -> 1000 at precision 2) can push the
	// result to one extra digit; that extra digit is always a trailing
	// zero, so it strips off exactly.
	for rounded.Digits() > precision {
		rounded, _, _ = bigint.DivideAndRemainder(rounded, bigint.Ten)
		scale--
	}
	if scale > math.MaxInt32 || scale < math.MinInt32 {
		return Decimal{}, newArithmeticError(fmt.Errorf("%w: scale %d", errScaleOverflow, scale))
	}
	return Decimal{unscaled: rounded, scale: int32(scale)}, nil
}

// AbsContext returns round(|d|, mc).
func (d Decimal) AbsContext(mc MathContext) (Decimal, error) {
	return d.Abs().RoundToContext(mc)
}

// AddContext returns round(a+b, mc).
func AddContext(a, b Decimal, mc MathContext) (Decimal, error) {
	return Add(a, b).RoundToContext(mc)
}

// SubContext returns round(a-b, mc).
func SubContext(a, b Decimal, mc MathContext) (Decimal, error) {
	return Sub(a, b).RoundToContext(mc)
}

// MulContext returns round(a*b, mc).
func MulContext(a, b Decimal, mc MathContext) (Decimal, error) {
	r, err := Mul(a, b)
	if err != nil {
		return Decimal{}, err
	}
	return r.RoundToContext(mc)
}

// Compare aligns a and b to the same scale and compares their unscaled
// values, returning -1, 0, or +1.
func Compare(a, b Decimal) int {
	scale := maxInt32(a.scale, b.scale)
	return bigint.Cmp(alignUnscaled(a, scale), alignUnscaled(b, scale))
}

// Equal reports whether a and b are equal as values: both scale and
// unscaled value must match exactly. Use Compare for numeric equivalence
// (e.g. 1.0 and 1.00 compare equal but are not Equal).
func Equal(a, b Decimal) bool {
	return a.scale == b.scale && bigint.Equal(a.unscaled, b.unscaled)
}

// Max returns the larger of a and b. On a numeric tie it returns a.
func Max(a, b Decimal) Decimal {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// Min returns the smaller of a and b. On a numeric tie it returns a.
func Min(a, b Decimal) Decimal {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Hash returns a hash code consistent with Equal.
func (d Decimal) Hash() uint64 {
	h := d.unscaled.Hash()
	h ^= uint64(uint32(d.scale))
	h *= 1099511628211
	return h
}

// ToBigInt truncates d toward zero to a bigint.Int.
func (d Decimal) ToBigInt() bigint.Int {
	if d.scale <= 0 {
		return d.unscaled.MultiplyByPowerOfTen(int(-d.scale))
	}
	q, _ := d.unscaled.DivideByPowerOfTen(int(d.scale))
	return q
}

// ToInt32 truncates d toward zero and reduces the result modulo 2^32,
// reinterpreting it as a signed two's-complement value (wraparound, no
// overflow error).
func (d Decimal) ToInt32() int32 {
	v := d.ToBigInt()
	u := v.TruncatedUint64()
	if v.Sign() < 0 {
		u = -u
	}
	return int32(uint32(u))
}

// ToInt64 truncates d toward zero and reduces the result modulo 2^64,
// reinterpreting it as a signed two's-complement value (wraparound, no
// overflow error).
func (d Decimal) ToInt64() int64 {
	v := d.ToBigInt()
	u := v.TruncatedUint64()
	if v.Sign() < 0 {
		u = -u
	}
	return int64(u)
}

// ToFloat64 returns the float64 nearest to d's exact value, saturating to
// +/-Infinity on overflow and to a signed zero on underflow. The exact
// decimal text is handed to strconv.ParseFloat, which performs the
// platform's correctly-rounded decimal-to-binary conversion.
func (d Decimal) ToFloat64() float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

// ToFloat32 is ToFloat64 rounded to float32 precision.
func (d Decimal) ToFloat32() float32 {
	f, _ := strconv.ParseFloat(d.String(), 32)
	return float32(f)
}

// String returns the canonical text form of d: an undecorated integer
// when scale is 0; a plain decimal-point form when scale is positive and
// the adjusted exponent is no smaller than -6; and scientific notation
// with an explicit signed exponent otherwise (which covers every
// negative-scale value, since the plain-decimal branch requires scale > 0
// strictly).
func (d Decimal) String() string {
	digits := d.unscaled.Digits()
	adjusted := int64(digits-1) - int64(d.scale)

	if d.scale == 0 {
		return d.unscaled.String()
	}
	if d.scale > 0 && adjusted >= -6 {
		return d.plainString(digits)
	}
	return d.scientificString(digits, adjusted)
}

// plainString renders d with an explicit decimal point and exactly
// d.scale digits after it. Requires d.scale > 0.
func (d Decimal) plainString(digits int) string {
	magDigits := d.unscaled.Abs().String()
	scale := int(d.scale)
	var intPart, fracPart string
	if digits > scale {
		intPart = magDigits[:digits-scale]
		fracPart = magDigits[digits-scale:]
	} else {
		intPart = "0"
		fracPart = zeros(scale-digits) + magDigits
	}
	sign := ""
	if d.unscaled.Sign() < 0 {
		sign = "-"
	}
	return sign + intPart + "." + fracPart
}

// scientificString renders d in scientific notation: one mantissa digit, a
// '.', the remaining mantissa digits (elided when there's only one), "E",
// then the signed adjusted exponent.
func (d Decimal) scientificString(digits int, adjusted int64) string {
	magDigits := d.unscaled.Abs().String()
	sign := ""
	if d.unscaled.Sign() < 0 {
		sign = "-"
	}
	var mantissa string
	if digits == 1 {
		mantissa = magDigits
	} else {
		mantissa = magDigits[:1] + "." + magDigits[1:]
	}
	expSign := "+"
	exp := adjusted
	if exp < 0 {
		expSign = "-"
		exp = -exp
	}
	return fmt.Sprintf("%s%sE%s%d", sign, mantissa, expSign, exp)
}

func zeros(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	v, err := ParseRange(string(text), 0, len(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Scan implements database/sql.Scanner.
func (d *Decimal) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Decimal{}
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case int64:
		*d = FromInt64(v)
		return nil
	case float64:
		parsed, err := FromFloat64(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return newFormatError(fmt.Errorf("%w: unsupported Scan source %T", errInvalidDecimal, value))
	}
}

// Value implements database/sql/driver.Valuer.
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}
