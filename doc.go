// Package decimal implements arbitrary-precision signed decimal arithmetic,
// built on the arbitrary-precision signed integer type in the bigint
// subpackage.
//
// A Decimal is a pair (unscaled, scale) representing the value
// unscaled x 10^(-scale). Unlike fixed-width decimal types, neither the
// unscaled value nor the scale is bounded beyond the int32 range of scale
// itself, so Decimal can represent values of arbitrary magnitude and
// precision exactly.
//
// Construction:
//
//	d, err := decimal.Parse("345.23499600293850")
//	d := decimal.FromInt64Scale(1234, 8) // 0.00001234
//
// Arithmetic is exact except where a MathContext or an explicit
// RoundingMode is supplied:
//
//	sum := decimal.Add(a, b)
//	product, err := decimal.Mul(a, b)
//	quotient, err := decimal.Divide(a, b, decimal.HalfEven)
//
// All Decimal values are immutable; every function and method returns a
// new value rather than mutating its receiver or arguments.
package decimal
