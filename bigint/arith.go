package bigint

import "math/bits"

// Each Int stores its magnitude as a little-endian slice of 32-bit limbs
// with no trailing (high-order) zero limb. Carry and borrow propagation
// between limbs is done with math/bits, which exposes the hardware-backed
// wide-add/wide-sub/wide-mul primitives the standard library ships for
// exactly this purpose.

// trim drops high-order zero limbs so the magnitude stays canonical.
func trim(x []uint32) []uint32 {
	n := len(x)
	for n > 0 && x[n-1] == 0 {
		n--
	}
	return x[:n]
}

// cmpMag compares the magnitudes of x and y, both already canonical.
func cmpMag(x, y []uint32) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// addMag returns x+y.
func addMag(x, y []uint32) []uint32 {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make([]uint32, len(x)+1)
	var c uint32
	var i int
	for i = 0; i < len(y); i++ {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	for ; i < len(x); i++ {
		z[i], c = bits.Add32(x[i], 0, c)
	}
	z[i] = c
	return trim(z)
}

// subMag returns x-y, assuming x >= y in magnitude.
func subMag(x, y []uint32) []uint32 {
	z := make([]uint32, len(x))
	var b uint32
	var i int
	for i = 0; i < len(y); i++ {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	for ; i < len(x); i++ {
		z[i], b = bits.Sub32(x[i], 0, b)
	}
	return trim(z)
}

// mulWordsSmall multiplies x by the single-limb value k.
func mulWordsSmall(x []uint32, k uint32) []uint32 {
	if k == 0 || len(x) == 0 {
		return nil
	}
	z := make([]uint32, len(x)+1)
	var c uint32
	for i, xi := range x {
		hi, lo := bits.Mul32(xi, k)
		var cc uint32
		lo, cc = bits.Add32(lo, c, 0)
		hi, _ = bits.Add32(hi, 0, cc)
		z[i] = lo
		c = hi
	}
	z[len(x)] = c
	return trim(z)
}

// addWordSmall adds the single-limb value k to x.
func addWordSmall(x []uint32, k uint32) []uint32 {
	if k == 0 {
		return trim(append([]uint32(nil), x...))
	}
	z := make([]uint32, len(x)+1)
	c := k
	var i int
	for i = 0; i < len(x); i++ {
		z[i], c = bits.Add32(x[i], c, 0)
		if c == 0 {
			i++
			copy(z[i:], x[i:])
			break
		}
	}
	if i == len(x) {
		z[i] = c
	}
	return trim(z)
}

// divWordsSmall divides x by the single-limb divisor k, returning quotient
// and remainder.
func divWordsSmall(x []uint32, k uint32) (q []uint32, r uint32) {
	q = make([]uint32, len(x))
	for i := len(x) - 1; i >= 0; i-- {
		q[i], r = bits.Div32(r, x[i], k)
	}
	return trim(q), r
}

// mulMag computes the schoolbook product of x and y.
func mulMag(x, y []uint32) []uint32 {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make([]uint32, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var c uint32
		for j, yj := range y {
			hi, lo := bits.Mul32(xi, yj)
			var c1, c2 uint32
			lo, c1 = bits.Add32(lo, z[i+j], 0)
			lo, c2 = bits.Add32(lo, c, 0)
			hi, _ = bits.Add32(hi, 0, c1+c2)
			z[i+j] = lo
			c = hi
		}
		z[i+len(y)], _ = bits.Add32(z[i+len(y)], c, 0)
	}
	return trim(z)
}

// bitLen returns the position of the highest set bit in x, or 0 for zero.
func bitLen(x []uint32) int {
	n := len(x)
	if n == 0 {
		return 0
	}
	return (n-1)*32 + bits.Len32(x[n-1])
}

// bitAt returns the bit of x at position i (0 = least significant).
func bitAt(x []uint32, i int) uint32 {
	limb := i / 32
	if limb >= len(x) {
		return 0
	}
	return (x[limb] >> uint(i%32)) & 1
}

// shiftLeftBits returns x shifted left by the given number of bits (n >= 0).
func shiftLeftBits(x []uint32, n int) []uint32 {
	if len(x) == 0 || n == 0 {
		return trim(append([]uint32(nil), x...))
	}
	limbShift, bitShift := n/32, uint(n%32)
	z := make([]uint32, len(x)+limbShift+1)
	if bitShift == 0 {
		copy(z[limbShift:], x)
	} else {
		var c uint32
		for i, xi := range x {
			z[limbShift+i] = (xi << bitShift) | c
			c = xi >> (32 - bitShift)
		}
		z[limbShift+len(x)] = c
	}
	return trim(z)
}

// setBit returns a copy of x with bit i set (i >= 0).
func setBit(x []uint32, i int) []uint32 {
	limb := i / 32
	z := x
	if limb >= len(z) {
		z = make([]uint32, limb+1)
		copy(z, x)
	} else {
		z = append([]uint32(nil), x...)
	}
	z[limb] |= 1 << uint(i%32)
	return trim(z)
}

// divModMag computes q, r such that x = q*y + r, 0 <= r < y, using bit-by-bit
// binary long division. y must be non-zero. This favors simplicity and
// correctness over the asymptotically faster multi-limb algorithms (e.g.
// Knuth's Algorithm D): decimal parsing/arithmetic divisors in this package
// are overwhelmingly small powers of ten or modest-sized operands, where the
// bit-serial approach is more than fast enough.
func divModMag(x, y []uint32) (q, r []uint32) {
	nx := bitLen(x)
	q = nil
	r = nil
	for i := nx - 1; i >= 0; i-- {
		r = shiftLeftBits(r, 1)
		if bitAt(x, i) == 1 {
			if len(r) == 0 {
				r = []uint32{1}
			} else {
				r[0] |= 1
			}
		}
		if cmpMag(r, y) >= 0 {
			r = subMag(r, y)
			q = setBit(q, i)
		}
	}
	return trim(q), trim(r)
}
