package cfloat

import (
	"github.com/shogo82148/numfmt"
)

// propagateNaN returns the first NaN operand, made quiet.
func propagateNaN(a, b CFloat) CFloat {
	x := a
	if !a.IsNaN(AnyNaN) {
		x = b
	}
	c := x.config
	if c.HasInf {
		x.bits.SetBit(c.fbits()-1, true)
	}
	return x
}

// Mul returns the product a * b rounded to nearest even.
func (a CFloat) Mul(b CFloat) CFloat {
	a.mustMatch(b, "Mul")
	c := a.config
	if a.IsNaN(AnyNaN) || b.IsNaN(AnyNaN) {
		// anything * NaN = NaN
		// NaN * anything = NaN
		return propagateNaN(a, b)
	}
	neg := a.IsNeg() != b.IsNeg()

	if a.IsInf(0) || b.IsInf(0) {
		if a.IsZero() || b.IsZero() {
			// ±Inf * ±0 = NaN
			return c.nan()
		}
		return c.Inf(boolSign(neg))
	}
	if a.IsZero() || b.IsZero() {
		return c.pack(neg, 0, 0)
	}

	_, expA, fracA := a.unpack()
	_, expB, fracB := b.unpack()
	return c.roundPack(neg, expA+expB, fracA.URMul(fracB), false)
}

// Quo returns the quotient a / b rounded to nearest even.
//
// A division of a finite number by zero panics with a [numfmt.DivideByZeroError]
// if the format throws. Otherwise 0 / 0 is NaN (zero without NaN) and
// x / 0 overflows with the sign of a xor b.
func (a CFloat) Quo(b CFloat) CFloat {
	a.mustMatch(b, "Quo")
	c := a.config
	if a.IsNaN(AnyNaN) || b.IsNaN(AnyNaN) {
		// anything / NaN = NaN
		// NaN / anything = NaN
		return propagateNaN(a, b)
	}
	neg := a.IsNeg() != b.IsNeg()

	if a.IsInf(0) {
		if b.IsInf(0) {
			// ±Inf / ±Inf = NaN
			return c.nan()
		}
		// ±Inf / x = ±Inf
		return c.Inf(boolSign(neg))
	}
	if b.IsInf(0) {
		// x / ±Inf = ±0
		return c.pack(neg, 0, 0)
	}

	if b.IsZero() {
		if c.ThrowDivByZero {
			numfmt.PanicDivideByZero("cfloat.Quo", a.String())
		}
		if a.IsZero() {
			// ±0 / ±0 = NaN
			return c.nan()
		}
		return c.overflow(neg)
	}
	if a.IsZero() {
		return c.pack(neg, 0, 0)
	}

	// both significands in [2^fbits, 2^(fbits+1)); the quotient has fbits+3 bits or more.
	_, expA, fracA := a.normalized()
	_, expB, fracB := b.normalized()
	extra := c.fbits() + 3
	q, sticky := fracA.URQuo(fracB, extra)
	return c.roundPack(neg, expA-expB-extra, q, sticky)
}

// Add returns the sum a + b rounded to nearest even.
func (a CFloat) Add(b CFloat) CFloat {
	a.mustMatch(b, "Add")
	c := a.config
	if a.IsNaN(AnyNaN) || b.IsNaN(AnyNaN) {
		// anything + NaN = NaN
		// NaN + anything = NaN
		return propagateNaN(a, b)
	}

	if a.IsInf(0) {
		if b.IsInf(0) && a.IsNeg() != b.IsNeg() {
			// ±Inf + ∓Inf = NaN
			return c.nan()
		}
		return a // ±Inf + anything = ±Inf
	}
	if b.IsInf(0) {
		return b
	}

	switch {
	case a.IsZero() && b.IsZero():
		// -0 + -0 = -0, otherwise +0
		return c.pack(a.IsNeg() && b.IsNeg(), 0, 0)
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	}

	negA, expA, fracA := a.unpack()
	negB, expB, fracB := b.unpack()
	if expA < expB {
		negA, expA, fracA, negB, expB, fracB = negB, expB, fracB, negA, expA, fracA
	}

	if d := expA - expB; d > c.fbits()+4 {
		// |b| is less than an eighth of the last bit of a.
		// Three guard bits and a sticky bit keep the rounding of a ± b correct.
		fracA = fracA.Lsh(3)
		if negA != negB {
			fracA = fracA.Dec()
		}
		return c.roundPack(negA, expA-3, fracA, true)
	}

	// aligned, the sum is exact in twice the width.
	const width = 2 * wsBits
	fracA = fracA.Resize(width).Lsh(expA - expB)
	fracB = fracB.Resize(width)
	if negA == negB {
		return c.roundPack(negA, expB, fracA.Add(fracB), false)
	}
	switch fracA.Cmp(fracB) {
	case 1:
		return c.roundPack(negA, expB, fracA.Sub(fracB), false)
	case -1:
		return c.roundPack(negB, expB, fracB.Sub(fracA), false)
	}
	// x - x = +0
	return c.Zero()
}

// Sub returns the difference a - b rounded to nearest even.
func (a CFloat) Sub(b CFloat) CFloat {
	return a.Add(b.Neg())
}

// Neg returns x with its sign bit flipped.
func (x CFloat) Neg() CFloat {
	n := x.config.Nbits - 1
	x.bits.SetBit(n, !x.bits.Bit(n))
	return x
}

// Abs returns x with its sign bit cleared.
func (x CFloat) Abs() CFloat {
	x.bits.SetBit(x.config.Nbits-1, false)
	return x
}

// Inc returns the next representable number toward positive infinity.
// NaN and the largest value of the format are returned unchanged.
func (x CFloat) Inc() CFloat {
	c := x.config
	switch {
	case x.IsNaN(AnyNaN) || x.IsInf(1):
		return x
	case x.IsZero():
		return c.MinPos()
	case x.IsInf(-1):
		return c.MaxNeg()
	case x.IsNeg():
		y := c.FromBits(x.Bits() - 1)
		if y.IsZero() {
			// the largest subnormal encoding is zero without subnormals
			return c.pack(true, 0, 0)
		}
		return y
	case x.Bits() == c.maxFinite():
		if c.HasInf {
			return c.Inf(1)
		}
		return x
	}
	return c.FromBits(x.Bits() + 1)
}

// Dec returns the next representable number toward negative infinity.
// NaN and the smallest value of the format are returned unchanged.
func (x CFloat) Dec() CFloat {
	if x.IsZero() {
		return x.config.MinNeg()
	}
	return x.Neg().Inc().Neg()
}

// Compare compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y (incl. -0 == 0, -Inf == -Inf, and +Inf == +Inf)
//	+1 if x >  y
//
// a NaN is considered less than any non-NaN, and two NaNs are equal.
func (x CFloat) Compare(y CFloat) int {
	x.mustMatch(y, "Compare")
	xNaN := x.IsNaN(AnyNaN)
	yNaN := y.IsNaN(AnyNaN)
	if xNaN && yNaN {
		return 0
	}
	if xNaN {
		return -1
	}
	if yNaN {
		return 1
	}

	ix, iy := x.ordinal(), y.ordinal()
	if ix < iy {
		return -1
	}
	if ix > iy {
		return 1
	}
	return 0
}

// ordinal maps the encodings of non-NaN numbers to integers in the order of their values.
func (x CFloat) ordinal() int64 {
	if x.IsZero() {
		return 0
	}
	mag := int64(x.Bits() &^ x.config.signMask())
	if x.IsNeg() {
		return -mag
	}
	return mag
}

// Cmp is [CFloat.Compare].
func (x CFloat) Cmp(y CFloat) int {
	return x.Compare(y)
}

// Equal reports whether x == y. NaN is not equal to anything.
func (x CFloat) Equal(y CFloat) bool {
	return !x.IsNaN(AnyNaN) && !y.IsNaN(AnyNaN) && x.Compare(y) == 0
}

// Less reports whether x < y.
func (x CFloat) Less(y CFloat) bool {
	return !x.IsNaN(AnyNaN) && !y.IsNaN(AnyNaN) && x.Compare(y) < 0
}

// LessEqual reports whether x <= y.
func (x CFloat) LessEqual(y CFloat) bool {
	return !x.IsNaN(AnyNaN) && !y.IsNaN(AnyNaN) && x.Compare(y) <= 0
}

// Greater reports whether x > y.
func (x CFloat) Greater(y CFloat) bool {
	return !x.IsNaN(AnyNaN) && !y.IsNaN(AnyNaN) && x.Compare(y) > 0
}

// GreaterEqual reports whether x >= y.
func (x CFloat) GreaterEqual(y CFloat) bool {
	return !x.IsNaN(AnyNaN) && !y.IsNaN(AnyNaN) && x.Compare(y) >= 0
}

// AddFloat64 returns a + v, with v first rounded to the format of a.
func (a CFloat) AddFloat64(v float64) CFloat {
	return a.Add(a.config.FromFloat64(v))
}

// SubFloat64 returns a - v, with v first rounded to the format of a.
func (a CFloat) SubFloat64(v float64) CFloat {
	return a.Sub(a.config.FromFloat64(v))
}

// MulFloat64 returns a * v, with v first rounded to the format of a.
func (a CFloat) MulFloat64(v float64) CFloat {
	return a.Mul(a.config.FromFloat64(v))
}

// QuoFloat64 returns a / v, with v first rounded to the format of a.
func (a CFloat) QuoFloat64(v float64) CFloat {
	return a.Quo(a.config.FromFloat64(v))
}

// CmpFloat64 compares x with v, with v first rounded to the format of x.
func (x CFloat) CmpFloat64(v float64) int {
	return x.Compare(x.config.FromFloat64(v))
}
