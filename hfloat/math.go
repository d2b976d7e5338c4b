package hfloat

import (
	"github.com/shogo82148/numfmt"
)

// guard is the number of bits kept below the fraction while computing.
const guard = 8

// Add returns the sum of a and b, truncated toward zero.
func (a HFloat) Add(b HFloat) HFloat {
	a.mustMatch(b, "Add")
	if a.IsZero() {
		return b.canonical()
	}
	if b.IsZero() {
		return a.canonical()
	}

	f := a.format
	fbits := f.fbits()
	signA, expA, fracA := a.unpack()
	signB, expB, fracB := b.unpack()
	if expA < expB {
		signA, expA, fracA, signB, expB, fracB = signB, expB, fracB, signA, expA, fracA
	}

	// align the fractions; 4 spare bits catch the carry.
	width := fbits + guard + 4
	x := fracA.Resize(width).Lsh(guard)
	y := fracB.Resize(width).Lsh(guard)
	shift := 4 * (expA - expB)
	sticky := y.Any(shift - 1)
	y = y.Rsh(shift)

	neg := signA
	var frac block
	if signA == signB {
		frac = x.Add(y)
	} else {
		if sticky {
			// the bits shifted out make the difference a little smaller
			y.SetBit(0, true)
		}
		if x.Cmp(y) < 0 {
			x, y = y, x
			neg = signB
		}
		frac = x.Sub(y)
	}
	return f.normalize(neg, expA, frac, fbits+guard)
}

// Sub returns the difference a - b, truncated toward zero.
func (a HFloat) Sub(b HFloat) HFloat {
	return a.Add(b.Neg())
}

// Mul returns the product of a and b, truncated toward zero.
func (a HFloat) Mul(b HFloat) HFloat {
	a.mustMatch(b, "Mul")
	if a.IsZero() || b.IsZero() {
		return a.format.Zero()
	}

	f := a.format
	signA, expA, fracA := a.unpack()
	signB, expB, fracB := b.unpack()
	frac := fracA.URMul(fracB)
	return f.normalize(signA != signB, expA+expB, frac, 2*f.fbits())
}

// Quo returns the quotient a / b, truncated toward zero.
//
// Dividing by zero panics with a [numfmt.DivideByZeroError] if the format has
// ThrowDivByZero set. Otherwise 0 / 0 is zero and x / 0 saturates to the
// largest magnitude with the sign of the quotient.
func (a HFloat) Quo(b HFloat) HFloat {
	a.mustMatch(b, "Quo")
	f := a.format
	if b.IsZero() {
		if f.ThrowDivByZero {
			numfmt.PanicDivideByZero("hfloat.Quo", a.String())
		}
		if a.IsZero() {
			return f.Zero()
		}
		return f.maxMagnitude(a.IsNeg() != b.IsNeg())
	}
	if a.IsZero() {
		return f.Zero()
	}

	signA, expA, fracA := a.unpack()
	signB, expB, fracB := b.unpack()
	frac, _ := fracA.URQuo(fracB, f.fbits()+guard)
	return f.normalize(signA != signB, expA-expB, frac, f.fbits()+guard)
}

// Neg returns x with its sign bit flipped.
func (x HFloat) Neg() HFloat {
	x.bits.SetBit(x.format.Nbits()-1, !x.IsNeg())
	return x
}

// Abs returns x with its sign bit cleared.
func (x HFloat) Abs() HFloat {
	x.bits.SetBit(x.format.Nbits()-1, false)
	return x
}

// Inc returns the smallest number greater than x.
// The largest number saturates.
func (x HFloat) Inc() HFloat {
	x = x.canonical()
	switch {
	case x.IsZero():
		return x.format.MinPos()
	case x.IsNeg():
		return x.towardZero()
	}
	return x.awayFromZero()
}

// Dec returns the largest number less than x.
// The most negative number saturates.
func (x HFloat) Dec() HFloat {
	x = x.canonical()
	switch {
	case x.IsZero():
		return x.format.MinNeg()
	case x.IsNeg():
		return x.awayFromZero()
	}
	return x.towardZero()
}

// awayFromZero steps the magnitude of a normalized nonzero x up by one unit in the last place.
func (x HFloat) awayFromZero() HFloat {
	f := x.format
	neg := x.IsNeg()
	exp := int(x.bits.Field(f.fbits(), f.Es))
	frac := x.bits.Extract(0, f.fbits()).Inc()
	if !frac.IsZero() {
		return f.pack(neg, exp, frac)
	}

	// 0.fff...f + ulp carries into a new leading digit
	if exp == f.maxExp() {
		return f.maxMagnitude(neg)
	}
	return f.pack(neg, exp+1, f.MinPos().bits.Extract(0, f.fbits()))
}

// towardZero steps the magnitude of a normalized nonzero x down by one unit in the last place.
func (x HFloat) towardZero() HFloat {
	f := x.format
	neg := x.IsNeg()
	exp := int(x.bits.Field(f.fbits(), f.Es))
	frac := x.bits.Extract(0, f.fbits())
	if frac.BitLen() > f.fbits()-3 || frac.Any(f.fbits()-5) {
		return f.pack(neg, exp, frac.Dec())
	}

	// 0.1 * 16^e borrows the leading digit: the predecessor is 0.fff...f * 16^(e-1)
	if exp == 0 {
		return f.Zero()
	}
	return f.pack(neg, exp-1, f.MaxPos().bits.Extract(0, f.fbits()))
}

// Cmp compares a and b and returns:
//
//	-1 if a <  b
//	 0 if a == b (incl. -0 == 0)
//	+1 if a >  b
func (a HFloat) Cmp(b HFloat) int {
	a.mustMatch(b, "Cmp")
	signA, signB := a.Sign(), b.Sign()
	if signA != signB {
		if signA < signB {
			return -1
		}
		return 1
	}
	if signA == 0 {
		return 0
	}

	_, expA, fracA := a.unpack()
	_, expB, fracB := b.unpack()
	var c int
	switch {
	case expA < expB:
		c = -1
	case expA > expB:
		c = 1
	default:
		c = fracA.Cmp(fracB)
	}
	return c * signA
}

// Equal reports whether a == b. Positive and negative zeros are equal.
func (a HFloat) Equal(b HFloat) bool { return a.Cmp(b) == 0 }

// Less reports whether a < b.
func (a HFloat) Less(b HFloat) bool { return a.Cmp(b) < 0 }

// LessEqual reports whether a <= b.
func (a HFloat) LessEqual(b HFloat) bool { return a.Cmp(b) <= 0 }

// Greater reports whether a > b.
func (a HFloat) Greater(b HFloat) bool { return a.Cmp(b) > 0 }

// GreaterEqual reports whether a >= b.
func (a HFloat) GreaterEqual(b HFloat) bool { return a.Cmp(b) >= 0 }

// AddFloat64 returns a + v, with v converted to the format of a first.
func (a HFloat) AddFloat64(v float64) HFloat { return a.Add(a.format.FromFloat64(v)) }

// SubFloat64 returns a - v, with v converted to the format of a first.
func (a HFloat) SubFloat64(v float64) HFloat { return a.Sub(a.format.FromFloat64(v)) }

// MulFloat64 returns a * v, with v converted to the format of a first.
func (a HFloat) MulFloat64(v float64) HFloat { return a.Mul(a.format.FromFloat64(v)) }

// QuoFloat64 returns a / v, with v converted to the format of a first.
func (a HFloat) QuoFloat64(v float64) HFloat { return a.Quo(a.format.FromFloat64(v)) }

// CmpFloat64 compares a with v converted to the format of a.
func (a HFloat) CmpFloat64(v float64) int { return a.Cmp(a.format.FromFloat64(v)) }
