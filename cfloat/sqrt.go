package cfloat

import (
	"github.com/shogo82148/numfmt/blockbinary"
)

// Sqrt returns the square root of x rounded to nearest even.
//
// Special cases are:
//
//	Sqrt(+Inf) = +Inf
//	Sqrt(±0) = ±0
//	Sqrt(x < 0) = NaN
//	Sqrt(NaN) = NaN
func (x CFloat) Sqrt() CFloat {
	c := x.config
	// special cases
	switch {
	case x.IsZero() || x.IsNaN(AnyNaN) || x.IsInf(1):
		return x
	case x.IsNeg():
		return c.nan()
	}

	// normalize x to 1.frac * 2^exp
	_, exp, frac := x.normalized()
	exp += c.fbits()

	width := c.fbits() + 8
	frac = frac.Resize(width)
	if exp%2 != 0 { // odd exp, double x to make it even
		frac = frac.Lsh(1)
	}
	// exponent of square root
	exp >>= 1

	// generate sqrt(frac) bit by bit
	frac = frac.Lsh(1)
	q := blockbinary.New[uint64](width, blockbinary.Flex)
	s := q
	r := q
	r.SetBit(c.fbits()+1, true)
	for !r.IsZero() {
		t := s.Add(r)
		if t.Cmp(frac) <= 0 {
			s = t.Add(r)
			frac = frac.Sub(t)
			q = q.Add(r)
		}
		frac = frac.Lsh(1)
		r = r.Rsh(1)
	}

	// q holds one bit more than the fraction; the remainder is sticky.
	return c.roundPack(false, exp-c.fbits()-1, q, !frac.IsZero())
}
