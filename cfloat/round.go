package cfloat

import (
	"github.com/shogo82148/numfmt/blockbinary"
)

// round returns the number nearest to (-1)^neg * m * 2^exp, ties to even.
// If sticky is set, the true magnitude is slightly larger than m * 2^exp;
// callers must then keep at least one bit below the rounding position in m.
// overflow reports whether the result went beyond the largest finite number.
func (c Config) round(neg bool, exp int, m workspace, sticky bool) (x CFloat, overflow bool) {
	fbits := c.fbits()
	l := m.BitLen()
	if l == 0 {
		// sticky alone is below any representable magnitude
		return c.pack(neg, 0, 0), false
	}

	width := max(l, fbits+2) + 2
	m = m.Resize(width)
	if sticky {
		m = m.Lsh(1)
		m.SetBit(0, true)
		exp--
		l++
	}

	// the exponent of the leading bit and of the last bit kept.
	e := exp + l - 1
	q := e - fbits
	if e < c.emin() {
		q = c.emin() - fbits
	}

	var r workspace
	if k := q - exp; k > 0 {
		r = m.RoundToNearestEven(k)
	} else {
		r = m.Lsh(-k)
	}
	if r.BitLen() > fbits+1 {
		// rounded up to the next power of two
		r = r.Rsh(1)
		q++
	}
	if r.IsZero() {
		return c.pack(neg, 0, 0), false
	}

	biased := 0
	if r.Bit(fbits) {
		biased = q + fbits + c.bias()
	} else if !c.HasSubnormals {
		return c.pack(neg, 0, 0), false
	}
	if biased > c.maxExp() {
		return c.overflow(neg), true
	}
	frac := r.Field(0, fbits)
	if uint64(biased)<<fbits|frac > c.maxFinite() {
		return c.overflow(neg), true
	}
	return c.pack(neg, biased, frac), false
}

// roundPack is round without the overflow report.
func (c Config) roundPack(neg bool, exp int, m workspace, sticky bool) CFloat {
	x, _ := c.round(neg, exp, m, sticky)
	return x
}

// fromUint64 returns the number nearest to (-1)^neg * m * 2^exp.
func (c Config) fromUint64(neg bool, exp int, m uint64, sticky bool) CFloat {
	ws := blockbinary.New[uint64](wsBits, blockbinary.Flex)
	ws.SetBits(m)
	return c.roundPack(neg, exp, ws, sticky)
}
