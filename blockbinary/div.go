package blockbinary

import (
	"github.com/shogo82148/numfmt"
)

// Quo returns the quotient a / b, truncated toward zero.
// It panics with a [numfmt.DivideByZeroError] if b is zero.
func (a BlockBinary[W]) Quo(b BlockBinary[W]) BlockBinary[W] {
	q, _ := a.QuoRem(b)
	return q
}

// Rem returns the remainder a % b. The remainder has the sign of a.
// It panics with a [numfmt.DivideByZeroError] if b is zero.
func (a BlockBinary[W]) Rem(b BlockBinary[W]) BlockBinary[W] {
	_, r := a.QuoRem(b)
	return r
}

// QuoRem returns the quotient and the remainder of a / b,
// such that (a / b) * b + a % b == a.
// It panics with a [numfmt.DivideByZeroError] if b is zero.
func (a BlockBinary[W]) QuoRem(b BlockBinary[W]) (q, r BlockBinary[W]) {
	a.mustMatch(b, "QuoRem")
	if b.IsZero() {
		numfmt.PanicDivideByZero("blockbinary.QuoRem", a.String())
	}

	x, y := a.twos(), b.twos()
	negA, negB := x.IsNeg(), y.IsNeg()

	// the magnitude of the most negative value needs one more bit.
	ma := x.Resize(a.nbits + 1).Abs().AsFlex()
	mb := y.Resize(b.nbits + 1).Abs().AsFlex()
	mq, mr := longDivide(ma, mb)

	if negA != negB {
		mq = mq.Neg()
	}
	if negA {
		mr = mr.Neg()
	}
	q = mq.Resize(a.nbits)
	q.enc = x.enc
	r = mr.Resize(a.nbits)
	r.enc = x.enc
	return q.restore(a.enc), r.restore(a.enc)
}

// URQuo returns the unrounded quotient (a << extra) / b of the bits of a and b,
// read as unsigned integers. The quotient is nbits+extra+1 bits wide;
// sticky reports whether the remainder is not zero.
// It panics with a [numfmt.DivideByZeroError] if b is zero.
func (a BlockBinary[W]) URQuo(b BlockBinary[W], extra int) (q BlockBinary[W], sticky bool) {
	a.mustMatch(b, "URQuo")
	if b.IsZero() {
		numfmt.PanicDivideByZero("blockbinary.URQuo", a.String())
	}
	width := a.nbits + extra + 1
	ma := a.AsFlex().Resize(width).Lsh(extra)
	mb := b.AsFlex().Resize(width)
	q, r := longDivide(ma, mb)
	return q, !r.IsZero()
}

// longDivide is the restoring division of unsigned a by unsigned, nonzero b.
// The divisor is shifted left so that its top bit lines up with the top bit of
// the dividend, then walked back down one quotient bit at a time.
func longDivide[W Word](a, b BlockBinary[W]) (q, r BlockBinary[W]) {
	q = a.zero()
	r = a
	shift := a.BitLen() - b.BitLen()
	if shift < 0 {
		return q, r
	}
	d := b.Lsh(shift)
	for i := shift; i >= 0; i-- {
		if ucmp(r, d) >= 0 {
			r = r.add(d.Neg())
			q.SetBit(i, true)
		}
		d = d.Rsh(1)
	}
	return q, r
}
