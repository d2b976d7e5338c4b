package hfloat

import (
	"math"
	"math/big"

	"github.com/shogo82148/numfmt/blockbinary"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// FromBigFloat returns v truncated toward zero.
// Infinities saturate to the largest magnitude.
func (f Format) FromBigFloat(v *big.Float) HFloat {
	f.mustValidate()
	neg := v.Signbit()
	if v.IsInf() {
		return f.maxMagnitude(neg)
	}
	if v.Sign() == 0 {
		x := f.Zero()
		x.bits.SetBit(f.Nbits()-1, neg)
		return x
	}

	// v = m / 2^prec * 2^exp where m is an integer.
	mant := new(big.Float)
	exp := v.MantExp(mant)
	prec := int(v.MinPrec())
	m, _ := mant.SetMantExp(mant, prec).Int(nil)
	m.Abs(m)

	// low bits beyond the guard digits can't change the truncated result.
	point := prec
	if limit := f.fbits() + guard; prec > limit {
		m.Rsh(m, uint(prec-limit))
		point = limit
	}

	// convert the binary exponent to a hexadecimal one.
	hexExp := exp / 4
	if exp%4 > 0 {
		hexExp++
	}
	point += 4*hexExp - exp

	frac := blockbinary.New[uint32](m.BitLen(), blockbinary.Flex)
	frac.SetBigInt(m)
	return f.normalize(neg, hexExp, frac, point)
}

// FromFloat64 returns v truncated toward zero.
// NaN converts to zero and infinities saturate to the largest magnitude.
func (f Format) FromFloat64(v float64) HFloat {
	if math.IsNaN(v) {
		return f.Zero()
	}
	return f.FromBigFloat(new(big.Float).SetFloat64(v))
}

// FromFloat32 returns v truncated toward zero.
// NaN converts to zero and infinities saturate to the largest magnitude.
func (f Format) FromFloat32(v float32) HFloat {
	return f.FromFloat64(float64(v))
}

// FromFloat returns v truncated toward zero.
func FromFloat[T constraints.Float](f Format, v T) HFloat {
	return f.FromFloat64(float64(v))
}

// FromInt returns v truncated toward zero.
func FromInt[T constraints.Integer](f Format, v T) HFloat {
	z := new(big.Float)
	if ^T(0) < 0 {
		// T is signed
		z.SetInt64(int64(v))
	} else {
		z.SetUint64(uint64(v))
	}
	return f.FromBigFloat(z)
}

// FromDecimal returns d truncated toward zero.
func (f Format) FromDecimal(d decimal.Decimal) HFloat {
	x, _ := f.fromDecimal(d)
	return x
}

// fromDecimal is FromDecimal that also reports whether |d| exceeds MaxPos.
func (f Format) fromDecimal(d decimal.Decimal) (HFloat, bool) {
	f.mustValidate()
	c := d.Coefficient()
	e := int(d.Exponent())

	// keep absurd exponents from building huge powers of ten.
	limit := 1 << f.Es
	switch {
	case c.Sign() == 0:
		return f.Zero(), false
	case e > limit:
		return f.maxMagnitude(c.Sign() < 0), true
	case e+len(c.String()) < -limit:
		return f.Zero(), false
	}

	var x HFloat
	exact := new(big.Rat)
	if e >= 0 {
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e)), nil)
		c.Mul(c, p)
		exact.SetInt(c)
		x = f.FromBigFloat(new(big.Float).SetInt(c))
	} else {
		// a quotient truncated to more bits than the fraction
		// truncates to the same fraction as the exact quotient.
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(-int64(e)), nil)
		exact.SetFrac(c, p)
		z := new(big.Float).SetPrec(uint(f.fbits() + 2*guard)).SetMode(big.ToZero)
		z.Quo(new(big.Float).SetInt(c), new(big.Float).SetInt(p))
		x = f.FromBigFloat(z)
	}

	// truncation reaches the largest magnitude only from at or above it
	if x.Abs() != f.MaxPos() {
		return x, false
	}
	limitRat, _ := f.MaxPos().BigFloat().Rat(nil)
	return x, exact.Abs(exact).Cmp(limitRat) > 0
}

// exponent returns the binary exponent of the least significant bit of the fraction of x.
func (x HFloat) exponent() int {
	f := x.format
	return 4*(int(x.bits.Field(f.fbits(), f.Es))-f.bias()) - f.fbits()
}

// BigFloat returns the exact value of x.
func (x HFloat) BigFloat() *big.Float {
	f := x.format
	m := x.bits.Extract(0, f.fbits()).BigInt()
	z := new(big.Float).SetInt(m)
	z.SetMantExp(z, x.exponent())
	if x.IsNeg() {
		z.Neg(z)
	}
	return z
}

// Float64 returns the float64 value nearest to x.
func (x HFloat) Float64() float64 {
	v, _ := x.BigFloat().Float64()
	return v
}

// Float32 returns the float32 value nearest to x.
func (x HFloat) Float32() float32 {
	v, _ := x.BigFloat().Float32()
	return v
}

// Int64 returns x truncated toward zero.
// Values out of the range of int64 saturate.
func (x HFloat) Int64() int64 {
	v, _ := x.BigFloat().Int64()
	return v
}

// Decimal returns the exact value of x.
func (x HFloat) Decimal() decimal.Decimal {
	f := x.format
	m := x.bits.Extract(0, f.fbits()).BigInt()
	if x.IsNeg() {
		m.Neg(m)
	}
	e := x.exponent()
	if e >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(e)), 0)
	}

	// m / 2^k == m * 5^k / 10^k
	k := -e
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(k)), nil)
	return decimal.NewFromBigInt(m.Mul(m, p), int32(-k))
}
