package cfloat

import (
	"math"
	"math/big"

	"github.com/shogo82148/int128"
	"github.com/shogo82148/numfmt"
	"github.com/shogo82148/numfmt/blockbinary"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// FromFloat64 returns v rounded to nearest even.
func (c Config) FromFloat64(v float64) CFloat {
	c.mustValidate()
	neg := math.Signbit(v)
	switch {
	case math.IsNaN(v):
		return c.nan()
	case math.IsInf(v, 0):
		return c.Inf(boolSign(neg))
	case v == 0:
		return c.pack(neg, 0, 0)
	}

	// v = frac * 2^exp, 0.5 <= |frac| < 1
	frac, exp := math.Frexp(math.Abs(v))
	m := uint64(frac * (1 << 53))
	return c.fromUint64(neg, exp-53, m, false)
}

// FromFloat32 returns v rounded to nearest even.
func (c Config) FromFloat32(v float32) CFloat {
	return c.FromFloat64(float64(v))
}

// FromFloat returns v rounded to nearest even.
func FromFloat[T constraints.Float](c Config, v T) CFloat {
	return c.FromFloat64(float64(v))
}

// FromInt returns v rounded to nearest even.
func FromInt[T constraints.Integer](c Config, v T) CFloat {
	if ^T(0) < 0 {
		// T is signed
		return c.FromInt64(int64(v))
	}
	return c.FromUint64(uint64(v))
}

// FromInt64 returns v rounded to nearest even.
func (c Config) FromInt64(v int64) CFloat {
	c.mustValidate()
	if v < 0 {
		// -math.MinInt64 wraps to itself, which is right as an unsigned integer.
		return c.fromUint64(true, 0, uint64(-v), false)
	}
	return c.fromUint64(false, 0, uint64(v), false)
}

// FromUint64 returns v rounded to nearest even.
func (c Config) FromUint64(v uint64) CFloat {
	c.mustValidate()
	return c.fromUint64(false, 0, v, false)
}

// FromUint128 returns v rounded to nearest even.
func (c Config) FromUint128(v int128.Uint128) CFloat {
	c.mustValidate()
	m := blockbinary.FromUint128[uint64](128, blockbinary.Flex, v)
	return c.roundPack(false, 0, m, false)
}

// fromBigInt returns the number nearest to (-1)^neg * m * 2^exp.
// m must not be negative.
func (c Config) fromBigInt(neg bool, exp int, m *big.Int, sticky bool) (CFloat, bool) {
	// bits far below the rounding position only matter as a sticky bit.
	if limit := c.fbits() + 8; m.BitLen() > limit {
		shift := uint(m.BitLen() - limit)
		sticky = sticky || m.TrailingZeroBits() < shift
		m = new(big.Int).Rsh(m, shift)
		exp += int(shift)
	}
	ws := blockbinary.New[uint64](max(m.BitLen(), 1), blockbinary.Flex)
	ws.SetBigInt(m)
	return c.round(neg, exp, ws, sticky)
}

// FromBigFloat returns v rounded to nearest even.
func (c Config) FromBigFloat(v *big.Float) CFloat {
	c.mustValidate()
	neg := v.Signbit()
	switch {
	case v.IsInf():
		return c.Inf(boolSign(neg))
	case v.Sign() == 0:
		return c.pack(neg, 0, 0)
	}

	// v = m / 2^prec * 2^exp where m is an integer.
	mant := new(big.Float)
	exp := v.MantExp(mant)
	prec := int(v.MinPrec())
	m, _ := mant.SetMantExp(mant, prec).Int(nil)
	x, _ := c.fromBigInt(neg, exp-prec, m.Abs(m), false)
	return x
}

// FromDecimal returns d rounded to nearest even.
func (c Config) FromDecimal(d decimal.Decimal) CFloat {
	x, _ := c.fromDecimal(d)
	return x
}

func (c Config) fromDecimal(d decimal.Decimal) (CFloat, bool) {
	c.mustValidate()
	coef := d.Coefficient()
	e := int(d.Exponent())
	neg := coef.Sign() < 0
	coef.Abs(coef)

	// every power of ten beyond the limit is out of the range of the format.
	limit := c.bias() + c.fbits() + 2
	switch {
	case coef.Sign() == 0:
		return c.Zero(), false
	case e > limit:
		return c.overflow(neg), true
	case e+len(coef.String()) < -limit:
		return c.pack(neg, 0, 0), false
	}

	if e >= 0 {
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e)), nil)
		m := coef.Mul(coef, p)
		return c.fromBigInt(neg, 0, m, false)
	}

	// coef / 10^k, scaled to keep fbits+3 bits in the quotient
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(-int64(e)), nil)
	shift := max(0, c.fbits()+3+p.BitLen()-coef.BitLen())
	coef.Lsh(coef, uint(shift))
	q, r := coef.QuoRem(coef, p, new(big.Int))
	return c.fromBigInt(neg, -shift, q, r.Sign() != 0)
}

// mantExp returns the integer significand and the exponent of a finite x,
// such that |x| = m * 2^exp.
func (x CFloat) mantExp() (neg bool, m uint64, exp int) {
	neg, exp, ws := x.unpack()
	return neg, ws.Uint64(), exp
}

// Float64 returns the float64 value of x.
// The conversion is exact unless the exponent range of x exceeds the range of float64.
func (x CFloat) Float64() float64 {
	switch {
	case x.IsNaN(AnyNaN):
		return math.NaN()
	case x.IsInf(0):
		return math.Inf(boolSign(x.IsNeg()))
	}
	neg, m, exp := x.mantExp()
	v := math.Ldexp(float64(m), exp)
	if neg {
		v = -v
	}
	return v
}

// Float32 returns the float32 value nearest to x.
func (x CFloat) Float32() float32 {
	return float32(x.Float64())
}

// Int64 returns x truncated toward zero.
// Values out of the range of int64 saturate and NaN converts to zero.
func (x CFloat) Int64() int64 {
	if x.IsNaN(AnyNaN) {
		return 0
	}
	v, _ := x.BigFloat().Int64()
	return v
}

// Uint64 returns x truncated toward zero.
// Values out of the range of uint64 saturate and NaN converts to zero.
func (x CFloat) Uint64() uint64 {
	if x.IsNaN(AnyNaN) {
		return 0
	}
	v, _ := x.BigFloat().Uint64()
	return v
}

// Uint128 returns x truncated toward zero.
// Values out of the range of uint128 saturate and NaN converts to zero.
func (x CFloat) Uint128() int128.Uint128 {
	switch {
	case x.IsNaN(AnyNaN) || x.IsNeg():
		return int128.Uint128{}
	case x.IsInf(1):
		return int128.Uint128{H: math.MaxUint64, L: math.MaxUint64}
	}
	v, _ := x.BigFloat().Int(nil)
	if v.BitLen() > 128 {
		return int128.Uint128{H: math.MaxUint64, L: math.MaxUint64}
	}
	b := blockbinary.New[uint64](128, blockbinary.Flex)
	b.SetBigInt(v)
	return b.Uint128()
}

// BigFloat returns the exact value of x.
// It panics with [big.ErrNaN] if x is NaN.
func (x CFloat) BigFloat() *big.Float {
	switch {
	case x.IsNaN(AnyNaN):
		panic(big.ErrNaN{})
	case x.IsInf(0):
		return new(big.Float).SetInf(x.IsNeg())
	}
	neg, m, exp := x.mantExp()
	z := new(big.Float).SetUint64(m)
	z.SetMantExp(z, exp)
	if neg {
		z.Neg(z)
	}
	return z
}

// Decimal returns the exact value of x.
// It panics if x is an infinity or NaN.
func (x CFloat) Decimal() decimal.Decimal {
	if !x.IsFinite() {
		panic(numfmt.Error.New("%s has no decimal value", x))
	}
	neg, u, e := x.mantExp()
	m := new(big.Int).SetUint64(u)
	if neg {
		m.Neg(m)
	}
	return dyadic(m, e)
}
