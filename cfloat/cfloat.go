// Package cfloat implements binary floating point numbers with a hidden bit
// in configurable widths, from 8 bit machine learning formats up to
// IEEE 754 binary64.
//
// A number is a sign bit, an exponent of Es bits biased by 2^(Es-1)-1 and a
// fraction of Nbits-1-Es bits:
//
//	(-1)^sign * 2^(exponent-bias) * 1.fraction   (normal)
//	(-1)^sign * 2^(1-bias) * 0.fraction          (subnormal, exponent field 0)
//
// Results are rounded to nearest with ties to even.
// Whether the format has subnormals, infinities and NaNs, and what happens on
// overflow, is chosen per [Config].
//
// Numbers are printed from their exact value, not through float64: String
// prints the shortest decimal that parses back to the same number of the
// same format, so the largest Half prints as "65500" where float64 would
// print "65504". Text with a precision, or Float64, gives the other digits.
package cfloat

import (
	"fmt"

	"github.com/shogo82148/numfmt/blockbinary"
)

type block = blockbinary.BlockBinary[uint8]

// workspace holds unpacked significands during arithmetic.
type workspace = blockbinary.BlockBinary[uint64]

// wsBits is the width of an unpacked significand.
const wsBits = 64

// CFloat is a binary floating point number.
// The zero value is not usable; CFloats are created by the methods of [Config].
type CFloat struct {
	config Config
	bits   block
}

// NaNKind selects the kinds of NaN [CFloat.IsNaN] reports.
type NaNKind int

const (
	// AnyNaN matches both kinds of NaN.
	AnyNaN NaNKind = iota

	// QuietNaN matches NaNs with the most significant fraction bit set.
	QuietNaN

	// SignallingNaN matches NaNs with the most significant fraction bit clear.
	SignallingNaN
)

// Config returns the format of x.
func (x CFloat) Config() Config {
	return x.config
}

// Zero returns positive zero.
func (c Config) Zero() CFloat {
	c.mustValidate()
	return CFloat{
		config: c,
		bits:   blockbinary.New[uint8](c.Nbits, blockbinary.Flex),
	}
}

// FromBits returns the number encoded in the low Nbits bits of b.
func (c Config) FromBits(b uint64) CFloat {
	x := c.Zero()
	x.bits.SetBits(b)
	return x
}

// SetBits replaces the encoding of x with the low Nbits bits of b, keeping its format.
func (x *CFloat) SetBits(b uint64) {
	*x = x.config.FromBits(b)
}

// FromBlock returns the number encoded in b.
// It panics if the width of b is not Nbits.
func (c Config) FromBlock(b blockbinary.BlockBinary[uint8]) CFloat {
	x := c.Zero()
	if b.Nbits() != c.Nbits {
		panic(fmt.Sprintf("cfloat: %d bits can't encode %s", b.Nbits(), c))
	}
	x.bits.Insert(0, b)
	return x
}

// MaxPos returns the largest finite number.
func (c Config) MaxPos() CFloat {
	return c.FromBits(c.maxFinite())
}

// MaxNeg returns the most negative finite number.
func (c Config) MaxNeg() CFloat {
	return c.FromBits(c.signMask() | c.maxFinite())
}

// MinPos returns the smallest positive number.
// It is subnormal if the format has subnormals.
func (c Config) MinPos() CFloat {
	if c.HasSubnormals {
		return c.FromBits(1)
	}
	return c.MinNormal()
}

// MinNeg returns the negative number closest to zero.
func (c Config) MinNeg() CFloat {
	return c.MinPos().Neg()
}

// MinNormal returns the smallest positive normal number.
func (c Config) MinNormal() CFloat {
	return c.FromBits(1 << c.fbits())
}

// Inf returns positive infinity if sign >= 0, negative infinity if sign < 0.
// A format without infinities returns what an overflow produces instead.
func (c Config) Inf(sign int) CFloat {
	c.mustValidate()
	if !c.HasInf {
		return c.overflow(sign < 0)
	}
	b := uint64(c.maxExp()) << c.fbits()
	if sign < 0 {
		b |= c.signMask()
	}
	return c.FromBits(b)
}

// NaN returns a NaN of the given kind.
// A format without NaN returns zero.
// Formats with a single NaN encoding ignore kind, as do formats with a
// single fraction bit, where no signalling NaN exists.
func (c Config) NaN(kind NaNKind) CFloat {
	c.mustValidate()
	switch {
	case !c.HasNaN:
		return c.Zero()
	case !c.HasInf:
		return c.FromBits(uint64(c.maxExp())<<c.fbits() | c.fracMask())
	}
	b := uint64(c.maxExp()) << c.fbits()
	if kind == SignallingNaN && c.fbits() > 1 {
		b |= 1
	} else {
		b |= 1 << (c.fbits() - 1)
	}
	return c.FromBits(b)
}

// nan is the result of an invalid operation.
func (c Config) nan() CFloat {
	return c.NaN(QuietNaN)
}

// overflow returns the result of a rounding beyond the largest finite number.
func (c Config) overflow(neg bool) CFloat {
	switch {
	case c.HasInf && !c.IsSaturating:
		return c.Inf(boolSign(neg))
	case c.HasNaN && !c.HasInf && !c.IsSaturating:
		x := c.nan()
		if neg {
			x = x.Neg()
		}
		return x
	case neg:
		return c.MaxNeg()
	}
	return c.MaxPos()
}

func boolSign(neg bool) int {
	if neg {
		return -1
	}
	return 1
}

// Bits returns the encoding of x.
func (x CFloat) Bits() uint64 {
	return x.bits.Field(0, x.config.Nbits)
}

// Block returns the encoding of x as a [blockbinary.BlockBinary].
func (x CFloat) Block() blockbinary.BlockBinary[uint8] {
	return x.bits
}

// fields splits x into its raw fields.
func (x CFloat) fields() (neg bool, exp int, frac uint64) {
	c := x.config
	neg = x.bits.Bit(c.Nbits - 1)
	exp = int(x.bits.Field(c.fbits(), c.Es))
	frac = x.bits.Field(0, c.fbits())
	return
}

// unpack returns the significand and the exponent of a finite x,
// such that |x| = m * 2^exp. Zero returns a zero m.
func (x CFloat) unpack() (neg bool, exp int, m workspace) {
	c := x.config
	neg, e, frac := x.fields()
	m = blockbinary.New[uint64](wsBits, blockbinary.Flex)
	switch {
	case e == 0 && !c.HasSubnormals:
		// zero
		return neg, c.emin() - c.fbits(), m
	case e == 0:
		// subnormal
		m.SetBits(frac)
		return neg, c.emin() - c.fbits(), m
	}
	m.SetBits(frac | 1<<c.fbits())
	return neg, e - c.bias() - c.fbits(), m
}

// normalized returns the unpacked x with the leading bit of m at position fbits.
// x must be finite and nonzero.
func (x CFloat) normalized() (neg bool, exp int, m workspace) {
	neg, exp, m = x.unpack()
	shift := x.config.fbits() + 1 - m.BitLen()
	return neg, exp - shift, m.Lsh(shift)
}

// pack returns the number with the given fields.
func (c Config) pack(neg bool, exp int, frac uint64) CFloat {
	b := uint64(exp)<<c.fbits() | frac&c.fracMask()
	if neg {
		b |= c.signMask()
	}
	return c.FromBits(b)
}

// IsZero reports whether x is +0 or -0.
func (x CFloat) IsZero() bool {
	_, exp, frac := x.fields()
	return exp == 0 && (frac == 0 || !x.config.HasSubnormals)
}

// IsOne reports whether x is +1.
func (x CFloat) IsOne() bool {
	neg, exp, frac := x.fields()
	return !neg && exp == x.config.bias() && frac == 0
}

// IsNeg reports whether the sign bit of x is set.
func (x CFloat) IsNeg() bool {
	return x.bits.Bit(x.config.Nbits - 1)
}

// IsNaN reports whether x is a NaN of the given kind.
func (x CFloat) IsNaN(kind NaNKind) bool {
	c := x.config
	_, exp, frac := x.fields()
	if !c.HasNaN || exp != c.maxExp() {
		return false
	}
	if !c.HasInf {
		// the single NaN encoding is quiet
		return frac == c.fracMask() && kind != SignallingNaN
	}
	if frac == 0 {
		return false
	}
	quiet := frac>>(c.fbits()-1) != 0
	switch kind {
	case QuietNaN:
		return quiet
	case SignallingNaN:
		return !quiet
	}
	return true
}

// IsInf reports whether x is an infinity, according to sign.
// If sign > 0, IsInf reports whether x is positive infinity.
// If sign < 0, IsInf reports whether x is negative infinity.
// If sign == 0, IsInf reports whether x is either infinity.
func (x CFloat) IsInf(sign int) bool {
	c := x.config
	neg, exp, frac := x.fields()
	if !c.HasInf || exp != c.maxExp() || frac != 0 {
		return false
	}
	return sign == 0 || (sign > 0) != neg
}

// IsFinite reports whether x is neither an infinity nor a NaN.
func (x CFloat) IsFinite() bool {
	return !x.IsNaN(AnyNaN) && !x.IsInf(0)
}

// IsNormal reports whether x is finite, nonzero and not subnormal.
func (x CFloat) IsNormal() bool {
	_, exp, _ := x.fields()
	return exp != 0 && x.IsFinite()
}

// IsSubnormal reports whether x is subnormal.
func (x CFloat) IsSubnormal() bool {
	_, exp, frac := x.fields()
	return x.config.HasSubnormals && exp == 0 && frac != 0
}

// Sign returns:
//
//	-1 if x <  0
//	 0 if x is ±0 or NaN
//	+1 if x >  0
func (x CFloat) Sign() int {
	switch {
	case x.IsZero() || x.IsNaN(AnyNaN):
		return 0
	case x.IsNeg():
		return -1
	}
	return 1
}

// Scale returns the binary exponent of x, such that 2^Scale <= |x| < 2^(Scale+1).
// It returns 0 for zero and NaN, and the exponent of the all ones exponent field for the infinities.
func (x CFloat) Scale() int {
	c := x.config
	switch {
	case x.IsZero() || x.IsNaN(AnyNaN):
		return 0
	case x.IsInf(0):
		return c.maxExp() - c.bias()
	}
	_, exp, m := x.unpack()
	return exp + m.BitLen() - 1
}

func (x CFloat) mustMatch(y CFloat, op string) {
	if x.config != y.config {
		panic(fmt.Sprintf("cfloat.%s: format mismatch %s and %s", op, x.config, y.config))
	}
}
