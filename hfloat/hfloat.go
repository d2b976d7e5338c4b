// Package hfloat implements hexadecimal floating point numbers in the style of
// the IBM System/360.
//
// A number is a sign bit, an exponent of Es bits biased by 2^(Es-1) and a
// fraction of NDigits hexadecimal digits without a hidden bit:
//
//	(-1)^sign * 16^(exponent-bias) * 0.fraction
//
// Results are always truncated toward zero. There is no NaN and no infinity:
// results too large for the format saturate to the largest magnitude and
// results too small collapse to zero.
package hfloat

import (
	"fmt"

	"github.com/shogo82148/numfmt"
	"github.com/shogo82148/numfmt/blockbinary"
)

type block = blockbinary.BlockBinary[uint32]

// Format describes a hexadecimal floating point format.
type Format struct {
	// NDigits is the number of hexadecimal digits in the fraction.
	NDigits int

	// Es is the number of bits in the exponent.
	Es int

	// ThrowDivByZero makes a division by zero panic with a [numfmt.DivideByZeroError]
	// instead of saturating.
	ThrowDivByZero bool
}

// Predefined formats.
var (
	Single   = Format{NDigits: 6, Es: 7}
	Double   = Format{NDigits: 14, Es: 7}
	Extended = Format{NDigits: 28, Es: 7}
)

const (
	maxDigits = 32
	maxEs     = 20
)

// Validate reports whether f describes a supported format.
func (f Format) Validate() error {
	if f.NDigits < 1 || f.NDigits > maxDigits {
		return numfmt.Error.New("%s: the number of digits must be in [1, %d]", f, maxDigits)
	}
	if f.Es < 2 || f.Es > maxEs {
		return numfmt.Error.New("%s: the exponent width must be in [2, %d]", f, maxEs)
	}
	return nil
}

func (f Format) mustValidate() {
	if err := f.Validate(); err != nil {
		panic(err)
	}
}

func (f Format) String() string {
	return fmt.Sprintf("hfloat(%d,%d)", f.NDigits, f.Es)
}

// Nbits returns the width of an encoding of f.
func (f Format) Nbits() int {
	return 1 + f.Es + f.fbits()
}

func (f Format) fbits() int {
	return 4 * f.NDigits
}

func (f Format) bias() int {
	return 1 << (f.Es - 1)
}

// maxExp returns the largest biased exponent.
func (f Format) maxExp() int {
	return 1<<f.Es - 1
}

// HFloat is a hexadecimal floating point number.
// The zero value is not usable; HFloats are created by the methods of [Format].
type HFloat struct {
	format Format
	bits   block
}

// Config returns the format of x.
func (x HFloat) Config() Format {
	return x.format
}

// Zero returns positive zero.
func (f Format) Zero() HFloat {
	f.mustValidate()
	return HFloat{
		format: f,
		bits:   blockbinary.New[uint32](f.Nbits(), blockbinary.Flex),
	}
}

// FromBits returns the number encoded in the low Nbits bits of b.
func (f Format) FromBits(b uint64) HFloat {
	x := f.Zero()
	x.bits.SetBits(b)
	return x
}

// SetBits replaces the encoding of x with the low bits of b, keeping its format.
func (x *HFloat) SetBits(b uint64) {
	*x = x.format.FromBits(b)
}

// FromBlock returns the number encoded in b.
// It panics if the width of b is not Nbits.
func (f Format) FromBlock(b blockbinary.BlockBinary[uint32]) HFloat {
	x := f.Zero()
	if b.Nbits() != f.Nbits() {
		panic(fmt.Sprintf("hfloat: %d bits can't encode %s", b.Nbits(), f))
	}
	x.bits = b.AsFlex()
	return x
}

// Bits returns the low 64 bits of the encoding of x.
func (x HFloat) Bits() uint64 {
	return x.bits.Uint64()
}

// Block returns the encoding of x.
func (x HFloat) Block() blockbinary.BlockBinary[uint32] {
	return x.bits
}

// MaxPos returns the largest positive number.
func (f Format) MaxPos() HFloat {
	return f.maxMagnitude(false)
}

// MaxNeg returns the most negative number.
func (f Format) MaxNeg() HFloat {
	return f.maxMagnitude(true)
}

func (f Format) maxMagnitude(neg bool) HFloat {
	x := f.Zero()
	for i := 0; i < f.Nbits()-1; i++ {
		x.bits.SetBit(i, true)
	}
	x.bits.SetBit(f.Nbits()-1, neg)
	return x
}

// MinPos returns the smallest positive normalized number.
func (f Format) MinPos() HFloat {
	x := f.Zero()
	x.bits.SetBit(f.fbits()-4, true)
	return x
}

// MinNeg returns the negative normalized number closest to zero.
func (f Format) MinNeg() HFloat {
	return f.MinPos().Neg()
}

// pack returns the number with the sign neg, the biased exponent exp
// and the low fbits bits of frac.
func (f Format) pack(neg bool, exp int, frac block) HFloat {
	x := f.Zero()
	x.bits.SetBit(f.Nbits()-1, neg)
	x.bits.SetField(f.fbits(), f.Es, uint64(exp))
	x.bits.Insert(0, frac.Resize(f.fbits()))
	return x
}

// unpack returns the sign, the unbiased exponent and the fbits wide fraction of x.
// The fraction is shifted so that its leading hexadecimal digit is not zero.
// Zero unpacks to (sign, 0, 0).
func (x HFloat) unpack() (neg bool, exp int, frac block) {
	f := x.format
	neg = x.bits.Bit(f.Nbits() - 1)
	frac = x.bits.Extract(0, f.fbits())
	if frac.IsZero() {
		return neg, 0, frac
	}
	exp = int(x.bits.Field(f.fbits(), f.Es)) - f.bias()
	for frac.BitLen() <= f.fbits()-4 {
		frac = frac.Lsh(4)
		exp--
	}
	return neg, exp, frac
}

// normalize returns (-1)^neg * frac / 2^point * 16^exp in f.
// The fraction is truncated toward zero. Magnitudes above the range of f
// saturate, and magnitudes below the smallest normalized number become zero.
func (f Format) normalize(neg bool, exp int, frac block, point int) HFloat {
	if frac.IsZero() {
		return f.Zero()
	}
	frac = frac.Resize(max(frac.Nbits(), point, f.fbits()) + 4)

	for frac.BitLen() > point {
		frac = frac.Rsh(4)
		exp++
	}
	for frac.BitLen() <= point-4 {
		frac = frac.Lsh(4)
		exp--
	}
	frac = frac.Rsh(point - f.fbits())

	biased := exp + f.bias()
	switch {
	case biased > f.maxExp():
		return f.maxMagnitude(neg)
	case biased < 0:
		return f.Zero()
	}
	return f.pack(neg, biased, frac)
}

// canonical returns x with a normalized fraction.
func (x HFloat) canonical() HFloat {
	neg, exp, frac := x.unpack()
	return x.format.normalize(neg, exp, frac, x.format.fbits())
}

// IsZero reports whether x is ±0.
// Every encoding with a zero fraction is zero, whatever its exponent.
func (x HFloat) IsZero() bool {
	return !x.bits.Any(x.format.fbits() - 1)
}

// IsNeg reports whether the sign bit of x is set.
func (x HFloat) IsNeg() bool {
	return x.bits.Bit(x.format.Nbits() - 1)
}

// IsOne reports whether x is 1.
func (x HFloat) IsOne() bool {
	neg, exp, frac := x.unpack()
	return !neg && exp == 1 && frac.BitLen() == x.format.fbits()-3 && !frac.Any(x.format.fbits()-5)
}

// IsNormalized reports whether the leading digit of the fraction of x is not zero.
func (x HFloat) IsNormalized() bool {
	return x.bits.Field(x.format.fbits()-4, 4) != 0
}

// Sign returns:
//
//	-1 if x <   0
//	 0 if x is ±0
//	+1 if x >   0
func (x HFloat) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.IsNeg():
		return -1
	}
	return 1
}

// Scale returns the binary exponent of x, that is floor(log2(|x|)).
// It returns 0 for zero.
func (x HFloat) Scale() int {
	if x.IsZero() {
		return 0
	}
	_, exp, frac := x.unpack()
	return 4*exp + frac.BitLen() - 1 - x.format.fbits()
}

func (x HFloat) mustMatch(y HFloat, op string) {
	x.format.mustValidate()
	if x.format != y.format {
		panic(fmt.Sprintf("hfloat.%s: format mismatch %s and %s", op, x.format, y.format))
	}
}
