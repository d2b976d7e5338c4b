// Package blockbinary implements fixed-width binary integers packed into words.
//
// A [BlockBinary] holds nbits bits in an embedded array of unsigned words.
// Values are plain Go values: they are copied on assignment, never alias each other,
// and two values of the same width and encoding compare equal with == exactly when
// they hold the same bits.
package blockbinary

import (
	"fmt"
	"math/bits"
)

// Encoding is the interpretation of the bits of a [BlockBinary].
type Encoding uint8

const (
	// Flex is an uninterpreted bit pattern, read as an unsigned integer.
	Flex Encoding = iota

	// OnesComplement is a signed integer whose negation flips every bit.
	OnesComplement

	// TwosComplement is a signed integer whose negation flips every bit and adds one.
	TwosComplement
)

func (e Encoding) String() string {
	switch e {
	case Flex:
		return "flex"
	case OnesComplement:
		return "ones' complement"
	case TwosComplement:
		return "two's complement"
	}
	return fmt.Sprintf("Encoding(%d)", uint8(e))
}

// BlockBinary is an nbits-wide integer stored in words of type W.
// The zero value has no width and is not usable; values are created by [New]
// or by the conversion functions.
type BlockBinary[W Word] struct {
	nbits int
	enc   Encoding

	// bits above nbits-1 are always zero.
	w [MaxWords]W
}

// New returns a zero value that is nbits wide.
// It panics if nbits is not in the range [1, MaxBits[W]()].
func New[W Word](nbits int, enc Encoding) BlockBinary[W] {
	if nbits < 1 || nbits > MaxBits[W]() {
		panic(fmt.Sprintf("blockbinary: invalid width %d", nbits))
	}
	if enc > TwosComplement {
		panic(fmt.Sprintf("blockbinary: invalid encoding %d", enc))
	}
	return BlockBinary[W]{nbits: nbits, enc: enc}
}

// Nbits returns the width of a.
func (a BlockBinary[W]) Nbits() int {
	return a.nbits
}

// Encoding returns the encoding of a.
func (a BlockBinary[W]) Encoding() Encoding {
	return a.enc
}

// Words returns a copy of the words of a, least significant first.
func (a BlockBinary[W]) Words() []W {
	ret := make([]W, nwords[W](a.nbits))
	copy(ret, a.w[:])
	return ret
}

// Word returns the i-th word, or zero if i is out of range.
func (a BlockBinary[W]) Word(i int) W {
	if i < 0 || i >= nwords[W](a.nbits) {
		return 0
	}
	return a.w[i]
}

// SetWord sets the i-th word.
// It does nothing if i is out of range.
func (a *BlockBinary[W]) SetWord(i int, v W) {
	if i < 0 || i >= nwords[W](a.nbits) {
		return
	}
	a.w[i] = v
	a.normalize()
}

// normalize clears every bit at position nbits or above.
// All mutators end with it.
func (a *BlockBinary[W]) normalize() {
	n := nwords[W](a.nbits)
	if n == 0 {
		panic("blockbinary: use of a BlockBinary without width")
	}
	a.w[n-1] &= topMask[W](a.nbits)
	clear(a.w[n:])
}

// zero returns the zero value with the same width and encoding as a.
func (a BlockBinary[W]) zero() BlockBinary[W] {
	return BlockBinary[W]{nbits: a.nbits, enc: a.enc}
}

// Bit reports whether the i-th bit is set.
// It returns false if i is out of range.
func (a BlockBinary[W]) Bit(i int) bool {
	if i < 0 || i >= a.nbits {
		return false
	}
	n := wordBits[W]()
	return (a.w[i/n]>>(i%n))&1 != 0
}

// SetBit sets the i-th bit to v.
// It does nothing if i is out of range.
func (a *BlockBinary[W]) SetBit(i int, v bool) {
	if i < 0 || i >= a.nbits {
		return
	}
	n := wordBits[W]()
	if v {
		a.w[i/n] |= W(1) << (i % n)
	} else {
		a.w[i/n] &^= W(1) << (i % n)
	}
}

// SetBits sets the low bits of a from v, and clears the rest.
func (a *BlockBinary[W]) SetBits(v uint64) {
	a.w = [MaxWords]W{}
	a.SetField(0, 64, v)
}

// Field returns width bits starting at lsb as an unsigned integer.
// Bits out of range read as zero. width must not exceed 64.
func (a BlockBinary[W]) Field(lsb, width int) uint64 {
	if width > 64 {
		panic(fmt.Sprintf("blockbinary: field width %d exceeds 64", width))
	}
	var ret uint64
	for i := width - 1; i >= 0; i-- {
		ret <<= 1
		if a.Bit(lsb + i) {
			ret |= 1
		}
	}
	return ret
}

// SetField writes the low width bits of v starting at lsb.
// Bits out of range are ignored. width must not exceed 64.
func (a *BlockBinary[W]) SetField(lsb, width int, v uint64) {
	if width > 64 {
		panic(fmt.Sprintf("blockbinary: field width %d exceeds 64", width))
	}
	for i := 0; i < width; i++ {
		a.SetBit(lsb+i, v&1 != 0)
		v >>= 1
	}
}

// Extract returns width bits starting at lsb as a new Flex value.
func (a BlockBinary[W]) Extract(lsb, width int) BlockBinary[W] {
	ret := New[W](width, Flex)
	sh := a.AsFlex().Rsh(lsb)
	copy(ret.w[:], sh.w[:])
	ret.normalize()
	return ret
}

// Insert copies the bits of v into a starting at lsb.
func (a *BlockBinary[W]) Insert(lsb int, v BlockBinary[W]) {
	for i := 0; i < v.nbits; i++ {
		a.SetBit(lsb+i, v.Bit(i))
	}
}

// Resize returns a copy of a with nbits bits.
// Signed values are sign-extended when they grow; all values are truncated when they shrink.
func (a BlockBinary[W]) Resize(nbits int) BlockBinary[W] {
	ret := New[W](nbits, a.enc)
	copy(ret.w[:], a.w[:])
	if a.IsNeg() {
		for i := a.nbits; i < nbits; i++ {
			ret.SetBit(i, true)
		}
	}
	ret.normalize()
	return ret
}

// AsFlex returns the bits of a reinterpreted as an unsigned integer.
func (a BlockBinary[W]) AsFlex() BlockBinary[W] {
	a.enc = Flex
	return a
}

// ToTwosComplement returns a in two's complement encoding.
// Flex values are reinterpreted; a ones' complement negative zero becomes zero.
func (a BlockBinary[W]) ToTwosComplement() BlockBinary[W] {
	neg := a.enc == OnesComplement && a.Bit(a.nbits-1)
	a.enc = TwosComplement
	if neg {
		a = a.add(a.one())
	}
	return a
}

// ToOnesComplement returns a in ones' complement encoding.
// Flex values are reinterpreted. The most negative two's complement value has
// no counterpart and maps to the most negative ones' complement value.
func (a BlockBinary[W]) ToOnesComplement() BlockBinary[W] {
	neg := a.enc == TwosComplement && a.Bit(a.nbits-1)
	a.enc = OnesComplement
	if neg && a.Any(a.nbits-2) {
		a = a.add(a.allOnes())
	}
	return a
}

func (a BlockBinary[W]) one() BlockBinary[W] {
	ret := a.zero()
	ret.w[0] = 1
	return ret
}

func (a BlockBinary[W]) allOnes() BlockBinary[W] {
	ret := a.zero()
	for i := range nwords[W](a.nbits) {
		ret.w[i] = ^W(0)
	}
	ret.normalize()
	return ret
}

// IsNeg reports whether a is a signed negative value.
func (a BlockBinary[W]) IsNeg() bool {
	return a.enc != Flex && a.Bit(a.nbits-1)
}

// IsZero reports whether a is zero.
// The ones' complement negative zero is zero.
func (a BlockBinary[W]) IsZero() bool {
	if a.enc == OnesComplement && a == a.allOnes() {
		return true
	}
	return a.w == [MaxWords]W{}
}

// Sign returns:
//
//	-1 if a <  0
//	 0 if a == 0
//	+1 if a >  0
func (a BlockBinary[W]) Sign() int {
	switch {
	case a.IsZero():
		return 0
	case a.IsNeg():
		return -1
	}
	return 1
}

// Any reports whether any bit at position msb or below is set.
func (a BlockBinary[W]) Any(msb int) bool {
	if msb < 0 {
		return false
	}
	if msb >= a.nbits {
		msb = a.nbits - 1
	}
	n := wordBits[W]()
	top := msb / n
	for i := range top {
		if a.w[i] != 0 {
			return true
		}
	}
	mask := ^W(0)
	if r := msb%n + 1; r < n {
		mask = W(1)<<r - 1
	}
	return a.w[top]&mask != 0
}

// BitLen returns the minimum number of bits required to represent the bits of a
// as an unsigned integer.
func (a BlockBinary[W]) BitLen() int {
	n := wordBits[W]()
	for i := nwords[W](a.nbits) - 1; i >= 0; i-- {
		if a.w[i] == 0 {
			continue
		}
		return i*n + bits.Len64(uint64(a.w[i]))
	}
	return 0
}

// mustMatch panics unless a and b have the same width.
func (a BlockBinary[W]) mustMatch(b BlockBinary[W], op string) {
	if a.nbits != b.nbits {
		panic(fmt.Sprintf("blockbinary.%s: width mismatch %d and %d", op, a.nbits, b.nbits))
	}
}
