package cfloat

import (
	"fmt"

	"github.com/shogo82148/numfmt"
)

// Config describes a binary floating point format with a hidden bit.
type Config struct {
	// Nbits is the width of an encoding.
	Nbits int

	// Es is the number of bits in the exponent.
	Es int

	// HasSubnormals enables gradual underflow.
	// Without it, encodings with a zero exponent field are zero and
	// results below the smallest normal number flush to zero.
	HasSubnormals bool

	// HasInf reserves the encodings with an all ones exponent field and
	// a zero fraction for the infinities. It requires HasNaN.
	HasInf bool

	// HasNaN reserves encodings for NaN. With HasInf, every nonzero fraction
	// under the all ones exponent is a NaN; without it, only the all ones
	// exponent and fraction are.
	HasNaN bool

	// IsSaturating makes results beyond the largest finite number
	// clamp to it instead of becoming infinity or NaN.
	IsSaturating bool

	// ThrowDivByZero makes a division by zero panic with a [numfmt.DivideByZeroError].
	ThrowDivByZero bool
}

// Predefined formats.
var (
	// E4M3 is the 8 bit format with 3 fraction bits used for machine learning.
	// It has no infinities and NaN is S.1111.111.
	E4M3 = Config{Nbits: 8, Es: 4, HasSubnormals: true, HasNaN: true, IsSaturating: true}

	// E5M2 is the 8 bit format with 2 fraction bits, a truncated [Half].
	E5M2 = Config{Nbits: 8, Es: 5, HasSubnormals: true, HasInf: true, HasNaN: true}

	// Half is IEEE 754 binary16.
	Half = Config{Nbits: 16, Es: 5, HasSubnormals: true, HasInf: true, HasNaN: true}

	// BFloat16 is the brain floating point format, a truncated [Single].
	BFloat16 = Config{Nbits: 16, Es: 8, HasSubnormals: true, HasInf: true, HasNaN: true}

	// Single is IEEE 754 binary32.
	Single = Config{Nbits: 32, Es: 8, HasSubnormals: true, HasInf: true, HasNaN: true}

	// Double is IEEE 754 binary64.
	Double = Config{Nbits: 64, Es: 11, HasSubnormals: true, HasInf: true, HasNaN: true}
)

const (
	maxNbits = 64
	maxEs    = 11
	maxFbits = 52
)

// Validate reports whether c describes a supported format.
func (c Config) Validate() error {
	if c.Nbits < 4 || c.Nbits > maxNbits {
		return numfmt.Error.New("%s: the width must be in [4, %d]", c, maxNbits)
	}
	if c.Es < 2 || c.Es > maxEs {
		return numfmt.Error.New("%s: the exponent width must be in [2, %d]", c, maxEs)
	}
	if f := c.fbits(); f < 1 || f > maxFbits {
		return numfmt.Error.New("%s: the fraction width must be in [1, %d]", c, maxFbits)
	}
	if c.HasInf && !c.HasNaN {
		return numfmt.Error.New("%s: infinities require NaN", c)
	}
	return nil
}

func (c Config) mustValidate() {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}

func (c Config) String() string {
	return fmt.Sprintf("cfloat(%d,%d)", c.Nbits, c.Es)
}

func (c Config) fbits() int {
	return c.Nbits - 1 - c.Es
}

func (c Config) bias() int {
	return 1<<(c.Es-1) - 1
}

// maxExp returns the all ones exponent field.
func (c Config) maxExp() int {
	return 1<<c.Es - 1
}

// emin returns the unbiased exponent of the smallest normal number.
func (c Config) emin() int {
	return 1 - c.bias()
}

func (c Config) fracMask() uint64 {
	return 1<<c.fbits() - 1
}

func (c Config) signMask() uint64 {
	return 1 << (c.Nbits - 1)
}

// maxFinite returns the encoding of the largest finite number.
func (c Config) maxFinite() uint64 {
	all := uint64(c.maxExp())<<c.fbits() | c.fracMask()
	switch {
	case c.HasInf:
		// the all ones exponent is reserved
		return all - c.fracMask() - 1
	case c.HasNaN:
		// the all ones pattern is NaN
		return all - 1
	}
	return all
}
