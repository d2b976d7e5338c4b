package cfloat

import (
	"math"
	"testing"

	"github.com/shogo82148/numfmt/blockbinary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var negZero = math.Float64frombits(1 << 63)

// presets lists every predefined format.
var presets = []Config{E4M3, E5M2, Half, BFloat16, Single, Double}

// toy is a small format without any special encodings.
var toy = Config{Nbits: 8, Es: 4}

func TestValidate(t *testing.T) {
	for _, c := range presets {
		assert.NoError(t, c.Validate(), c.String())
	}
	assert.NoError(t, toy.Validate())
	assert.NoError(t, Config{Nbits: 4, Es: 2}.Validate())

	assert.Error(t, Config{Nbits: 3, Es: 1}.Validate())
	assert.Error(t, Config{Nbits: 65, Es: 11}.Validate())
	assert.Error(t, Config{Nbits: 16, Es: 1}.Validate())
	assert.Error(t, Config{Nbits: 16, Es: 12}.Validate())
	assert.Error(t, Config{Nbits: 8, Es: 7}.Validate()) // no fraction bits
	assert.Error(t, Config{Nbits: 64, Es: 10}.Validate())
	assert.Error(t, Config{Nbits: 16, Es: 5, HasInf: true}.Validate())
	assert.Panics(t, func() { Config{}.Zero() })

	assert.Equal(t, "cfloat(16,5)", Half.String())
	assert.Equal(t, "cfloat(64,11)", Double.String())
}

func TestLimits(t *testing.T) {
	tests := []struct {
		c         Config
		maxPos    float64
		minPos    float64
		minNormal float64
	}{
		{E4M3, 448, 0x1p-9, 0x1p-6},
		{E5M2, 57344, 0x1p-16, 0x1p-14},
		{Half, 65504, 0x1p-24, 0x1p-14},
		{BFloat16, 0x1.fep+127, 0x1p-133, 0x1p-126},
		{Single, math.MaxFloat32, math.SmallestNonzeroFloat32, 0x1p-126},
		{Double, math.MaxFloat64, math.SmallestNonzeroFloat64, 0x1p-1022},
		{toy, 480, 0x1p-6, 0x1p-6},
		{Config{Nbits: 8, Es: 4, HasSubnormals: true, HasNaN: true}, 448, 0x1p-9, 0x1p-6},
	}
	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			assert.Equal(t, tt.maxPos, tt.c.MaxPos().Float64())
			assert.Equal(t, -tt.maxPos, tt.c.MaxNeg().Float64())
			assert.Equal(t, tt.minPos, tt.c.MinPos().Float64())
			assert.Equal(t, -tt.minPos, tt.c.MinNeg().Float64())
			assert.Equal(t, tt.minNormal, tt.c.MinNormal().Float64())
			assert.True(t, tt.c.MinNormal().IsNormal())
		})
	}
}

func TestInf(t *testing.T) {
	tests := []struct {
		f    CFloat
		sign int
		inf  bool
	}{
		{Half.Inf(1), 1, true},
		{Half.Inf(-1), 1, false},
		{Half.Inf(1), -1, false},
		{Half.Inf(-1), -1, true},
		{Half.Inf(1), 0, true},
		{Half.Inf(-1), 0, true},
		{Half.MaxPos(), 0, false},
		{Half.NaN(QuietNaN), 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.inf, tt.f.IsInf(tt.sign), "%s", tt.f.BinaryString(false))
	}

	assert.Equal(t, uint64(0x7c00), Half.Inf(1).Bits())
	assert.Equal(t, uint64(0xfc00), Half.Inf(-1).Bits())
	assert.Equal(t, uint64(0x7c), E5M2.Inf(1).Bits())

	// formats without infinities return what an overflow produces
	assert.Equal(t, E4M3.MaxPos(), E4M3.Inf(1))
	assert.Equal(t, E4M3.MaxNeg(), E4M3.Inf(-1))
	assert.Equal(t, toy.MaxPos(), toy.Inf(1))
	assert.False(t, E4M3.Inf(1).IsInf(0))
}

func TestNaN(t *testing.T) {
	assert.Equal(t, uint64(0x7e00), Half.NaN(QuietNaN).Bits())
	assert.Equal(t, uint64(0x7c01), Half.NaN(SignallingNaN).Bits())
	assert.Equal(t, uint64(0x7e00), Half.NaN(AnyNaN).Bits())

	q := Half.NaN(QuietNaN)
	assert.True(t, q.IsNaN(AnyNaN))
	assert.True(t, q.IsNaN(QuietNaN))
	assert.False(t, q.IsNaN(SignallingNaN))

	s := Half.NaN(SignallingNaN)
	assert.True(t, s.IsNaN(AnyNaN))
	assert.False(t, s.IsNaN(QuietNaN))
	assert.True(t, s.IsNaN(SignallingNaN))

	// E4M3 has a single NaN encoding per sign
	assert.Equal(t, uint64(0x7f), E4M3.NaN(SignallingNaN).Bits())
	assert.True(t, E4M3.FromBits(0xff).IsNaN(QuietNaN))
	assert.False(t, E4M3.FromBits(0x7e).IsNaN(AnyNaN))
	assert.False(t, E4M3.FromBits(0x78).IsNaN(AnyNaN))
	assert.Equal(t, 448.0, E4M3.FromBits(0x7e).Float64())

	// E5M2 has a single fraction bit below the quiet bit
	assert.Equal(t, uint64(0x7e), E5M2.NaN(QuietNaN).Bits())
	assert.Equal(t, uint64(0x7d), E5M2.NaN(SignallingNaN).Bits())

	// without NaN
	assert.True(t, toy.NaN(QuietNaN).IsZero())
	for b := range uint64(256) {
		assert.False(t, toy.FromBits(b).IsNaN(AnyNaN))
	}
}

func TestPredicates(t *testing.T) {
	one := Half.FromFloat64(1)
	assert.True(t, one.IsOne())
	assert.True(t, one.IsNormal())
	assert.False(t, one.IsSubnormal())
	assert.Equal(t, 1, one.Sign())
	assert.Equal(t, 0, one.Scale())
	assert.False(t, Half.FromFloat64(-1).IsOne())

	zero := Half.Zero()
	assert.True(t, zero.IsZero())
	assert.True(t, Half.FromFloat64(negZero).IsZero())
	assert.True(t, Half.FromFloat64(negZero).IsNeg())
	assert.Equal(t, 0, zero.Sign())
	assert.False(t, zero.IsNormal())

	sub := Half.MinPos()
	assert.True(t, sub.IsSubnormal())
	assert.False(t, sub.IsNormal())
	assert.Equal(t, -24, sub.Scale())
	assert.Equal(t, -1, sub.Neg().Sign())

	assert.Equal(t, 15, Half.MaxPos().Scale())
	assert.Equal(t, 16, Half.Inf(1).Scale())
	assert.Equal(t, 0, Half.NaN(QuietNaN).Sign())
	assert.False(t, Half.NaN(QuietNaN).IsFinite())
	assert.False(t, Half.Inf(1).IsFinite())
	assert.True(t, Half.MaxPos().IsFinite())

	// without subnormals, every encoding with a zero exponent field is zero
	assert.True(t, toy.FromBits(0x01).IsZero())
	assert.True(t, toy.FromBits(0x87).IsZero())
	assert.False(t, toy.FromBits(0x01).IsSubnormal())
	assert.Equal(t, 0.0, toy.FromBits(0x07).Float64())
}

func TestFromBlock(t *testing.T) {
	b := blockbinary.New[uint8](16, blockbinary.Flex)
	b.SetBits(0x3c00)
	x := Half.FromBlock(b)
	assert.True(t, x.IsOne())
	assert.Equal(t, b, x.Block())
	assert.Equal(t, Half, x.Config())

	assert.Panics(t, func() { Half.FromBlock(blockbinary.New[uint8](8, blockbinary.Flex)) })

	// bits above the width are ignored
	assert.Equal(t, uint64(0x3c00), Half.FromBits(0xf3c00).Bits())

	y := E5M2.Zero()
	y.SetBits(0x3c)
	assert.True(t, y.IsOne())
	assert.Equal(t, E5M2, y.Config())
}

func TestFormatMismatch(t *testing.T) {
	assert.Panics(t, func() { Half.Zero().Add(BFloat16.Zero()) })
	assert.Panics(t, func() { Half.Zero().Compare(E5M2.Zero()) })
}

func TestSubnormals(t *testing.T) {
	// halving the smallest normal number walks down the subnormals
	x := Half.MinNormal()
	half := Half.FromFloat64(0.5)
	for i := 1; i <= 10; i++ {
		x = x.Mul(half)
		require.True(t, x.IsSubnormal(), "step %d", i)
		assert.Equal(t, math.Ldexp(1, -14-i), x.Float64())
	}

	// ties to even below the smallest subnormal
	x = x.Mul(half)
	assert.True(t, x.IsZero())
	assert.False(t, x.IsNeg())

	// a format without subnormals flushes to zero
	x = toy.MinNormal().Mul(toy.FromFloat64(0.5))
	assert.True(t, x.IsZero())
	assert.Equal(t, 0x1p-6, toy.MinNormal().Float64())
}
