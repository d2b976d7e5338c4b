package hfloat

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"runtime"
	"testing"

	"github.com/shogo82148/numfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		a, b float64
		want uint64
	}{
		{1, 1, 0x41200000},
		{1, -1, 0x00000000},
		{100, -118.625, 0xc212a000}, // -18.625
		{0.5, 0.5, 0x41100000},
		{15, 1, 0x42100000},      // carry into a new digit
		{16, -1, 0x41f00000},     // cancels a digit
		{1, 1.0 / 3, 0x41155555}, // truncated
		{-1, -1.0 / 3, 0xc1155555},
		{0, -2, 0xc1200000},
		{-2, 0, 0xc1200000},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a := Single.FromFloat64(tt.a)
			b := Single.FromFloat64(tt.b)
			got := a.Add(b)
			assert.Equal(t, tt.want, got.Bits(), "%v + %v: expected %08x, got %08x", tt.a, tt.b, tt.want, got.Bits())
		})
	}
}

func TestAdd_Truncation(t *testing.T) {
	one := Single.FromFloat64(1)

	// half of the last place of 1.0
	half := Single.FromFloat64(0x1p-21)
	assert.Equal(t, one, one.Add(half))
	assert.Equal(t, one, one.Add(Single.FromFloat64(1e-10)))
	assert.Equal(t, one, one.Add(Single.MinPos()))

	// 1 - tiny truncates toward zero, below 1
	assert.Equal(t, uint64(0x40ffffff), one.Sub(Single.FromFloat64(1e-10)).Bits())
	assert.Equal(t, uint64(0x40fffff8), one.Sub(half).Bits())
}

func TestAdd_Float64(t *testing.T) {
	// every sum of two numbers whose exponents differ by at most 6 digits
	// is exact in float64, so float64 is a perfect reference.
	r := rand.New(rand.NewPCG(1, 2))
	for range 20000 {
		a := random(r, Single, 3)
		b := random(r, Single, 3)
		got := a.Add(b)
		want := Single.FromFloat64(a.Float64() + b.Float64())
		require.True(t, got.Equal(want), "%s + %s: expected %s, got %s", a.HexString(), b.HexString(), want.HexString(), got.HexString())
		require.True(t, got.IsZero() || got.IsNormalized())

		got = a.Sub(b)
		want = Single.FromFloat64(a.Float64() - b.Float64())
		require.True(t, got.Equal(want), "%s - %s: expected %s, got %s", a.HexString(), b.HexString(), want.HexString(), got.HexString())
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b float64
		want uint64
	}{
		{1, 1, 0x41100000},
		{2, 3, 0x41600000},
		{-118.625, 100, 0xc42e5680}, // -11862.5
		{1.0 / 3, 3, 0x40ffffff},
		{0, 3, 0x00000000},
		{3, 0, 0x00000000},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a := Single.FromFloat64(tt.a)
			b := Single.FromFloat64(tt.b)
			got := a.Mul(b)
			assert.Equal(t, tt.want, got.Bits(), "%v * %v: expected %08x, got %08x", tt.a, tt.b, tt.want, got.Bits())
		})
	}
}

func TestSaturation(t *testing.T) {
	maxPos := Single.MaxPos()
	maxNeg := Single.MaxNeg()
	two := Single.FromFloat64(2)

	assert.Equal(t, maxPos, maxPos.Mul(two))
	assert.Equal(t, maxPos, maxPos.Mul(two).Mul(two))
	assert.Equal(t, maxNeg, maxNeg.Mul(two))
	assert.Equal(t, maxNeg, maxPos.Mul(two.Neg()))
	assert.Equal(t, maxPos, maxPos.Add(maxPos))
	assert.Equal(t, maxNeg, maxNeg.Sub(maxPos))
	assert.Equal(t, maxPos, maxPos.Quo(Single.FromFloat64(0.5)))
	assert.Equal(t, maxPos, maxPos.MulFloat64(2))

	// underflow collapses to zero
	minPos := Single.MinPos()
	assert.True(t, minPos.Mul(Single.FromFloat64(0.5)).IsZero())
	assert.True(t, minPos.Quo(two).IsZero())
	assert.Equal(t, minPos, minPos.Mul(Single.FromFloat64(1)))
}

func TestMul_Float64(t *testing.T) {
	// products of two 24-bit fractions are exact in float64.
	r := rand.New(rand.NewPCG(3, 4))
	for range 20000 {
		a := random(r, Single, 20)
		b := random(r, Single, 20)
		got := a.Mul(b)
		want := Single.FromFloat64(a.Float64() * b.Float64())
		require.Equal(t, want, got, "%s * %s: expected %s, got %s", a.HexString(), b.HexString(), want.HexString(), got.HexString())
	}
}

func TestQuo_Float64(t *testing.T) {
	// a quotient of two 24-bit fractions is never close enough to a 24-bit boundary
	// for the float64 rounding to cross it.
	r := rand.New(rand.NewPCG(5, 6))
	for range 20000 {
		a := random(r, Single, 20)
		b := random(r, Single, 20)
		got := a.Quo(b)
		want := Single.FromFloat64(a.Float64() / b.Float64())
		require.Equal(t, want, got, "%s / %s: expected %s, got %s", a.HexString(), b.HexString(), want.HexString(), got.HexString())
	}
}

func TestArithmetic_BigFloat(t *testing.T) {
	for _, f := range []Format{Double, Extended} {
		t.Run(f.String(), func(t *testing.T) {
			r := rand.New(rand.NewPCG(7, 8))
			for range 2000 {
				a := random(r, f, 10)
				b := random(r, f, 10)
				x, y := a.BigFloat(), b.BigFloat()

				// exact sums, differences and products
				sum := new(big.Float).SetPrec(1024).Add(x, y)
				require.True(t, a.Add(b).Equal(f.FromBigFloat(sum)), "%s + %s", a.HexString(), b.HexString())
				diff := new(big.Float).SetPrec(1024).Sub(x, y)
				require.True(t, a.Sub(b).Equal(f.FromBigFloat(diff)), "%s - %s", a.HexString(), b.HexString())
				prod := new(big.Float).SetPrec(1024).Mul(x, y)
				require.Equal(t, f.FromBigFloat(prod), a.Mul(b), "%s * %s", a.HexString(), b.HexString())

				// truncating to 1024 bits first doesn't change the truncated quotient
				quo := new(big.Float).SetPrec(1024).SetMode(big.ToZero).Quo(x, y)
				require.Equal(t, f.FromBigFloat(quo), a.Quo(b), "%s / %s", a.HexString(), b.HexString())
			}
		})
	}
}

func TestQuo(t *testing.T) {
	one := Single.FromFloat64(1)
	three := Single.FromFloat64(3)
	assert.Equal(t, uint64(0x40555555), one.Quo(three).Bits())
	assert.Equal(t, uint64(0xc0aaaaaa), Single.FromFloat64(-2).Quo(three).Bits())
	assert.Equal(t, uint64(0x42640000), Single.FromFloat64(1e4).Quo(Single.FromFloat64(100)).Bits())
	assert.True(t, Single.Zero().Quo(three).IsZero())

	// division by zero saturates
	zero := Single.Zero()
	assert.Equal(t, Single.MaxPos(), one.Quo(zero))
	assert.Equal(t, Single.MaxNeg(), one.Neg().Quo(zero))
	assert.Equal(t, Single.MaxNeg(), one.Quo(zero.Neg()))
	assert.True(t, zero.Quo(zero).IsZero())
}

func TestQuo_Throw(t *testing.T) {
	f := Format{NDigits: 6, Es: 7, ThrowDivByZero: true}
	one := f.FromFloat64(1)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, numfmt.ErrDivideByZero))
		var derr *numfmt.DivideByZeroError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "hfloat.Quo", derr.Op)
		assert.Equal(t, "1", derr.Dividend)
	}()
	one.Quo(f.Zero())
}

func TestFormatMismatch(t *testing.T) {
	assert.Panics(t, func() { Single.FromFloat64(1).Add(Double.FromFloat64(1)) })
}

func TestZero(t *testing.T) {
	posZero := Single.FromFloat64(0)
	negZero := Single.FromFloat64(negZero)
	assert.NotEqual(t, posZero.Bits(), negZero.Bits())
	assert.True(t, posZero.Equal(negZero))
	assert.Equal(t, 0, negZero.Cmp(posZero))
	assert.False(t, negZero.Less(posZero))
	assert.True(t, posZero.Equal(Single.FromBits(0x47000000)))
}

func TestCmp(t *testing.T) {
	values := []float64{-1e80, -100, -1, -1.0 / 3, -0x1p-260, 0, 0x1p-260, 1.0 / 3, 1, 100, 1e80}
	for i, a := range values {
		for j, b := range values {
			x := Single.FromFloat64(a)
			y := Single.FromFloat64(b)
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			assert.Equal(t, want, x.Cmp(y), "cmp(%v, %v)", a, b)
			assert.Equal(t, want, x.CmpFloat64(b), "cmp(%v, %v)", a, b)
			assert.Equal(t, want < 0, x.Less(y))
			assert.Equal(t, want <= 0, x.LessEqual(y))
			assert.Equal(t, want > 0, x.Greater(y))
			assert.Equal(t, want >= 0, x.GreaterEqual(y))
		}
	}

	// unnormalized encodings compare by value
	assert.True(t, Single.FromBits(0x41010000).Equal(Single.FromBits(0x40100000)))
}

func TestIncDec(t *testing.T) {
	tests := []struct {
		x        uint64
		inc, dec uint64
	}{
		{0x41100000, 0x41100001, 0x40ffffff}, // 1 borrows its leading digit
		{0xc1100000, 0xc0ffffff, 0xc1100001}, // -1
		{0x41ffffff, 0x42100000, 0x41fffffe}, // carries into a new digit
		{0x00000000, 0x00100000, 0x80100000},
		{0x80000000, 0x00100000, 0x80100000},
		{0x00100000, 0x00100001, 0x00000000},
		{0x80100000, 0x00000000, 0x80100001},
		{0x7fffffff, 0x7fffffff, 0x7ffffffe}, // saturates
		{0xffffffff, 0xfffffffe, 0xffffffff},
		{0x41010000, 0x40100001, 0x3fffffff}, // 0x0.010000 * 16^1 is 0x0.100000 * 16^0
	}
	for _, tt := range tests {
		x := Single.FromBits(tt.x)
		assert.Equal(t, tt.inc, x.Inc().Bits(), "%08x inc", tt.x)
		assert.Equal(t, tt.dec, x.Dec().Bits(), "%08x dec", tt.x)
	}

	// stepping moves the value and never skips a number
	r := rand.New(rand.NewPCG(21, 22))
	for range 1000 {
		x := random(r, Single, 8)
		require.True(t, x.Inc().Greater(x), "%08x", x.Bits())
		require.True(t, x.Dec().Less(x), "%08x", x.Bits())
		assert.True(t, x.Inc().Dec().Equal(x), "%08x", x.Bits())
		assert.True(t, x.Dec().Inc().Equal(x), "%08x", x.Bits())
	}
}

func TestNegAbs(t *testing.T) {
	x := Single.FromFloat64(-118.625)
	assert.Equal(t, uint64(0x4276a000), x.Neg().Bits())
	assert.Equal(t, uint64(0x4276a000), x.Abs().Bits())
	assert.Equal(t, x, x.Neg().Neg())
}

func TestMixedFloat64(t *testing.T) {
	x := Single.FromFloat64(100)
	assert.Equal(t, 101.0, x.AddFloat64(1).Float64())
	assert.Equal(t, 99.0, x.SubFloat64(1).Float64())
	assert.Equal(t, 250.0, x.MulFloat64(2.5).Float64())
	assert.Equal(t, 40.0, x.QuoFloat64(2.5).Float64())
}

func BenchmarkMul(b *testing.B) {
	x := Single.FromFloat64(1.0 / 3)
	y := Single.FromFloat64(3)
	for i := 0; i < b.N; i++ {
		runtime.KeepAlive(x.Mul(y))
	}
}

func FuzzAdd(f *testing.F) {
	f.Add(uint32(0x41100000), uint32(0x40555555))
	f.Fuzz(func(t *testing.T, a, b uint32) {
		x := Single.FromBits(uint64(a))
		y := Single.FromBits(uint64(b))
		sum := new(big.Float).SetPrec(2048).Add(x.BigFloat(), y.BigFloat())
		want := Single.FromBigFloat(sum)
		if got := x.Add(y); !got.Equal(want) {
			t.Errorf("%s + %s: expected %s, got %s", x.HexString(), y.HexString(), want.HexString(), got.HexString())
		}
	})
}
