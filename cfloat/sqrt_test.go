package cfloat

import (
	"math"
	"math/rand/v2"
	"runtime"
	"testing"
)

func TestSqrt(t *testing.T) {
	tests := []struct {
		x float64
		y float64
	}{
		// special cases
		{0, 0},
		{negZero, negZero},
		{math.Inf(1), math.Inf(1)},
		{-1, math.NaN()},
		{math.Inf(-1), math.NaN()},

		// normal numbers
		{1, 1},
		{2, 0x1.6ap+00},
		{3, 0x1.bb8p+00},
		{4, 0x2p+00},

		// subnormal numbers
		{0x1p-24, 0x1p-12},
		{0x1p-23, 0x1.6ap-12},
	}

	for _, tt := range tests {
		x := Half.FromFloat64(tt.x)
		y := x.Sqrt()
		if y.IsNaN(AnyNaN) && math.IsNaN(tt.y) {
			continue
		}
		if y.Float64() != tt.y || math.Signbit(y.Float64()) != math.Signbit(tt.y) {
			t.Errorf("expected %x, got %x", tt.y, y.Float64())
		}
	}
}

func TestSqrt_All(t *testing.T) {
	for _, c := range []Config{Half, BFloat16, E4M3, E5M2, toy} {
		for bits := range uint64(1 << c.Nbits) {
			x := c.FromBits(bits)
			got := x.Sqrt()
			want := c.FromFloat64(math.Sqrt(x.Float64()))
			if x.IsZero() && got.IsZero() {
				continue
			}
			if !same(got, want) {
				t.Errorf("%s sqrt(%x): expected %x, got %x", c, x.Float64(), want.Float64(), got.Float64())
			}
		}
	}
}

func TestSqrt_Double(t *testing.T) {
	r := rand.New(rand.NewPCG(15, 16))
	for range 100000 {
		bits := r.Uint64() >> 1 // positive numbers
		x := Double.FromBits(bits)
		got := x.Sqrt()
		want := math.Sqrt(math.Float64frombits(bits))
		if got.IsNaN(AnyNaN) && math.IsNaN(want) {
			continue
		}
		if got.Bits() != math.Float64bits(want) {
			t.Errorf("sqrt(%x): expected %x, got %x", x.Float64(), want, got.Float64())
		}
	}
}

func BenchmarkSqrt(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < b.N; i++ {
		f := Half.FromBits(r.Uint64N(0x7c00))
		runtime.KeepAlive(f.Sqrt())
	}
}
