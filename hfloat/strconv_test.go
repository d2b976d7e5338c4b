package hfloat

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/shogo82148/numfmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexString(t *testing.T) {
	tests := []struct {
		x    HFloat
		want string
	}{
		{Single.FromFloat64(1), "+0x0.100000 * 16^1"},
		{Single.FromFloat64(-118.625), "-0x0.76a000 * 16^2"},
		{Single.FromFloat64(1.0 / 3), "+0x0.555555 * 16^0"},
		{Single.Zero(), "+0x0.000000 * 16^-64"},
		{Single.MaxPos(), "+0x0.ffffff * 16^63"},
		{Single.FromBits(0x41010000), "+0x0.010000 * 16^1"},
		{Double.FromFloat64(0.1), "+0x0.1999999999999a * 16^0"},
	}
	for _, tt := range tests {
		got := tt.x.HexString()
		assert.Equal(t, tt.want, got)

		x, err := tt.x.Config().Parse(got)
		require.NoError(t, err, got)
		assert.Equal(t, tt.x, x, got)
	}
}

func TestBinaryString(t *testing.T) {
	one := Single.FromFloat64(1)
	assert.Equal(t, "0b0.1000001.000100000000000000000000", one.BinaryString(false))
	assert.Equal(t, "0b0.100'0001.0001'0000'0000'0000'0000'0000", one.BinaryString(true))
}

func TestBinaryString_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 10))
	for _, f := range []Format{Single, Double, Extended, {NDigits: 1, Es: 2}} {
		for range 1000 {
			x := f.Zero()
			for i := 0; i < f.Nbits(); i += 32 {
				x.bits.SetField(i, 32, r.Uint64())
			}
			for _, grouping := range []bool{false, true} {
				s := x.BinaryString(grouping)
				y, err := f.Parse(s)
				require.NoError(t, err, s)
				require.Equal(t, x, y, s)
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		s    string
		bits uint64
	}{
		{"0", 0x00000000},
		{"-0", 0x80000000},
		{"1", 0x41100000},
		{"+1", 0x41100000},
		{"-118.625", 0xc276a000},
		{"1e2", 0x42640000},
		{"0.1", 0x40199999},
		{"0.0625", 0x40100000},
		{"  100  ", 0x42640000},
		{"0x0.1 * 16^1", 0x41100000},
		{"-0X0.76A * 16^2", 0xc276a000},
		{"0x0.0001 * 16^65", 0x7e100000}, // normalized into range
		{"0x0.1000001 * 16^1", 0x41100000},
		{"1e-100", 0x00000000},
		{"1e-200000000", 0x00000000},
		{"-1e-200000000", 0x80000000},
		{"123456789e-200000000", 0x00000000},
	}
	for _, tt := range tests {
		x, err := Single.Parse(tt.s)
		require.NoError(t, err, tt.s)
		assert.Equal(t, tt.bits, x.Bits(), "%q: expected %08x, got %08x", tt.s, tt.bits, x.Bits())
	}
}

func TestParse_Error(t *testing.T) {
	tests := []struct {
		s    string
		bits uint64
		err  error
	}{
		{"", 0, numfmt.ErrSyntax},
		{"one", 0, numfmt.ErrSyntax},
		{"1.2.3", 0, numfmt.ErrSyntax},
		{"0b0.1000001.0001", 0, numfmt.ErrSyntax},
		{"0x1.0p3", 0, numfmt.ErrSyntax},
		{"0x0.1 * 2^1", 0, numfmt.ErrSyntax},
		{"0x0.1g * 16^1", 0, numfmt.ErrSyntax},
		{"0x0.1 * 16^x", 0, numfmt.ErrSyntax},
		{"1e80", 0x7fffffff, numfmt.ErrRange},
		{"-1e80", 0xffffffff, numfmt.ErrRange},
		{"0x0.1 * 16^100", 0x7fffffff, numfmt.ErrRange},
		{"1e200000000", 0x7fffffff, numfmt.ErrRange},
		{"-1e200000000", 0xffffffff, numfmt.ErrRange},
	}
	for _, tt := range tests {
		x, err := Single.Parse(tt.s)
		assert.ErrorIs(t, err, tt.err, tt.s)
		assert.True(t, numfmt.Error.Has(err), tt.s)
		assert.Equal(t, tt.bits, x.Bits(), tt.s)

		var perr *numfmt.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "hfloat(6,7)", perr.Type)
		assert.Equal(t, tt.s, perr.Input)
	}
}

func TestParse_Limit(t *testing.T) {
	// the largest number is in range, anything above it saturates to it
	s := Single.MaxPos().Decimal().String()
	x, err := Single.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, Single.MaxPos(), x)

	x, err = Single.Parse(s + ".5")
	assert.ErrorIs(t, err, numfmt.ErrRange)
	assert.Equal(t, Single.MaxPos(), x)

	x, err = Single.Parse("-" + s + ".5")
	assert.ErrorIs(t, err, numfmt.ErrRange)
	assert.Equal(t, Single.MaxNeg(), x)
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		x    HFloat
		want string
	}{
		{Single.FromFloat64(1), "1"},
		{Single.FromFloat64(-118.625), "-118.625"},
		{Single.FromFloat64(1.0 / 3), "0.333333313465118408203125"},
		{Single.FromFloat64(1e20), "99999984411901689856"},
		{Single.Zero(), "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.x.Decimal().String())
	}

	// exact decimals convert back to the same number.
	r := rand.New(rand.NewPCG(11, 12))
	for range 1000 {
		x := random(r, Double, 30)
		require.Equal(t, x, Double.FromDecimal(x.Decimal()))
	}

	assert.Equal(t, uint64(0x40199999), Single.FromDecimal(decimal.New(1, -1)).Bits())
	assert.Equal(t, uint64(0x42640000), Single.FromDecimal(decimal.New(1, 2)).Bits())
	assert.Equal(t, uint64(0x7fffffff), Single.FromDecimal(decimal.New(1, 1000000)).Bits())
	assert.Equal(t, uint64(0x00000000), Single.FromDecimal(decimal.New(1, -1000000)).Bits())
}

func TestFormat(t *testing.T) {
	one := Single.FromFloat64(1)
	tests := []struct {
		format string
		x      HFloat
		want   string
	}{
		{"%v", one, "1"},
		{"%s", one, "1"},
		{"%f", one, "1.000000"},
		{"%.2f", Single.FromFloat64(-118.625), "-118.62"},
		{"%8.3f", one, "   1.000"},
		{"%-8.3f|", one, "1.000   |"},
		{"%+g", one, "+1"},
		{"%e", Single.FromFloat64(100), "1.000000e+02"},
		{"%b", one, "0b0.1000001.000100000000000000000000"},
		{"%#b", one, "0b0.100'0001.0001'0000'0000'0000'0000'0000"},
		{"%x", one, "+0x0.100000 * 16^1"},
		{"%X", Single.FromFloat64(-118.625), "-0X0.76A000 * 16^2"},
	}
	for _, tt := range tests {
		got := fmt.Sprintf(tt.format, tt.x)
		assert.Equal(t, tt.want, got, tt.format)
	}
	assert.Equal(t, "0.3333333134651184", Single.FromFloat64(1.0/3).String())
	assert.Equal(t, "0.333", Single.FromFloat64(1.0/3).Text('f', 3))
}

func TestText(t *testing.T) {
	x := Double.FromFloat64(-118.625)
	text, err := x.MarshalText()
	require.NoError(t, err)

	y := Double.Zero()
	require.NoError(t, y.UnmarshalText(text))
	assert.Equal(t, x, y)

	// y is untouched on failure
	err = y.UnmarshalText([]byte("bogus"))
	assert.ErrorIs(t, err, numfmt.ErrSyntax)
	assert.Equal(t, x, y)

	var z HFloat
	assert.Error(t, z.UnmarshalText(text))
}

func TestScan(t *testing.T) {
	x := Single.Zero()
	_, err := fmt.Sscan("-118.625", &x)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xc276a000), x.Bits())

	_, err = fmt.Sscan("nope", &x)
	assert.ErrorIs(t, err, numfmt.ErrSyntax)
	assert.Equal(t, uint64(0xc276a000), x.Bits())
}
