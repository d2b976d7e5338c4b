package blockbinary

import (
	"math"
	"math/big"

	"github.com/shogo82148/int128"
	"golang.org/x/exp/constraints"
)

// FromInt returns v as an nbits wide value, truncated modulo 2^nbits.
func FromInt[W Word, T constraints.Integer](nbits int, enc Encoding, v T) BlockBinary[W] {
	ret := New[W](nbits, enc)
	if ^T(0) < 0 {
		// T is signed
		ret.SetInt64(int64(v))
	} else {
		ret.SetUint64(uint64(v))
	}
	return ret
}

// FromFloat returns v truncated toward zero, modulo 2^nbits.
// NaN and infinities convert to zero.
func FromFloat[W Word, T constraints.Float](nbits int, enc Encoding, v T) BlockBinary[W] {
	ret := New[W](nbits, enc)
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ret
	}
	i, _ := new(big.Float).SetFloat64(f).Int(nil)
	ret.SetBigInt(i)
	return ret
}

// FromUint128 returns v as an nbits wide value, truncated modulo 2^nbits.
func FromUint128[W Word](nbits int, enc Encoding, v int128.Uint128) BlockBinary[W] {
	ret := New[W](nbits, enc)
	ret.SetField(0, 64, v.L)
	ret.SetField(64, 64, v.H)
	return ret
}

// SetInt64 sets a to v modulo 2^nbits.
func (a *BlockBinary[W]) SetInt64(v int64) {
	enc := a.enc
	a.enc = TwosComplement
	a.SetBits(uint64(v))
	if v < 0 {
		for i := 64; i < a.nbits; i++ {
			a.SetBit(i, true)
		}
	}
	*a = a.restore(enc)
	a.enc = enc
}

// SetUint64 sets a to v modulo 2^nbits.
func (a *BlockBinary[W]) SetUint64(v uint64) {
	a.SetBigInt(new(big.Int).SetUint64(v))
}

// Int64 returns the low 64 bits of a, sign-extended if a is signed.
func (a BlockBinary[W]) Int64() int64 {
	x := a.twos()
	v := x.Field(0, 64)
	if x.IsNeg() && x.nbits < 64 {
		v |= ^uint64(0) << x.nbits
	}
	return int64(v)
}

// Uint64 returns the low 64 bits of a.
func (a BlockBinary[W]) Uint64() uint64 {
	return a.twos().Field(0, 64)
}

// Uint128 returns the low 128 bits of a.
func (a BlockBinary[W]) Uint128() int128.Uint128 {
	x := a.twos()
	return int128.Uint128{
		H: x.Field(64, 64),
		L: x.Field(0, 64),
	}
}

// SetBigInt sets a to x modulo 2^nbits.
func (a *BlockBinary[W]) SetBigInt(x *big.Int) {
	enc := a.enc
	m := new(big.Int).Lsh(big.NewInt(1), uint(a.nbits))
	v := new(big.Int).Mod(x, m)
	buf := v.FillBytes(make([]byte, (a.nbits+7)/8))

	a.w = [MaxWords]W{}
	for i, b := range buf {
		a.SetField(8*(len(buf)-1-i), 8, uint64(b))
	}
	a.enc = TwosComplement
	*a = a.restore(enc)
	a.enc = enc
}

// BigInt returns the value of a.
func (a BlockBinary[W]) BigInt() *big.Int {
	x := a.twos()
	buf := make([]byte, (x.nbits+7)/8)
	for i := range buf {
		buf[len(buf)-1-i] = byte(x.Field(8*i, 8))
	}
	ret := new(big.Int).SetBytes(buf)
	if x.IsNeg() {
		m := new(big.Int).Lsh(big.NewInt(1), uint(x.nbits))
		ret.Sub(ret, m)
	}
	return ret
}

// Float64 returns the nearest float64 value of a.
func (a BlockBinary[W]) Float64() float64 {
	f, _ := new(big.Float).SetInt(a.BigInt()).Float64()
	return f
}
