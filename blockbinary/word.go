package blockbinary

import "math/bits"

// Word is the unsigned storage unit of a [BlockBinary].
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MaxWords is the number of words embedded in every [BlockBinary].
const MaxWords = 32

func wordBits[W Word]() int {
	return bits.Len64(uint64(^W(0)))
}

// MaxBits returns the widest value that can be stored in words of type W.
func MaxBits[W Word]() int {
	return MaxWords * wordBits[W]()
}

// addWord returns the sum with carry of a, b and carry.
// The carry input must be 0 or 1; the carryOut output is guaranteed to be 0 or 1.
func addWord[W Word](a, b, carry W) (sum, carryOut W) {
	n := wordBits[W]()
	if n == 64 {
		s, c := bits.Add64(uint64(a), uint64(b), uint64(carry))
		return W(s), W(c)
	}

	// a narrow word can't hold the carry; promote it.
	s := uint64(a) + uint64(b) + uint64(carry)
	return W(s), W(s >> n)
}

// nwords returns the number of words needed for nbits bits.
func nwords[W Word](nbits int) int {
	n := wordBits[W]()
	return (nbits + n - 1) / n
}

// topMask returns the mask of the valid bits in the most significant word.
func topMask[W Word](nbits int) W {
	r := nbits % wordBits[W]()
	if r == 0 {
		return ^W(0)
	}
	return W(1)<<r - 1
}
