package blockbinary

// Lsh returns a << k.
// Shifting by nbits or more clears the value; a negative k shifts right.
// A ones' complement value is shifted as its two's complement,
// so it is multiplied by 2^k like any other value.
func (a BlockBinary[W]) Lsh(k int) BlockBinary[W] {
	if k < 0 {
		return a.Rsh(-k)
	}
	return a.twos().lsh(k).restore(a.enc)
}

func (a BlockBinary[W]) lsh(k int) BlockBinary[W] {
	if k == 0 {
		return a
	}
	if k >= a.nbits {
		return a.zero()
	}

	n := wordBits[W]()
	ws, bs := k/n, k%n
	ret := a.zero()
	for i := nwords[W](a.nbits) - 1; i >= ws; i-- {
		v := a.w[i-ws] << bs
		if bs > 0 && i-ws > 0 {
			v |= a.w[i-ws-1] >> (n - bs)
		}
		ret.w[i] = v
	}
	ret.normalize()
	return ret
}

// Rsh returns a >> k.
// Negative signed values are sign-extended, everything else is zero-extended.
// Two's complement values round toward negative infinity and
// ones' complement values toward zero.
// A negative k shifts left.
func (a BlockBinary[W]) Rsh(k int) BlockBinary[W] {
	if k < 0 {
		return a.Lsh(-k)
	}
	if k == 0 {
		return a
	}
	fill := a.IsNeg()
	if k >= a.nbits {
		if fill {
			return a.allOnes()
		}
		return a.zero()
	}

	n := wordBits[W]()
	ws, bs := k/n, k%n
	words := nwords[W](a.nbits)
	ret := a.zero()
	for i := 0; i+ws < words; i++ {
		v := a.w[i+ws] >> bs
		if bs > 0 && i+ws+1 < words {
			v |= a.w[i+ws+1] << (n - bs)
		}
		ret.w[i] = v
	}
	if fill {
		for i := a.nbits - k; i < a.nbits; i++ {
			ret.SetBit(i, true)
		}
	}
	ret.normalize()
	return ret
}
