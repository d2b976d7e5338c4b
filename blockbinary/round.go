package blockbinary

// RoundingDirection reports whether a rounds up when the bits below targetLsb
// are discarded, rounding to nearest with ties to even.
//
// The decision is made from the candidate least significant bit at targetLsb,
// the guard bit below it, the round bit below the guard bit,
// and the sticky OR of everything below the round bit.
func (a BlockBinary[W]) RoundingDirection(targetLsb int) bool {
	lsb := a.Bit(targetLsb)
	guard := a.Bit(targetLsb - 1)
	round := a.Bit(targetLsb - 2)
	sticky := a.Any(targetLsb - 3)

	if !guard {
		return false
	}
	if round || sticky {
		// above the half way point
		return true
	}
	// a tie; round to even
	return lsb
}

// RoundToNearestEven returns a >> k rounded to nearest with ties to even.
// The result may carry into bit nbits-k.
func (a BlockBinary[W]) RoundToNearestEven(k int) BlockBinary[W] {
	up := a.RoundingDirection(k)
	ret := a.AsFlex().Rsh(k)
	ret.enc = a.enc
	if up {
		ret = ret.add(ret.one())
	}
	return ret
}
