package blockbinary

// ucmp compares the bits of a and b as unsigned integers.
func ucmp[W Word](a, b BlockBinary[W]) int {
	for i := nwords[W](a.nbits) - 1; i >= 0; i-- {
		switch {
		case a.w[i] < b.w[i]:
			return -1
		case a.w[i] > b.w[i]:
			return 1
		}
	}
	return 0
}

// Cmp compares a and b and returns:
//
//	-1 if a <  b
//	 0 if a == b
//	+1 if a >  b
//
// Signed values are ordered by their sign first and then by their magnitude,
// so the most negative value is less than every other value.
func (a BlockBinary[W]) Cmp(b BlockBinary[W]) int {
	a.mustMatch(b, "Cmp")
	x, y := a.twos(), b.twos()
	if x.enc != Flex {
		negX, negY := x.IsNeg(), y.IsNeg()
		if negX != negY {
			if negX {
				return -1
			}
			return 1
		}
	}
	// two's complement values of the same sign are ordered as unsigned integers.
	return ucmp(x, y)
}

// Equal reports whether a and b hold the same value.
func (a BlockBinary[W]) Equal(b BlockBinary[W]) bool { return a.Cmp(b) == 0 }

// Less reports whether a < b.
func (a BlockBinary[W]) Less(b BlockBinary[W]) bool { return a.Cmp(b) < 0 }

// LessEqual reports whether a <= b.
func (a BlockBinary[W]) LessEqual(b BlockBinary[W]) bool { return a.Cmp(b) <= 0 }

// Greater reports whether a > b.
func (a BlockBinary[W]) Greater(b BlockBinary[W]) bool { return a.Cmp(b) > 0 }

// GreaterEqual reports whether a >= b.
func (a BlockBinary[W]) GreaterEqual(b BlockBinary[W]) bool { return a.Cmp(b) >= 0 }
