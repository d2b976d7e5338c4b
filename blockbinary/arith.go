package blockbinary

// add returns the ripple carry sum of the bits of a and b, modulo 2^nbits.
func (a BlockBinary[W]) add(b BlockBinary[W]) BlockBinary[W] {
	var carry W
	for i := range nwords[W](a.nbits) {
		a.w[i], carry = addWord(a.w[i], b.w[i], carry)
	}
	a.normalize()
	return a
}

// not returns the bitwise complement of a.
func (a BlockBinary[W]) not() BlockBinary[W] {
	for i := range nwords[W](a.nbits) {
		a.w[i] = ^a.w[i]
	}
	a.normalize()
	return a
}

// twos returns a in an encoding suitable for modular arithmetic.
// Ones' complement values are converted to two's complement.
func (a BlockBinary[W]) twos() BlockBinary[W] {
	if a.enc == OnesComplement {
		return a.ToTwosComplement()
	}
	return a
}

// restore converts the result of modular arithmetic back to enc.
func (a BlockBinary[W]) restore(enc Encoding) BlockBinary[W] {
	if enc == OnesComplement {
		return a.ToOnesComplement()
	}
	return a
}

// Add returns a + b, wrapping around on overflow.
func (a BlockBinary[W]) Add(b BlockBinary[W]) BlockBinary[W] {
	a.mustMatch(b, "Add")
	return a.twos().add(b.twos()).restore(a.enc)
}

// Sub returns a - b, wrapping around on overflow.
func (a BlockBinary[W]) Sub(b BlockBinary[W]) BlockBinary[W] {
	a.mustMatch(b, "Sub")
	return a.twos().add(b.twos().Neg()).restore(a.enc)
}

// Neg returns the two's complement of a, that is -a modulo 2^nbits.
// For ones' complement values it flips every bit.
func (a BlockBinary[W]) Neg() BlockBinary[W] {
	if a.enc == OnesComplement {
		return a.not()
	}
	return a.not().add(a.one())
}

// Not returns the ones' complement of a, every bit flipped.
func (a BlockBinary[W]) Not() BlockBinary[W] {
	return a.not()
}

// Abs returns the absolute value of a.
// The most negative two's complement value is its own absolute value.
func (a BlockBinary[W]) Abs() BlockBinary[W] {
	if a.IsNeg() {
		return a.Neg()
	}
	return a
}

// Inc returns a + 1.
func (a BlockBinary[W]) Inc() BlockBinary[W] {
	return a.twos().add(a.one()).restore(a.enc)
}

// Dec returns a - 1.
func (a BlockBinary[W]) Dec() BlockBinary[W] {
	return a.twos().add(a.allOnes()).restore(a.enc)
}

// And returns the bitwise AND of a and b.
func (a BlockBinary[W]) And(b BlockBinary[W]) BlockBinary[W] {
	a.mustMatch(b, "And")
	for i := range nwords[W](a.nbits) {
		a.w[i] &= b.w[i]
	}
	return a
}

// Or returns the bitwise OR of a and b.
func (a BlockBinary[W]) Or(b BlockBinary[W]) BlockBinary[W] {
	a.mustMatch(b, "Or")
	for i := range nwords[W](a.nbits) {
		a.w[i] |= b.w[i]
	}
	return a
}

// Xor returns the bitwise XOR of a and b.
func (a BlockBinary[W]) Xor(b BlockBinary[W]) BlockBinary[W] {
	a.mustMatch(b, "Xor")
	for i := range nwords[W](a.nbits) {
		a.w[i] ^= b.w[i]
	}
	return a
}

// Mul returns a * b truncated to nbits bits.
func (a BlockBinary[W]) Mul(b BlockBinary[W]) BlockBinary[W] {
	a.mustMatch(b, "Mul")
	return a.twos().mul(b.twos()).restore(a.enc)
}

// mul is the shift-and-add multiplication modulo 2^nbits.
func (a BlockBinary[W]) mul(b BlockBinary[W]) BlockBinary[W] {
	acc := a.zero()
	for i := range a.nbits {
		if b.Bit(i) {
			acc = acc.add(a)
		}
		a = a.lsh(1)
	}
	return acc
}

// URMul returns the full 2*nbits bits wide product a * b.
// Signed operands are sign-extended before multiplying.
func (a BlockBinary[W]) URMul(b BlockBinary[W]) BlockBinary[W] {
	a.mustMatch(b, "URMul")
	x := a.twos().Resize(2 * a.nbits)
	y := b.twos().Resize(2 * b.nbits)
	return x.mul(y).restore(a.enc)
}
