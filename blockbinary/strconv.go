package blockbinary

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shogo82148/numfmt"
)

var _ fmt.Formatter = BlockBinary[uint8]{}

// String returns the decimal representation of a.
func (a BlockBinary[W]) String() string {
	if a.nbits == 0 {
		return "<nil>"
	}
	return a.BigInt().String()
}

// Format implements [fmt.Formatter].
// It accepts the verbs of [big.Int]; %b and %x print the value, not the raw bits.
func (a BlockBinary[W]) Format(s fmt.State, verb rune) {
	a.BigInt().Format(s, verb)
}

// BinaryString returns the raw bits of a as "0b" followed by nbits binary digits.
// If grouping is true, a ' separates every four digits counted from the least significant bit.
func (a BlockBinary[W]) BinaryString(grouping bool) string {
	return a.FieldString(grouping, a.nbits)
}

// FieldString returns the raw bits of a split into fields, most significant first.
// The fields are separated by '.' and their widths must add up to nbits.
// If grouping is true, a ' separates every four digits counted from the
// least significant bit of each field.
func (a BlockBinary[W]) FieldString(grouping bool, widths ...int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	if total != a.nbits {
		panic(fmt.Sprintf("blockbinary: fields cover %d bits, want %d", total, a.nbits))
	}

	buf := make([]byte, 0, 2+2*a.nbits)
	buf = append(buf, '0', 'b')
	pos := a.nbits - 1
	for i, w := range widths {
		if i > 0 {
			buf = append(buf, '.')
		}
		for j := w - 1; j >= 0; j-- {
			if a.Bit(pos) {
				buf = append(buf, '1')
			} else {
				buf = append(buf, '0')
			}
			pos--
			if grouping && j > 0 && j%4 == 0 {
				buf = append(buf, '\'')
			}
		}
	}
	return string(buf)
}

// Hex returns the raw bits of a as "0x" followed by hexadecimal digits.
func (a BlockBinary[W]) Hex() string {
	n := (a.nbits + 3) / 4
	buf := make([]byte, 0, 2+n)
	buf = append(buf, '0', 'x')
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, "0123456789abcdef"[a.Field(4*i, 4)])
	}
	return string(buf)
}

// ParseFields parses the output of [BlockBinary.FieldString].
// It reports false if s is not a "0b" prefixed list of fields with the given widths.
func ParseFields[W Word](s string, enc Encoding, widths ...int) (BlockBinary[W], bool) {
	total := 0
	for _, w := range widths {
		total += w
	}
	ret := New[W](total, enc)

	if len(s) < 2 || s[0] != '0' || (s[1] != 'b' && s[1] != 'B') {
		return ret, false
	}
	fields := strings.Split(s[2:], ".")
	if len(fields) != len(widths) {
		return ret, false
	}

	pos := total - 1
	for i, field := range fields {
		n := 0
		prev := byte('^')
		for j := 0; j < len(field); j++ {
			c := field[j]
			switch c {
			case '0', '1':
				if n >= widths[i] {
					return ret, false
				}
				ret.SetBit(pos, c == '1')
				pos--
				n++
			case '\'':
				// a separator must sit between two digits
				if prev == '^' || prev == '\'' || j == len(field)-1 {
					return ret, false
				}
			default:
				return ret, false
			}
			prev = c
		}
		if n != widths[i] {
			return ret, false
		}
	}
	return ret, true
}

func typeName(nbits int) string {
	return fmt.Sprintf("blockbinary(%d)", nbits)
}

// Parse parses s as an nbits wide value.
// s is either "0b" followed by at most nbits binary digits, "0x" followed by
// hexadecimal digits of the raw bits, or a decimal integer in the range of the encoding.
func Parse[W Word](s string, nbits int, enc Encoding) (BlockBinary[W], error) {
	ret := New[W](nbits, enc)
	if len(s) > 2 && s[0] == '0' && (s[1] == 'b' || s[1] == 'B') {
		body := s[2:]
		if strings.Trim(body, "01'") != "" || strings.HasPrefix(body, "'") ||
			strings.HasSuffix(body, "'") || strings.Contains(body, "''") {
			return ret, numfmt.SyntaxError(typeName(nbits), s)
		}
		digits := strings.ReplaceAll(body, "'", "")
		if len(digits) > nbits {
			return ret, numfmt.RangeError(typeName(nbits), s)
		}
		v, _ := ParseFields[W]("0b"+strings.Repeat("0", nbits-len(digits))+digits, enc, nbits)
		return v, nil
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		v, ok := new(big.Int).SetString(s[2:], 16)
		if !ok || v.Sign() < 0 {
			return ret, numfmt.SyntaxError(typeName(nbits), s)
		}
		if v.BitLen() > nbits {
			return ret, numfmt.RangeError(typeName(nbits), s)
		}
		ret.enc = Flex
		ret.SetBigInt(v)
		ret.enc = enc
		return ret, nil
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return ret, numfmt.SyntaxError(typeName(nbits), s)
	}
	lo, hi := ret.limits()
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return ret, numfmt.RangeError(typeName(nbits), s)
	}
	ret.SetBigInt(v)
	return ret, nil
}

// limits returns the smallest and the largest value of the encoding of a.
func (a BlockBinary[W]) limits() (lo, hi *big.Int) {
	one := big.NewInt(1)
	if a.enc == Flex {
		hi = new(big.Int).Lsh(one, uint(a.nbits))
		return new(big.Int), hi.Sub(hi, one)
	}
	hi = new(big.Int).Lsh(one, uint(a.nbits-1))
	hi.Sub(hi, one)
	lo = new(big.Int).Neg(hi)
	if a.enc == TwosComplement {
		lo.Sub(lo, one)
	}
	return lo, hi
}

// MarshalText implements [encoding.TextMarshaler].
func (a BlockBinary[W]) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The width and the encoding of a are kept; a is left untouched on failure.
func (a *BlockBinary[W]) UnmarshalText(text []byte) error {
	if a.nbits == 0 {
		return numfmt.SyntaxError("blockbinary", string(text))
	}
	v, err := Parse[W](string(text), a.nbits, a.enc)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Scan implements [fmt.Scanner].
// The width and the encoding of a are kept; a is left untouched on failure.
func (a *BlockBinary[W]) Scan(state fmt.ScanState, verb rune) error {
	tok, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	return a.UnmarshalText(tok)
}
