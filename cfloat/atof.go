// convert string to CFloat

package cfloat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shogo82148/numfmt"
	"github.com/shogo82148/numfmt/blockbinary"
	"github.com/shopspring/decimal"
)

// lower(c) is a lower-case letter if and only if
// c is either that lower-case letter or the equivalent upper-case letter.
// Instead of writing c == 'x' || c == 'X' one can write lower(c) == 'x'.
// Note that lower of non-letters can produce other non-letters.
func lower(c byte) byte {
	return c | ('x' - 'X')
}

// commonPrefixLenIgnoreCase returns the length of the common
// prefix of s and prefix, with the character case of s ignored.
// The prefix argument must be all lower-case.
func commonPrefixLenIgnoreCase(s, prefix string) int {
	n := min(len(prefix), len(s))
	for i := 0; i < n; i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return i
		}
	}
	return n
}

// special parses the infinities and NaN.
func (c Config) special(s string) (f CFloat, n int, ok bool, err error) {
	if len(s) == 0 {
		return f, 0, false, nil
	}

	sign := 1
	nsign := 0
	switch s[0] {
	case '+', '-':
		if s[0] == '-' {
			sign = -1
		}
		nsign = 1
		s = s[1:]
		fallthrough
	case 'i', 'I':
		n := commonPrefixLenIgnoreCase(s, "infinity")
		// Anything longer than "inf" is ok, but if we
		// don't have "infinity", only consume "inf".
		if 3 < n && n < 8 {
			n = 3
		}
		if n == 3 || n == 8 {
			if !c.HasInf {
				err = numfmt.ErrRange
			}
			return c.Inf(sign), nsign + n, true, err
		}
	case 'n', 'N':
		n := commonPrefixLenIgnoreCase(s, "nan")
		if n == 3 {
			if !c.HasNaN {
				err = numfmt.ErrRange
			}
			return c.NaN(QuietNaN), n, true, err
		}
	}
	return f, 0, false, nil
}

// readFloat reads a decimal or hexadecimal mantissa and exponent from a float
// string representation in s; the number may be followed by other characters.
// readFloat reports the number of bytes consumed (i), and whether the number
// is valid (ok).
//
// comes from https://github.com/golang/go/blob/8c92897e15d15fbc664cd5a05132ce800cf4017f/src/strconv/atof.go#L171-L309
func readFloat(s string) (mantissa uint64, exp int, neg, trunc, hex bool, i int, ok bool) {
	underscores := false

	// optional sign
	if i >= len(s) {
		return
	}
	switch {
	case s[i] == '+':
		i++
	case s[i] == '-':
		neg = true
		i++
	}

	// digits
	base := uint64(10)
	maxMantDigits := 19 // 10^19 fits in uint64
	expChar := byte('e')
	if i+2 < len(s) && s[i] == '0' && lower(s[i+1]) == 'x' {
		base = 16
		maxMantDigits = 16 // 16^16 fits in uint64
		i += 2
		expChar = 'p'
		hex = true
	}
	sawdot := false
	sawdigits := false
	nd := 0
	ndMant := 0
	dp := 0
loop:
	for ; i < len(s); i++ {
		switch c := s[i]; true {
		case c == '_':
			underscores = true
			continue

		case c == '.':
			if sawdot {
				break loop
			}
			sawdot = true
			dp = nd
			continue

		case '0' <= c && c <= '9':
			sawdigits = true
			if c == '0' && nd == 0 { // ignore leading zeros
				dp--
				continue
			}
			nd++
			if ndMant < maxMantDigits {
				mantissa *= base
				mantissa += uint64(c - '0')
				ndMant++
			} else if c != '0' {
				trunc = true
			}
			continue

		case base == 16 && 'a' <= lower(c) && lower(c) <= 'f':
			sawdigits = true
			nd++
			if ndMant < maxMantDigits {
				mantissa *= 16
				mantissa += uint64(lower(c) - 'a' + 10)
				ndMant++
			} else {
				trunc = true
			}
			continue
		}
		break
	}
	if !sawdigits {
		return
	}
	if !sawdot {
		dp = nd
	}

	if base == 16 {
		dp *= 4
		ndMant *= 4
	}

	// optional exponent moves decimal point.
	// if we read a very large, very long number,
	// just be sure to move the decimal point by
	// a lot (say, 100000).  it doesn't matter if it's
	// not the exact number.
	if i < len(s) && lower(s[i]) == expChar {
		i++
		if i >= len(s) {
			return
		}
		esign := 1
		if s[i] == '+' {
			i++
		} else if s[i] == '-' {
			i++
			esign = -1
		}
		if i >= len(s) || s[i] < '0' || s[i] > '9' {
			return
		}
		e := 0
		for ; i < len(s) && ('0' <= s[i] && s[i] <= '9' || s[i] == '_'); i++ {
			if s[i] == '_' {
				underscores = true
				continue
			}
			if e < 10000 {
				e = e*10 + int(s[i]) - '0'
			}
		}
		dp += e * esign
	} else if base == 16 {
		// Must have exponent.
		return
	}

	if mantissa != 0 {
		exp = dp - ndMant
	}

	if underscores && !underscoreOK(s[:i]) {
		return
	}

	ok = true
	return
}

// underscoreOK reports whether the underscores in s are allowed.
// Checking them in this one function lets all the parsers skip over them simply.
// Underscore must appear only between digits or between a base prefix and a digit.
func underscoreOK(s string) bool {
	// saw tracks the last character (class) we saw:
	// ^ for beginning of number,
	// 0 for a digit or base prefix,
	// _ for an underscore,
	// ! for none of the above.
	saw := '^'
	i := 0

	// Optional sign.
	if len(s) >= 1 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}

	// Optional base prefix.
	hex := false
	if len(s) >= 2 && s[0] == '0' && (lower(s[1]) == 'b' || lower(s[1]) == 'o' || lower(s[1]) == 'x') {
		i = 2
		saw = '0' // base prefix counts as a digit for "underscore as digit separator"
		hex = lower(s[1]) == 'x'
	}

	// Number proper.
	for ; i < len(s); i++ {
		// Digits are always okay.
		if '0' <= s[i] && s[i] <= '9' || hex && 'a' <= lower(s[i]) && lower(s[i]) <= 'f' {
			saw = '0'
			continue
		}
		// Underscore must follow digit.
		if s[i] == '_' {
			if saw != '0' {
				return false
			}
			saw = '_'
			continue
		}
		// Underscore must also be followed by digit.
		if saw == '_' {
			return false
		}
		// Saw non-digit, non-underscore.
		saw = '!'
	}
	return saw != '_'
}

// atofHex converts the hexadecimal mantissa and exponent read by readFloat.
// If trunc is true, trailing non-zero bits have been omitted from the mantissa.
func (c Config) atofHex(mantissa uint64, exp int, neg, trunc bool) (CFloat, error) {
	if mantissa == 0 {
		return c.pack(neg, 0, 0), nil
	}
	m := blockbinary.New[uint64](wsBits, blockbinary.Flex)
	m.SetBits(mantissa)
	x, overflow := c.round(neg, exp, m, trunc)
	if overflow {
		return x, numfmt.ErrRange
	}
	return x, nil
}

// atofDecimal converts the decimal number in s exactly before rounding.
// readFloat has already checked the syntax of s.
func (c Config) atofDecimal(s string, mantissa uint64, exp int, neg bool) (CFloat, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		// the exponent doesn't fit in the decimal
		if mantissa == 0 || exp < 0 {
			return c.pack(neg, 0, 0), nil
		}
		return c.overflow(neg), numfmt.ErrRange
	}
	x, overflow := c.fromDecimal(d)
	if neg && x.IsZero() {
		// -0 has no decimal
		x = c.pack(true, 0, 0)
	}
	if overflow {
		return x, numfmt.ErrRange
	}
	return x, nil
}

func (c Config) atof(s string) (f CFloat, n int, err error) {
	if val, n, ok, err := c.special(s); ok {
		return val, n, err
	}

	mantissa, exp, neg, trunc, hex, n, ok := readFloat(s)
	if !ok {
		return c.Zero(), n, numfmt.ErrSyntax
	}
	if hex {
		f, err = c.atofHex(mantissa, exp, neg, trunc)
		return f, n, err
	}
	f, err = c.atofDecimal(s[:n], mantissa, exp, neg)
	return f, n, err
}

// Parse converts s to the nearest number of the format, ties to even.
//
// s is a decimal or hexadecimal floating point literal as accepted by
// [strconv.ParseFloat], "inf", "infinity" or "nan" with an optional sign,
// or the binary fields printed by [CFloat.BinaryString].
//
// Parse returns a [*numfmt.ParseError] on failure. If s is syntactically valid
// but out of the range of the format, the error wraps [numfmt.ErrRange] and
// the result is what an overflow produces.
func (c Config) Parse(s string) (CFloat, error) {
	c.mustValidate()
	if len(s) > 2 && s[0] == '0' && lower(s[1]) == 'b' {
		b, ok := blockbinary.ParseFields[uint8](s, blockbinary.Flex, 1, c.Es, c.fbits())
		if !ok {
			return c.Zero(), numfmt.SyntaxError(c.String(), s)
		}
		return c.FromBlock(b), nil
	}

	f, n, err := c.atof(s)
	if n != len(s) && (err == nil || !errors.Is(err, numfmt.ErrSyntax)) {
		return c.Zero(), numfmt.SyntaxError(c.String(), s)
	}
	switch {
	case errors.Is(err, numfmt.ErrSyntax):
		return c.Zero(), numfmt.SyntaxError(c.String(), s)
	case err != nil:
		return f, numfmt.RangeError(c.String(), s)
	}
	return f, nil
}

// MarshalText implements [encoding.TextMarshaler].
// The text is the binary string of x, which round trips exactly.
func (x CFloat) MarshalText() ([]byte, error) {
	return []byte(x.BinaryString(false)), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The format of x is kept; x is left untouched on failure.
func (x *CFloat) UnmarshalText(text []byte) error {
	if x.config.Nbits == 0 {
		return numfmt.SyntaxError("cfloat", string(text))
	}
	v, err := x.config.Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// Scan implements [fmt.Scanner].
// The format of x is kept; x is left untouched on failure.
func (x *CFloat) Scan(state fmt.ScanState, verb rune) error {
	tok, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	return x.UnmarshalText(tok)
}
