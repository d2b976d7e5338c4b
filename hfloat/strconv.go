package hfloat

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shogo82148/numfmt"
	"github.com/shogo82148/numfmt/blockbinary"
	"github.com/shopspring/decimal"
)

var _ fmt.Formatter = HFloat{}

// String returns the shortest decimal representation of the float64 value of x.
func (x HFloat) String() string {
	return x.Text('g', -1)
}

// Text converts the float64 value of x to a string, like [strconv.FormatFloat].
func (x HFloat) Text(fmt byte, prec int) string {
	return strconv.FormatFloat(x.Float64(), fmt, prec, 64)
}

// BinaryString returns the encoding of x as "0b" followed by the sign,
// the exponent and the fraction bits separated by '.'.
// If grouping is true, a ' separates every four bits of a field.
func (x HFloat) BinaryString(grouping bool) string {
	f := x.format
	return x.bits.FieldString(grouping, 1, f.Es, f.fbits())
}

// HexString returns x as "±0x0.<fraction digits> * 16^<exponent>".
// The digits and the unbiased exponent are taken from the encoding as they are.
func (x HFloat) HexString() string {
	f := x.format
	buf := make([]byte, 0, 16+f.NDigits)
	if x.IsNeg() {
		buf = append(buf, '-')
	} else {
		buf = append(buf, '+')
	}
	buf = append(buf, "0x0."...)
	for i := f.NDigits - 1; i >= 0; i-- {
		buf = append(buf, "0123456789abcdef"[x.bits.Field(4*i, 4)])
	}
	buf = append(buf, " * 16^"...)
	exp := int(x.bits.Field(f.fbits(), f.Es)) - f.bias()
	buf = strconv.AppendInt(buf, int64(exp), 10)
	return string(buf)
}

// Format implements [fmt.Formatter].
// %b prints the binary encoding (grouped with the '#' flag), %x and %X print the
// hexadecimal form, and the other verbs format the float64 value of x.
func (x HFloat) Format(s fmt.State, verb rune) {
	switch verb {
	case 'b':
		io.WriteString(s, x.BinaryString(s.Flag('#')))
	case 'x':
		io.WriteString(s, x.HexString())
	case 'X':
		io.WriteString(s, strings.ToUpper(x.HexString()))
	case 's':
		fmt.Fprintf(s, fmt.FormatString(s, verb), x.String())
	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), x.Float64())
	}
}

// Parse converts s to a number of the format f.
//
// s is either a binary encoding as printed by [HFloat.BinaryString],
// a hexadecimal form as printed by [HFloat.HexString], or a decimal number.
// Values are truncated toward zero. A decimal number too large for f returns
// the saturated value with an error that matches [numfmt.ErrRange].
func (f Format) Parse(s string) (HFloat, error) {
	f.mustValidate()
	in := s
	s = strings.TrimSpace(s)

	if len(s) >= 2 && s[0] == '0' && lower(s[1]) == 'b' {
		b, ok := blockbinary.ParseFields[uint32](s, blockbinary.Flex, 1, f.Es, f.fbits())
		if !ok {
			return f.Zero(), numfmt.SyntaxError(f.String(), in)
		}
		return f.FromBlock(b), nil
	}
	if strings.Contains(s, "*") {
		return f.parseHex(in, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return f.Zero(), numfmt.SyntaxError(f.String(), in)
	}
	x, overflow := f.fromDecimal(d)
	if strings.HasPrefix(s, "-") && x.IsZero() {
		x = x.Neg()
	}
	if overflow {
		return x, numfmt.RangeError(f.String(), in)
	}
	return x, nil
}

func (f Format) parseHex(in, s string) (HFloat, error) {
	mant, exp, _ := strings.Cut(s, "*")
	mant = strings.TrimSpace(mant)
	exp = strings.TrimSpace(exp)

	neg := false
	switch {
	case strings.HasPrefix(mant, "+"):
		mant = mant[1:]
	case strings.HasPrefix(mant, "-"):
		neg = true
		mant = mant[1:]
	}
	if len(mant) < 5 || mant[0] != '0' || lower(mant[1]) != 'x' || mant[2] != '0' || mant[3] != '.' {
		return f.Zero(), numfmt.SyntaxError(f.String(), in)
	}
	digits := mant[4:]

	if !strings.HasPrefix(exp, "16^") {
		return f.Zero(), numfmt.SyntaxError(f.String(), in)
	}
	e, err := strconv.Atoi(exp[3:])
	if err != nil {
		return f.Zero(), numfmt.SyntaxError(f.String(), in)
	}

	width := 4 * len(digits)
	frac := blockbinary.New[uint32](max(width, f.fbits()), blockbinary.Flex)
	for i := 0; i < len(digits); i++ {
		d, ok := unhex(digits[i])
		if !ok {
			return f.Zero(), numfmt.SyntaxError(f.String(), in)
		}
		frac.SetField(width-4*(i+1), 4, uint64(d))
	}

	biased := e + f.bias()
	if len(digits) <= f.NDigits && biased >= 0 && biased <= f.maxExp() {
		// keep the encoding as it is, normalized or not.
		return f.pack(neg, biased, frac.Lsh(f.fbits()-width)), nil
	}

	x := f.normalize(neg, e, frac, width)
	lead := (width - frac.BitLen()) / 4
	if !frac.IsZero() && e-lead+f.bias() > f.maxExp() {
		return x, numfmt.RangeError(f.String(), in)
	}
	return x, nil
}

// lower(c) is a lower-case letter if and only if
// c is either that lower-case letter or the equivalent upper-case letter.
func lower(c byte) byte {
	return c | ('x' - 'X')
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= lower(c) && lower(c) <= 'f':
		return lower(c) - 'a' + 10, true
	}
	return 0, false
}

// MarshalText implements [encoding.TextMarshaler].
// It returns the binary encoding, which parses back to the same bits.
func (x HFloat) MarshalText() ([]byte, error) {
	return []byte(x.BinaryString(false)), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The format of x is kept; x is left untouched on failure.
func (x *HFloat) UnmarshalText(text []byte) error {
	if x.format.Validate() != nil {
		return numfmt.SyntaxError("hfloat", string(text))
	}
	v, err := x.format.Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// Scan implements [fmt.Scanner].
// The format of x is kept; x is left untouched on failure.
func (x *HFloat) Scan(state fmt.ScanState, verb rune) error {
	tok, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	return x.UnmarshalText(tok)
}
