// convert CFloat to string

package cfloat

import (
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// String returns the shortest decimal form of x that parses back to x in its format.
func (x CFloat) String() string {
	return x.Text('g', -1)
}

// Text converts x to a string, like [strconv.FormatFloat] does for float64.
// The precision -1 uses the smallest number of digits necessary to
// parse the string back to x exactly.
func (x CFloat) Text(fmt byte, prec int) string {
	return string(x.Append(make([]byte, 0, 8), fmt, prec))
}

// Append appends the string form of x, as generated by [CFloat.Text], to buf.
func (x CFloat) Append(buf []byte, fmt byte, prec int) []byte {
	switch {
	case x.IsNaN(AnyNaN):
		return append(buf, "NaN"...)
	case x.IsInf(1):
		return append(buf, "+Inf"...)
	case x.IsInf(-1):
		return append(buf, "-Inf"...)
	}

	switch fmt {
	case 'b':
		return x.appendBin(buf)
	case 'x', 'X':
		return x.appendHex(buf, fmt, prec)
	case 'e', 'E', 'f', 'g', 'G':
		return x.appendDec(buf, fmt, prec)
	}

	// unknown format
	return append(buf, '%', fmt)
}

// BinaryString returns the fields of x as "0b<sign>.<exponent>.<fraction>".
// If grouping is true, a ' separates every four digits of a field
// counted from its least significant bit.
func (x CFloat) BinaryString(grouping bool) string {
	c := x.config
	return x.bits.FieldString(grouping, 1, c.Es, c.fbits())
}

// appendBin appends -ddddp±ddd, the integer significand and the binary exponent.
func (x CFloat) appendBin(buf []byte) []byte {
	neg, m, exp := x.mantExp()
	if neg {
		buf = append(buf, '-')
	}
	buf = strconv.AppendUint(buf, m, 10)
	buf = append(buf, 'p')
	if exp >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, int64(exp), 10)
}

// appendHex appends -0x1.yyyyp±dd.
func (x CFloat) appendHex(buf []byte, fmt byte, prec int) []byte {
	neg, m, exp := x.mantExp()
	exp += x.config.fbits()
	if m == 0 {
		exp = 0
	}

	// shift digits so the leading 1 (if any) is at bit 1<<60.
	m <<= 60 - x.config.fbits()
	for m != 0 && m&(1<<60) == 0 {
		m <<= 1
		exp--
	}

	// round to nearest even
	if prec >= 0 && prec < 15 {
		shift := uint(prec * 4)
		extra := (m << shift) & (1<<60 - 1)
		m >>= 60 - shift
		if extra|(m&1) > 1<<59 {
			m++
		}
		m <<= 60 - shift
		if m&(1<<61) != 0 {
			// carried into the next power of two
			m >>= 1
			exp++
		}
	}

	if neg {
		buf = append(buf, '-')
	}
	buf = append(buf, '0', fmt, '0'+byte((m>>60)&1))
	m <<= 4 // remove the leading digit
	if prec < 0 && m != 0 {
		buf = append(buf, '.')
		for m != 0 {
			buf = append(buf, nibble(fmt, m>>60))
			m <<= 4
		}
	} else if prec > 0 {
		buf = append(buf, '.')
		for i := 0; i < prec; i++ {
			buf = append(buf, nibble(fmt, m>>60))
			m <<= 4
		}
	}

	buf = append(buf, fmt-('x'-'p'))
	if exp >= 0 {
		buf = append(buf, '+')
	} else {
		buf = append(buf, '-')
		exp = -exp
	}
	if exp < 10 {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, int64(exp), 10)
}

func nibble(fmt byte, x uint64) byte {
	x &= 0xf
	if x < 10 {
		return '0' + byte(x)
	}
	return ('A' + byte(x-10)) | (fmt & ('a' - 'A'))
}

// digits is a decimal number 0.d * 10^dp without trailing zeros in d.
type digits struct {
	d  []byte
	dp int
}

func (d digits) nd() int {
	return len(d.d)
}

func newDigits(v decimal.Decimal) digits {
	coef := v.Coefficient()
	if coef.Sign() == 0 {
		return digits{}
	}
	s := coef.Abs(coef).String()
	n := len(s)
	for s[n-1] == '0' {
		n--
	}
	return digits{
		d:  []byte(s[:n]),
		dp: len(s) + int(v.Exponent()),
	}
}

// roundDigits rounds v to n significant digits, ties to even.
func roundDigits(v decimal.Decimal, n int) digits {
	d := newDigits(v)
	if d.nd() <= n {
		return d
	}
	return newDigits(v.RoundBank(int32(n - d.dp)))
}

// dyadic returns m * 2^exp as an exact decimal.
func dyadic(m *big.Int, exp int) decimal.Decimal {
	if exp >= 0 {
		return decimal.NewFromBigInt(new(big.Int).Lsh(m, uint(exp)), 0)
	}
	// m / 2^k == m * 5^k / 10^k
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(p.Mul(p, m), int32(exp))
}

// shortest returns the shortest decimal that rounds back to |x|.
func (x CFloat) shortest() digits {
	if x.IsZero() {
		return digits{}
	}

	// find the intermediate value between two adjacent floating-point numbers.
	_, m, exp := x.mantExp()
	_, biased, frac := x.fields()
	mm := new(big.Int).SetUint64(m)
	exact := dyadic(mm, exp)
	two := new(big.Int).Lsh(mm, 1)
	upper := dyadic(new(big.Int).Add(two, big.NewInt(1)), exp-1)
	var lower decimal.Decimal
	if frac == 0 && biased > 1 {
		// the gap below a power of two is half as wide
		four := new(big.Int).Lsh(mm, 2)
		lower = dyadic(four.Sub(four, big.NewInt(1)), exp-2)
	} else {
		lower = dyadic(two.Sub(two, big.NewInt(1)), exp-1)
	}

	// the midpoints round to even
	inclusive := m%2 == 0
	in := func(v decimal.Decimal) bool {
		if inclusive {
			return v.Cmp(lower) >= 0 && v.Cmp(upper) <= 0
		}
		return v.Cmp(lower) > 0 && v.Cmp(upper) < 0
	}

	d := newDigits(exact)
	for n := 1; n < d.nd(); n++ {
		places := int32(n - d.dp)
		r := exact.RoundBank(places)
		if in(r) {
			return newDigits(r)
		}
		// the nearest candidate may fall out of an asymmetric interval
		// while its neighbor doesn't.
		step := decimal.New(1, -places)
		if up := r.Add(step); in(up) {
			return newDigits(up)
		}
		if down := r.Sub(step); in(down) {
			return newDigits(down)
		}
	}
	return d
}

func (x CFloat) appendDec(buf []byte, fmt byte, prec int) []byte {
	neg := x.IsNeg()
	shortest := prec < 0

	var d digits
	if shortest {
		d = x.shortest()
		switch fmt {
		case 'e', 'E':
			prec = max(d.nd()-1, 0)
		case 'f':
			prec = max(d.nd()-d.dp, 0)
		case 'g', 'G':
			prec = d.nd()
		}
	} else {
		exact := x.Abs().Decimal()
		switch fmt {
		case 'e', 'E':
			d = roundDigits(exact, prec+1)
		case 'f':
			d = newDigits(exact.RoundBank(int32(prec)))
		case 'g', 'G':
			if prec == 0 {
				prec = 1
			}
			d = roundDigits(exact, prec)
		}
	}
	return formatDigits(buf, shortest, neg, d, prec, fmt)
}

// formatDigits follows strconv.
func formatDigits(dst []byte, shortest bool, neg bool, d digits, prec int, fmt byte) []byte {
	switch fmt {
	case 'e', 'E':
		return fmtE(dst, neg, d, prec, fmt)
	case 'f':
		return fmtF(dst, neg, d, prec)
	}

	// 'g', 'G'
	// trailing fractional zeros in 'e' form will be trimmed.
	eprec := prec
	if eprec > d.nd() && d.nd() >= d.dp {
		eprec = d.nd()
	}
	// %e is used if the exponent from the conversion
	// is less than -4 or greater than or equal to the precision.
	// if precision was the shortest possible, use precision 6 for this decision.
	if shortest {
		eprec = 6
	}
	exp := d.dp - 1
	if exp < -4 || exp >= eprec {
		if prec > d.nd() {
			prec = d.nd()
		}
		return fmtE(dst, neg, d, prec-1, fmt+'e'-'g')
	}
	if prec > d.dp {
		prec = d.nd()
	}
	return fmtF(dst, neg, d, max(prec-d.dp, 0))
}

// %e: -d.ddddde±dd
func fmtE(dst []byte, neg bool, d digits, prec int, fmt byte) []byte {
	if neg {
		dst = append(dst, '-')
	}

	// first digit
	ch := byte('0')
	if d.nd() != 0 {
		ch = d.d[0]
	}
	dst = append(dst, ch)

	// .moredigits
	if prec > 0 {
		dst = append(dst, '.')
		i := 1
		m := min(d.nd(), prec+1)
		if i < m {
			dst = append(dst, d.d[i:m]...)
			i = m
		}
		for ; i <= prec; i++ {
			dst = append(dst, '0')
		}
	}

	// e±
	dst = append(dst, fmt)
	exp := d.dp - 1
	if d.nd() == 0 { // special case: 0 has exponent 0
		exp = 0
	}
	if exp < 0 {
		ch = '-'
		exp = -exp
	} else {
		ch = '+'
	}
	dst = append(dst, ch)

	// dd or ddd
	if exp < 10 {
		dst = append(dst, '0')
	}
	return strconv.AppendInt(dst, int64(exp), 10)
}

// %f: -ddddddd.ddddd
func fmtF(dst []byte, neg bool, d digits, prec int) []byte {
	if neg {
		dst = append(dst, '-')
	}

	// integer, padded with zeros as needed.
	if d.dp > 0 {
		m := min(d.nd(), d.dp)
		dst = append(dst, d.d[:m]...)
		for ; m < d.dp; m++ {
			dst = append(dst, '0')
		}
	} else {
		dst = append(dst, '0')
	}

	// fraction
	if prec > 0 {
		dst = append(dst, '.')
		for i := 0; i < prec; i++ {
			ch := byte('0')
			if j := d.dp + i; 0 <= j && j < d.nd() {
				ch = d.d[j]
			}
			dst = append(dst, ch)
		}
	}
	return dst
}
