package cfloat

import "fmt"

var _ fmt.Formatter = CFloat{}

// Format implements [fmt.Formatter].
//
// %b prints the binary fields of x, grouped with the '#' flag.
// %e, %f, %g, %x and their upper case variants print like [CFloat.Text],
// and %s and %v print the shortest decimal form.
// The infinities always carry a sign, as they do for float64.
func (x CFloat) Format(s fmt.State, verb rune) {
	switch verb {
	case 'b':
		// the fields carry the sign themselves
		fmt.Fprintf(s, fmt.FormatString(s, 's'), x.BinaryString(s.Flag('#')))
		return
	case 'e', 'E', 'f', 'g', 'G', 'x', 'X', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(cfloat=%s)", verb, x.String())
		return
	}

	var prefix []byte
	var data []byte

	// sign
	switch {
	case x.IsNeg() && !x.IsNaN(AnyNaN):
		prefix = append(prefix, '-')
		x = x.Abs()
	case s.Flag('+'):
		prefix = append(prefix, '+')
	case s.Flag(' '):
		prefix = append(prefix, ' ')
	case x.IsInf(1):
		prefix = append(prefix, '+')
	}

	switch {
	case x.IsNaN(AnyNaN):
		data = append(data, "NaN"...)
	case x.IsInf(0):
		data = append(data, "Inf"...)
	case verb == 's' || verb == 'v':
		data = x.Append(data, 'g', -1)
	default:
		prec, ok := s.Precision()
		if !ok {
			prec = -1
		}
		data = x.Append(data, byte(verb), prec)
	}

	w, ok := s.Width()
	if !ok {
		s.Write(prefix)
		s.Write(data)
		return
	}

	var buf [1]byte
	pad := w - len(prefix) - len(data)
	switch {
	case s.Flag('-'):
		s.Write(prefix)
		s.Write(data)
		buf[0] = ' '
		for i := 0; i < pad; i++ {
			s.Write(buf[:1])
		}
	case s.Flag('0') && x.IsFinite():
		s.Write(prefix)
		buf[0] = '0'
		for i := 0; i < pad; i++ {
			s.Write(buf[:1])
		}
		s.Write(data)
	default:
		buf[0] = ' '
		for i := 0; i < pad; i++ {
			s.Write(buf[:1])
		}
		s.Write(prefix)
		s.Write(data)
	}
}
