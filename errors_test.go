package numfmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	err := SyntaxError("cfloat(8,4)", "0b1.2")
	require.Error(t, err)
	assert.True(t, Error.Has(err))
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.False(t, errors.Is(err, ErrRange))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "cfloat(8,4)", perr.Type)
	assert.Equal(t, "0b1.2", perr.Input)
	assert.Contains(t, err.Error(), `parsing cfloat(8,4) "0b1.2": invalid syntax`)

	err = RangeError("hfloat(6,7)", "1e100")
	assert.True(t, errors.Is(err, ErrRange))
}

func TestPanicDivideByZero(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, Error.Has(err))
		assert.True(t, errors.Is(err, ErrDivideByZero))

		var derr *DivideByZeroError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "blockbinary.Quo", derr.Op)
		assert.Equal(t, "42", derr.Dividend)
	}()
	PanicDivideByZero("blockbinary.Quo", "42")
}
