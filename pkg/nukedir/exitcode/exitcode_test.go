package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_Nil(t *testing.T) {
	assert.Equal(t, Success, FromError(nil))
}

func TestFromError_CodedError(t *testing.T) {
	err := Errorf(InvalidOption, "invalid option -- Z")
	assert.Equal(t, InvalidOption, FromError(err))
}

func TestFromError_WrappedCodedError(t *testing.T) {
	inner := Errorf(MissingArgument, "option requires an argument")
	err := fmt.Errorf("parsing failed: %w", inner)
	assert.Equal(t, MissingArgument, FromError(err))
}

func TestFromError_PflagMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown long flag", errors.New("unknown flag: --bogus"), InvalidOption},
		{"unknown short flag", errors.New("unknown shorthand flag: 'Z' in -Z"), InvalidOption},
		{"bad syntax", errors.New("bad flag syntax: ---x"), InvalidOption},
		{"missing argument", errors.New("flag needs an argument: --timeout"), MissingArgument},
		{"flag as value", errors.New(`invalid argument "-q" for "-i, --ionice" flag: parse error`), MissingArgument},
		{"plain error", errors.New("something broke"), Fatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	require.Nil(t, Wrap(Fatal, nil))

	base := errors.New("boom")
	err := Wrap(Fatal, base)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, Fatal, FromError(err))
}
