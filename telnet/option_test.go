package telnet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNewOption_Valid(t *testing.T) {
	for _, b := range []byte{1, 39, 70, 85, 86, 93, 255} {
		o, err := NewOption(b)
		assert.NoError(t, err, "byte %d should be valid", b)
		assert.Equal(t, b, o.Byte())
	}
}

func TestNewOption_Invalid(t *testing.T) {
	for _, b := range []byte{0, 40, 69, 84, 94, 254} {
		_, err := NewOption(b)
		assert.Error(t, err, "byte %d should be invalid", b)
		assert.True(t, errors.Is(err, ErrInvalidOption))
	}
}

func TestOption_ZeroValueIsNotBinary(t *testing.T) {
	// Option{} (the zero value, used as an unset sentinel throughout this
	// package) must never equal a constructible Option - 0 is outside the
	// valid option set even though BINARY is conventionally assigned it.
	var zero Option
	_, err := NewOption(zero.Byte())
	assert.Error(t, err)
}

func TestOption_String_Named(t *testing.T) {
	assert.Equal(t, "ECHO", OptEcho.String())
	assert.Equal(t, "NAWS", OptNAWS.String())
	assert.Equal(t, "EXOPL", OptExtendedOpt.String())
}

func TestOption_String_Unnamed(t *testing.T) {
	o, err := NewOption(15)
	assert.NoError(t, err)
	assert.Equal(t, "15", o.String())
}

func TestPropertyNewOption_RangeMatchesValidity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		_, err := NewOption(b)
		want := (b >= 1 && b <= 39) || b == 70 || b == 85 || b == 86 || b == 93 || b == 255
		if want {
			assert.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
	})
}
