package rut_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sertec/pkg/domain/rut"
)

func TestParse(t *testing.T) {
	t.Run("accepts dotted form", func(t *testing.T) {
		r, err := rut.Parse("12.345.678-5")
		require.NoError(t, err)
		assert.Equal(t, uint32(12345678), r.Body())
		assert.Equal(t, byte('5'), r.CheckDigit())
		assert.Equal(t, "12.345.678-5", r.String())
		assert.Equal(t, "12345678-5", r.Compact())
	})

	t.Run("rejects mismatched check digit", func(t *testing.T) {
		_, err := rut.Parse("12.345.678-9")
		require.Error(t, err)
		assert.ErrorIs(t, err, rut.ErrCheckDigitMismatch)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"", "5", "abc-1", "0-0", "1234567890-1"} {
			_, err := rut.Parse(in)
			assert.ErrorIs(t, err, rut.ErrInvalidRut, "input %q", in)
		}
	})

	t.Run("MustParse panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() { rut.MustParse("12.345.678-9") })
		assert.NotPanics(t, func() { rut.MustParse("12.345.678-5") })
	})
}

func TestNew(t *testing.T) {
	r := rut.New(10000013)
	assert.Equal(t, byte('K'), r.CheckDigit())
	assert.Equal(t, "10.000.013-K", r.String())

	assert.True(t, rut.New(0).IsZero())
	assert.True(t, rut.New(1_000_000_000).IsZero())
}

func TestZeroValue(t *testing.T) {
	var r rut.Rut
	assert.True(t, r.IsZero())
	assert.Equal(t, rut.NotAvailable, r.String())
	assert.Equal(t, "", r.Compact())
}

func TestTextMarshaling(t *testing.T) {
	type client struct {
		Codaux rut.Rut `json:"codaux"`
	}

	out, err := json.Marshal(client{Codaux: rut.MustParse("12.345.678-5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"codaux":"12345678-5"}`, string(out))

	var in client
	require.NoError(t, json.Unmarshal([]byte(`{"codaux":"10.000.013-k"}`), &in))
	assert.Equal(t, rut.New(10000013), in.Codaux)

	err = json.Unmarshal([]byte(`{"codaux":"12.345.678-9"}`), &in)
	assert.ErrorIs(t, err, rut.ErrCheckDigitMismatch)

	var empty client
	require.NoError(t, json.Unmarshal([]byte(`{"codaux":""}`), &empty))
	assert.True(t, empty.Codaux.IsZero())
}
