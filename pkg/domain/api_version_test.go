package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIVersion(t *testing.T) {
	v, err := ParseAPIVersion(" V1 ")
	require.NoError(t, err)
	assert.Equal(t, APIVersionV1, v)
	assert.Equal(t, "v1", v.String())

	_, err = ParseAPIVersion("v9")
	assert.Error(t, err)
	_, err = ParseAPIVersion("")
	assert.Error(t, err)
}

func TestIsAtLeast(t *testing.T) {
	assert.True(t, APIVersionV1.IsAtLeast(APIVersionV1))
	assert.True(t, APIVersionV1.IsAtLeast(APIVersion("v0")))
	assert.False(t, APIVersion("v9").IsAtLeast(APIVersionV1))
	assert.True(t, APIVersion("").IsNil())
}
