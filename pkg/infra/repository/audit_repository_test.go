package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinuationToken_RoundTrip(t *testing.T) {
	for _, offset := range []int{0, 1, 100, 123456} {
		decoded, err := decodeToken(encodeToken(offset))
		assert.NoError(t, err)
		assert.Equal(t, offset, decoded)
	}
}

func TestDecodeToken_EmptyMeansStart(t *testing.T) {
	offset, err := decodeToken("")
	assert.NoError(t, err)
	assert.Equal(t, 0, offset)
}

func TestDecodeToken_RejectsGarbage(t *testing.T) {
	for _, token := range []string{"not base64!", "bm90IGEgbnVtYmVy", encodeToken(-5)} {
		_, err := decodeToken(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}
