package models

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigIntJsonRoundTrip(t *testing.T) {
	// uint256 max, far beyond any native integer.
	value, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)

	data, err := json.Marshal(FromBig(value))
	require.NoError(t, err)
	assert.Equal(t, `"115792089237316195423570985008687907853269984665640564039457584007913129639935"`, string(data))

	var decoded BigInt
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Zero(t, decoded.Cmp(value))
}

func TestBigIntUnmarshalRejectsGarbage(t *testing.T) {
	var decoded BigInt
	assert.Error(t, json.Unmarshal([]byte(`"not a number"`), &decoded))
}

func TestBigIntNullDecodesToZero(t *testing.T) {
	var decoded BigInt
	require.NoError(t, json.Unmarshal([]byte(`null`), &decoded))
	assert.Equal(t, "0", decoded.String())
}

func TestFromBigCopiesValue(t *testing.T) {
	src := big.NewInt(42)
	wrapped := FromBig(src)

	src.SetInt64(100)
	assert.Equal(t, "42", wrapped.String())
}

func TestFromBigNil(t *testing.T) {
	assert.Equal(t, "0", FromBig(nil).String())
}

func TestBigNilReceiver(t *testing.T) {
	var b *BigInt
	assert.Equal(t, "0", b.Big().String())
}
