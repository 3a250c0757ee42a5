package security

import (
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_EncodePart_IsUnpaddedBase64URL(t *testing.T) {
	var codec TokenCodec

	//"?>"を含めると標準base64なら+や/が出る
	seg, err := codec.EncodePart(map[string]any{"v": "??>>"})
	require.NoError(t, err)

	assert.NotContains(t, seg, "=")
	assert.NotContains(t, seg, "+")
	assert.NotContains(t, seg, "/")
}

func TestTokenCodec_DecodePart_RoundTripKeepsNumbers(t *testing.T) {
	var codec TokenCodec

	seg, err := codec.EncodePart(map[string]any{"sub": int64(9007199254740993), "name": "x"})
	require.NoError(t, err)

	got, err := codec.DecodePart(seg)
	require.NoError(t, err)

	assert.Equal(t, json.Number("9007199254740993"), got["sub"])
	assert.Equal(t, "x", got["name"])
}

func TestTokenCodec_DecodePart_Rejects(t *testing.T) {
	var codec TokenCodec

	cases := map[string]string{
		"not base64":   "***",
		"not json":     b64("hello"),
		"json array":   b64(`[1,2]`),
		"json null":    b64(`null`),
		"trailing obj": b64(`{"a":1}{"b":2}`),
	}
	for name, seg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.DecodePart(seg)
			assert.Error(t, err)
		})
	}
}

func TestTokenCodec_Split(t *testing.T) {
	var codec TokenCodec

	h, p, s, ok := codec.Split("a.b.c")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, []string{h, p, s})

	for _, bad := range []string{"", "a.b", "a.b.c.d", "a..c", ".b.c", "a.b.", "abc"} {
		_, _, _, ok := codec.Split(bad)
		assert.False(t, ok, bad)
	}
}

func b64(s string) string {
	return jwt.EncodeSegment([]byte(s))
}
