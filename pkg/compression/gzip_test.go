package compression

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzip_RoundTrip(t *testing.T) {
	gz, err := NewGzip(gzip.DefaultCompression, 0)
	require.NoError(t, err)

	body := []byte(strings.Repeat(`<GetMsgRequest xmlns="urn:zimbraMail"><m id="1"/></GetMsgRequest>`, 200))

	compressed, err := gz.Compress(body)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(body))

	plain, err := Decompress(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.Equal(t, body, plain)
}

func TestGzip_EmptyBody(t *testing.T) {
	gz, err := NewGzip(gzip.BestSpeed, 0)
	require.NoError(t, err)

	compressed, err := gz.Compress(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, compressed) // header only

	plain, err := Decompress(bytes.NewReader(compressed))
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestGzip_Threshold(t *testing.T) {
	gz, err := NewGzip(gzip.BestSpeed, 100)
	require.NoError(t, err)
	assert.False(t, gz.ShouldCompress(99))
	assert.True(t, gz.ShouldCompress(100))

	def, err := NewGzip(gzip.BestSpeed, 0)
	require.NoError(t, err)
	assert.False(t, def.ShouldCompress(DefaultThreshold-1))
	assert.True(t, def.ShouldCompress(DefaultThreshold))
}

func TestNewGzip_InvalidLevel(t *testing.T) {
	_, err := NewGzip(42, 0)
	assert.Error(t, err)
}

func TestDecompress_NotGzip(t *testing.T) {
	_, err := Decompress(strings.NewReader("<plain/>"))
	assert.Error(t, err)
}
