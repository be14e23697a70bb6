package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Encoding is the Content-Encoding token for GZIP bodies.
const Encoding = "gzip"

// DefaultThreshold is the body size from which compression pays off.
const DefaultThreshold = 8 * 1024

// Gzip compresses bodies at a fixed level.
type Gzip struct {
	level     int
	threshold int
}

// NewGzip returns a compressor. A threshold of zero means DefaultThreshold.
func NewGzip(level, threshold int) (*Gzip, error) {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		return nil, fmt.Errorf("invalid gzip level %d", level)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gzip{level: level, threshold: threshold}, nil
}

// ShouldCompress reports whether a body of size n is worth compressing.
func (g *Gzip) ShouldCompress(n int) bool {
	return n >= g.threshold
}

// Compress returns data compressed with GZIP.
func (g *Gzip) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := gzip.NewWriterLevel(&buf, g.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reads a GZIP stream to the end.
func Decompress(r io.Reader) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed data: %w", err)
	}
	return data, nil
}
