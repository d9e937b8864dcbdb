// Package compress is the zlib codec for loose object files.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compression levels accepted by Deflate.
const (
	DefaultLevel    = zlib.DefaultCompression
	NoCompression   = zlib.NoCompression
	BestSpeed       = zlib.BestSpeed
	BestCompression = zlib.BestCompression
)

// ValidLevel reports whether level is usable by Deflate.
func ValidLevel(level int) bool {
	return level >= DefaultLevel && level <= BestCompression
}

// Deflate compresses data into a zlib stream.
func Deflate(data []byte, level int) ([]byte, error) {
	if !ValidLevel(level) {
		return nil, fmt.Errorf("invalid compression level %d", level)
	}

	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, level)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}

	// Close flushes the remaining block and the adler32 trailer
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Inflate decompresses a complete zlib stream.
func Inflate(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open zlib stream: %w", err)
	}
	defer reader.Close()

	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed data: %w", err)
	}

	return out, nil
}
