package objects

import (
	"bytes"
	"fmt"
	"os"

	"github.com/KostasZigo/gitobj/internal/githash"
)

// Blob is opaque file content.
type Blob struct {
	content []byte
}

// NewBlob copies content into a new blob.
func NewBlob(content []byte) *Blob {
	return &Blob{content: bytes.Clone(content)}
}

// NewBlobFromFile builds a blob from a regular file outside the object database.
func NewBlobFromFile(filepath string) (*Blob, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file %s: %w", ErrInvalidInput, filepath, err)
	}
	return &Blob{content: content}, nil
}

// DecodeBlob decodes a blob payload. Every payload is a valid blob, NUL bytes included.
func DecodeBlob(payload []byte) *Blob {
	return NewBlob(payload)
}

func (b *Blob) object() {}

func (b *Blob) Type() Type {
	return BlobType
}

// Content returns a copy of the stored bytes, unchanged.
func (b *Blob) Content() []byte {
	return bytes.Clone(b.content)
}

// Size returns the payload length in bytes.
func (b *Blob) Size() int {
	return len(b.content)
}

// Data returns the canonical encoding, header included.
func (b *Blob) Data() []byte {
	return Serialize(b)
}

// Hash returns the SHA-1 of the canonical encoding.
func (b *Blob) Hash() githash.SHA1 {
	return Hash(b)
}

// String returns the content as text.
func (b *Blob) String() string {
	return string(b.content)
}
