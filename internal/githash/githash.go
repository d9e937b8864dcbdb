// Package githash provides the identity hash of stored objects.
package githash

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// Size is the byte length of an object hash.
const Size = sha1.Size

// HexSize is the length of a hex-encoded object hash.
const HexSize = Size * 2

// SHA1 is the SHA-1 hash of an object's canonical bytes.
type SHA1 [Size]byte

// Sum returns the hash of data.
func Sum(data []byte) SHA1 {
	return SHA1(sha1.Sum(data))
}

// ParseSHA1 parses a 40-character hex hash. Upper-case digits are accepted.
func ParseSHA1(s string) (SHA1, error) {
	var h SHA1
	err := h.UnmarshalText([]byte(s))
	return h, err
}

// FromBytes copies a raw 20-byte hash.
func FromBytes(b []byte) (SHA1, error) {
	var h SHA1
	err := h.UnmarshalBinary(b)
	return h, err
}

// String returns the lowercase hex encoding of the hash.
func (h SHA1) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether every byte of h is zero.
func (h SHA1) IsZero() bool {
	return h == SHA1{}
}

// DirName is the fan-out directory of the hash under objects/.
func (h SHA1) DirName() string {
	return h.String()[:2]
}

// FileName is the file name of the hash inside its fan-out directory.
func (h SHA1) FileName() string {
	return h.String()[2:]
}

// MarshalText returns the hex-encoded hash.
func (h SHA1) MarshalText() ([]byte, error) {
	buf := make([]byte, HexSize)
	hex.Encode(buf, h[:])
	return buf, nil
}

// UnmarshalText decodes a hex-encoded hash into h.
func (h *SHA1) UnmarshalText(s []byte) error {
	if len(s) != HexSize {
		return fmt.Errorf("parse hash %q: wrong size", s)
	}
	if _, err := hex.Decode(h[:], s); err != nil {
		return fmt.Errorf("parse hash %q: %w", s, err)
	}
	return nil
}

// MarshalBinary returns the raw hash bytes.
func (h SHA1) MarshalBinary() ([]byte, error) {
	return h[:], nil
}

// UnmarshalBinary copies b into h. It fails if len(b) != Size.
func (h *SHA1) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return fmt.Errorf("parse binary hash %x: wrong size", b)
	}
	copy(h[:], b)
	return nil
}
