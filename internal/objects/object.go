package objects

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/githash"
)

// Type names an object kind as it appears in the object header.
type Type string

const (
	BlobType   Type = "blob"
	TreeType   Type = "tree"
	CommitType Type = "commit"
)

// ParseType converts a header tag into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown object type %q", ErrInvalidData, s)
	}
	return t, nil
}

// IsValid reports whether t is a known object type.
func (t Type) IsValid() bool {
	switch t {
	case BlobType, TreeType, CommitType:
		return true
	default:
		return false
	}
}

// Object is one of *Blob, *Tree or *Commit. The set is closed: the unexported
// method keeps other packages from adding kinds.
type Object interface {
	// Type returns the kind written in the object header.
	Type() Type

	// Content returns the canonical payload, without header.
	Content() []byte

	// Data returns the canonical bytes: "<type> <size>\0<content>".
	Data() []byte

	// Hash returns the SHA-1 hash of Data.
	Hash() githash.SHA1

	// String returns a human-readable representation.
	String() string

	object()
}

// Header returns the canonical object header "<type> <size>\0".
func Header(t Type, size int) []byte {
	header := make([]byte, 0, len(t)+12)
	header = append(header, t...)
	header = append(header, ' ')
	header = strconv.AppendInt(header, int64(size), 10)
	return append(header, constants.NullByte)
}

// Serialize returns the canonical bytes of obj. It never fails.
func Serialize(obj Object) []byte {
	content := obj.Content()
	return append(Header(obj.Type(), len(content)), content...)
}

// Hash returns the identity of obj, the digest of its canonical bytes.
func Hash(obj Object) githash.SHA1 {
	return githash.Sum(Serialize(obj))
}

// Parse decodes canonical (decompressed) object bytes, picking the codec
// from the header's type tag.
func Parse(raw []byte) (Object, error) {
	objType, payload, err := splitObject(raw)
	if err != nil {
		return nil, err
	}

	switch objType {
	case BlobType:
		return DecodeBlob(payload), nil
	case TreeType:
		return DecodeTree(payload)
	case CommitType:
		return DecodeCommit(payload)
	default:
		// splitObject only returns valid types
		panic("unreachable object type " + string(objType))
	}
}

// splitObject separates the header from the payload and validates the header.
// The header ends at the first NUL; the payload may contain further NULs.
func splitObject(raw []byte) (Type, []byte, error) {
	nullByteIndex := bytes.IndexByte(raw, constants.NullByte)
	if nullByteIndex == -1 {
		return "", nil, fmt.Errorf("%w: no null byte after object header", ErrInvalidData)
	}

	header, payload := raw[:nullByteIndex], raw[nullByteIndex+1:]
	if !utf8.Valid(header) {
		return "", nil, fmt.Errorf("%w: object header is not valid UTF-8", ErrInvalidData)
	}

	if len(header) == 0 {
		return "", nil, fmt.Errorf("%w: empty object header", ErrInvalidData)
	}

	// "<type>" or "<type> <size>" with exactly one space
	typeText, sizeText, hasSize := strings.Cut(string(header), " ")
	objType, err := ParseType(typeText)
	if err != nil {
		return "", nil, err
	}

	if hasSize {
		size, err := parseObjectSize(sizeText)
		if err != nil {
			return "", nil, fmt.Errorf("%w: object size %q: %v", ErrInvalidData, sizeText, err)
		}
		if size != uint64(len(payload)) {
			return "", nil, fmt.Errorf("%w: header declares %d bytes, payload has %d", ErrInvalidData, size, len(payload))
		}
	}

	return objType, payload, nil
}

// parseObjectSize accepts plain decimal digits without leading zeros.
func parseObjectSize(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("leading zero")
	}
	return strconv.ParseUint(s, 10, 63)
}
