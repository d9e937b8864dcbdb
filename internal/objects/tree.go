package objects

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/githash"
)

// Mode holds a tree entry's permission/type bits. Its decimal digits are the
// text written in the tree payload, so 100644 is stored as "100644".
type Mode uint32

const (
	ModeRegularFile Mode = 100644 // Regular non-executable file
	ModeExecutable  Mode = 100755 // Executable file
	ModeSymlink     Mode = 120000 // Symbolic link
	ModeDirectory   Mode = 40000  // Directory (tree)
	ModeSubmodule   Mode = 160000 // Submodule (commit)
)

// String returns the mode as written in a tree payload.
func (m Mode) String() string {
	return strconv.FormatUint(uint64(m), 10)
}

// ParseMode parses the mode text of a tree entry. Leading zeros are rejected
// since they would not survive re-encoding.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return 0, fmt.Errorf("empty mode")
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("mode %q has a leading zero", s)
	}
	mode, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("mode %q: %w", s, err)
	}
	return Mode(mode), nil
}

// TreeEntry is a single record of a tree object.
type TreeEntry struct {
	Mode Mode
	Name string
	Hash githash.SHA1
}

func (e TreeEntry) IsDirectory() bool {
	return e.Mode == ModeDirectory
}

func (e TreeEntry) IsExecutable() bool {
	return e.Mode == ModeExecutable
}

// Type returns the kind of object the entry points at.
func (e TreeEntry) Type() Type {
	switch e.Mode {
	case ModeDirectory:
		return TreeType
	case ModeSubmodule:
		return CommitType
	default:
		return BlobType
	}
}

// String formats the entry the way git's cat-file -p prints it.
func (e TreeEntry) String() string {
	return fmt.Sprintf("%06d %s %s\t%s", e.Mode, e.Type(), e.Hash, e.Name)
}

func (e TreeEntry) validate() error {
	if e.Name == "" {
		return fmt.Errorf("empty entry name")
	}
	if strings.IndexByte(e.Name, constants.NullByte) != -1 {
		return fmt.Errorf("entry name %q contains a null byte", e.Name)
	}
	return nil
}

// Tree is a directory listing. Entries keep the order they were given or
// parsed in; the codec never re-sorts them.
type Tree struct {
	entries []TreeEntry
}

// NewTree creates a tree from entries, in the given order.
func NewTree(entries []TreeEntry) (*Tree, error) {
	for i, entry := range entries {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("%w: tree entry %d: %v", ErrInvalidData, i, err)
		}
	}
	return &Tree{entries: slices.Clone(entries)}, nil
}

// DecodeTree parses a tree payload. Each entry is "<mode> <name>\0" followed
// by exactly 20 raw hash bytes; an empty payload is an empty tree.
func DecodeTree(payload []byte) (*Tree, error) {
	var entries []TreeEntry
	for offset := 0; offset < len(payload); {
		entry, next, err := decodeTreeEntry(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("%w: tree entry %d at offset %d: %v", ErrInvalidData, len(entries), offset, err)
		}
		entries = append(entries, entry)
		offset = next
	}
	return &Tree{entries: entries}, nil
}

// decodeTreeEntry reads one entry starting at offset and returns the offset
// of the next one. Hash bytes are sliced by length, never scanned, since they
// may contain NULs or spaces.
func decodeTreeEntry(src []byte, offset int) (TreeEntry, int, error) {
	headerLength := bytes.IndexByte(src[offset:], constants.NullByte)
	if headerLength == -1 {
		return TreeEntry{}, 0, fmt.Errorf("header not terminated by a null byte")
	}

	header := src[offset : offset+headerLength]
	if !utf8.Valid(header) {
		return TreeEntry{}, 0, fmt.Errorf("header is not valid UTF-8")
	}

	modeText, name, err := splitEntryHeader(string(header))
	if err != nil {
		return TreeEntry{}, 0, err
	}

	mode, err := ParseMode(modeText)
	if err != nil {
		return TreeEntry{}, 0, err
	}

	hashStart := offset + headerLength + 1
	hashEnd := hashStart + githash.Size
	if hashEnd > len(src) {
		return TreeEntry{}, 0, fmt.Errorf("truncated hash: %d of %d bytes", len(src)-hashStart, githash.Size)
	}

	entry := TreeEntry{Mode: mode, Name: name}
	copy(entry.Hash[:], src[hashStart:hashEnd])
	return entry, hashEnd, nil
}

// splitEntryHeader splits "<mode> <name>" at the first space. The name is
// kept verbatim, so any further spaces belong to it.
func splitEntryHeader(header string) (mode, name string, err error) {
	mode, name, found := strings.Cut(header, " ")
	if !found {
		return "", "", fmt.Errorf("no space between mode and name in %q", header)
	}
	if name == "" {
		return "", "", fmt.Errorf("empty entry name")
	}
	return mode, name, nil
}

// appendTreeEntry formats one entry in the tree payload format:
// <mode> <name>\0<20-byte binary hash>
func appendTreeEntry(dst []byte, entry TreeEntry) []byte {
	dst = strconv.AppendUint(dst, uint64(entry.Mode), 10)
	dst = append(dst, ' ')
	dst = append(dst, entry.Name...)
	dst = append(dst, constants.NullByte)
	return append(dst, entry.Hash[:]...)
}

func (t *Tree) object() {}

func (t *Tree) Type() Type {
	return TreeType
}

// Entries returns a copy of the entries in stored order.
func (t *Tree) Entries() []TreeEntry {
	return slices.Clone(t.entries)
}

func (t *Tree) Len() int {
	return len(t.entries)
}

// Content returns the tree payload, entries in stored order.
func (t *Tree) Content() []byte {
	var content []byte
	for _, entry := range t.entries {
		content = appendTreeEntry(content, entry)
	}
	return content
}

// Size returns the payload length in bytes.
func (t *Tree) Size() int {
	return len(t.Content())
}

// Data returns the canonical encoding, header included.
func (t *Tree) Data() []byte {
	return Serialize(t)
}

// Hash returns the SHA-1 of the canonical encoding.
func (t *Tree) Hash() githash.SHA1 {
	return Hash(t)
}

// String lists one entry per line.
func (t *Tree) String() string {
	var sb strings.Builder
	for _, entry := range t.entries {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FindEntry finds an entry by name.
func (t *Tree) FindEntry(name string) (TreeEntry, bool) {
	for _, entry := range t.entries {
		if entry.Name == name {
			return entry, true
		}
	}
	return TreeEntry{}, false
}

// Sorted returns a copy of the tree in git's canonical entry order.
func (t *Tree) Sorted() *Tree {
	entries := slices.Clone(t.entries)
	slices.SortStableFunc(entries, compareTreeEntries)
	return &Tree{entries: entries}
}

// compareTreeEntries implements git's tree entry sorting rules:
// - Entries are sorted by name
// - Directory names are treated as if they have a trailing "/" for comparison
func compareTreeEntries(a, b TreeEntry) int {
	return strings.Compare(sortableName(a), sortableName(b))
}

func sortableName(entry TreeEntry) string {
	if entry.IsDirectory() {
		return entry.Name + "/"
	}
	return entry.Name
}
