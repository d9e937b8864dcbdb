package objects

import (
	"errors"
	"testing"

	"github.com/KostasZigo/gitobj/internal/githash"
)

// hashLiteral parses a hex hash and panics on failure.
func hashLiteral(s string) githash.SHA1 {
	h, err := githash.ParseSHA1(s)
	if err != nil {
		panic(err)
	}
	return h
}

// hashOfByte returns a hash whose 20 bytes are all b.
func hashOfByte(b byte) githash.SHA1 {
	var h githash.SHA1
	for i := range h {
		h[i] = b
	}
	return h
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if string(blob.Content()) != string(expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// assertBlobHash verifies blob hash matches the digest of "blob <size>\0<content>".
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expected := githash.Sum(append(Header(BlobType, len(content)), content...))
	if blob.Hash() != expected {
		t.Fatalf("Expected hash [%s], got [%s]", expected, blob.Hash())
	}
}

// assertErrorIs fails the test unless err wraps target.
func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected error wrapping [%v], got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("Expected error wrapping [%v], got [%v]", target, err)
	}
}

// createTree creates tree from entries and fails test on error.
func createTree(t *testing.T, entries []TreeEntry) *Tree {
	t.Helper()

	tree, err := NewTree(entries)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	return tree
}

// createCommit creates commit from options and fails test on error.
func createCommit(t *testing.T, opts CommitOptions) *Commit {
	t.Helper()

	commit, err := NewCommit(opts)
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	return commit
}

// writeObject stores obj and fails test on error.
func writeObject(t *testing.T, store *ObjectStore, obj Object) githash.SHA1 {
	t.Helper()

	hash, err := store.Write(obj)
	if err != nil {
		t.Fatalf("Failed to store %s: %v", obj.Type(), err)
	}

	return hash
}
