package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitobj/internal/constants"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// SetupTestGitDir creates a temporary git directory containing an empty objects/ folder.
// Returns the git directory path (the parent of objects/).
func SetupTestGitDir(t *testing.T) string {
	t.Helper()

	gitDir := filepath.Join(t.TempDir(), constants.GitDir)
	objectsDir := filepath.Join(gitDir, constants.Objects)

	if err := os.MkdirAll(objectsDir, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create %s/%s: %v", constants.GitDir, constants.Objects, err)
	}

	return gitDir
}

// SetupTestRepo creates a temporary working directory with a .git/objects structure.
// Returns the working directory path.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	gitDir := SetupTestGitDir(t)
	return filepath.Dir(gitDir)
}

// WriteObjectFile writes raw (already compressed) bytes at objects/<2 hex>/<38 hex>.
// Returns the full path to the object file.
func WriteObjectFile(t *testing.T, gitDir, hashHex string, data []byte) string {
	t.Helper()

	objectDir := filepath.Join(gitDir, constants.Objects, hashHex[:constants.HashDirPrefixLength])
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create object directory %s: %v", objectDir, err)
	}

	return CreateTestFile(t, objectDir, hashHex[constants.HashDirPrefixLength:], data)
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to NOT exist at %s", path)
	}
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("Failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates the git directory created by init:
// objects/ exists and the config file is present.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	gitDir := filepath.Join(repoPath, constants.GitDir)
	AssertDirExists(t, gitDir)
	AssertDirExists(t, filepath.Join(gitDir, constants.Objects))
	AssertFileExists(t, filepath.Join(gitDir, constants.Config))
}
