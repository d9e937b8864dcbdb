package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitobj/internal/objects"
	"github.com/KostasZigo/gitobj/internal/repository"
)

// openStore locates the git directory and opens its object store tuned by the repository config.
func openStore() (*objects.ObjectStore, error) {
	gitDir, err := findGitDir(settings.GitDir)
	if err != nil {
		return nil, err
	}

	repoConfig, err := repository.LoadConfig(gitDir)
	if err != nil {
		return nil, err
	}

	opts := []objects.StoreOption{
		objects.WithCompressionLevel(repoConfig.CompressionLevel),
		objects.WithCacheSize(repoConfig.CacheSize),
		objects.WithLogger(logger),
	}
	if repoConfig.Verify {
		opts = append(opts, objects.WithVerify())
	}

	return objects.NewObjectStore(gitDir, opts...), nil
}

// findGitDir returns gitDir unchanged when it is absolute or exists relative to the
// working directory. Otherwise it walks up the directory tree looking for it.
func findGitDir(gitDir string) (string, error) {
	if filepath.IsAbs(gitDir) || isDir(gitDir) {
		return gitDir, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, gitDir)
		if isDir(candidate) {
			return candidate, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding the git directory
			return "", fmt.Errorf("not a git repository (or any of the parent directories): %s", gitDir)
		}
		dir = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
