package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/ini.v1"

	"github.com/KostasZigo/gitobj/internal/compress"
	"github.com/KostasZigo/gitobj/internal/constants"
)

// InitRepository creates an empty object database at gitDir: the objects/
// directory and a config file. It refuses to touch an existing repository.
func InitRepository(gitDir string, log *zap.Logger) error {
	if err := checkRepositoryDoesNotExist(gitDir); err != nil {
		return err
	}

	// Track if initialization of directories and files was successful.
	// The deferred clean-up removes a partially created repository.
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(gitDir, log)
		}
	}()

	objectsDir := filepath.Join(gitDir, constants.Objects)
	if err := os.MkdirAll(objectsDir, constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", objectsDir, err)
	}

	if err := writeDefaultConfig(filepath.Join(gitDir, constants.Config)); err != nil {
		return fmt.Errorf("failed to create %s file: %w", constants.Config, err)
	}

	initSuccess = true
	log.Debug("initialized repository", zap.String("path", gitDir))
	return nil
}

func writeDefaultConfig(path string) error {
	cfg := ini.Empty()

	core, err := cfg.NewSection(constants.CoreSection)
	if err != nil {
		return err
	}
	if _, err := core.NewKey(constants.RepoFormatVersionKey, strconv.Itoa(constants.DefaultRepoFormatVersion)); err != nil {
		return err
	}
	if _, err := core.NewKey(constants.CompressionKey, strconv.Itoa(compress.DefaultLevel)); err != nil {
		return err
	}

	return cfg.SaveToIndent(path, "\t")
}

func checkRepositoryDoesNotExist(gitDir string) error {
	_, err := os.Stat(filepath.Join(gitDir, constants.Objects))

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", gitDir)
}

// cleanupRepository removes the git directory left by a failed initialization.
func cleanupRepository(gitDir string, log *zap.Logger) {
	if _, err := os.Stat(gitDir); err != nil {
		return
	}

	log.Debug("cleaning up partial repository initialization", zap.String("path", gitDir))

	if err := os.RemoveAll(gitDir); err != nil {
		log.Warn("failed to cleanup repository directory",
			zap.String("path", gitDir),
			zap.Error(err))
	}
}

// Config holds the repository settings that affect the object store.
type Config struct {
	// CompressionLevel is the zlib level for new objects (core.compression).
	CompressionLevel int

	// CacheSize is the number of decoded objects kept in memory (gitobj.cachesize).
	CacheSize int

	// Verify checks read objects against their names (gitobj.verify).
	Verify bool
}

// DefaultConfig is used when the config file or a key is absent.
func DefaultConfig() Config {
	return Config{CompressionLevel: compress.DefaultLevel}
}

// LoadConfig reads <gitDir>/config. A missing file yields DefaultConfig.
// Sections and keys are case-insensitive, as in git.
func LoadConfig(gitDir string) (Config, error) {
	path := filepath.Join(gitDir, constants.Config)
	file, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		Insensitive:             true,
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
	}

	config := DefaultConfig()
	core := file.Section(constants.CoreSection)

	if core.HasKey(constants.RepoFormatVersionKey) {
		version, err := core.Key(constants.RepoFormatVersionKey).Int()
		if err != nil {
			return Config{}, fmt.Errorf("%s.%s: %w", constants.CoreSection, constants.RepoFormatVersionKey, err)
		}
		if version != constants.DefaultRepoFormatVersion {
			return Config{}, fmt.Errorf("unsupported repository format version %d", version)
		}
	}

	if core.HasKey(constants.CompressionKey) {
		level, err := core.Key(constants.CompressionKey).Int()
		if err != nil {
			return Config{}, fmt.Errorf("%s.%s: %w", constants.CoreSection, constants.CompressionKey, err)
		}
		if !compress.ValidLevel(level) {
			return Config{}, fmt.Errorf("%s.%s: level %d out of range", constants.CoreSection, constants.CompressionKey, level)
		}
		config.CompressionLevel = level
	}

	gitobj := file.Section(constants.GitobjSection)
	if gitobj.HasKey(constants.CacheSizeKey) {
		size, err := gitobj.Key(constants.CacheSizeKey).Int()
		if err != nil {
			return Config{}, fmt.Errorf("%s.%s: %w", constants.GitobjSection, constants.CacheSizeKey, err)
		}
		if size < 0 {
			return Config{}, fmt.Errorf("%s.%s: negative cache size %d", constants.GitobjSection, constants.CacheSizeKey, size)
		}
		config.CacheSize = size
	}

	if gitobj.HasKey(constants.VerifyKey) {
		verify, err := gitobj.Key(constants.VerifyKey).Bool()
		if err != nil {
			return Config{}, fmt.Errorf("%s.%s: %w", constants.GitobjSection, constants.VerifyKey, err)
		}
		config.Verify = verify
	}

	return config, nil
}
