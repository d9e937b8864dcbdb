package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
)

// Repository directory and file names define the object database layout.
const (
	// GitDir is the default metadata directory, relative to the working directory.
	GitDir = ".git"

	// Objects stores content-addressable objects (blobs, trees, commits).
	Objects = "objects"

	// Config is the ini formatted repository configuration file.
	Config = "config"
)

// Runtime setting keys, shared by the flags, viper and the environment.
const (
	// EnvPrefix prefixes environment overrides, e.g. GITOBJ_GIT_DIR.
	EnvPrefix = "GITOBJ"

	GitDirKey  = "git-dir"
	VerboseKey = "verbose"
)

// Repository config sections and keys.
const (
	CoreSection          = "core"
	RepoFormatVersionKey = "repositoryformatversion"
	CompressionKey       = "compression"

	GitobjSection = "gitobj"
	CacheSizeKey  = "cachesize"
	VerifyKey     = "verify"

	// DefaultRepoFormatVersion is written by init; only version 0 is understood.
	DefaultRepoFormatVersion = 0
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644

	// ObjectPerms makes stored objects read-only (r--r--r--); they never change once written.
	ObjectPerms os.FileMode = 0444
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2
)

// Commit header keys, in the order they appear in a commit object.
const (
	CommitTreeKey      = "tree"
	CommitParentKey    = "parent"
	CommitAuthorKey    = "author"
	CommitCommitterKey = "committer"
)

// Object format constants.
const (
	// NullByte separates header from content in objects and ends tree entry headers.
	NullByte = '\x00'
)

// Time conversion constants for timezone formatting.
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)
