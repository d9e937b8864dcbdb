package utils

import (
	"path/filepath"
	"strings"
)

// BuildDirPath constructs os-agnostic display directory path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}
