package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/KostasZigo/gitobj/internal/constants"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(constants.GitDirKey, constants.GitDir, "")
	flags.BoolP(constants.VerboseKey, "v", false, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load(newFlags())
	require.NoError(t, err)
	require.Equal(t, &Settings{GitDir: ".git"}, settings)
}

func TestLoad_NilFlags(t *testing.T) {
	settings, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, constants.GitDir, settings.GitDir)
	require.False(t, settings.Verbose)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GITOBJ_GIT_DIR", "/srv/repo.git")
	t.Setenv("GITOBJ_VERBOSE", "true")

	settings, err := Load(newFlags())
	require.NoError(t, err)
	require.Equal(t, &Settings{GitDir: "/srv/repo.git", Verbose: true}, settings)
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("GITOBJ_GIT_DIR", "/srv/repo.git")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--git-dir", "other.git", "-v"}))

	settings, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, &Settings{GitDir: "other.git", Verbose: true}, settings)
}

func TestLoad_EmptyGitDir(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--git-dir="}))

	_, err := Load(flags)
	require.ErrorContains(t, err, "git-dir must not be empty")
}
