package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/KostasZigo/gitobj/internal/constants"
)

// Settings are the process-wide options shared by every command.
type Settings struct {
	// GitDir is the directory holding objects/ and config.
	GitDir string
	// Verbose enables debug logging.
	Verbose bool
}

// Load resolves settings from flags and GITOBJ_* environment variables.
// An explicitly set flag wins over the environment, which wins over flag defaults.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault(constants.GitDirKey, constants.GitDir)
	v.SetDefault(constants.VerboseKey, false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	settings := &Settings{
		GitDir:  v.GetString(constants.GitDirKey),
		Verbose: v.GetBool(constants.VerboseKey),
	}
	if settings.GitDir == "" {
		return nil, fmt.Errorf("%s must not be empty", constants.GitDirKey)
	}

	return settings, nil
}
