package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KostasZigo/gitobj/internal/config"
	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/logging"
)

var (
	// settings and logger are resolved before every command runs.
	settings = &config.Settings{GitDir: constants.GitDir}
	logger   = logging.Nop()
)

// rootCmd defines the base command for the gitobj CLI.
// All subcommands (cat-file, hash-object, init) register under this root.
// Arguments that name no known subcommand are accepted and ignored.
var rootCmd = &cobra.Command{
	Use:   "gitobj",
	Short: "Read and write git loose objects",
	Long: `gitobj reads and writes the loose objects of a git object database.
It decodes blobs, trees and commits stored under <git-dir>/objects and
computes object hashes exactly as git does.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	PersistentPreRunE:  loadSettings,
	RunE:               runRoot,
}

func init() {
	addPersistentFlags(rootCmd)
}

// addPersistentFlags registers the flags shared by every subcommand.
func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(constants.GitDirKey, constants.GitDir, "Path to the git directory (env GITOBJ_GIT_DIR)")
	cmd.PersistentFlags().BoolP(constants.VerboseKey, "v", false, "Enable debug logging to stderr (env GITOBJ_VERBOSE)")
}

// loadSettings resolves settings from flags and environment and builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logging.New(s.Verbose)
	if err != nil {
		return err
	}

	settings = s
	logger = log.With(zap.String("command", cmd.Name()))
	return nil
}

// runRoot prints help when called bare and does nothing for unknown subcommands.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	logger.Debug("ignoring unknown subcommand", zap.String("name", args[0]))
	return nil
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
