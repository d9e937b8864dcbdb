package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/repository"
	"github.com/KostasZigo/gitobj/utils"
)

var initCmd = &cobra.Command{
	Use:   constants.InitCmdName + " [directory]",
	Short: "Create an empty object database",
	Long: `The 'init' command creates an empty object database in the current or given directory.
It creates the git directory with an objects folder and a config file.
If a repository already exists, the command will not overwrite existing data.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// maximumArgs validates command receives at most n positional arguments.
// Returns error with usage help if argument limit exceeded.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// runInit executes repository initialization at specified or current directory.
// An absolute --git-dir is used as is and ignores the directory argument.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	gitDir := settings.GitDir
	displayPath := utils.BuildDirPath(gitDir)
	if !filepath.IsAbs(gitDir) {
		displayPath = utils.BuildDirPath(dirPath, gitDir)
		gitDir = filepath.Join(dirPath, gitDir)
	}

	if err := repository.InitRepository(gitDir, logger); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty repository in %s\n", displayPath)
	return nil
}
