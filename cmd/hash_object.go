package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/objects"
)

var hashObjectCmd = &cobra.Command{
	Use:   constants.HashObjectCmdName + " <filepath>",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object hash (SHA-1 hash) for a file's content.
Optionally write the resulting object's blob into the objects folder.

Examples:
  # Compute hash without storing
  gitobj hash-object myfile.txt

  # Compute hash and store in .git/objects
  gitobj hash-object -w myfile.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1, "filepath"),
	RunE:         runHashObject,
}

var writeFlag bool

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int, name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, name, len(args))
		}
		return nil
	}
}

// runHashObject computes hash and optionally stores blob object.
func runHashObject(cmd *cobra.Command, args []string) error {
	// Create blob from file's contents
	blob, err := objects.NewBlobFromFile(args[0])
	if err != nil {
		return err
	}

	if writeFlag {
		store, err := openStore()
		if err != nil {
			return err
		}

		if _, err := store.Write(blob); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
		logger.Debug("stored blob", zap.String("path", args[0]), zap.Stringer("hash", blob.Hash()))
	}

	// Print hash to stdout
	fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())
	return nil
}
