package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KostasZigo/gitobj/internal/compress"
	"github.com/KostasZigo/gitobj/internal/objects"
	"github.com/KostasZigo/gitobj/testutils"
)

// createTestRootCmd creates fresh root command with the given subcommand.
// Flags left over from previous executions are reset to their defaults.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	testRootCmd := &cobra.Command{
		Use:               "gitobj",
		SilenceUsage:      true,
		PersistentPreRunE: loadSettings,
	}
	addPersistentFlags(testRootCmd)
	testRootCmd.AddCommand(cmd)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	return testRootCmd
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// storeObject writes obj into gitDir the way git does and returns its hash.
func storeObject(t *testing.T, gitDir string, obj objects.Object) string {
	t.Helper()

	compressed, err := compress.Deflate(objects.Serialize(obj), compress.DefaultLevel)
	if err != nil {
		t.Fatalf("Failed to compress object: %v", err)
	}

	hash := obj.Hash().String()
	testutils.WriteObjectFile(t, gitDir, hash, compressed)
	return hash
}
