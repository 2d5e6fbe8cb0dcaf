package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/pkg/interview"
	"github.com/promptforge/promptforge/pkg/observability/logging"
	"github.com/promptforge/promptforge/pkg/scaffold"
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initOutputDir, "output", "o", ".", "directory to create the project under")
}

var initOutputDir string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a new promptforge server project",
	Args:  cobra.NoArgs,
	RunE:  executeInitCmd,
}

func executeInitCmd(cobraCmd *cobra.Command, args []string) error {
	logger := logging.Base(nil)
	defer func() { _ = logger.Sync() }()

	prompter, err := interview.NewTerminalPrompter()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer func() { _ = prompter.Close() }()

	opts, err := interview.NewCollector(prompter, logger).Collect()
	if err != nil {
		return err
	}

	dir := filepath.Join(initOutputDir, opts.Name)
	artifacts := scaffold.Generate(opts)
	if err := scaffold.NewWriter(logger).Write(dir, artifacts); err != nil {
		return err
	}

	fmt.Printf("created %s with %d files\n", dir, len(artifacts))
	fmt.Printf("next: cd %s && ./run.sh\n", dir)
	return nil
}
