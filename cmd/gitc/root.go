package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitc/internal/config"
	"github.com/raphi011/gitc/internal/git"
	"github.com/raphi011/gitc/internal/log"
	"github.com/raphi011/gitc/internal/output"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	repoPath string

	// Shared state injected into commands
	cfg     *config.Config
	workDir string

	// Cancels the per-run timeout installed in PersistentPreRunE
	timeoutCancel context.CancelFunc
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitc",
	Short: "Enhanced git CLI wrappers for common workflows",
	Long: `gitc is a productivity layer over the git CLI.

It provides higher-level queries on top of plain git: branch search across
local and remote namespaces, per-branch activity reports, stale-branch
detection and cleanup, and commit-message search with a cherry-pick helper.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Create logger after flag parsing so -v/-q are respected
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))

		if err := git.CheckGit(); err != nil {
			return err
		}

		// Resolve the repository path: -C flag or the working directory
		if repoPath != "" {
			abs, err := filepath.Abs(repoPath)
			if err != nil {
				return fmt.Errorf("resolve repository path: %w", err)
			}
			workDir = abs
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			workDir = wd
		}

		if timeout, err := cfg.Timeout(); err != nil {
			return err
		} else if timeout > 0 {
			ctx, timeoutCancel = context.WithTimeout(ctx, timeout)
		}

		if !git.IsInsideRepo(ctx, workDir) {
			return fmt.Errorf("not a git repository: %s", workDir)
		}

		cmd.SetContext(ctx)
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// cancelRunTimeout releases the per-run timeout if one was installed.
// Registered with cobra.OnFinalize so it also runs when RunE fails.
func cancelRunTimeout() {
	if timeoutCancel != nil {
		timeoutCancel()
		timeoutCancel = nil
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'gitc -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "C", "", "Run against the repository at this path instead of the working directory")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	cobra.OnFinalize(cancelRunTimeout)

	rootCmd.AddCommand(newFindBranchCmd())
	rootCmd.AddCommand(newActivityCmd())
	rootCmd.AddCommand(newStaleCmd())
	rootCmd.AddCommand(newSearchCmd())
}
