package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitc/internal/git"
	"github.com/raphi011/gitc/internal/log"
	"github.com/raphi011/gitc/internal/output"
	"github.com/raphi011/gitc/internal/stale"
	"github.com/raphi011/gitc/internal/ui/prompt"
	"github.com/raphi011/gitc/internal/ui/static"
)

// staleRow pairs a classified ref with its display status
type staleRow struct {
	Ref    git.Ref
	Status string
}

const (
	statusDeletable = "deletable"
	statusProtected = "protected"
	// Remote refs are listed for visibility but never deleted
	statusRemote = "remote only"
)

func newStaleCmd() *cobra.Command {
	var (
		deleteStale    bool
		keep           []string
		force          bool
		includeRemotes bool
	)

	cmd := &cobra.Command{
		Use:   "stale [age]",
		Short: "List or delete stale local branches",
		Args:  cobra.MaximumNArgs(1),
		Long: `List local branches whose last commit is older than the given age.

Age is a number followed by a unit: d (days), w (weeks), m (months,
30 days) or y (years, 365 days). When omitted, the age from the
[stale] section of the config file is used.

Protected branches (main, master, develop, dev, plus protected_branches
from the config and names given via --keep) and the current branch are
never deleted. Remote branches are shown with --remotes but are never
deleted either.

With --delete, each stale branch is confirmed before deletion; --force
skips the confirmation and deletes unmerged branches too. A branch that
fails to delete does not stop the rest of the batch; the command exits
non-zero if any deletion failed.`,
		Example: `  gitc stale 12w                                 # list branches idle for 12 weeks
  gitc stale 12w --remotes                       # include remote branches in the listing
  gitc stale 12w --delete --keep featureX,hotfixY
  gitc stale 12w --delete --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			age := cfg.Stale.Age
			if len(args) > 0 {
				age = args[0]
			}
			if age == "" {
				return fmt.Errorf("missing age: pass one like 12w or set it under [stale] in the config file")
			}

			// Parse before touching the repository so a bad age never
			// reaches the deletion path
			maxAge, err := stale.ParseAge(age)
			if err != nil {
				return err
			}
			cutoff := time.Now().Add(-maxAge)

			current, err := git.CurrentBranch(ctx, workDir)
			if err != nil {
				l.Warnf("%v", err)
				current = ""
			}

			refs, err := git.ListRefs(ctx, workDir, true, includeRemotes, parseWarner(l))
			if err != nil {
				return err
			}

			prot := stale.NewProtection(cfg.ProtectedBranches, keep)
			part := stale.Classify(refs, cutoff, prot, current)

			l.Debug("classified branches",
				"cutoff", cutoff.Format("2006-01-02"),
				"deletable", len(part.Deletable),
				"protected", len(part.Protected),
				"retained", len(part.Retained))

			rows := staleRows(part, cutoff)
			if len(rows) == 0 {
				out.Println("No stale branches found.")
				return nil
			}

			tableRows := make([][]string, 0, len(rows))
			for _, row := range rows {
				tableRows = append(tableRows, static.StaleTableRow(row.Ref, row.Status))
			}
			out.Print(static.RenderTable(static.StaleHeaders, tableRows))

			if !deleteStale || len(part.Deletable) == 0 {
				return nil
			}

			if !force && !stdinIsTerminal() {
				return fmt.Errorf("cannot confirm deletions on a non-interactive terminal: re-run with --force")
			}

			return deleteBranches(cmd, part.Deletable, force)
		},
	}

	cmd.Flags().BoolVar(&deleteStale, "delete", false, "Delete stale local branches")
	cmd.Flags().StringSliceVar(&keep, "keep", nil, "Additional branch names to protect (comma-separated)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation and force-delete unmerged branches")
	cmd.Flags().BoolVar(&includeRemotes, "remotes", false, "Include remote branches in the listing")

	return cmd
}

// staleRows flattens a classification into display rows: every deletable
// branch, plus stale branches that were spared and why.
func staleRows(part stale.Partition, cutoff time.Time) []staleRow {
	var rows []staleRow
	for _, r := range part.Deletable {
		rows = append(rows, staleRow{Ref: r, Status: statusDeletable})
	}
	for _, r := range part.Protected {
		if isStale(r, cutoff) {
			rows = append(rows, staleRow{Ref: r, Status: statusProtected})
		}
	}
	for _, r := range part.Retained {
		if isStale(r, cutoff) && r.Scope == git.ScopeRemote {
			rows = append(rows, staleRow{Ref: r, Status: statusRemote})
		}
	}
	return rows
}

func isStale(r git.Ref, cutoff time.Time) bool {
	return !r.LastCommit.IsZero() && r.LastCommit.Before(cutoff)
}

// confirmFunc asks the user a yes/no question.
type confirmFunc func(question string) (prompt.ConfirmResult, error)

// removeFunc deletes one local branch.
type removeFunc func(ctx context.Context, branch string, force bool) error

func deleteBranches(cmd *cobra.Command, branches []git.Ref, force bool) error {
	ctx := cmd.Context()
	remove := func(ctx context.Context, branch string, force bool) error {
		return git.DeleteBranch(ctx, workDir, branch, force)
	}
	return runDeletions(ctx, output.FromContext(ctx), log.FromContext(ctx), branches, force, prompt.Confirm, remove)
}

// runDeletions removes the given local branches best-effort: one failure is
// reported and the batch continues, with a non-nil error at the end if
// anything failed. Confirmation and deletion are injected so the batch
// policy can be tested without a repository.
func runDeletions(ctx context.Context, out *output.Printer, l *log.Logger, branches []git.Ref, force bool, confirm confirmFunc, remove removeFunc) error {
	out.Println("\nDeleting local stale branches...")

	var deleted, failed int
	for _, r := range branches {
		// An interrupt stops the batch; branches already deleted stay deleted
		if err := ctx.Err(); err != nil {
			return err
		}

		if !force {
			res, err := confirm(fmt.Sprintf("Delete branch %q?", r.Name))
			if err != nil {
				return fmt.Errorf("confirmation prompt: %w", err)
			}
			if res.Cancelled {
				break
			}
			if !res.Confirmed {
				out.Printf("  skipped: %s\n", r.Name)
				continue
			}
		}

		if err := remove(ctx, r.Name, force); err != nil {
			l.Warnf("%v", err)
			out.Printf("  failed:  %s\n", r.Name)
			failed++
			continue
		}
		out.Printf("  deleted: %s\n", r.Name)
		deleted++
	}

	out.Printf("\nDeleted %d branch(es), %d failed\n", deleted, failed)

	if failed > 0 {
		return fmt.Errorf("failed to delete %d branch(es)", failed)
	}
	return nil
}
