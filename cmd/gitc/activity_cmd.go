package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitc/internal/git"
	"github.com/raphi011/gitc/internal/log"
	"github.com/raphi011/gitc/internal/match"
	"github.com/raphi011/gitc/internal/output"
	"github.com/raphi011/gitc/internal/ui/progress"
)

// branchActivity holds the commits found on one branch
type branchActivity struct {
	Branch  string
	Commits []git.Commit
}

func newActivityCmd() *cobra.Command {
	var (
		since  string
		until  string
		branch string
		regex  bool
		author string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "activity",
		Short:   "Show commit activity per local branch",
		Aliases: []string{"act"},
		Args:    cobra.NoArgs,
		Long: `Show commits per local branch since a given date.

Dates are passed straight to git, so anything git accepts works:
"yesterday", "2026-08-01", "2.weeks". The branch pattern uses the same
glob syntax as find-branch (comma-separated alternatives, --regex to
switch to regular expressions).`,
		Example: `  gitc activity --since yesterday
  gitc activity --since "2026-08-01" --until "2026-08-30" --branch "feature/*,hotfix/*"
  gitc activity --since 2.weeks --author jane --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			p, err := match.Compile(branch, regex)
			if err != nil {
				return err
			}

			refs, err := git.ListRefs(ctx, workDir, true, false, parseWarner(l))
			if err != nil {
				return err
			}

			matched := match.Refs(p, refs)
			if len(matched) == 0 {
				out.Println("No local branches matched.")
				return nil
			}

			sort.Slice(matched, func(i, j int) bool {
				return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
			})

			l.Debug("scanning branches", "count", len(matched), "since", since)

			var sp *progress.Spinner
			if stderrIsTerminal() && !quiet {
				sp = progress.NewSpinner("Scanning branches...")
				sp.Start()
			}

			var sections []branchActivity
			total := 0
			for _, r := range matched {
				if sp != nil {
					sp.UpdateMessage(fmt.Sprintf("Scanning %s...", r.Name))
				}

				commits, err := git.Log(ctx, workDir, git.LogOptions{
					Branch: r.Name,
					Since:  since,
					Until:  until,
					Author: author,
					Limit:  limit,
				}, parseWarner(l))
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						if sp != nil {
							sp.Stop()
						}
						return err
					}
					// One unreadable branch should not kill the report
					l.Warnf("%s: %v", r.Name, err)
					continue
				}
				if len(commits) == 0 {
					continue
				}

				sections = append(sections, branchActivity{Branch: r.Name, Commits: commits})
				total += len(commits)
			}

			if sp != nil {
				sp.Stop()
			}

			for _, sec := range sections {
				out.Printf("\n[%s] %d commit(s)\n", sec.Branch, len(sec.Commits))
				for _, c := range sec.Commits {
					out.Printf("  %-8s  %-10s  %s\n", c.ShortHash, c.Date.Format("2006-01-02"), c.Message)
				}
			}

			if total == 0 {
				out.Println("No activity found.")
			} else {
				out.Printf("\nTotal commits: %d\n", total)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Show commits more recent than this date (required)")
	cmd.Flags().StringVar(&until, "until", "", "Show commits older than this date")
	cmd.Flags().StringVar(&branch, "branch", "*", "Branch pattern to report on")
	cmd.Flags().BoolVar(&regex, "regex", false, "Treat branch pattern as a regular expression")
	cmd.Flags().StringVar(&author, "author", "", "Only commits by this author")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum commits per branch (0 = unlimited)")

	cmd.MarkFlagRequired("since")

	return cmd
}
