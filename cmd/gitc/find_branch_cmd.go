package main

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitc/internal/git"
	"github.com/raphi011/gitc/internal/log"
	"github.com/raphi011/gitc/internal/match"
	"github.com/raphi011/gitc/internal/output"
	"github.com/raphi011/gitc/internal/ui/static"
)

// BranchDisplay holds unified branch info for JSON output
type BranchDisplay struct {
	Name       string    `json:"name"`
	Scopes     string    `json:"scopes"`
	Upstream   string    `json:"upstream,omitempty"`
	CommitHash string    `json:"commit,omitempty"`
	LastCommit time.Time `json:"last_commit"`
}

func newFindBranchCmd() *cobra.Command {
	var (
		regex      bool
		fuzzyRank  bool
		locals     bool
		remotes    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "find-branch <pattern>",
		Short:   "Find branches across local and remote namespaces",
		Aliases: []string{"fb"},
		Args:    cobra.ExactArgs(1),
		Long: `Find branches matching a pattern across local and remote namespaces.

The pattern is a glob by default: * matches any run of characters and
comma-separated alternatives are supported ("feature/*,hotfix/*").
Use --regex for regular expression matching or --fuzzy for ranked
fuzzy matching.

A branch present both locally and on a remote is shown as one row with
a combined scope.`,
		Example: `  gitc find-branch "feature/*"             # glob (default)
  gitc find-branch "DEV_.*" --regex        # regular expression
  gitc find-branch lgn --fuzzy             # fuzzy ranking
  gitc find-branch "*" --locals=false      # remote branches only
  gitc find-branch "*" --json              # output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			refs, err := git.ListRefs(ctx, workDir, locals, remotes, parseWarner(l))
			if err != nil {
				return err
			}

			var unified []git.Unified
			if fuzzyRank {
				// Rank the unified set, best match first
				unified = fuzzyUnified(args[0], git.UnifyRefs(refs))
			} else {
				p, err := match.Compile(args[0], regex)
				if err != nil {
					return err
				}
				unified = git.UnifyRefs(match.Refs(p, refs))
				sort.Slice(unified, func(i, j int) bool {
					return strings.ToLower(unified[i].Name) < strings.ToLower(unified[j].Name)
				})
			}

			l.Debug("matched branches", "pattern", args[0], "count", len(unified))

			if jsonOutput {
				return writeBranchJSON(out.Writer(), unified)
			}

			if len(unified) == 0 {
				out.Println("No branches matched.")
				return nil
			}

			rows := make([][]string, 0, len(unified))
			for _, u := range unified {
				rows = append(rows, static.BranchTableRow(u))
			}
			out.Print(static.RenderTable(static.BranchHeaders, rows))

			return nil
		},
	}

	cmd.Flags().BoolVar(&regex, "regex", false, "Treat pattern as a regular expression")
	cmd.Flags().BoolVar(&fuzzyRank, "fuzzy", false, "Rank branches by fuzzy match quality instead of glob matching")
	cmd.Flags().BoolVar(&locals, "locals", true, "Include local branches (--locals=false to exclude)")
	cmd.Flags().BoolVar(&remotes, "remotes", true, "Include remote branches (--remotes=false to exclude)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.MarkFlagsMutuallyExclusive("regex", "fuzzy")

	return cmd
}

// fuzzyUnified returns the unified rows whose name fuzzy-matches pattern,
// ordered best match first.
func fuzzyUnified(pattern string, unified []git.Unified) []git.Unified {
	names := make([]string, len(unified))
	for i, u := range unified {
		names[i] = u.Name
	}

	matches := fuzzy.Find(pattern, names)

	ranked := make([]git.Unified, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, unified[m.Index])
	}
	return ranked
}

func writeBranchJSON(w io.Writer, unified []git.Unified) error {
	display := make([]BranchDisplay, 0, len(unified))
	for _, u := range unified {
		d := BranchDisplay{
			Name:       u.Name,
			Scopes:     u.Scopes(),
			LastCommit: u.LastCommit(),
		}
		if u.Local != nil {
			d.Upstream = u.Local.Upstream
			d.CommitHash = u.Local.CommitHash
		} else if len(u.Remotes) > 0 {
			d.CommitHash = u.Remotes[0].CommitHash
		}
		display = append(display, d)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(display)
}
