package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitc/internal/git"
	"github.com/raphi011/gitc/internal/log"
	"github.com/raphi011/gitc/internal/output"
	"github.com/raphi011/gitc/internal/ui/static"
)

func newSearchCmd() *cobra.Command {
	var (
		ignoreCase  bool
		regex       bool
		allBranches bool
		author      string
		since       string
		until       string
		show        int
		pick        int
		copyRow     int
	)

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search commits by message",
		Args:  cobra.ExactArgs(1),
		Long: `Search commit messages across all branches.

The keyword is matched as a literal substring by default; --regex (or
regex = true under [search] in the config file) switches to git's
regular expression grep semantics. Results are numbered so a row can be
cherry-picked with --pick or its hash copied with --copy.`,
		Example: `  gitc search "Restore Dialog"
  gitc search "restore dialog" --ignore-case --since "2026-08-01"
  gitc search "fix.*redirect" --regex
  gitc search "Restore Dialog" --pick 2       # cherry-pick row 2
  gitc search "Restore Dialog" --copy 2       # copy row 2's hash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			useRegex := regex || cfg.Search.Regex

			commits, err := git.Log(ctx, workDir, git.LogOptions{
				All:          allBranches,
				Grep:         args[0],
				IgnoreCase:   ignoreCase || cfg.Search.IgnoreCase,
				FixedStrings: !useRegex,
				Author:       author,
				Since:        since,
				Until:        until,
				Limit:        show,
			}, parseWarner(l))
			if err != nil {
				return err
			}

			if len(commits) == 0 {
				out.Println("No matching commits.")
				return nil
			}

			rows := make([][]string, 0, len(commits))
			for i, c := range commits {
				rows = append(rows, static.CommitTableRow(i+1, c))
			}
			out.Print(static.RenderTable(static.CommitHeaders, rows))

			if copyRow > 0 {
				c, err := pickCommit(commits, copyRow)
				if err != nil {
					return err
				}
				if err := clipboard.WriteAll(c.Hash); err != nil {
					l.Warnf("failed to copy to clipboard: %v", err)
				} else {
					out.Printf("\nCopied %s to clipboard\n", c.ShortHash)
				}
			}

			if pick > 0 {
				c, err := pickCommit(commits, pick)
				if err != nil {
					return err
				}
				out.Printf("\nCherry-picking %s ...\n", c.ShortHash)
				if err := git.CherryPick(ctx, workDir, c.Hash); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	cmd.Flags().BoolVar(&regex, "regex", false, "Treat keyword as a regular expression")
	cmd.Flags().BoolVar(&allBranches, "all", true, "Search all branches (--all=false for the current branch only)")
	cmd.Flags().StringVar(&author, "author", "", "Only commits by this author")
	cmd.Flags().StringVar(&since, "since", "", "Only commits more recent than this date")
	cmd.Flags().StringVar(&until, "until", "", "Only commits older than this date")
	cmd.Flags().IntVar(&show, "show", 20, "Maximum results to show (0 = unlimited)")
	cmd.Flags().IntVar(&pick, "pick", 0, "Cherry-pick the commit at this row")
	cmd.Flags().IntVar(&copyRow, "copy", 0, "Copy the hash of the commit at this row to the clipboard")

	return cmd
}

// pickCommit resolves a 1-based row number against the displayed results.
func pickCommit(commits []git.Commit, row int) (git.Commit, error) {
	if row < 1 || row > len(commits) {
		return git.Commit{}, fmt.Errorf("row %d out of range: pick between 1 and %d", row, len(commits))
	}
	return commits[row-1], nil
}
