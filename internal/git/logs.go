package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// logFormat is the git log grammar, one commit per line:
//
//	<hash> <SEP> <short hash> <SEP> <author> <SEP> <author unix time> <SEP> <subject>
//
// The subject is the last field so parseCommits can keep any bytes it
// contains, separators included.
var logFormat = strings.Join([]string{"%H", "%h", "%an", "%at", "%s"}, fieldSep)

const logFieldCount = 5

// Commit is one parsed git log entry. Branch is set by the caller when the
// log was scoped to a single branch.
type Commit struct {
	Hash      string
	ShortHash string
	Author    string
	Date      time.Time
	Message   string
	Branch    string
}

// LogOptions narrows a git log invocation. Since/Until are passed through
// verbatim, so anything git's approxidate accepts ("yesterday", "2026-08-01",
// "2.weeks") works.
type LogOptions struct {
	Branch       string // log this ref only; mutually exclusive with All
	All          bool   // --all
	Since        string
	Until        string
	Author       string
	Grep         string // commit message filter
	IgnoreCase   bool   // case-insensitive Grep
	FixedStrings bool   // treat Grep as a literal substring, not a regexp
	Limit        int    // --max-count, 0 = unlimited
}

// Log runs git log with the given options and parses the output. Malformed
// lines are skipped with a warning; an empty log yields no commits and no
// error.
func Log(ctx context.Context, dir string, opts LogOptions, warn func(string)) ([]Commit, error) {
	args := []string{"log", "--pretty=format:" + logFormat}
	if opts.Branch != "" {
		args = append(args, opts.Branch)
	}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.Since != "" {
		args = append(args, "--since="+opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until="+opts.Until)
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.Grep != "" {
		args = append(args, "--grep="+opts.Grep)
		if opts.FixedStrings {
			args = append(args, "--fixed-strings")
		}
		if opts.IgnoreCase {
			args = append(args, "--regexp-ignore-case")
		}
	}
	if opts.Limit > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", opts.Limit))
	}

	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	commits := parseCommits(out, warn)
	for i := range commits {
		commits[i].Branch = opts.Branch
	}
	return commits, nil
}

// parseCommits converts git log output in the logFormat grammar into
// Commits, skipping malformed lines with a warning.
func parseCommits(out []byte, warn func(string)) []Commit {
	var commits []Commit
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		// SplitN keeps separator bytes inside the subject intact.
		fields := strings.SplitN(line, fieldSep, logFieldCount)
		if len(fields) != logFieldCount {
			warnf(warn, "skipping malformed log line (%d fields, want %d): %q", len(fields), logFieldCount, line)
			continue
		}

		ts, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			warnf(warn, "skipping commit %s with bad author time %q", fields[1], fields[3])
			continue
		}

		commits = append(commits, Commit{
			Hash:      fields[0],
			ShortHash: fields[1],
			Author:    fields[2],
			Date:      time.Unix(ts, 0).UTC(),
			Message:   fields[4],
		})
	}
	return commits
}

// CherryPick applies the given commit onto the current branch.
func CherryPick(ctx context.Context, dir, hash string) error {
	if err := runGit(ctx, dir, "cherry-pick", hash); err != nil {
		return fmt.Errorf("cherry-pick %s failed: %w", hash, err)
	}
	return nil
}
