package git

import (
	"context"
	"fmt"
	"strings"
)

// CurrentBranch returns the checked-out branch name.
// Returns "(detached)" for detached HEAD state.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// DeleteBranch deletes a local branch. force uses -D, which also deletes
// branches that are not fully merged.
func DeleteBranch(ctx context.Context, dir, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if err := runGit(ctx, dir, "branch", flag, branch); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branch, err)
	}
	return nil
}
