package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/gitc/internal/git"
	"github.com/raphi011/gitc/internal/log"
	"github.com/raphi011/gitc/internal/output"
	"github.com/raphi011/gitc/internal/stale"
	"github.com/raphi011/gitc/internal/ui/prompt"
)

func TestStaleRows(t *testing.T) {
	cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	old := cutoff.AddDate(0, -3, 0)
	fresh := cutoff.AddDate(0, 1, 0)

	part := stale.Partition{
		Deletable: []git.Ref{
			{Name: "old-feature", Scope: git.ScopeLocal, LastCommit: old},
		},
		Protected: []git.Ref{
			{Name: "main", Scope: git.ScopeLocal, LastCommit: old},
			{Name: "develop", Scope: git.ScopeLocal, LastCommit: fresh},
		},
		Retained: []git.Ref{
			{Name: "active", Scope: git.ScopeLocal, LastCommit: fresh},
			{Name: "old-remote", Scope: git.ScopeRemote, Remote: "origin", LastCommit: old},
			{Name: "undated", Scope: git.ScopeLocal},
		},
	}

	rows := staleRows(part, cutoff)

	want := []struct {
		name   string
		status string
	}{
		{"old-feature", statusDeletable},
		{"main", statusProtected}, // stale but protected, shown as spared
		{"old-remote", statusRemote},
	}

	if len(rows) != len(want) {
		t.Fatalf("staleRows() returned %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Ref.Name != w.name || rows[i].Status != w.status {
			t.Errorf("row %d = (%q, %q), want (%q, %q)",
				i, rows[i].Ref.Name, rows[i].Status, w.name, w.status)
		}
	}
}

func TestStaleRowsEmpty(t *testing.T) {
	cutoff := time.Now()
	if rows := staleRows(stale.Partition{}, cutoff); len(rows) != 0 {
		t.Errorf("staleRows() on empty partition = %d rows, want 0", len(rows))
	}
}

func TestRunDeletions(t *testing.T) {
	branches := []git.Ref{
		{Name: "old-a", Scope: git.ScopeLocal},
		{Name: "old-b", Scope: git.ScopeLocal},
		{Name: "old-c", Scope: git.ScopeLocal},
	}
	discard := log.New(io.Discard, false, false)

	t.Run("one failure does not stop the batch", func(t *testing.T) {
		var buf bytes.Buffer
		var attempted []string
		remove := func(ctx context.Context, branch string, force bool) error {
			attempted = append(attempted, branch)
			if branch == "old-b" {
				return errors.New("branch old-b is not fully merged")
			}
			return nil
		}

		err := runDeletions(context.Background(), output.New(&buf), discard, branches, true, nil, remove)
		if err == nil {
			t.Fatal("runDeletions() = nil, want error when a deletion failed")
		}
		if len(attempted) != 3 {
			t.Errorf("attempted %v, want all 3 branches tried despite the failure", attempted)
		}
		if !strings.Contains(buf.String(), "Deleted 2 branch(es), 1 failed") {
			t.Errorf("output = %q, want deleted/failed summary", buf.String())
		}
	})

	t.Run("all deletions succeed", func(t *testing.T) {
		var buf bytes.Buffer
		remove := func(ctx context.Context, branch string, force bool) error { return nil }

		err := runDeletions(context.Background(), output.New(&buf), discard, branches, true, nil, remove)
		if err != nil {
			t.Fatalf("runDeletions() = %v, want nil", err)
		}
		if !strings.Contains(buf.String(), "Deleted 3 branch(es), 0 failed") {
			t.Errorf("output = %q, want summary of 3 deletions", buf.String())
		}
	})

	t.Run("declined branches are skipped", func(t *testing.T) {
		var buf bytes.Buffer
		var attempted []string
		confirm := func(question string) (prompt.ConfirmResult, error) {
			decline := strings.Contains(question, "old-a")
			return prompt.ConfirmResult{Confirmed: !decline}, nil
		}
		remove := func(ctx context.Context, branch string, force bool) error {
			attempted = append(attempted, branch)
			return nil
		}

		err := runDeletions(context.Background(), output.New(&buf), discard, branches, false, confirm, remove)
		if err != nil {
			t.Fatalf("runDeletions() = %v, want nil", err)
		}
		if len(attempted) != 2 || attempted[0] != "old-b" || attempted[1] != "old-c" {
			t.Errorf("attempted %v, want only the confirmed branches", attempted)
		}
		if !strings.Contains(buf.String(), "skipped: old-a") {
			t.Errorf("output = %q, want skip notice for old-a", buf.String())
		}
	})

	t.Run("cancel stops the prompt loop", func(t *testing.T) {
		var buf bytes.Buffer
		var attempted []string
		confirm := func(question string) (prompt.ConfirmResult, error) {
			return prompt.ConfirmResult{Cancelled: true}, nil
		}
		remove := func(ctx context.Context, branch string, force bool) error {
			attempted = append(attempted, branch)
			return nil
		}

		err := runDeletions(context.Background(), output.New(&buf), discard, branches, false, confirm, remove)
		if err != nil {
			t.Fatalf("runDeletions() = %v, want nil", err)
		}
		if len(attempted) != 0 {
			t.Errorf("attempted %v, want none after cancel", attempted)
		}
	})

	t.Run("cancelled context stops before deleting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var attempted []string
		remove := func(ctx context.Context, branch string, force bool) error {
			attempted = append(attempted, branch)
			return nil
		}

		err := runDeletions(ctx, output.New(&bytes.Buffer{}), discard, branches, true, nil, remove)
		if err != context.Canceled {
			t.Errorf("runDeletions() = %v, want context.Canceled", err)
		}
		if len(attempted) != 0 {
			t.Errorf("attempted %v, want none after interrupt", attempted)
		}
	})
}

func TestIsStale(t *testing.T) {
	cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ref  git.Ref
		want bool
	}{
		{"older than cutoff", git.Ref{LastCommit: cutoff.Add(-time.Second)}, true},
		{"newer than cutoff", git.Ref{LastCommit: cutoff.Add(time.Second)}, false},
		{"exactly at cutoff", git.Ref{LastCommit: cutoff}, false},
		{"no commit date", git.Ref{}, false},
	}
	for _, tt := range tests {
		if got := isStale(tt.ref, cutoff); got != tt.want {
			t.Errorf("%s: isStale() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
