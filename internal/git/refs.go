package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// fieldSep is the delimiter for machine-readable git output. The ASCII unit
// separator cannot appear in ref names, so splitting on it is unambiguous.
const fieldSep = "\x1f"

// refFormat is the for-each-ref grammar, one ref per line:
//
//	<full refname> <SEP> <short hash> <SEP> <upstream short> <SEP> <committer unix time>
//
// parseRefs is the only consumer; changing one requires changing the other.
var refFormat = strings.Join([]string{
	"%(refname)",
	"%(objectname:short)",
	"%(upstream:short)",
	"%(committerdate:unix)",
}, fieldSep)

const refFieldCount = 4

// Scope says whether a branch ref lives in the local or a remote namespace.
type Scope string

const (
	ScopeLocal  Scope = "local"
	ScopeRemote Scope = "remote"
)

// Ref is one branch ref. Name is the logical branch name with the remote
// prefix stripped, so "refs/remotes/origin/feature/x" and
// "refs/heads/feature/x" carry the same Name and unify into one row.
// Uniqueness is per (Name, Scope, Remote).
type Ref struct {
	Name       string
	Scope      Scope
	Remote     string // "origin" etc., empty for local refs
	Upstream   string // upstream short name, empty if none
	CommitHash string
	LastCommit time.Time // zero if git reported no committer date
}

// DisplayName returns the name as git prints it: remote refs keep their
// remote prefix.
func (r Ref) DisplayName() string {
	if r.Scope == ScopeRemote {
		return r.Remote + "/" + r.Name
	}
	return r.Name
}

// ListRefs returns branch refs from the requested namespaces, in the order
// git reports them. Parse warnings for malformed lines go to warn (may be
// nil).
func ListRefs(ctx context.Context, dir string, locals, remotes bool, warn func(string)) ([]Ref, error) {
	var kinds []string
	if locals {
		kinds = append(kinds, "refs/heads")
	}
	if remotes {
		kinds = append(kinds, "refs/remotes")
	}
	if len(kinds) == 0 {
		return nil, nil
	}

	args := append([]string{"for-each-ref", "--format=" + refFormat}, kinds...)
	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}

	return parseRefs(out, warn), nil
}

// parseRefs converts for-each-ref output in the refFormat grammar into Refs.
// Malformed lines are skipped with a warning; empty input yields no refs and
// no error.
func parseRefs(out []byte, warn func(string)) []Ref {
	var refs []Ref
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) != refFieldCount {
			warnf(warn, "skipping malformed ref line (%d fields, want %d): %q", len(fields), refFieldCount, line)
			continue
		}

		refname, hash, upstream, unix := fields[0], fields[1], fields[2], fields[3]

		var ref Ref
		switch {
		case strings.HasPrefix(refname, "refs/heads/"):
			ref = Ref{Name: strings.TrimPrefix(refname, "refs/heads/"), Scope: ScopeLocal}
		case strings.HasPrefix(refname, "refs/remotes/"):
			rest := strings.TrimPrefix(refname, "refs/remotes/")
			remote, name, ok := strings.Cut(rest, "/")
			if !ok {
				warnf(warn, "skipping ref without branch name: %q", refname)
				continue
			}
			if name == "HEAD" {
				// Symbolic remote HEAD, not a branch.
				continue
			}
			ref = Ref{Name: name, Scope: ScopeRemote, Remote: remote}
		default:
			warnf(warn, "skipping ref outside branch namespaces: %q", refname)
			continue
		}

		ref.CommitHash = hash
		ref.Upstream = upstream

		if unix != "" {
			ts, err := strconv.ParseInt(unix, 10, 64)
			if err != nil {
				warnf(warn, "skipping ref %q with bad commit time %q", ref.DisplayName(), unix)
				continue
			}
			ref.LastCommit = time.Unix(ts, 0).UTC()
		}

		refs = append(refs, ref)
	}
	return refs
}

func warnf(warn func(string), format string, args ...any) {
	if warn != nil {
		warn(fmt.Sprintf(format, args...))
	}
}

// Unified is one display row merging local and remote refs that share a
// branch name. Local keeps its identity for deletion eligibility: only
// local refs are ever deleted.
type Unified struct {
	Name    string
	Local   *Ref
	Remotes []Ref
}

// Scopes returns the scope column for display, e.g. "local", "remote" or
// "local+remote".
func (u Unified) Scopes() string {
	switch {
	case u.Local != nil && len(u.Remotes) > 0:
		return "local+remote"
	case u.Local != nil:
		return "local"
	default:
		return "remote"
	}
}

// LastCommit prefers the local ref's commit time, falling back to the first
// remote that has one.
func (u Unified) LastCommit() time.Time {
	if u.Local != nil && !u.Local.LastCommit.IsZero() {
		return u.Local.LastCommit
	}
	for _, r := range u.Remotes {
		if !r.LastCommit.IsZero() {
			return r.LastCommit
		}
	}
	return time.Time{}
}

// Upstream returns the local ref's upstream, or "-" if none applies.
func (u Unified) Upstream() string {
	if u.Local != nil && u.Local.Upstream != "" {
		return u.Local.Upstream
	}
	return "-"
}

// UnifyRefs merges refs sharing a logical branch name into one row per name,
// preserving the order of first appearance.
func UnifyRefs(refs []Ref) []Unified {
	index := make(map[string]int)
	var rows []Unified

	for _, ref := range refs {
		i, ok := index[ref.Name]
		if !ok {
			i = len(rows)
			index[ref.Name] = i
			rows = append(rows, Unified{Name: ref.Name})
		}
		if ref.Scope == ScopeLocal {
			local := ref
			rows[i].Local = &local
		} else {
			rows[i].Remotes = append(rows[i].Remotes, ref)
		}
	}

	return rows
}
