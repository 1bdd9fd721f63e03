// Package stale classifies branches by last-commit age.
//
// Classification is pure: callers list refs, compute a cutoff from an age
// expression and a protection set, and receive a partition. Anything that
// actually deletes branches lives in the command layer.
package stale

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/raphi011/gitc/internal/git"
)

// DefaultProtected are branch names that are never deletable, regardless of
// age. Extended per invocation via config and --keep.
var DefaultProtected = []string{"main", "master", "develop", "dev"}

var agePattern = regexp.MustCompile(`^\s*(\d+)\s*([dwmy])\s*$`)

// ParseAge converts a compact age expression like "30d", "12w", "6m" or
// "1y" into a duration. Months count as 30 days and years as 365, matching
// the coarse granularity of staleness checks.
func ParseAge(expr string) (time.Duration, error) {
	m := agePattern.FindStringSubmatch(strings.ToLower(expr))
	if m == nil {
		return 0, fmt.Errorf("invalid age %q: use a number followed by d, w, m or y (e.g. 12w)", expr)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid age %q: %w", expr, err)
	}

	day := 24 * time.Hour
	switch m[2] {
	case "d":
		return time.Duration(n) * day, nil
	case "w":
		return time.Duration(n) * 7 * day, nil
	case "m":
		return time.Duration(n) * 30 * day, nil
	default:
		return time.Duration(n) * 365 * day, nil
	}
}

// Protection is the set of branch names exempt from deletion. Built fresh
// per invocation, never persisted.
type Protection map[string]struct{}

// NewProtection unions the built-in defaults with any extra name lists
// (config, --keep). Empty and whitespace-only names are ignored.
func NewProtection(extra ...[]string) Protection {
	p := make(Protection)
	for _, name := range DefaultProtected {
		p[name] = struct{}{}
	}
	for _, names := range extra {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name != "" {
				p[name] = struct{}{}
			}
		}
	}
	return p
}

// Contains reports whether name is protected.
func (p Protection) Contains(name string) bool {
	_, ok := p[name]
	return ok
}

// Partition is the result of classifying refs against a cutoff.
//
// Invariant: a ref lands in Deletable only if it is local scope, strictly
// older than the cutoff, and not protected.
type Partition struct {
	Deletable []git.Ref
	Retained  []git.Ref
	Protected []git.Ref
}

// Classify partitions refs. current is the checked-out branch, which is
// always protected since git refuses to delete it anyway. Remote refs and
// refs without a commit timestamp are never deletable. Order within each
// bucket follows input order.
func Classify(refs []git.Ref, cutoff time.Time, prot Protection, current string) Partition {
	var part Partition
	for _, r := range refs {
		switch {
		case prot.Contains(r.Name) || (r.Scope == git.ScopeLocal && r.Name == current):
			part.Protected = append(part.Protected, r)
		case r.Scope != git.ScopeLocal:
			// Remote refs may be listed for context but are never deleted.
			part.Retained = append(part.Retained, r)
		case r.LastCommit.IsZero():
			part.Retained = append(part.Retained, r)
		case r.LastCommit.Before(cutoff):
			part.Deletable = append(part.Deletable, r)
		default:
			part.Retained = append(part.Retained, r)
		}
	}
	return part
}
