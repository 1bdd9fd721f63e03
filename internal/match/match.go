// Package match implements branch name matching for gitc.
//
// The default mode is shell-style globbing where `*` matches any run of
// characters, anchored to the whole name and case-sensitive. A pattern may
// contain comma-separated alternatives ("feature/*,hotfix/*"). Regex mode
// compiles the pattern as a Go regular expression matched anywhere in the
// name.
package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/raphi011/gitc/internal/git"
)

// ErrEmptyPattern is returned when a pattern contains no characters. A
// caller that wants "everything" must say so with "*".
var ErrEmptyPattern = errors.New("empty pattern: use \"*\" to match all branches")

// Pattern is a compiled branch name matcher.
type Pattern struct {
	re       *regexp.Regexp
	anchored bool
}

// Compile builds a Pattern. In glob mode each comma-separated alternative
// is translated to an anchored regexp; in regex mode the pattern is used
// as-is with substring-search semantics.
func Compile(pattern string, regex bool) (*Pattern, error) {
	if regex {
		if strings.TrimSpace(pattern) == "" {
			return nil, ErrEmptyPattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern regexp: %w", err)
		}
		return &Pattern{re: re}, nil
	}

	var alts []string
	for _, glob := range strings.Split(pattern, ",") {
		glob = strings.TrimSpace(glob)
		if glob == "" {
			continue
		}
		alts = append(alts, globToRegexp(glob))
	}
	if len(alts) == 0 {
		return nil, ErrEmptyPattern
	}

	re, err := regexp.Compile("^(?:" + strings.Join(alts, "|") + ")$")
	if err != nil {
		// Alternatives are fully escaped except for .*, so this cannot
		// happen for user input.
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return &Pattern{re: re, anchored: true}, nil
}

// globToRegexp escapes everything except `*`, which becomes `.*`.
func globToRegexp(glob string) string {
	var b strings.Builder
	for i, part := range strings.Split(glob, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	return b.String()
}

// MatchString reports whether name matches the pattern.
func (p *Pattern) MatchString(name string) bool {
	if p.anchored {
		return p.re.MatchString(name)
	}
	return p.re.FindStringIndex(name) != nil
}

// String returns the compiled regexp source, mainly for debug logging.
func (p *Pattern) String() string {
	return p.re.String()
}

// Refs filters refs by logical branch name, preserving input order.
func Refs(p *Pattern, refs []git.Ref) []git.Ref {
	var matched []git.Ref
	for _, r := range refs {
		if p.MatchString(r.Name) {
			matched = append(matched, r)
		}
	}
	return matched
}
