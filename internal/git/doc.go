// Package git provides git queries via shell commands.
//
// All operations call the git CLI through [internal/cmd] rather than using a
// Go git library. This keeps gitc compatible with user configuration (SSH
// keys, credential helpers, aliases) and delegates ref resolution, date
// parsing and grep semantics to git itself.
//
// The package splits into two layers:
//
//   - adapter functions ([ListRefs], [Log], [DeleteBranch], ...) that invoke
//     git with a fixed argument list and a repository path
//   - pure parsers ([parseRefs], [parseCommits]) that turn raw output into
//     typed records and can be tested without a repository
//
// Machine-readable output uses an explicit field grammar: formats are built
// from the ASCII unit separator (0x1f), a byte that cannot appear in ref
// names and is vanishingly rare in commit subjects; the subject is always
// the last field so stray separator bytes stay inside it. Malformed lines
// are skipped with a warning instead of failing the whole parse.
package git
