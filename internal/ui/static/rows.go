package static

import (
	"strconv"
	"time"

	"github.com/raphi011/gitc/internal/git"
)

const shortDate = "2006-01-02"

// maxMessageWidth caps the MESSAGE column in commit tables.
const maxMessageWidth = 72

// BranchHeaders are the columns for unified branch listings.
var BranchHeaders = []string{"BRANCH", "SCOPE", "UPSTREAM", "LAST COMMIT"}

// BranchTableRow formats one unified branch row.
func BranchTableRow(u git.Unified) []string {
	return []string{u.Name, u.Scopes(), u.Upstream(), formatDate(u.LastCommit())}
}

// StaleHeaders are the columns for stale listings.
var StaleHeaders = []string{"BRANCH", "SCOPE", "STATUS", "LAST COMMIT"}

// StaleTableRow formats one classified ref with its partition status.
func StaleTableRow(r git.Ref, status string) []string {
	return []string{r.DisplayName(), string(r.Scope), status, formatDate(r.LastCommit)}
}

// CommitHeaders are the columns for numbered commit listings.
var CommitHeaders = []string{"#", "HASH", "DATE", "MESSAGE"}

// CommitTableRow formats one commit row. idx is 1-based so rows line up
// with --pick/--copy arguments.
func CommitTableRow(idx int, c git.Commit) []string {
	return []string{
		strconv.Itoa(idx),
		c.ShortHash,
		formatDate(c.Date),
		TruncateCell(c.Message, maxMessageWidth),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(shortDate)
}
