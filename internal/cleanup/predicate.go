package cleanup

import (
	"regexp"
	"strings"
)

var (
	reviewPattern      = regexp.MustCompile(`(?i)new article|needs review`)
	submittedPattern   = regexp.MustCompile(`(?i)submitted.*needs review`)
	completedPattern   = regexp.MustCompile(`(?i)completed`)
	needsReviewPattern = regexp.MustCompile(`(?i)needs review`)
)

// Keep reports whether a row with the given status text belongs to the
// review list: it mentions a new article or a pending review, and has no
// "Completed" that is not followed by "needs review".
func Keep(status string) bool {
	if status == "" {
		return false
	}

	if !reviewPattern.MatchString(status) && !submittedPattern.MatchString(status) {
		return false
	}

	return !hasBareCompleted(status)
}

// hasBareCompleted reports whether some "completed" has no "needs review"
// after it on the same line.
func hasBareCompleted(status string) bool {
	for line := range strings.SplitSeq(status, "\n") {
		for _, loc := range completedPattern.FindAllStringIndex(line, -1) {
			if !needsReviewPattern.MatchString(line[loc[1]:]) {
				return true
			}
		}
	}

	return false
}
