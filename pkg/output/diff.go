package output

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a unified diff between the original and migrated
// content of path. It returns an empty string when both are equal.
func UnifiedDiff(path, original, migrated string) (string, error) {
	if original == migrated {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(migrated),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}
