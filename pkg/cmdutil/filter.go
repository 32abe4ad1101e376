package cmdutil

import "strings"

// SelectorSet returns the non-blank selectors, trimmed, as a set.
func SelectorSet(selectors []string) map[string]struct{} {
	set := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// FilterItems keeps the items for which any key function returns a member of
// the selector set. Blank selectors select everything.
func FilterItems[T any](items []T, selectors []string, keyFuncs ...func(T) string) []T {
	set := SelectorSet(selectors)
	if len(items) == 0 || len(set) == 0 || len(keyFuncs) == 0 {
		return items
	}
	result := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAny(item, set, keyFuncs) {
			result = append(result, item)
		}
	}
	return result
}

func matchesAny[T any](item T, set map[string]struct{}, keyFuncs []func(T) string) bool {
	for _, keyFn := range keyFuncs {
		if keyFn == nil {
			continue
		}
		if _, ok := set[keyFn(item)]; ok {
			return true
		}
	}
	return false
}

// Unknown returns the selectors for which known returns false, in input order.
func Unknown(selectors []string, known func(string) bool) []string {
	var res []string
	seen := map[string]struct{}{}
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		if !known(s) {
			res = append(res, s)
		}
	}
	return res
}
