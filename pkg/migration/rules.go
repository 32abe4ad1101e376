package migration

import (
	"strings"

	"github.com/go-go-golems/packit-config-migrator/pkg/cmdutil"
)

// ConflictComment is appended after the legacy key when both sync keys are set.
const ConflictComment = "# synced_files and files_to_sync set, remove one of them!!!"

// Rule is a single textual rewrite guarded by a predicate over Signals.
type Rule struct {
	ID          string
	Group       string
	Name        string
	Description string
	From        string
	To          string
	Applies     func(Signals) bool
}

// Apply replaces every occurrence of From in content. Matches are not scoped
// to YAML keys, so comments and other keys containing From are rewritten too.
func (r Rule) Apply(content string) string {
	return strings.ReplaceAll(content, r.From, r.To)
}

var rules = []Rule{
	{
		ID:          "build-job",
		Group:       "build-job",
		Name:        "Rename build job",
		Description: "Job 'build' does not exist anymore, change it in 'copr_build'",
		From:        "job: build",
		To:          "job: copr_build",
		Applies:     Signals.HasBuildJobs,
	},
	{
		ID:          "production-build-job",
		Group:       "production-build-job",
		Name:        "Rename production_build job",
		Description: "Job 'production_build' does not exist anymore, change it in 'upstream_koji_build'",
		From:        "job: production_build",
		To:          "job: upstream_koji_build",
		Applies:     Signals.HasProductionBuildJobs,
	},
	{
		ID:          "upstream-project-name",
		Group:       "upstream-project-name",
		Name:        "Rename upstream_project_name",
		Description: "'upstream_project_name' does not exist anymore, change it in 'upstream_package_name'",
		From:        "upstream_project_name",
		To:          "upstream_package_name",
		Applies:     Signals.HasUpstreamProjectName,
	},
	{
		ID:          "synced-files",
		Group:       "synced-files",
		Name:        "Rename synced_files",
		Description: "'synced_files' key does not exist anymore, change it in 'files_to_sync'",
		From:        "synced_files",
		To:          "files_to_sync",
		Applies: func(s Signals) bool {
			return s.HasSyncedFiles() && !s.HasFilesToSync()
		},
	},
	{
		ID:          "synced-files-conflict",
		Group:       "synced-files",
		Name:        "Flag synced_files/files_to_sync conflict",
		Description: "Both 'synced_files' and 'files_to_sync' are set; annotate the legacy key for manual resolution",
		From:        "synced_files:",
		To:          "synced_files: " + ConflictComment,
		Applies:     Signals.Conflict,
	},
}

// Rules returns the rewrite rules in the order they are applied.
func Rules() []Rule {
	res := make([]Rule, len(rules))
	copy(res, rules)
	return res
}

// SelectRules keeps the rules whose ID or Group is in selectors. Empty
// selectors keep everything.
func SelectRules(selectors []string) []Rule {
	return cmdutil.FilterItems(Rules(), selectors,
		func(r Rule) string { return r.ID },
		func(r Rule) string { return r.Group },
	)
}

// KnownRule reports whether selector names a rule ID or group.
func KnownRule(selector string) bool {
	for _, r := range rules {
		if r.ID == selector || r.Group == selector {
			return true
		}
	}
	return false
}
