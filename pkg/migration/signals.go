package migration

// Legacy job kinds that were renamed in Packit 1.0.0.
const (
	JobBuild           = "build"
	JobProductionBuild = "production_build"
)

// Top-level keys inspected by the migration.
const (
	KeyJobs                = "jobs"
	KeyJob                 = "job"
	KeyUpstreamProjectName = "upstream_project_name"
	KeySyncedFiles         = "synced_files"
	KeyFilesToSync         = "files_to_sync"
)

// Signals holds the facts extracted from a parsed configuration that decide
// which rewrites apply. A nil field means the signal is absent.
type Signals struct {
	BuildJobs           []map[string]interface{}
	ProductionBuildJobs []map[string]interface{}
	UpstreamProjectName interface{}
	SyncedFiles         interface{}
	FilesToSync         interface{}
}

// HasBuildJobs reports whether at least one `job: build` entry was found.
func (s Signals) HasBuildJobs() bool { return len(s.BuildJobs) > 0 }

// HasProductionBuildJobs reports whether at least one `job: production_build` entry was found.
func (s Signals) HasProductionBuildJobs() bool { return len(s.ProductionBuildJobs) > 0 }

func (s Signals) HasUpstreamProjectName() bool { return present(s.UpstreamProjectName) }

func (s Signals) HasSyncedFiles() bool { return present(s.SyncedFiles) }

func (s Signals) HasFilesToSync() bool { return present(s.FilesToSync) }

// Conflict is true when both the legacy and the modern sync key are set.
func (s Signals) Conflict() bool { return s.HasSyncedFiles() && s.HasFilesToSync() }

// Affected mirrors the applicability rule: files_to_sync alone never counts.
func (s Signals) Affected() bool {
	return s.HasBuildJobs() || s.HasProductionBuildJobs() || s.HasUpstreamProjectName() || s.HasSyncedFiles()
}

// ExtractSignals walks a decoded configuration mapping. A nil document yields
// empty signals. The document is never modified.
func ExtractSignals(doc map[string]interface{}) Signals {
	if doc == nil {
		return Signals{}
	}
	jobs, _ := doc[KeyJobs].([]interface{})
	return Signals{
		BuildJobs:           filterJobs(jobs, JobBuild),
		ProductionBuildJobs: filterJobs(jobs, JobProductionBuild),
		UpstreamProjectName: doc[KeyUpstreamProjectName],
		SyncedFiles:         doc[KeySyncedFiles],
		FilesToSync:         doc[KeyFilesToSync],
	}
}

func filterJobs(jobs []interface{}, kind string) []map[string]interface{} {
	if len(jobs) == 0 {
		return nil
	}
	var res []map[string]interface{}
	for _, j := range jobs {
		entry, ok := asMapping(j)
		if !ok {
			continue
		}
		if name, ok := entry[KeyJob].(string); ok && name == kind {
			res = append(res, entry)
		}
	}
	return res
}

// present follows YAML-loader truthiness: empty strings, empty collections,
// false and zero are treated like an absent key.
func present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	case map[interface{}]interface{}:
		return len(t) > 0
	default:
		return true
	}
}
