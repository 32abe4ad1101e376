package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSignals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                    string
		give                    map[string]interface{}
		wantBuild               int
		wantProduction          int
		wantUpstream            bool
		wantSynced, wantToSync  bool
		wantAffected, wantClash bool
	}{
		{
			name: "nil document",
		},
		{
			name: "jobs is not a sequence",
			give: map[string]interface{}{"jobs": map[string]interface{}{"job": "build"}},
		},
		{
			name: "entries without job or of other shapes are skipped",
			give: map[string]interface{}{"jobs": []interface{}{
				map[string]interface{}{"trigger": "pull_request"},
				"build",
				map[string]interface{}{"job": 42},
				map[interface{}]interface{}{"job": "build", 1: "x"},
				map[string]interface{}{"job": "production_build"},
				map[string]interface{}{"job": "Build"},
			}},
			wantBuild:      1,
			wantProduction: 1,
			wantAffected:   true,
		},
		{
			name: "top level keys",
			give: map[string]interface{}{
				"upstream_project_name": "foo",
				"synced_files":          []interface{}{"a"},
				"files_to_sync":         []interface{}{"b"},
			},
			wantUpstream: true,
			wantSynced:   true,
			wantToSync:   true,
			wantAffected: true,
			wantClash:    true,
		},
		{
			name:       "files_to_sync only",
			give:       map[string]interface{}{"files_to_sync": []interface{}{"b"}},
			wantToSync: true,
		},
		{
			name: "falsy values",
			give: map[string]interface{}{
				"upstream_project_name": false,
				"synced_files":          map[string]interface{}{},
				"files_to_sync":         0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := ExtractSignals(tt.give)
			assert.Len(t, s.BuildJobs, tt.wantBuild)
			assert.Len(t, s.ProductionBuildJobs, tt.wantProduction)
			assert.Equal(t, tt.wantUpstream, s.HasUpstreamProjectName())
			assert.Equal(t, tt.wantSynced, s.HasSyncedFiles())
			assert.Equal(t, tt.wantToSync, s.HasFilesToSync())
			assert.Equal(t, tt.wantAffected, s.Affected())
			assert.Equal(t, tt.wantClash, s.Conflict())
		})
	}
}

func TestExtractSignals_DoesNotMutate(t *testing.T) {
	t.Parallel()

	doc := map[string]interface{}{
		"jobs": []interface{}{map[string]interface{}{"job": "build"}},
	}
	_ = ExtractSignals(doc)
	assert.Equal(t, map[string]interface{}{
		"jobs": []interface{}{map[string]interface{}{"job": "build"}},
	}, doc)
}
