package batch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/packit-config-migrator/pkg/migration"
	"github.com/go-go-golems/packit-config-migrator/pkg/output"
)

const (
	legacyConfig   = "upstream_project_name: foo\njobs:\n  - job: build\n    trigger: pull_request\n"
	migratedConfig = "upstream_package_name: foo\njobs:\n  - job: copr_build\n    trigger: pull_request\n"
	modernConfig   = "upstream_package_name: foo\njobs:\n  - job: copr_build\n"
	brokenConfig   = "jobs: [\n"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(b)
}

func newProcessor() (*Processor, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &Processor{Stdout: &stdout, Stderr: io.Discard}, &stdout
}

func TestProcess_SingleFileToStdout(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), ".packit.yaml", legacyConfig)
	proc, stdout := newProcessor()

	results, err := proc.Process([]string{p}, ProcessorOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, migratedConfig, stdout.String())
	assert.Equal(t, "-", results[0].Written)
	assert.Equal(t, []string{"build-job", "upstream-project-name"}, results[0].Applied)
	assert.Equal(t, legacyConfig, readFile(t, p))
}

func TestProcess_InPlaceWithBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	legacy := writeConfig(t, dir, "a.yaml", legacyConfig)
	modern := writeConfig(t, dir, "b.yaml", modernConfig)
	proc, stdout := newProcessor()

	results, err := proc.Process([]string{legacy, modern}, ProcessorOptions{InPlace: true, Backup: true})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Changed)
	assert.Equal(t, legacy, results[0].Written)
	assert.Equal(t, migratedConfig, readFile(t, legacy))
	assert.Equal(t, legacyConfig, readFile(t, legacy+output.BackupSuffix))

	assert.False(t, results[1].Changed)
	assert.Empty(t, results[1].Written)
	assert.NoFileExists(t, modern+output.BackupSuffix)
	assert.Empty(t, stdout.String())
}

func TestProcess_DryRunWithDiff(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), ".packit.yaml", legacyConfig)
	proc, stdout := newProcessor()

	results, err := proc.Process([]string{p}, ProcessorOptions{DryRun: true, Diff: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)
	assert.Empty(t, results[0].Written)
	assert.Contains(t, results[0].Diff, "+  - job: copr_build")
	assert.Contains(t, stdout.String(), "+upstream_package_name: foo")
	assert.Equal(t, legacyConfig, readFile(t, p))
}

func TestProcess_RuleSelection(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), ".packit.yaml", legacyConfig)
	proc, stdout := newProcessor()

	_, err := proc.Process([]string{p}, ProcessorOptions{Rules: []string{"build-job"}})
	require.NoError(t, err)
	assert.Equal(t, "upstream_project_name: foo\njobs:\n  - job: copr_build\n    trigger: pull_request\n", stdout.String())
}

func TestProcess_Errors(t *testing.T) {
	t.Parallel()

	t.Run("stop on first error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		broken := writeConfig(t, dir, "a.yaml", brokenConfig)
		legacy := writeConfig(t, dir, "b.yaml", legacyConfig)
		proc, _ := newProcessor()

		results, err := proc.Process([]string{broken, legacy}, ProcessorOptions{InPlace: true})
		require.Error(t, err)
		assert.True(t, migration.IsParseError(err))
		require.Len(t, results, 1)
		assert.Equal(t, legacyConfig, readFile(t, legacy))
	})

	t.Run("continue on error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		broken := writeConfig(t, dir, "a.yaml", brokenConfig)
		legacy := writeConfig(t, dir, "b.yaml", legacyConfig)
		proc, _ := newProcessor()

		results, err := proc.Process([]string{broken, legacy}, ProcessorOptions{InPlace: true, ContinueOnError: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migration completed with 1 errors")
		assert.True(t, migration.IsParseError(err))
		require.Len(t, results, 2)
		require.Error(t, results[0].Err)
		require.NoError(t, results[1].Err)
		assert.Equal(t, brokenConfig, readFile(t, broken))
		assert.Equal(t, migratedConfig, readFile(t, legacy))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		proc, _ := newProcessor()
		_, err := proc.Process([]string{filepath.Join(t.TempDir(), "nope.yaml")}, ProcessorOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestProcess_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		paths   []string
		opts    ProcessorOptions
		wantErr string
	}{
		{
			name:    "no files",
			wantErr: "no packit configuration files found",
		},
		{
			name:    "in-place and output",
			paths:   []string{"a"},
			opts:    ProcessorOptions{InPlace: true, Output: "b"},
			wantErr: "in-place and output are mutually exclusive",
		},
		{
			name:    "output with several files",
			paths:   []string{"a", "b"},
			opts:    ProcessorOptions{Output: "c"},
			wantErr: "output can only be used with a single configuration file, got 2",
		},
		{
			name:    "several files to stdout",
			paths:   []string{"a", "b"},
			wantErr: "2 configuration files found; use in-place or dry-run to process several files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			proc, _ := newProcessor()
			_, err := proc.Process(tt.paths, tt.opts)
			require.EqualError(t, err, tt.wantErr)
		})
	}
}
