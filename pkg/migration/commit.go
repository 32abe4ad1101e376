package migration

// CommitMessage explains the migration to the maintainers of a repository
// whose configuration was rewritten.
const CommitMessage = `Fix configuration for Packit 1.0.0

This commit fixes the configuration for the forthcoming Packit 1.0.0.
See [our blog post](https://packit.dev/posts/packit_1_0_0_action_required) for more details.
  - Job 'build' does not exist anymore, change it in 'copr_build'
  - Job 'production_build' does not exist anymore, change it in 'upstream_koji_build'
  - 'upstream_project_name' does not exist anymore, change it in 'upstream_package_name'
  - 'synced_files' key does not exist anymore, change it in 'files_to_sync'

Please review and merge me before January 2025 otherwise packit-service jobs will fail.
`
