package batch

// ProcessorOptions controls how a set of configuration files is migrated.
type ProcessorOptions struct {
	// Rules restricts the rewrite to these rule IDs or groups; empty means all.
	Rules []string
	// Output is the destination for a single input file; "-" is stdout.
	Output          string
	InPlace         bool
	Backup          bool
	DryRun          bool
	Diff            bool
	ContinueOnError bool
}

// Result describes what happened to one configuration file.
type Result struct {
	Path    string   `json:"path" yaml:"path"`
	Applied []string `json:"applied,omitempty" yaml:"applied,omitempty"`
	Changed bool     `json:"changed" yaml:"changed"`
	Written string   `json:"written,omitempty" yaml:"written,omitempty"`
	Diff    string   `json:"diff,omitempty" yaml:"diff,omitempty"`
	Err     error    `json:"-" yaml:"-"`
}
