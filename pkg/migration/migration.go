// Package migration detects and rewrites Packit configuration constructs
// that were removed in Packit 1.0.0.
//
// The configuration is parsed only to decide which rewrites apply. The
// rewrites themselves are literal substring replacements on the original
// text so comments, ordering and formatting survive untouched.
package migration

import (
	"fmt"
	"strings"

	"github.com/go-go-golems/packit-config-migrator/pkg/cmdutil"
)

// Report describes what a migration would do to one configuration.
type Report struct {
	Affected            bool     `json:"affected" yaml:"affected"`
	Conflict            bool     `json:"conflict" yaml:"conflict"`
	BuildJobs           int      `json:"build_jobs" yaml:"build_jobs"`
	ProductionBuildJobs int      `json:"production_build_jobs" yaml:"production_build_jobs"`
	Rules               []string `json:"rules" yaml:"rules"`
}

// IsAffected reports whether config uses any construct removed in Packit 1.0.0.
func IsAffected(config string) (bool, error) {
	doc, err := parse(config)
	if err != nil {
		return false, err
	}
	return ExtractSignals(doc).Affected(), nil
}

// Migrate returns config with every applicable rewrite rule applied.
func Migrate(config string) (string, error) {
	out, _, err := MigrateWithRules(config, nil)
	return out, err
}

// MigrateWithRules is Migrate restricted to the rules matching selectors
// (see SelectRules). It also returns the IDs of the rules that were applied.
func MigrateWithRules(config string, selectors []string) (string, []string, error) {
	if unknown := cmdutil.Unknown(selectors, KnownRule); len(unknown) > 0 {
		return "", nil, fmt.Errorf("unknown migration rule(s): %s", strings.Join(unknown, ", "))
	}
	doc, err := parse(config)
	if err != nil {
		return "", nil, err
	}
	signals := ExtractSignals(doc)

	out := config
	var applied []string
	for _, r := range SelectRules(selectors) {
		if !r.Applies(signals) {
			continue
		}
		out = r.Apply(out)
		applied = append(applied, r.ID)
	}
	return out, applied, nil
}

// Analyze parses config once and reports which rules would fire.
func Analyze(config string) (*Report, error) {
	doc, err := parse(config)
	if err != nil {
		return nil, err
	}
	signals := ExtractSignals(doc)
	rep := &Report{
		Affected:            signals.Affected(),
		Conflict:            signals.Conflict(),
		BuildJobs:           len(signals.BuildJobs),
		ProductionBuildJobs: len(signals.ProductionBuildJobs),
		Rules:               []string{},
	}
	for _, r := range rules {
		if r.Applies(signals) {
			rep.Rules = append(rep.Rules, r.ID)
		}
	}
	return rep, nil
}
