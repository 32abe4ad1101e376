// Package discover locates Packit configuration files on disk.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultNames are the file names Packit reads its configuration from.
var DefaultNames = []string{
	".packit.yaml",
	".packit.yml",
	"packit.yaml",
	"packit.yml",
	".packit.json",
	"packit.json",
}

var defaultIgnores = []string{
	".git/",
	"node_modules/",
	"vendor/",
}

type Options struct {
	// Names of files to match; DefaultNames when empty.
	Names []string
	// Depth limits directory levels walked: 1 means the root only, 0 is unlimited.
	Depth int
	// RespectGitignore skips paths ignored by the root .gitignore.
	RespectGitignore bool
}

// Find returns the configuration files under root. When root is a file it is
// returned as-is regardless of its name. Errors on individual subpaths are
// collected and returned next to the results.
func Find(root string, opts Options) ([]string, []error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, []error{fmt.Errorf("%s: %w", root, err)}
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	names := opts.Names
	if len(names) == 0 {
		names = DefaultNames
	}
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	matcher := loadIgnores(root, opts.RespectGitignore)

	var results []string
	var errs []error
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		level := strings.Count(rel, "/") + 1

		if d.IsDir() {
			if matcher.MatchesPath(rel + "/") {
				log.Debug().Str("path", path).Msg("skipping ignored directory")
				return filepath.SkipDir
			}
			if opts.Depth > 0 && level >= opts.Depth {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := wanted[d.Name()]; !ok {
			return nil
		}
		if matcher.MatchesPath(rel) {
			log.Debug().Str("path", path).Msg("skipping ignored config")
			return nil
		}
		results = append(results, path)
		return nil
	})

	sort.Strings(results)
	log.Debug().Str("root", root).Int("found", len(results)).Int("errors", len(errs)).Msg("config discovery done")
	return results, errs
}

func loadIgnores(root string, respectGitignore bool) *ignore.GitIgnore {
	patterns := append([]string{}, defaultIgnores...)
	if respectGitignore {
		if b, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
			patterns = append(patterns, strings.Split(string(b), "\n")...)
		}
	}
	return ignore.CompileIgnoreLines(patterns...)
}
