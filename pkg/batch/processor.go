package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/packit-config-migrator/pkg/migration"
	"github.com/go-go-golems/packit-config-migrator/pkg/output"
)

// Processor migrates configuration files one after another. Progress goes to
// Stderr so that migrated content written to Stdout stays clean.
type Processor struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (p *Processor) stdout() io.Writer {
	if p.Stdout == nil {
		return os.Stdout
	}
	return p.Stdout
}

func (p *Processor) stderr() io.Writer {
	if p.Stderr == nil {
		return os.Stderr
	}
	return p.Stderr
}

// Process migrates every path. Results are returned for all processed files,
// also when an error aborts the run.
func (p *Processor) Process(paths []string, opts ProcessorOptions) ([]Result, error) {
	if err := validate(paths, opts); err != nil {
		return nil, err
	}

	var results []Result
	var errs []error
	for i, path := range paths {
		_, _ = fmt.Fprint(p.stderr(), output.FileHeader(i+1, len(paths), path))
		log.Debug().Str("path", path).Strs("rules", opts.Rules).Msg("migrate file start")

		res := p.processFile(path, opts)
		results = append(results, res)
		if res.Err != nil {
			_, _ = fmt.Fprintln(p.stderr(), output.Warnf("%s: %s", path, output.ShortError(res.Err)))
			errs = append(errs, res.Err)
			if !opts.ContinueOnError {
				return results, fmt.Errorf("file '%s' failed: %w", path, res.Err)
			}
			continue
		}
		_, _ = fmt.Fprintln(p.stderr(), output.Status(res.Applied))
	}
	if len(errs) > 0 {
		_, _ = fmt.Fprintln(p.stderr(), output.Notef("Completed with %d errors out of %d files", len(errs), len(paths)))
		return results, fmt.Errorf("migration completed with %d errors: %w", len(errs), errors.Join(errs...))
	}
	return results, nil
}

func validate(paths []string, opts ProcessorOptions) error {
	if len(paths) == 0 {
		return fmt.Errorf("no packit configuration files found")
	}
	if opts.InPlace && opts.Output != "" {
		return fmt.Errorf("in-place and output are mutually exclusive")
	}
	if opts.Output != "" && len(paths) > 1 {
		return fmt.Errorf("output can only be used with a single configuration file, got %d", len(paths))
	}
	if !opts.InPlace && !opts.DryRun && opts.Output == "" && len(paths) > 1 {
		return fmt.Errorf("%d configuration files found; use in-place or dry-run to process several files", len(paths))
	}
	return nil
}

func (p *Processor) processFile(path string, opts ProcessorOptions) Result {
	res := Result{Path: path}

	b, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read packit config: %w", err)
		return res
	}
	original := string(b)

	migrated, applied, err := migration.MigrateWithRules(original, opts.Rules)
	if err != nil {
		res.Err = err
		return res
	}
	res.Applied = applied
	res.Changed = migrated != original

	if opts.Diff {
		d, err := output.UnifiedDiff(path, original, migrated)
		if err != nil {
			res.Err = fmt.Errorf("failed to compute diff: %w", err)
			return res
		}
		res.Diff = d
		_, _ = fmt.Fprint(p.stdout(), output.ColorDiff(d))
	}

	dest := opts.Output
	switch {
	case opts.DryRun:
		return res
	case opts.InPlace:
		if !res.Changed {
			return res
		}
		dest = path
	case dest == "":
		if opts.Diff {
			return res
		}
		dest = "-"
	}

	if err := output.Write(dest, []byte(migrated), output.WriteOptions{Backup: opts.Backup && dest == path, Stdout: p.stdout()}); err != nil {
		res.Err = err
		return res
	}
	res.Written = dest
	log.Debug().Str("path", path).Str("dest", dest).Bool("changed", res.Changed).Msg("migrate file done")
	return res
}
