package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// BackupSuffix is appended to the original file name when a backup is requested.
const BackupSuffix = ".bak"

type WriteOptions struct {
	// Backup copies the existing file to <path>.bak before overwriting it.
	Backup bool
	// Stdout receives the content when path is "-"; os.Stdout when nil.
	Stdout io.Writer
}

var outputLocks = struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}{locks: make(map[string]*sync.Mutex)}

func lockForPath(path string) func() {
	outputLocks.mu.Lock()
	m, ok := outputLocks.locks[path]
	if !ok {
		m = &sync.Mutex{}
		outputLocks.locks[path] = m
	}
	outputLocks.mu.Unlock()
	m.Lock()
	return func() { m.Unlock() }
}

// Write replaces the file at path with content. The new content is written to
// a temporary file in the same directory and renamed over the target, keeping
// the permissions of an existing file.
func Write(path string, content []byte, opts WriteOptions) error {
	if path == "-" {
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(content)
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	unlock := lockForPath(path)
	defer unlock()
	log.Debug().Str("path", path).Int("size", len(content)).Bool("backup", opts.Backup).Msg("write start")

	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
		if opts.Backup {
			if err := copyFile(path, path+BackupSuffix, mode); err != nil {
				return fmt.Errorf("failed to back up %s: %w", path, err)
			}
			log.Debug().Str("path", path+BackupSuffix).Msg("backup written")
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(content)).Msg("write done")
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, mode)
}
