package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Permission bits added to every copy so a read-only template install still
// yields a writable project.
const (
	ownerDirBits  os.FileMode = 0700
	ownerWriteBit os.FileMode = 0200
)

// copyTree recursively copies src to dst depth-first. Directories named
// exclude are skipped together with everything below them, and are never
// opened. Relative paths of copied files and skipped directories are
// appended to the result.
func (m *Materializer) copyTree(src, dst, rel string, result *Result) error {
	srcInfo, err := m.fs.Stat(src)
	if err != nil {
		return copyFailed(src, err)
	}

	if err := m.fs.MkdirAll(dst, srcInfo.Mode().Perm()|ownerDirBits); err != nil {
		return copyFailed(dst, err)
	}

	entries, err := afero.ReadDir(m.fs, src)
	if err != nil {
		return copyFailed(src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		relPath := filepath.Join(rel, entry.Name())

		switch {
		case entry.IsDir():
			if m.shouldExclude(entry.Name()) {
				result.Skipped = append(result.Skipped, relPath)
				m.logger.Debug("skipping dependency cache", "path", relPath)
				continue
			}
			if err := m.copyTree(srcPath, dstPath, relPath, result); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := m.copyFile(srcPath, dstPath, entry.Mode().Perm()|ownerWriteBit); err != nil {
				return err
			}
			result.Files = append(result.Files, relPath)
			m.logger.Debug("copied", "path", relPath)
		default:
			// Skip symlinks and other special files during copy.
			m.logger.Debug("skipping special file", "path", relPath)
		}
	}

	return nil
}

// copyFile streams a single file from src to dst with the given permissions.
func (m *Materializer) copyFile(src, dst string, perm os.FileMode) error {
	in, err := m.fs.Open(src)
	if err != nil {
		return copyFailed(src, err)
	}
	defer in.Close()

	out, err := m.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return copyFailed(dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return copyFailed(dst, fmt.Errorf("writing: %w", err))
	}
	if err := out.Close(); err != nil {
		return copyFailed(dst, err)
	}
	return nil
}

// shouldExclude returns true if a directory with this name must not be copied.
func (m *Materializer) shouldExclude(name string) bool {
	return name == m.excludeDir
}
