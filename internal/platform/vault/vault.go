// Package vault is the storage collaborator every note adapter goes through.
// Paths are vault-relative and slash separated, the way notes are addressed
// inside an Obsidian vault.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
)

type FS struct {
	root string
}

func New(root string) *FS {
	return &FS{root: root}
}

// NormalizePath collapses duplicate and trailing slashes and backslashes.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// Abs resolves a vault-relative path to a filesystem path, rejecting paths
// that would leave the vault.
func (v *FS) Abs(rel string) (string, error) {
	clean := NormalizePath(rel)
	if clean == "" {
		return "", fmt.Errorf("%w: empty vault path", apperrors.ErrInvalidInput)
	}
	raw := strings.ReplaceAll(strings.TrimSpace(rel), "\\", "/")
	for _, part := range strings.Split(raw, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %s escapes the vault", apperrors.ErrInvalidInput, rel)
		}
	}
	return filepath.Join(v.root, filepath.FromSlash(clean)), nil
}

func (v *FS) ReadText(rel string) (string, error) {
	abs, err := v.Abs(rel)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", rel, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("stat %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", rel, apperrors.ErrNotAFile)
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	return string(b), nil
}

// WriteText creates or replaces the note. The content lands in a temp file
// next to the target first so readers never observe a partial note.
func (v *FS) WriteText(rel, content string) error {
	abs, err := v.Abs(rel)
	if err != nil {
		return err
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return fmt.Errorf("%s: %w", rel, apperrors.ErrNotAFile)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w: %v", path.Dir(NormalizePath(rel)), apperrors.ErrIO, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(abs)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("write %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	return nil
}

// EnsureFolder is idempotent. It fails with ErrNotAFolder when something
// other than a directory already occupies the path.
func (v *FS) EnsureFolder(rel string) error {
	abs, err := v.Abs(rel)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil, errors.Is(err, syscall.ENOTDIR):
		return fmt.Errorf("%s is not a folder: %w", NormalizePath(rel), apperrors.ErrNotAFolder)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		if errors.Is(err, syscall.ENOTDIR) {
			return fmt.Errorf("%s is not a folder: %w", NormalizePath(rel), apperrors.ErrNotAFolder)
		}
		return fmt.Errorf("create %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	return nil
}

func (v *FS) Exists(rel string) (bool, error) {
	abs, err := v.Abs(rel)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w: %v", rel, apperrors.ErrIO, err)
	}
	return true, nil
}

// List returns the vault-relative paths of the regular files in folder whose
// names end in ext, sorted by name.
func (v *FS) List(folder, ext string) ([]string, error) {
	abs, err := v.Abs(folder)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w: %v", folder, apperrors.ErrIO, err)
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		out = append(out, path.Join(NormalizePath(folder), entry.Name()))
	}
	return out, nil
}
