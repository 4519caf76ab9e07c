package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/farm-stack/create-farm-app/internal/logging"
	"github.com/spf13/afero"
)

// Copier copies a directory tree.
type Copier interface {
	// CopyTree copies src into dst. Files already present in dst are left
	// untouched.
	CopyTree(src, dst string) error
}

// TreeCopier is a non-clobbering Copier on an afero.Fs.
type TreeCopier struct {
	Fs afero.Fs
}

// NewTreeCopier returns a TreeCopier on fsys.
func NewTreeCopier(fsys afero.Fs) *TreeCopier {
	return &TreeCopier{Fs: fsys}
}

// CopyTree recursively copies src to dst, creating dst as needed. Regular
// files are created exclusively, so an existing destination file is skipped
// rather than overwritten. Symlinks are recreated when the filesystem
// supports them.
func (c *TreeCopier) CopyTree(src, dst string) error {
	srcInfo, err := c.Fs.Stat(src)
	if err != nil {
		return err
	}
	if err := c.Fs.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	var copied, skipped int
	err = afero.Walk(c.Fs, src, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		switch mode := info.Mode(); {
		case mode.IsDir():
			if err := c.Fs.MkdirAll(target, mode.Perm()); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
		case mode.IsRegular():
			wrote, err := c.copyFile(path, target, mode.Perm())
			if err != nil {
				return err
			}
			if wrote {
				copied++
			} else {
				skipped++
			}
		case mode&os.ModeSymlink != 0:
			wrote, err := c.copySymlink(path, target)
			if err != nil {
				return err
			}
			if wrote {
				copied++
			} else {
				skipped++
			}
		default:
			logging.Debug("Skipping special file", "path", path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Debug("Copied template", "src", src, "dst", dst, "copied", copied, "skipped", skipped)
	return nil
}

// copyFile copies one regular file. It reports false when dst already exists.
func (c *TreeCopier) copyFile(src, dst string, perm fs.FileMode) (bool, error) {
	out, err := c.Fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			logging.Debug("Keeping existing file", "path", dst)
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", dst, err)
	}

	in, err := c.Fs.Open(src)
	if err != nil {
		out.Close()
		return false, fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", dst, err)
	}
	return true, nil
}

func (c *TreeCopier) copySymlink(src, dst string) (bool, error) {
	reader, okRead := c.Fs.(afero.LinkReader)
	linker, okLink := c.Fs.(afero.Linker)
	if !okRead || !okLink {
		logging.Debug("Skipping symlink, filesystem has no link support", "path", src)
		return false, nil
	}

	if _, err := c.Fs.Stat(dst); err == nil {
		return false, nil
	}
	if lstater, ok := c.Fs.(afero.Lstater); ok {
		if _, isLstat, err := lstater.LstatIfPossible(dst); isLstat && err == nil {
			// A dangling link is already there.
			return false, nil
		}
	}

	link, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return false, fmt.Errorf("reading link %s: %w", src, err)
	}
	if err := linker.SymlinkIfPossible(link, dst); err != nil {
		return false, fmt.Errorf("creating link %s: %w", dst, err)
	}
	return true, nil
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
