// Package copier implements the file and directory copy engine behind
// backup and reinstall. Copies run one item at a time; a failure on one
// item is recorded and does not abort the rest of the run.
package copier

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/filesystem"
	"github.com/arthur-debert/dotsnap/pkg/logging"
	"github.com/arthur-debert/dotsnap/pkg/types"
)

// Options configures a Copier.
type Options struct {
	FS     types.FS
	DryRun bool
	Logger zerolog.Logger
}

// Copier copies files and directory trees through a types.FS.
type Copier struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// New creates a Copier.
func New(opts Options) *Copier {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("copier")
	}

	return &Copier{
		fs:     fsys,
		dryRun: opts.DryRun,
		logger: logger,
	}
}

// CopyAll copies every item, returning one result per item.
func (c *Copier) CopyAll(items []types.CopyItem) []types.CopyResult {
	results := make([]types.CopyResult, 0, len(items))
	for _, item := range items {
		results = append(results, c.Copy(item))
	}
	return results
}

// Copy copies a single item, creating destination parents first.
func (c *Copier) Copy(item types.CopyItem) types.CopyResult {
	c.logger.Debug().
		Str("source", item.Source).
		Str("dest", item.Dest).
		Bool("dir", item.IsDir).
		Bool("dryRun", c.dryRun).
		Msg("Copying")

	if c.dryRun {
		return types.CopyResult{Item: item, Success: true, Skipped: true}
	}

	var err error
	if item.IsDir {
		err = c.CopyTree(item.Source, item.Dest)
	} else {
		err = c.CopyFile(item.Source, item.Dest)
	}

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("source", item.Source).
			Str("dest", item.Dest).
			Msg("Copy failed")
		return types.CopyResult{Item: item, Error: err}
	}

	return types.CopyResult{Item: item, Success: true}
}

// CopyFile copies one file, preserving its permission bits.
func (c *Copier) CopyFile(src, dst string) error {
	info, err := c.fs.Stat(src)
	if err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "cannot read %s", src)
		}
		return errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %s", src)
	}

	data, err := c.fs.ReadFile(src)
	if err != nil {
		if os.IsPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "cannot read %s", src)
		}
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src)
	}

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", dst)
	}

	if err := c.fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst)
	}

	return nil
}

// CopyTree copies a directory tree. Symlinks inside the tree are
// recreated as symlinks, not followed.
func (c *Copier) CopyTree(src, dst string) error {
	info, err := c.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %s", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", src)
	}

	if err := c.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
	}

	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		linfo, err := c.fs.Lstat(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to lstat %s", srcPath)
		}

		switch {
		case linfo.Mode()&fs.ModeSymlink != 0:
			target, err := c.fs.Readlink(srcPath)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", srcPath)
			}
			if err := c.fs.Symlink(target, dstPath); err != nil {
				return errors.Wrapf(err, errors.ErrFileCopy, "failed to link %s", dstPath)
			}
		case entry.IsDir():
			if err := c.CopyTree(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := c.CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// Subfiles returns every regular file under dir, as paths relative to
// dir. Used when reinstalling a backed-up directory file by file.
func Subfiles(fsys types.FS, dir string) ([]string, error) {
	var files []string

	var walk func(rel string) error
	walk = func(rel string) error {
		entries, err := fsys.ReadDir(filepath.Join(dir, rel))
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", filepath.Join(dir, rel))
		}
		for _, entry := range entries {
			childRel := filepath.Join(rel, entry.Name())
			if entry.IsDir() {
				if err := walk(childRel); err != nil {
					return err
				}
				continue
			}
			files = append(files, childRel)
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	return files, nil
}
