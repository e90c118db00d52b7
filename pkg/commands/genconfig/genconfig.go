// Package genconfig emits dotsnap's default configuration, either to
// stdout or written to the user config path.
package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/dotsnap/pkg/config"
	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/filesystem"
	"github.com/arthur-debert/dotsnap/pkg/logging"
	"github.com/arthur-debert/dotsnap/pkg/types"
)

// Options holds options for the genconfig command
type Options struct {
	// ConfigPath is the file to write when Write is set
	ConfigPath string

	// Write persists the config instead of returning it for display
	Write bool

	FS types.FS
}

// Result reports what genconfig produced.
type Result struct {
	ConfigContent string
	WrittenPath   string
}

// GenConfig outputs or writes the default configuration. An existing
// config file is never overwritten.
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	result := &Result{ConfigContent: config.DefaultContent()}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	if _, err := fsys.Stat(opts.ConfigPath); err == nil {
		return result, errors.Newf(errors.ErrInvalidInput,
			"config file already exists at %s", opts.ConfigPath)
	}

	dir := filepath.Dir(opts.ConfigPath)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}

	if err := fsys.WriteFile(opts.ConfigPath, []byte(result.ConfigContent), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", opts.ConfigPath)
	}

	logger.Info().Str("path", opts.ConfigPath).Msg("Written config file")
	result.WrittenPath = opts.ConfigPath
	return result, nil
}
