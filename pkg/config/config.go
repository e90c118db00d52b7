// Package config loads dotsnap's layered configuration: embedded
// defaults, then the user config file, then DOTSNAP_* environment
// variables. Later layers override earlier ones.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotsnap/pkg/errors"
	"github.com/arthur-debert/dotsnap/pkg/logging"
)

// DotfileEntry names a single file or directory to back up.
// Path is relative to $HOME unless it begins with "/". The conditions
// are shell commands evaluated with `sh -c`; a non-zero exit status
// skips the entry for that direction, and an empty condition always
// includes it.
type DotfileEntry struct {
	Path               string `koanf:"path"`
	BackupCondition    string `koanf:"backup_condition"`
	ReinstallCondition string `koanf:"reinstall_condition"`
}

// ConfigMapping associates an installed application config path with its
// location relative to the configs/ directory of the backup tree.
type ConfigMapping struct {
	Source string `koanf:"source"`
	Target string `koanf:"target"`
}

// Config is the resolved dotsnap configuration.
type Config struct {
	BackupDir string          `koanf:"backup_dir"`
	Dotfiles  []DotfileEntry  `koanf:"dotfiles"`
	Configs   []ConfigMapping `koanf:"configs"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Load builds the configuration from the default layers. configFile may
// be empty, in which case only embedded defaults and environment
// variables apply.
func Load(configFile string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config file, if present. A .yaml sibling of the .toml
	// path is also accepted.
	if configFile != "" {
		loaded := false
		for _, candidate := range configCandidates(configFile) {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			parser := parserFor(candidate)
			if err := k.Load(file.Provider(candidate), parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", candidate)
			}
			logger.Debug().Str("path", candidate).Msg("Loaded user config")
			loaded = true
			break
		}
		if !loaded {
			logger.Debug().Str("path", configFile).Msg("No user config file, using defaults")
		}
	}

	// 3. Environment variables: DOTSNAP_BACKUP_DIR -> backup_dir
	err := k.Load(env.Provider("DOTSNAP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DOTSNAP_"))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configCandidates returns the file paths tried for the user config, in
// priority order.
func configCandidates(configFile string) []string {
	ext := filepath.Ext(configFile)
	base := strings.TrimSuffix(configFile, ext)
	return []string{configFile, base + ".yaml", base + ".yml"}
}

// parserFor picks the koanf parser matching the file extension.
func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}

func (c *Config) validate() error {
	if c.BackupDir == "" {
		return errors.New(errors.ErrConfigValid, "backup_dir must not be empty")
	}
	for _, d := range c.Dotfiles {
		if d.Path == "" {
			return errors.New(errors.ErrConfigValid, "dotfiles entry with empty path")
		}
	}
	for _, m := range c.Configs {
		if m.Source == "" || m.Target == "" {
			return errors.New(errors.ErrConfigValid, "configs entry must set both source and target")
		}
		if filepath.IsAbs(m.Target) {
			return errors.Newf(errors.ErrConfigValid, "configs target %q must be relative to the configs dir", m.Target)
		}
	}
	return nil
}

// Entry returns the dotfile entry for a path, if configured.
func (c *Config) Entry(path string) (DotfileEntry, bool) {
	for _, d := range c.Dotfiles {
		if d.Path == path {
			return d, true
		}
	}
	return DotfileEntry{}, false
}
