package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/EthanYidong/rehost/pkg/errors"
)

// Format is a configuration file syntax.
type Format string

const (
	// FormatTOML is the default syntax.
	FormatTOML Format = "toml"
	// FormatYAML is selected by a .yaml or .yml extension.
	FormatYAML Format = "yaml"
)

// FormatFor picks the syntax from the file extension. Anything that is not
// YAML is treated as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// rawConfig mirrors the on-disk shape before the path/url union is checked.
type rawConfig struct {
	Vars  map[string]string `toml:"vars" yaml:"vars"`
	Files []rawFile         `toml:"file" yaml:"file"`
}

type rawFile struct {
	Path         *string           `toml:"path" yaml:"path"`
	URL          *string           `toml:"url" yaml:"url"`
	Rename       *string           `toml:"rename" yaml:"rename"`
	Replace      []rawReplacement  `toml:"replace" yaml:"replace"`
	Replacements []rawReplacement  `toml:"replacements" yaml:"replacements"`
	Headers      map[string]string `toml:"headers" yaml:"headers"`
}

type rawReplacement struct {
	From *string `toml:"from" yaml:"from"`
	To   *string `toml:"to" yaml:"to"`
}

// Load reads and decodes the configuration file at path from the OS filesystem.
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs reads and decodes the configuration file at path from fsys.
func LoadFs(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapConfig(path, err)
	}
	cfg, err := Decode(data, FormatFor(path))
	if err != nil {
		var cfgErr *errors.ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Path == "" {
			cfgErr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Decode parses data in the given format and validates its shape.
func Decode(data []byte, format Format) (*Config, error) {
	var raw rawConfig
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.NewConfigError("", "", "invalid YAML: "+err.Error(), err)
		}
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return nil, errors.NewConfigError("", "", fmt.Sprintf("invalid TOML at %d:%d: %s", row, col, derr.Error()), err)
			}
			return nil, errors.NewConfigError("", "", "invalid TOML: "+err.Error(), err)
		}
	}
	return raw.build()
}

// build converts the raw shape into a Config, enforcing that every file
// names exactly one of path or url.
func (raw rawConfig) build() (*Config, error) {
	cfg := &Config{
		Vars:  raw.Vars,
		Files: make([]FileDeclaration, 0, len(raw.Files)),
	}
	if cfg.Vars == nil {
		cfg.Vars = map[string]string{}
	}

	for i, rf := range raw.Files {
		field := fmt.Sprintf("file[%d]", i)

		var loc Location
		switch {
		case rf.Path != nil && rf.URL != nil:
			return nil, errors.NewConfigError("", field, "path and url are mutually exclusive", nil)
		case rf.Path != nil:
			loc = Local{Path: *rf.Path}
		case rf.URL != nil:
			loc = External{URL: *rf.URL}
		default:
			return nil, errors.NewConfigError("", field, "one of path or url is required", nil)
		}

		if len(rf.Headers) > 0 {
			if _, ok := loc.(External); !ok {
				return nil, errors.NewConfigError("", field, "headers are only valid with url", nil)
			}
		}

		raws := append(rf.Replace, rf.Replacements...)
		replacements := make([]Replacement, 0, len(raws))
		for j, rr := range raws {
			if rr.From == nil || rr.To == nil {
				return nil, errors.NewConfigError("", fmt.Sprintf("%s.replace[%d]", field, j), "both from and to are required", nil)
			}
			replacements = append(replacements, Replacement{From: *rr.From, To: *rr.To})
		}

		cfg.Files = append(cfg.Files, FileDeclaration{
			Location:     loc,
			Rename:       rf.Rename,
			Replacements: replacements,
			Headers:      rf.Headers,
		})
	}

	return cfg, nil
}
