package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Options configures one compiler session.
//
//	stop_on_first_error: true
//	log:
//	  verbosity: 1
//	  file: ofront.log
//	output:
//	  format: text
//	  color: auto
type Options struct {
	StopOnFirstError bool          `yaml:"stop_on_first_error" toml:"stop_on_first_error"`
	Log              LogOptions    `yaml:"log" toml:"log"`
	Output           OutputOptions `yaml:"output" toml:"output"`

	// Path is the file the options were loaded from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

type LogOptions struct {
	// Verbosity follows commonlog: 0 errors only, 1 adds warnings and notices,
	// 2 info, 3 and above debug.
	Verbosity int    `yaml:"verbosity" toml:"verbosity"`
	File      string `yaml:"file,omitempty" toml:"file"`
}

type OutputOptions struct {
	Format string `yaml:"format" toml:"format"` // text, json or cbor
	Color  string `yaml:"color" toml:"color"`   // auto, always or never
}

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns the options used when no config file is found.
func Default() *Options {
	o := &Options{}
	o.setDefaults()
	return o
}

// Load reads options from path. The format is chosen by extension: .toml
// files are TOML, everything else YAML.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

func Parse(data []byte, path string) (*Options, error) {
	var o Options
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	o.setDefaults()
	if err := o.validate(path); err != nil {
		return nil, err
	}
	o.Path = path
	return &o, nil
}

// FindConfig walks up from dir looking for ofront.yaml, ofront.yml or
// ofront.toml. It returns "" when none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{ConfigFileYAML, ConfigFileYML, ConfigFileTOML} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks options assembled outside Parse, such as flag overrides.
func (o *Options) Validate() error {
	source := o.Path
	if source == "" {
		source = "options"
	}
	return o.validate(source)
}

func (o *Options) validate(path string) error {
	switch o.Output.Format {
	case FormatText, FormatJSON, FormatCBOR:
	default:
		return fmt.Errorf("%s: output.format: unknown format %q (want text, json or cbor)", path, o.Output.Format)
	}
	switch o.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: output.color: unknown mode %q (want auto, always or never)", path, o.Output.Color)
	}
	if o.Log.Verbosity < 0 {
		return fmt.Errorf("%s: log.verbosity must not be negative", path)
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.Output.Format == "" {
		o.Output.Format = FormatText
	}
	if o.Output.Color == "" {
		o.Output.Color = ColorAuto
	}
}
