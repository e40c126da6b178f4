package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"deriv-generator/internal/gen"
	"deriv-generator/internal/layout"
)

const (
	// FileName is the config file looked up when no path is given.
	FileName  = "derivgen"
	envPrefix = "DERIVGEN"
)

// Config is the tool configuration.
type Config struct {
	// Tables is the table source file.
	Tables    string  `mapstructure:"tables"`
	OutputDir string  `mapstructure:"output_dir"`
	MeshClass string  `mapstructure:"mesh_class"`
	Outputs   Outputs `mapstructure:"outputs"`
	// Fields replaces the default field kinds when set.
	Fields []layout.FieldKind `mapstructure:"fields"`
}

// Outputs names the emitted files.
type Outputs struct {
	Header   string `mapstructure:"header"`
	Source   string `mapstructure:"source"`
	Init     string `mapstructure:"init"`
	Manifest string `mapstructure:"manifest"`
}

func setDefaults(v *viper.Viper) {
	names := gen.DefaultOutputNames()

	v.SetDefault("tables", "tables.cxx")
	v.SetDefault("output_dir", ".")
	v.SetDefault("mesh_class", layout.DefaultMeshClass)
	v.SetDefault("outputs.header", names.Header)
	v.SetDefault("outputs.source", names.Source)
	v.SetDefault("outputs.init", names.Init)
	v.SetDefault("outputs.manifest", "stencils.yaml")
}

// Load reads the config file at path, or derivgen.yaml in the working
// directory when path is empty. A missing default file is not an error.
// DERIVGEN_ environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.Fields) == 0 {
		cfg.Fields = layout.DefaultFields()
	}

	if err := cfg.Layout().Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Layout returns the catalogue described by the config.
func (c *Config) Layout() layout.Layout {
	return layout.Layout{
		MeshClass: c.MeshClass,
		Fields:    c.Fields,
		Families:  layout.DefaultFamilies(),
	}
}

// OutputNames returns the fragment file names.
func (c *Config) OutputNames() gen.OutputNames {
	return gen.OutputNames{
		Header: c.Outputs.Header,
		Source: c.Outputs.Source,
		Init:   c.Outputs.Init,
	}
}
