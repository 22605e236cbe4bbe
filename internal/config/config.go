package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. ARXIVTEX_PAPERS_YEAR.
const EnvPrefix = "ARXIVTEX"

// Manager loads configuration from defaults, an optional YAML file,
// environment variables and bound command-line flags, in increasing
// precedence.
type Manager struct {
	v *viper.Viper
}

// NewManager creates a manager and reads cfgFile, or the first
// arxivtex.yaml found in the working directory or $HOME/.arxivtex.
// A missing default config file is not an error.
func NewManager(cfgFile string) (*Manager, error) {
	v := viper.New()
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("arxivtex")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.arxivtex")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return &Manager{v: v}, nil
}

// ConfigFile returns the config file in use, or "".
func (m *Manager) ConfigFile() string {
	return m.v.ConfigFileUsed()
}

// BindFlag makes a command-line flag override key when it is set.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: nil flag", key)
	}
	return m.v.BindPFlag(key, flag)
}

// Load returns the effective configuration.
func (m *Manager) Load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would make a run meaningless.
func (c *Config) Validate() error {
	if c.RefOnce.FromYear > c.RefOnce.ToYear {
		return fmt.Errorf("refonce.from_year %d is after refonce.to_year %d", c.RefOnce.FromYear, c.RefOnce.ToYear)
	}
	if c.Tables.OutputName == "" {
		return errors.New("tables.output_name is empty")
	}
	return nil
}

// OutputPath is where the table extractor writes its records.
func (c *TablesConfig) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputName)
}

// LogPath is the per-run log file, named after the output file.
func (c *TablesConfig) LogPath() string {
	base := strings.TrimSuffix(filepath.Base(c.OutputName), filepath.Ext(c.OutputName))
	return filepath.Join(c.LogDir, "process_"+base+".log")
}

// OutputTemplatePath is the per-year output path template.
func (c *RefOnceConfig) OutputTemplatePath() string {
	return filepath.Join(c.OutputDir, c.OutputTemplate)
}

// CombinedPath is the combined output path.
func (c *RefOnceConfig) CombinedPath() string {
	return filepath.Join(c.OutputDir, c.CombinedName)
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		return err
	}

	header := []byte(`# arxivtex configuration
# Every key can be overridden with ARXIVTEX_<SECTION>_<KEY>, e.g. ARXIVTEX_PAPERS_YEAR=2018
# Path templates in refonce use {year}

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
