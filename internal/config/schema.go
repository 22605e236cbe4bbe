package config

// Config is the arxivtex configuration.
type Config struct {
	Papers  PapersConfig  `mapstructure:"papers" yaml:"papers"`
	Tables  TablesConfig  `mapstructure:"tables" yaml:"tables"`
	RefOnce RefOnceConfig `mapstructure:"refonce" yaml:"refonce"`
	Index   IndexConfig   `mapstructure:"index" yaml:"index"`
}

// PapersConfig configures the metadata filter.
type PapersConfig struct {
	Input      string   `mapstructure:"input" yaml:"input"`   // JSON-lines snapshot
	Output     string   `mapstructure:"output" yaml:"output"` // JSON array
	Year       int      `mapstructure:"year" yaml:"year"`
	Categories []string `mapstructure:"categories" yaml:"categories"`
}

// TablesConfig configures table extraction.
type TablesConfig struct {
	InputDir      string   `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir     string   `mapstructure:"output_dir" yaml:"output_dir"`
	OutputName    string   `mapstructure:"output_name" yaml:"output_name"`
	LogDir        string   `mapstructure:"log_dir" yaml:"log_dir"`
	Pattern       string   `mapstructure:"pattern" yaml:"pattern"` // doublestar glob on base names
	Encodings     []string `mapstructure:"encodings" yaml:"encodings"`
	RefCommands   []string `mapstructure:"ref_commands" yaml:"ref_commands"`
	LabelPrefixes []string `mapstructure:"label_prefixes" yaml:"label_prefixes"`
}

// RefOnceConfig configures the single-reference filter. Templates use {year}.
type RefOnceConfig struct {
	InputTemplate  string `mapstructure:"input_template" yaml:"input_template"`
	OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
	OutputTemplate string `mapstructure:"output_template" yaml:"output_template"`
	CombinedName   string `mapstructure:"combined_name" yaml:"combined_name"`
	FromYear       int    `mapstructure:"from_year" yaml:"from_year"`
	ToYear         int    `mapstructure:"to_year" yaml:"to_year"`
}

// IndexConfig configures the SQLite table index.
type IndexConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
