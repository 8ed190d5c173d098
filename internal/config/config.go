// Package config provides configuration structures and loading for GARMirror.
package config

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Import   ImportConfig   `yaml:"import" mapstructure:"import"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents the MySQL connection configuration for the
// registry replica.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// SourceConfig describes where GAR distribution files come from.
type SourceConfig struct {
	// ServiceURL is the base URL of the public version-discovery service.
	ServiceURL string `yaml:"service_url" mapstructure:"service_url"`
	// XMLDir is the local directory holding extracted GAR XML files.
	XMLDir string `yaml:"xml_dir" mapstructure:"xml_dir"`
	// Region restricts loading to one region subdirectory (e.g. "77").
	// Empty means the federation-wide dump.
	Region string `yaml:"region" mapstructure:"region"`
}

// ImportConfig represents import tuning settings.
type ImportConfig struct {
	// BatchSize is the number of rows per bulk INSERT statement.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
	// OnlyEmpty restricts the run to tables that currently hold no rows.
	OnlyEmpty bool `yaml:"only_empty" mapstructure:"only_empty"`
	// Shrink runs a compaction pass after the import completes.
	Shrink bool `yaml:"shrink" mapstructure:"shrink"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Port:               3306,
			Database:           "gar",
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Source: SourceConfig{
			ServiceURL: "https://fias.nalog.ru/WebServices/Public",
			XMLDir:     "gar_xml",
		},
		Import: ImportConfig{
			BatchSize: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// ApplyOverrides applies CLI flag values over the loaded configuration.
// Zero values leave the config untouched.
func (c *Config) ApplyOverrides(logLevel, logFormat string, batchSize int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if batchSize > 0 {
		c.Import.BatchSize = batchSize
	}
}
