// Package config provides configuration structures and loading for the Pokédex tracker.
package config

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig represents the HTTP server settings.
type ServerConfig struct {
	Addr                   string `yaml:"addr" mapstructure:"addr"`
	StaticDir              string `yaml:"static_dir" mapstructure:"static_dir"`
	MaxUploadMB            int    `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// Supported catalog source formats.
const (
	FormatAuto = ""
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatSQL  = "sql"
)

// CatalogConfig describes where the catalog is read from.
type CatalogConfig struct {
	Source  string        `yaml:"source" mapstructure:"source"` // file path; ignored for sql
	Format  string        `yaml:"format" mapstructure:"format"` // xlsx, csv, sql or empty to infer from Source
	Sheet   string        `yaml:"sheet" mapstructure:"sheet"`   // workbook sheet, first sheet when empty
	Columns ColumnsConfig `yaml:"columns" mapstructure:"columns"`
}

// ColumnsConfig maps record fields to source column names.
type ColumnsConfig struct {
	ID    string `yaml:"id" mapstructure:"id"`
	Name  string `yaml:"name" mapstructure:"name"`
	Owned string `yaml:"owned" mapstructure:"owned"`
}

// DatabaseConfig represents the SQL catalog source. Only used when the catalog format is sql.
type DatabaseConfig struct {
	Driver         string `yaml:"driver" mapstructure:"driver"` // mysql or sqlite
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	User           string `yaml:"user" mapstructure:"user"`
	Password       string `yaml:"password" mapstructure:"password"`
	Database       string `yaml:"database" mapstructure:"database"`
	TLS            string `yaml:"tls" mapstructure:"tls"`   // disable, preferred, required
	Path           string `yaml:"path" mapstructure:"path"` // sqlite database file
	Table          string `yaml:"table" mapstructure:"table"`
	Where          string `yaml:"where" mapstructure:"where"`
	MaxConnections int    `yaml:"max_connections" mapstructure:"max_connections"`
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
		Server: ServerConfig{
			Addr:                   ":5000",
			StaticDir:              "static",
			MaxUploadMB:            10,
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    30,
			ShutdownTimeoutSeconds: 10,
		},
		Catalog: CatalogConfig{
			Source: "Pokedex.xlsx",
			Columns: ColumnsConfig{
				ID:    "Dex Number",
				Name:  "Name",
				Owned: "In Collection Check",
			},
		},
		Database: DatabaseConfig{
			Driver:         "mysql",
			Port:           3306,
			TLS:            "preferred",
			Table:          "pokedex",
			MaxConnections: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// MaxUploadBytes returns the upload size limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// ResolvedFormat returns the configured format, inferring it from the source
// file extension when none is set.
func (c CatalogConfig) ResolvedFormat() string {
	if c.Format != FormatAuto {
		return c.Format
	}
	return FormatFromPath(c.Source)
}
