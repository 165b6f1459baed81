// Package config loads YAML table definitions.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/tablebuilder"
	"github.com/bjaus/tablebuilder/internal/source"
)

// Config is a table definition: the fields, how to render them and where
// the records come from.
type Config struct {
	Format     string  `yaml:"format"`
	Transposed bool    `yaml:"transposed"`
	SectionBy  string  `yaml:"section_by"`
	Options    Options `yaml:"options"`
	Fields     []Field `yaml:"fields"`
	Source     Source  `yaml:"source"`
}

// Source names where records are read from: a file, or a driver, DSN and
// query.
type Source struct {
	File     string     `yaml:"file"`
	Selector string     `yaml:"selector"`
	Driver   string     `yaml:"driver"`
	DSN      string     `yaml:"dsn"`
	Query    string     `yaml:"query"`
	Postgres Connection `yaml:"postgres"`
}

// Connection holds PostgreSQL connection parameters, used when no DSN is
// given.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds a PostgreSQL connection string.
func (c *Connection) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// Load reads and parses a YAML definition file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML definition, fills gaps from the environment and
// validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnv fills in an empty DSN from environment variables. YAML values
// take precedence; env vars are used only as fallback.
func (c *Config) applyEnv() {
	src := &c.Source
	if src.DSN == "" {
		src.DSN = envOr("TABLEBUILDER_DSN")
	}
	if src.Driver != source.DriverPostgres || src.DSN != "" {
		return
	}
	conn := &src.Postgres
	if conn.Host == "" {
		conn.Host = envOr("PGHOST", "POSTGRES_HOST")
	}
	if conn.Port == 0 {
		if s := envOr("PGPORT", "POSTGRES_PORT"); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				conn.Port = p
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("PGDATABASE", "POSTGRES_DB")
	}
	if conn.User == "" {
		conn.User = envOr("PGUSER", "POSTGRES_USER")
	}
	if conn.Password == "" {
		conn.Password = envOr("PGPASSWORD", "POSTGRES_PASSWORD")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = envOr("PGSSLMODE")
	}
}

// envOr returns the first non-empty value from the given env var names.
func envOr(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// validate checks the definition and fills in defaults.
func (c *Config) validate() error {
	if c.Format == "" {
		c.Format = string(tablebuilder.FormatTable)
	}
	if _, err := tablebuilder.ParseFormat(c.Format); err != nil {
		return err
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("at least one field must be specified")
	}
	for i, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("fields[%d].name is required", i)
		}
		if f.Key != "" && f.Path != "" {
			return fmt.Errorf("fields[%d]: key and path are mutually exclusive", i)
		}
	}
	if c.SectionBy != "" {
		if _, err := tablebuilder.ParsePath(c.SectionBy); err != nil {
			return fmt.Errorf("section_by: %w", err)
		}
	}
	return c.Source.validate()
}

func (s *Source) validate() error {
	if s.Driver == "" {
		return nil
	}
	if !slices.Contains(source.Drivers(), s.Driver) {
		return fmt.Errorf("source.driver: unknown driver %q (supported: %v)", s.Driver, source.Drivers())
	}
	if s.Query == "" {
		return fmt.Errorf("source.query is required with source.driver")
	}
	if s.DSN != "" {
		return nil
	}
	if s.Driver != source.DriverPostgres {
		return fmt.Errorf("source.dsn is required for driver %q", s.Driver)
	}
	conn := &s.Postgres
	if conn.Host == "" {
		return fmt.Errorf("source.postgres.host is required")
	}
	if conn.Port == 0 {
		conn.Port = 5432
	}
	if conn.Database == "" {
		return fmt.Errorf("source.postgres.database is required")
	}
	if conn.User == "" {
		return fmt.Errorf("source.postgres.user is required")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = "disable"
	}
	s.DSN = conn.DSN()
	return nil
}

// HasSource reports whether the definition names its own records.
func (c *Config) HasSource() bool {
	return c.Source.File != "" || c.Source.Driver != ""
}

// OutputFormat returns the configured format.
func (c *Config) OutputFormat() tablebuilder.Format {
	f, _ := tablebuilder.ParseFormat(c.Format)
	return f
}

// Spec builds the table spec declared by the fields.
func (c *Config) Spec() (*tablebuilder.Spec, error) {
	fields := make([]*tablebuilder.Field, 0, len(c.Fields))
	for i, f := range c.Fields {
		field, err := f.build()
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		fields = append(fields, field)
	}
	return tablebuilder.NewSpec(fields...)
}
