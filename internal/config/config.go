// Package config loads guidelog settings from defaults, an optional YAML
// file and GUIDELOG_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geopark-ops/guidelog/internal/disruption"
	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/geopark-ops/guidelog/internal/reconcile"
	"github.com/geopark-ops/guidelog/internal/report"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendXLSX   = "xlsx"
	BackendSQLite = "sqlite"
)

type Config struct {
	Store      StoreConfig      `mapstructure:"store"`
	Report     ReportConfig     `mapstructure:"report"`
	Log        LogConfig        `mapstructure:"log"`
	Server     ServerConfig     `mapstructure:"server"`
	Locations  []LocationConfig `mapstructure:"locations"`
	Disruption DisruptionConfig `mapstructure:"disruption"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	// Path is the workbook or database file. Empty selects a file under
	// ~/.guidelog named for the backend.
	Path string `mapstructure:"path"`
}

type ReportConfig struct {
	Slots        int     `mapstructure:"slots"`
	PageHeightMM float64 `mapstructure:"page_height_mm"`
	RowHeightMM  float64 `mapstructure:"row_height_mm"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LocationConfig struct {
	Name  string   `mapstructure:"name"`
	Posts []string `mapstructure:"posts"`
}

// DisruptionConfig lists ferry disruption days known ahead of time, as
// YYYY-MM-DD strings.
type DisruptionConfig struct {
	Route string   `mapstructure:"route"`
	Days  []string `mapstructure:"days"`
}

// Load reads configuration. An explicit path must exist; without one a
// guidelog.yaml in the working directory or ~/.guidelog is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("guidelog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".guidelog"))
		}
	}

	v.SetEnvPrefix("GUIDELOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in settings without reading a file or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: unmarshalling defaults: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	layout := report.DefaultLayout()

	v.SetDefault("store.backend", BackendXLSX)
	v.SetDefault("store.path", "")

	v.SetDefault("report.slots", reconcile.DefaultSlotCount)
	v.SetDefault("report.page_height_mm", layout.PageHeight)
	v.SetDefault("report.row_height_mm", layout.RowHeight)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	locations := make([]map[string]any, 0)
	for _, is := range domain.DefaultLocations() {
		locations = append(locations, map[string]any{"name": is.Name, "posts": is.Posts})
	}
	v.SetDefault("locations", locations)

	v.SetDefault("disruption.route", "")
	v.SetDefault("disruption.days", []string{})
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendXLSX, BackendSQLite:
	default:
		return fmt.Errorf("config: store.backend must be memory, xlsx or sqlite, got %q", c.Store.Backend)
	}
	if c.Report.Slots < 1 || c.Report.Slots > 8 {
		return fmt.Errorf("config: report.slots must be between 1 and 8")
	}
	if c.Report.PageHeightMM <= 0 || c.Report.RowHeightMM <= 0 {
		return fmt.Errorf("config: report page and row heights must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535")
	}
	for _, l := range c.Locations {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("config: every location needs a name")
		}
	}
	if _, err := c.DisruptionDays(); err != nil {
		return err
	}
	return nil
}

// StorePath resolves the backing file of the configured backend.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	name := "guidelog.xlsx"
	if c.Store.Backend == BackendSQLite {
		name = "guidelog.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".guidelog", name)
	}
	return filepath.Join(home, ".guidelog", name)
}

func (c *Config) Layout() report.Layout {
	l := report.DefaultLayout()
	l.Slots = c.Report.Slots
	l.PageHeight = c.Report.PageHeightMM
	l.RowHeight = c.Report.RowHeightMM
	return l
}

func (c *Config) DomainLocations() domain.Locations {
	out := make(domain.Locations, 0, len(c.Locations))
	for _, l := range c.Locations {
		out = append(out, domain.Island{Name: strings.TrimSpace(l.Name), Posts: l.Posts})
	}
	return out
}

func (c *Config) DisruptionDays() (disruption.DaySet, error) {
	days := disruption.DaySet{}
	for _, s := range c.Disruption.Days {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("config: disruption.days: %w", err)
		}
		days.Add(d)
	}
	return days, nil
}
