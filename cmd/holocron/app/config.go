package app

import (
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/holocron/internal/server"
	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/constants"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/information"
	"github.com/agentstation/holocron/pkg/numeral"
	"github.com/agentstation/holocron/pkg/reference"
)

// EnvPrefix prefixes every environment variable read by holocron.
const EnvPrefix = constants.EnvPrefix

// noGrouping disables digit grouping when used as a separator override.
const noGrouping = "none"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog
	BaseURL          string
	PeopleSegment    string
	StarshipsSegment string
	PlanetsSegment   string
	FetchTimeout     time.Duration
	RateLimit        float64 // outbound requests per second, 0 for unlimited
	UserAgent        string
	PersonID         int
	StarshipID       int
	PlanetID         int
	ResidentID       int
	NumeralLocale    string
	GroupSeparator   string
	DecimalSeparator string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// HTTP server
	Server server.Config
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (HOLOCRON_ prefix)
// 3. .env files
// 4. Config file (~/.holocron.yaml or ./.holocron.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file. An explicit
// file must exist; the default locations are optional.
func LoadConfigFile(path string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".holocron")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "reading config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL:          v.GetString("catalog.base_url"),
		PeopleSegment:    v.GetString("catalog.segments.people"),
		StarshipsSegment: v.GetString("catalog.segments.starships"),
		PlanetsSegment:   v.GetString("catalog.segments.planets"),
		FetchTimeout:     v.GetDuration("catalog.fetch_timeout"),
		RateLimit:        v.GetFloat64("catalog.rate_limit"),
		UserAgent:        v.GetString("catalog.user_agent"),
		PersonID:         v.GetInt("targets.person_id"),
		StarshipID:       v.GetInt("targets.starship_id"),
		PlanetID:         v.GetInt("targets.planet_id"),
		ResidentID:       v.GetInt("targets.resident_id"),
		NumeralLocale:    v.GetString("numeral.locale"),
		GroupSeparator:   v.GetString("numeral.group_separator"),
		DecimalSeparator: v.GetString("numeral.decimal_separator"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),

		Server: server.Config{
			Host:         v.GetString("server.host"),
			Port:         v.GetInt("server.port"),
			PathPrefix:   v.GetString("server.prefix"),
			CORSEnabled:  v.GetBool("server.cors"),
			CORSOrigins:  v.GetStringSlice("server.cors_origins"),
			RateLimit:    v.GetInt("server.rate_limit"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
		},
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "")
	v.SetDefault("catalog.base_url", constants.DefaultBaseURL)
	v.SetDefault("catalog.segments.people", constants.DefaultPeopleSegment)
	v.SetDefault("catalog.segments.starships", constants.DefaultStarshipsSegment)
	v.SetDefault("catalog.segments.planets", constants.DefaultPlanetsSegment)
	v.SetDefault("catalog.fetch_timeout", constants.DefaultFetchTimeout)
	v.SetDefault("catalog.rate_limit", 0)
	v.SetDefault("catalog.user_agent", constants.DefaultUserAgent)

	v.SetDefault("targets.person_id", constants.DefaultPersonID)
	v.SetDefault("targets.starship_id", constants.DefaultStarshipID)
	v.SetDefault("targets.planet_id", constants.DefaultPlanetID)
	v.SetDefault("targets.resident_id", constants.DefaultResidentID)

	v.SetDefault("numeral.locale", "en-US")
	v.SetDefault("numeral.group_separator", "")
	v.SetDefault("numeral.decimal_separator", "")

	// An empty level lets -v/-q decide.
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	srv := server.DefaultConfig()
	v.SetDefault("server.host", srv.Host)
	v.SetDefault("server.port", srv.Port)
	v.SetDefault("server.prefix", srv.PathPrefix)
	v.SetDefault("server.cors", srv.CORSEnabled)
	v.SetDefault("server.cors_origins", srv.CORSOrigins)
	v.SetDefault("server.rate_limit", srv.RateLimit)
	v.SetDefault("server.read_timeout", srv.ReadTimeout)
	v.SetDefault("server.write_timeout", srv.WriteTimeout)
	v.SetDefault("server.idle_timeout", srv.IdleTimeout)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ReferenceConfig returns the URL template configuration for the catalog.
func (c *Config) ReferenceConfig() reference.Config {
	return reference.Config{
		BaseURL: c.BaseURL,
		Segments: map[catalog.ResourceType]string{
			catalog.ResourcePerson:   c.PeopleSegment,
			catalog.ResourceStarship: c.StarshipsSegment,
			catalog.ResourcePlanet:   c.PlanetsSegment,
		},
	}
}

// Targets returns the identifiers the aggregate queries.
func (c *Config) Targets() information.Targets {
	return information.Targets{
		PersonID:   catalog.ID(c.PersonID),
		StarshipID: catalog.ID(c.StarshipID),
		PlanetID:   catalog.ID(c.PlanetID),
		ResidentID: catalog.ID(c.ResidentID),
	}
}

// NumeralFormat derives the crew number format from the locale and applies
// any separator overrides. "none" as group separator disables grouping.
func (c *Config) NumeralFormat() (numeral.Format, error) {
	format := numeral.US
	if c.NumeralLocale != "" {
		f, err := numeral.ForLocale(c.NumeralLocale)
		if err != nil {
			return numeral.Format{}, err
		}
		format = f
	}

	switch {
	case strings.EqualFold(c.GroupSeparator, noGrouping):
		format.Group = 0
	case c.GroupSeparator != "":
		r, err := singleRune("numeral.group_separator", c.GroupSeparator)
		if err != nil {
			return numeral.Format{}, err
		}
		format.Group = r
	}
	if c.DecimalSeparator != "" {
		r, err := singleRune("numeral.decimal_separator", c.DecimalSeparator)
		if err != nil {
			return numeral.Format{}, err
		}
		format.Decimal = r
	}

	if err := format.Validate(); err != nil {
		return numeral.Format{}, err
	}
	return format, nil
}

// Validate checks everything the aggregate needs before it can run.
func (c *Config) Validate() error {
	if _, err := reference.Compile(c.ReferenceConfig()); err != nil {
		return err
	}
	if _, err := c.NumeralFormat(); err != nil {
		return err
	}
	if c.FetchTimeout <= 0 {
		return errors.NewValidationError("catalog.fetch_timeout", c.FetchTimeout, "must be positive")
	}
	if c.RateLimit < 0 {
		return errors.NewValidationError("catalog.rate_limit", c.RateLimit, "cannot be negative")
	}

	t := c.Targets()
	for name, id := range map[string]catalog.ID{
		"targets.person_id":   t.PersonID,
		"targets.starship_id": t.StarshipID,
		"targets.planet_id":   t.PlanetID,
		"targets.resident_id": t.ResidentID,
	} {
		if !id.Valid() {
			return errors.NewValidationError(name, int(id), "must be a positive identifier")
		}
	}
	return nil
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.NewValidationError(field, s, "must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local does not override values already set by .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
