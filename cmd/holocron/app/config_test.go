package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/constants"
	"github.com/agentstation/holocron/pkg/numeral"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultBaseURL, config.BaseURL)
	assert.Equal(t, "people", config.PeopleSegment)
	assert.Equal(t, constants.DefaultFetchTimeout, config.FetchTimeout)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Empty(t, config.LogLevel)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "/api/v1", config.Server.PathPrefix)

	targets := config.Targets()
	assert.Equal(t, catalog.ID(4), targets.PersonID)
	assert.Equal(t, catalog.ID(9), targets.StarshipID)
	assert.Equal(t, catalog.ID(2), targets.PlanetID)
	assert.Equal(t, catalog.ID(5), targets.ResidentID)

	require.NoError(t, config.Validate())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("HOLOCRON_CATALOG_BASE_URL", "http://localhost:9999/api")
	t.Setenv("HOLOCRON_CATALOG_FETCH_TIMEOUT", "2s")
	t.Setenv("HOLOCRON_CATALOG_RATE_LIMIT", "2.5")
	t.Setenv("HOLOCRON_TARGETS_STARSHIP_ID", "10")
	t.Setenv("HOLOCRON_NUMERAL_LOCALE", "de-DE")
	t.Setenv("HOLOCRON_LOG_LEVEL", "debug")
	t.Setenv("HOLOCRON_SERVER_PORT", "3000")
	t.Setenv("HOLOCRON_FORMAT", "json")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api", config.BaseURL)
	assert.Equal(t, 2*time.Second, config.FetchTimeout)
	assert.InDelta(t, 2.5, config.RateLimit, 1e-9)
	assert.Equal(t, catalog.ID(10), config.Targets().StarshipID)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "json", config.Format)

	format, err := config.NumeralFormat()
	require.NoError(t, err)
	assert.Equal(t, numeral.Format{Group: '.', Decimal: ','}, format)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holocron.yaml")
	content := `
catalog:
  base_url: https://mirror.example/api
  segments:
    starships: ships
targets:
  person_id: 1
numeral:
  group_separator: none
server:
  port: 9090
  cors: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "https://mirror.example/api", config.BaseURL)
	assert.Equal(t, "ships", config.StarshipsSegment)
	assert.Equal(t, "planets", config.PlanetsSegment)
	assert.Equal(t, catalog.ID(1), config.Targets().PersonID)
	assert.Equal(t, 9090, config.Server.Port)
	assert.True(t, config.Server.CORSEnabled)

	format, err := config.NumeralFormat()
	require.NoError(t, err)
	assert.Equal(t, rune(0), format.Group)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNumeralFormatOverrides(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    numeral.Format
		wantErr bool
	}{
		{name: "default", config: Config{}, want: numeral.US},
		{name: "locale", config: Config{NumeralLocale: "fr"}, want: numeral.Format{Group: ' ', Decimal: ','}},
		{name: "group override", config: Config{NumeralLocale: "en-US", GroupSeparator: "_"}, want: numeral.Format{Group: '_', Decimal: '.'}},
		{name: "both overrides", config: Config{GroupSeparator: ".", DecimalSeparator: ","}, want: numeral.Format{Group: '.', Decimal: ','}},
		{name: "multi-character separator", config: Config{GroupSeparator: ",,"}, wantErr: true},
		{name: "clashing separators", config: Config{GroupSeparator: "."}, wantErr: true},
		{name: "bad locale", config: Config{NumeralLocale: "???"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.NumeralFormat()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		config, err := LoadConfig()
		require.NoError(t, err)
		return config
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"empty segment", func(c *Config) { c.PlanetsSegment = "/" }},
		{"duplicate segment", func(c *Config) { c.StarshipsSegment = c.PeopleSegment }},
		{"zero fetch timeout", func(c *Config) { c.FetchTimeout = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }},
		{"zero person", func(c *Config) { c.PersonID = 0 }},
		{"negative resident", func(c *Config) { c.ResidentID = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "error"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "error", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "trace")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "trace", config.LogLevel)
}
