package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/geopark-ops/guidelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendXLSX, cfg.Store.Backend)
	assert.Equal(t, 4, cfg.Report.Slots)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, domain.DefaultLocations(), cfg.DomainLocations())
	assert.Equal(t, "guidelog.xlsx", filepath.Base(cfg.StorePath()))

	layout := cfg.Layout()
	assert.Equal(t, 4, layout.Slots)
	assert.Equal(t, 297.0, layout.PageHeight)
}

func TestDefault_MatchesLoadWithoutSources(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, loaded, cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GUIDELOG_STORE_BACKEND", "sqlite")
	t.Setenv("GUIDELOG_REPORT_SLOTS", "3")
	t.Setenv("GUIDELOG_SERVER_PORT", "9090")
	t.Setenv("GUIDELOG_DISRUPTION_DAYS", "2025-03-03,2025-03-20")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "guidelog.db", filepath.Base(cfg.StorePath()))
	assert.Equal(t, 3, cfg.Report.Slots)
	assert.Equal(t, 9090, cfg.Server.Port)

	days, err := cfg.DisruptionDays()
	require.NoError(t, err)
	assert.True(t, days.Has(domain.NewDate(2025, time.March, 20)))
	assert.Equal(t, 2, days.Len())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guidelog.yaml")
	yaml := `
store:
  backend: memory
report:
  slots: 6
log:
  format: json
locations:
  - name: 백령도
    posts: [두무진 안내소]
disruption:
  route: 인천-백령
  days: ["2025-03-03"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 6, cfg.Report.Slots)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "인천-백령", cfg.Disruption.Route)
	assert.Equal(t, domain.Locations{{Name: "백령도", Posts: []string{"두무진 안내소"}}}, cfg.DomainLocations())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"GUIDELOG_STORE_BACKEND": "postgres"}},
		{"zero slots", map[string]string{"GUIDELOG_REPORT_SLOTS": "0"}},
		{"bad port", map[string]string{"GUIDELOG_SERVER_PORT": "70000"}},
		{"bad disruption day", map[string]string{"GUIDELOG_DISRUPTION_DAYS": "someday"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
