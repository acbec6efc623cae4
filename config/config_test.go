package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WM_ORG_ID", "org-1")
	t.Setenv("DB_DSN", "postgres://localhost/mys")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "America/Guatemala", cfg.Portal.TimeZone)
	assert.Equal(t, 60, cfg.Gemini.RateMax)
	assert.Equal(t, 10*time.Minute, cfg.Gemini.RateWindow)
	assert.Equal(t, 15, cfg.Gemini.BodyLimitMB)
	assert.Equal(t, "postgres://localhost/mys", cfg.Database.DatabaseURL())
}

func TestLoad_RequiresOrg(t *testing.T) {
	t.Setenv("WM_ORG_ID", "")
	_, err := Load()
	assert.ErrorContains(t, err, "WM_ORG_ID")
}

func TestValidate_BadTimeZone(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost"},
		Portal:   PortalConfig{OrgID: "org", TimeZone: "Mars/Olympus"},
		Gemini:   GeminiConfig{RateMax: 1, RateWindow: time.Minute},
	}
	assert.Error(t, cfg.Validate())
}

func TestDatabaseURL_FromParts(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", c.DatabaseURL())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "nope")
	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))

	t.Setenv("X_BOOL", "yes")
	assert.True(t, getEnvAsBool("X_BOOL", false))

	t.Setenv("X_DUR", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_DUR", time.Second))
}
