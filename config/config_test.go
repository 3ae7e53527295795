package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "cook")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "cookbook_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test; http://b.test")
	t.Setenv("ACCESS_TOKEN_TTL", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "cook", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "cookbook_test", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.AccessTokenTTL)
	assert.Equal(t, DefaultLimits(), cfg.Limits)
}

func TestLoadConfigPrefersSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestLoadConfigMissingJWTSecret(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfigRejectsSqliteInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")

	cfg := &Config{
		ServerPort: "8080",
		DBDriver:   "sqlite",
		DBName:     "cookbook.db",
		JWTSecret:  "s",
		Limits:     DefaultLimits(),
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite is not allowed in production")
}

func TestLoadLimitsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	content := []byte("pagination:\n  default_limit: 5\n  max_limit: 10\nreview:\n  comment_max_length: 200\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	limits, err := LoadLimits(path)
	require.NoError(t, err)

	assert.Equal(t, 5, limits.Pagination.DefaultLimit)
	assert.Equal(t, 10, limits.Pagination.MaxLimit)
	assert.Equal(t, 1, limits.Pagination.DefaultPage)
	assert.Equal(t, 200, limits.Review.CommentMaxLength)
	assert.Equal(t, 80, limits.Recipe.TitleMaxLength)
}

func TestLimitsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Limits)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Limits) {}},
		{name: "default limit above max", mutate: func(l *Limits) { l.Pagination.DefaultLimit = 30 }, wantErr: true},
		{name: "zero max limit", mutate: func(l *Limits) { l.Pagination.MaxLimit = 0 }, wantErr: true},
		{name: "inverted stars", mutate: func(l *Limits) { l.Review.MinStars = 6 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLimits()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment(" Prod "))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))

	t.Setenv("ENV", "production")
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
	assert.False(t, GetEnvironment().secretsOnly())

	t.Setenv("CI", "")
	assert.True(t, IsProduction())
	assert.False(t, GetEnvironment().loadsDotEnv())
}
