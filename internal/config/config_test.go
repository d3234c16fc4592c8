package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWebConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("API_URL", "http://localhost:8081/")

	cfg, err := LoadWebConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.APIURL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, http.SameSiteLaxMode, cfg.SameSite())
	assert.Equal(t, int64(25*1024*1024), cfg.MaxUploadBytes)
}

func TestLoadWebConfig_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"bad url", map[string]string{"API_URL": "ftp://x"}},
		{"bad samesite", map[string]string{"COOKIE_SAMESITE": "sometimes"}},
		{"none needs secure", map[string]string{"COOKIE_SAMESITE": "None"}},
		{"prod default secret", map[string]string{"APP_ENV": "prod", "COOKIE_SECURE": "true"}},
		{"prod insecure cookie", map[string]string{"APP_ENV": "production", "SESSION_SECRET": "s3cr3t"}},
		{"zero burst", map[string]string{"RATE_LIMIT_BURST": "0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadWebConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadWebConfig_Prod(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("COOKIE_SAMESITE", "None")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := LoadWebConfig()
	require.NoError(t, err)
	assert.Equal(t, http.SameSiteNoneMode, cfg.SameSite())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadDevAPIConfig(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("GIFT_SUGGESTIONS", "livro,vinho")

	cfg, err := LoadDevAPIConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, []string{"livro", "vinho"}, cfg.GiftSuggestions)

	t.Setenv("APP_ENV", "release")
	_, err = LoadDevAPIConfig()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ANIVERSARIO_DOTENV_TEST=ok\n"), 0o600))
	t.Setenv("ANIVERSARIO_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("ANIVERSARIO_DOTENV_TEST"))

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "ok", os.Getenv("ANIVERSARIO_DOTENV_TEST"))
}
