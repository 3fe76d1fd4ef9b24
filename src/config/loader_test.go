package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Server.Port)
	assert.Equal(t, "nextglide", cfg.Mongo.Database)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowsAny())
	assert.Equal(t, "log", cfg.Mail.Provider)
	assert.Equal(t, "info@nextglidesolutions.com", cfg.Mail.FromEmail)
	assert.Equal(t, "NextGlide Solutions", cfg.Mail.FromName)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CatalogTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "site")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CACHE_CATALOG_TTL", "30s")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "site", cfg.Mongo.Database)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.CORS.AllowsAny())
	assert.Equal(t, 30*time.Second, cfg.Cache.CatalogTTL)
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing mongo uri",
			env:  map[string]string{"MONGO_URI": ""},
			want: "mongo.uri is required",
		},
		{
			name: "smtp without credentials",
			env:  map[string]string{"MONGO_URI": "mongodb://x", "MAIL_PROVIDER": "smtp"},
			want: "smtp.host",
		},
		{
			name: "unknown storage",
			env:  map[string]string{"MONGO_URI": "mongodb://x", "STORAGE_PROVIDER": "ftp"},
			want: "unknown storage.provider",
		},
		{
			name: "s3 without bucket",
			env:  map[string]string{"MONGO_URI": "mongodb://x", "STORAGE_PROVIDER": "s3"},
			want: "storage.bucket is required",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := load(viper.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
