package pool

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/pgq-dev/pgq/runtime/types"
)

// AppFs is the filesystem config loading consults for .env files. Tests
// substitute an in-memory filesystem.
var AppFs = afero.NewOsFs()

// Config holds everything needed to build the read/write pools.
type Config struct {
	// ReadURL and WriteURL are lib/pq connection strings, either key=value
	// form or postgres:// URLs. The two pools may point at the same server.
	ReadURL  string
	WriteURL string

	// QueryLibPath is the directory Lib query sources resolve under.
	QueryLibPath string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LoadConfig reads pool configuration from the environment, loading a .env
// file first when one exists in the working directory. Environment keys are
// prefixed with PGQ_, e.g. PGQ_READ_URL, PGQ_WRITE_URL, PGQ_QUERY_LIB_PATH.
// Both pool URLs are required.
func LoadConfig() (Config, error) {
	if _, err := AppFs.Stat(".env"); err == nil {
		// A broken .env should not take the process down; explicit
		// environment variables still win.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetEnvPrefix("PGQ")
	v.AutomaticEnv()

	v.SetDefault("max_open_conns", 0)
	v.SetDefault("max_idle_conns", 0)
	v.SetDefault("conn_max_lifetime", time.Duration(0))

	cfg := Config{
		ReadURL:         v.GetString("read_url"),
		WriteURL:        v.GetString("write_url"),
		QueryLibPath:    v.GetString("query_lib_path"),
		MaxOpenConns:    v.GetInt("max_open_conns"),
		MaxIdleConns:    v.GetInt("max_idle_conns"),
		ConnMaxLifetime: v.GetDuration("conn_max_lifetime"),
	}

	if cfg.ReadURL == "" {
		return Config{}, types.Validation("PGQ_READ_URL is not set")
	}
	if cfg.WriteURL == "" {
		return Config{}, types.Validation("PGQ_WRITE_URL is not set")
	}
	return cfg, nil
}
