package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// schemeRe matches an RFC 3986 URI scheme.
var schemeRe = regexp.MustCompile(`^[a-z][a-z0-9+.\-]*$`)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Links struct {
		// Scheme is the app's custom URL scheme, without "://".
		Scheme string
		// Host is the universal-link host links are built on.
		Host string
		// AllowedHosts are the hosts whose https links are parsed. Defaults
		// to Host.
		AllowedHosts []string
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads config from environment (WISAW_ prefix, optionally seeded from a
// .env file) and optional wisaw-links.yaml.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("WISAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("wisaw-links")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "file:wisaw-links.db")
	v.SetDefault("links.scheme", "wisaw")
	v.SetDefault("links.host", "link.wisaw.com")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Links.Scheme = strings.ToLower(strings.TrimSuffix(v.GetString("links.scheme"), "://"))
	cfg.Links.Host = v.GetString("links.host")
	cfg.Links.AllowedHosts = splitList(v.GetString("links.allowed_hosts"))
	if len(cfg.Links.AllowedHosts) == 0 && cfg.Links.Host != "" {
		cfg.Links.AllowedHosts = []string{cfg.Links.Host}
	}
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("WISAW_DB_DRIVER must be sqlite3, mysql or postgres, got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("WISAW_DB_DSN is required")
	}
	if !schemeRe.MatchString(cfg.Links.Scheme) {
		return nil, fmt.Errorf("invalid WISAW_LINKS_SCHEME %q", cfg.Links.Scheme)
	}
	if cfg.Links.Host == "" {
		return nil, fmt.Errorf("WISAW_LINKS_HOST is required")
	}

	return cfg, nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
