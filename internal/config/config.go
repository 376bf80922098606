package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is the typed view of Settings used by the composition root.
type Config struct {
	Environment string
	LogLevel    string

	Database      ConnectionDescriptor
	Authorization AuthorizationConfig
	Catalog       CatalogConfig
	Nginx         NginxConfig
	Listen        Endpoint

	BaseURL   string
	SpaURL    string
	GlobalURL string
	PathBase  string

	HTTPLogging         bool
	ResponseCompression bool
	// HTTPSPort enables HTTPS redirection and HSTS when non-zero.
	HTTPSPort int
}

// AuthorizationConfig describes the token issuer.
type AuthorizationConfig struct {
	Authority string
	// SigningKey is an HMAC secret; when set, JWKS discovery is skipped.
	SigningKey string
	Audience   string
}

// CatalogConfig holds the picture URL parts.
type CatalogConfig struct {
	Host   string
	ImgURL string
}

// FromSettings builds Config. The database connection is resolved only when
// resolveDB is true so tools that never touch the database can skip it.
func FromSettings(s *Settings, resolveDB bool) (*Config, error) {
	cfg := &Config{
		Environment: s.Environment(),
		LogLevel:    s.GetOr("LOG_LEVEL", "info"),
		Authorization: AuthorizationConfig{
			Authority:  strings.TrimRight(s.Get("Authorization:Authority"), "/"),
			SigningKey: s.Get("Authorization:SigningKey"),
			Audience:   s.Get("Authorization:Audience"),
		},
		Catalog: CatalogConfig{
			Host:   s.Get("Catalog:Host"),
			ImgURL: s.Get("Catalog:ImgUrl"),
		},
		Nginx: NginxConfig{
			UseNginx:       s.Bool("Nginx:UseNginx", false),
			UseUnixSocket:  s.Bool("Nginx:UseUnixSocket", false),
			UnixSocketPath: s.Get("Nginx:UnixSocketPath"),
			UseInitFile:    s.Bool("Nginx:UseInitFile", false),
			InitFilePath:   s.Get("Nginx:InitFilePath"),
		},
		BaseURL:             s.GetOr("App:BaseUrl", s.Get("BaseUrl")),
		SpaURL:              s.Get("SpaUrl"),
		GlobalURL:           s.Get("GlobalUrl"),
		PathBase:            normalizePathBase(s.Get("PathBase")),
		HTTPLogging:         s.Bool("App:HttpLogging", false),
		ResponseCompression: s.Bool("ResponseCompression", false),
	}

	if raw := strings.TrimSpace(s.Get("HTTPS_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid HTTPS_PORT %q", raw)
		}
		cfg.HTTPSPort = port
	}

	ep, err := ResolveListener(cfg.Nginx, s.Get("PORT"))
	if err != nil {
		return nil, err
	}
	cfg.Listen = ep

	if resolveDB {
		db, err := ResolveConnection(s)
		if err != nil {
			return nil, err
		}
		cfg.Database = db
	}
	return cfg, nil
}

// IsProduction reports whether Environment is production.
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// IsDevelopment reports whether Environment is development.
func (c *Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

// normalizePathBase returns "" or a path starting with "/" and without a
// trailing slash.
func normalizePathBase(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
