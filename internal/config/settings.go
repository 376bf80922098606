// Package config loads service settings and derives the database connection
// and the listening endpoint from them.
//
// Settings are flat, case-insensitive keys with ":" as the section separator
// ("Database:ConnectionString"). Sources are layered, later wins:
//
//	appsettings.json
//	appsettings.<env>.json
//	.env (outside production)
//	process environment ("Database__ConnectionString")
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Settings is an immutable layered key/value view.
type Settings struct {
	values map[string]string
	env    string
}

// NewSettings builds Settings from explicit values. Keys are normalized.
func NewSettings(values map[string]string) *Settings {
	s := &Settings{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[normalizeKey(k)] = v
	}
	s.env = environmentName(s.values)
	return s
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// Dir holds appsettings*.json and .env. Empty means the working directory.
	Dir string
	// Environ is the process environment in KEY=VALUE form; nil means os.Environ().
	Environ []string
}

// Load reads every settings source and layers them.
func Load(opts LoadOptions) (*Settings, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	envValues := parseEnviron(environ)

	values := make(map[string]string)
	if err := mergeJSONFile(values, filepath.Join(opts.Dir, "appsettings.json")); err != nil {
		return nil, err
	}

	// The environment is fixed here: the process value wins over
	// appsettings.json, and later sources cannot change it.
	env := environmentName(values)
	if strings.TrimSpace(envValues["app_env"]) != "" {
		env = environmentName(envValues)
	}
	if err := mergeJSONFile(values, filepath.Join(opts.Dir, "appsettings."+env+".json")); err != nil {
		return nil, err
	}

	if env != EnvProduction {
		dotenv, err := godotenv.Read(filepath.Join(opts.Dir, ".env"))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
		for k, v := range dotenv {
			values[normalizeKey(k)] = v
		}
	}

	for k, v := range envValues {
		values[k] = v
	}
	values["app_env"] = env

	return &Settings{values: values, env: env}, nil
}

// Environment returns APP_ENV lowercased, "development" when unset.
func (s *Settings) Environment() string { return s.env }

// IsProduction reports whether the service runs in production.
func (s *Settings) IsProduction() bool { return s.env == EnvProduction }

// IsDevelopment reports whether the service runs in development.
func (s *Settings) IsDevelopment() bool { return s.env == EnvDevelopment }

// Lookup returns the value for key and whether it was set.
func (s *Settings) Lookup(key string) (string, bool) {
	v, ok := s.values[normalizeKey(key)]
	return v, ok
}

// Get returns the value for key or "".
func (s *Settings) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// GetOr returns the value for key, or def when unset or empty.
func (s *Settings) GetOr(key, def string) string {
	if v := s.Get(key); v != "" {
		return v
	}
	return def
}

// Bool parses key as a boolean. Unset or unparsable values yield def.
func (s *Settings) Bool(key string, def bool) bool {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(k), "__", ":"))
}

func environmentName(values map[string]string) string {
	if env := strings.ToLower(strings.TrimSpace(values["app_env"])); env != "" {
		return env
	}
	return EnvDevelopment
}

func parseEnviron(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		values[normalizeKey(k)] = v
	}
	return values
}

func mergeJSONFile(dst map[string]string, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	flatten(dst, "", doc)
	return nil
}

// flatten writes nested objects as "a:b" keys and arrays as "a:0", "a:1".
func flatten(dst map[string]string, prefix string, v any) {
	join := func(k string) string {
		if prefix == "" {
			return normalizeKey(k)
		}
		return prefix + ":" + normalizeKey(k)
	}

	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			flatten(dst, join(k), child)
		}
	case []any:
		for i, child := range val {
			flatten(dst, join(strconv.Itoa(i)), child)
		}
	case nil:
		dst[prefix] = ""
	case string:
		dst[prefix] = val
	case bool:
		dst[prefix] = strconv.FormatBool(val)
	case float64:
		dst[prefix] = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		dst[prefix] = fmt.Sprint(val)
	}
}
