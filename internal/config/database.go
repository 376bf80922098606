package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const defaultPostgresPort = 5432

// ConnectionDescriptor is a parsed PostgreSQL connection.
type ConnectionDescriptor struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	// Options carries driver options such as sslmode.
	Options map[string]string
	// IncludeErrorDetail asks for verbose server error detail. Set outside production.
	IncludeErrorDetail bool
}

var errNoConnection = errors.New("no database connection configured: set Database:ConnectionString or Database:EnvVar")

// ResolveConnection picks the raw connection string and parses it. The
// variable named by Database:EnvVar wins when it holds a value; otherwise
// Database:ConnectionString is used.
func ResolveConnection(s *Settings) (ConnectionDescriptor, error) {
	raw := ""
	if name := strings.TrimSpace(s.Get("Database:EnvVar")); name != "" {
		raw = s.Get(name)
	}
	if strings.TrimSpace(raw) == "" {
		raw = s.Get("Database:ConnectionString")
	}
	if strings.TrimSpace(raw) == "" {
		return ConnectionDescriptor{}, errNoConnection
	}

	desc, err := ParseConnectionString(raw)
	if err != nil {
		return ConnectionDescriptor{}, err
	}
	desc.IncludeErrorDetail = !s.IsProduction()
	return desc, nil
}

// ParseConnectionString accepts a postgres:// or postgresql:// URI, or a
// semicolon separated keyword string.
func ParseConnectionString(raw string) (ConnectionDescriptor, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)

	var (
		desc ConnectionDescriptor
		err  error
	)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		desc, err = parseURI(raw)
	} else {
		desc, err = parseKeywords(raw)
	}
	if err != nil {
		return ConnectionDescriptor{}, err
	}

	if desc.Port == 0 {
		desc.Port = defaultPostgresPort
	}
	if desc.Host == "" {
		return ConnectionDescriptor{}, errors.New("connection string: missing host")
	}
	if desc.Database == "" {
		return ConnectionDescriptor{}, errors.New("connection string: missing database")
	}
	return desc, nil
}

func parseURI(raw string) (ConnectionDescriptor, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ConnectionDescriptor{}, fmt.Errorf("connection string: %w", err)
	}

	desc := ConnectionDescriptor{
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
	}
	if p := u.Port(); p != "" {
		if desc.Port, err = parsePort(p); err != nil {
			return ConnectionDescriptor{}, err
		}
	}
	if u.User != nil {
		desc.User = u.User.Username()
		desc.Password, _ = u.User.Password()
	}
	for k, vs := range u.Query() {
		if name, ok := driverOptions[strings.ToLower(k)]; ok && len(vs) > 0 {
			desc.setOption(name, vs[0])
		}
	}
	return desc, nil
}

var keywordAliases = map[string]string{
	"server":          "host",
	"host":            "host",
	"data source":     "host",
	"port":            "port",
	"database":        "database",
	"dbname":          "database",
	"initial catalog": "database",
	"uid":             "user",
	"user id":         "user",
	"userid":          "user",
	"user":            "user",
	"username":        "user",
	"password":        "password",
	"pwd":             "password",
}

// driverOptions maps accepted option spellings to pgx keywords.
var driverOptions = map[string]string{
	"sslmode":          "sslmode",
	"ssl mode":         "sslmode",
	"sslrootcert":      "sslrootcert",
	"connect_timeout":  "connect_timeout",
	"timeout":          "connect_timeout",
	"application_name": "application_name",
	"application name": "application_name",
	"search_path":      "search_path",
	"search path":      "search_path",
}

func parseKeywords(raw string) (ConnectionDescriptor, error) {
	var desc ConnectionDescriptor
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return ConnectionDescriptor{}, fmt.Errorf("connection string: malformed segment %q", part)
		}
		key := strings.Join(strings.Fields(strings.ToLower(k)), " ")
		v = strings.TrimSpace(v)

		if name, ok := driverOptions[key]; ok {
			desc.setOption(name, v)
			continue
		}
		switch keywordAliases[key] {
		case "host":
			desc.Host = v
		case "port":
			port, err := parsePort(v)
			if err != nil {
				return ConnectionDescriptor{}, err
			}
			desc.Port = port
		case "database":
			desc.Database = v
		case "user":
			desc.User = v
		case "password":
			desc.Password = v
		}
	}
	return desc, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("connection string: invalid port %q", s)
	}
	return port, nil
}

func (d *ConnectionDescriptor) setOption(name, value string) {
	if d.Options == nil {
		d.Options = make(map[string]string)
	}
	d.Options[name] = value
}

// String renders the keyword form
// "server=H;port=P;database=D;uid=U;password=W[;include error detail=true]".
func (d ConnectionDescriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "server=%s;port=%d;database=%s;uid=%s;password=%s",
		d.Host, d.Port, d.Database, d.User, d.Password)
	if d.IncludeErrorDetail {
		b.WriteString(";include error detail=true")
	}
	return b.String()
}

// Redacted renders String with the password masked, for logs.
func (d ConnectionDescriptor) Redacted() string {
	if d.Password != "" {
		d.Password = "***"
	}
	return d.String()
}

// DSN renders the descriptor as a pgx keyword/value connection string.
func (d ConnectionDescriptor) DSN() string {
	pairs := []string{
		"host=" + quoteDSN(d.Host),
		"port=" + strconv.Itoa(d.Port),
		"dbname=" + quoteDSN(d.Database),
	}
	if d.User != "" {
		pairs = append(pairs, "user="+quoteDSN(d.User))
	}
	if d.Password != "" {
		pairs = append(pairs, "password="+quoteDSN(d.Password))
	}

	keys := make([]string, 0, len(d.Options))
	for k := range d.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, k+"="+quoteDSN(d.Options[k]))
	}
	return strings.Join(pairs, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSN(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
