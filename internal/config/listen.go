package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultUnixSocketPath = "/tmp/nginx.socket"
	DefaultInitFilePath   = "/tmp/app-initialized"
	DefaultPort           = 8080
)

// NginxConfig controls hosting behind a local Nginx.
type NginxConfig struct {
	UseNginx       bool
	UseUnixSocket  bool
	UnixSocketPath string
	UseInitFile    bool
	InitFilePath   string
}

// Endpoint is where the HTTP server listens.
type Endpoint struct {
	Network string // "unix" or "tcp"
	Address string
	// InitFile is touched once the listener is bound; empty disables it.
	InitFile string
}

func (e Endpoint) String() string {
	return e.Network + "://" + e.Address
}

// ResolveListener picks the endpoint: a unix socket when proxied through
// Nginx with UseUnixSocket, else tcp on port, else tcp on DefaultPort.
// port is the raw PORT value.
func ResolveListener(nginx NginxConfig, port string) (Endpoint, error) {
	var ep Endpoint
	if nginx.UseInitFile {
		ep.InitFile = orDefault(nginx.InitFilePath, DefaultInitFilePath)
	}

	if nginx.UseNginx && nginx.UseUnixSocket {
		ep.Network = "unix"
		ep.Address = orDefault(nginx.UnixSocketPath, DefaultUnixSocketPath)
		return ep, nil
	}

	ep.Network = "tcp"
	port = strings.TrimPrefix(strings.TrimSpace(port), ":")
	if port == "" {
		ep.Address = ":" + strconv.Itoa(DefaultPort)
		return ep, nil
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return Endpoint{}, fmt.Errorf("invalid PORT %q", port)
	}
	ep.Address = ":" + strconv.Itoa(n)
	return ep, nil
}

// Listen binds the endpoint. A stale unix socket file is removed first and
// the new socket is made writable for the proxy.
func (e Endpoint) Listen() (net.Listener, error) {
	if e.Network == "unix" {
		if err := os.Remove(e.Address); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	}

	ln, err := net.Listen(e.Network, e.Address)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", e, err)
	}

	if e.Network == "unix" {
		if err := os.Chmod(e.Address, 0o666); err != nil {
			_ = ln.Close()
			return nil, fmt.Errorf("chmod socket: %w", err)
		}
	}
	return ln, nil
}

// SignalReady touches InitFile so Nginx knows the app accepts connections.
func (e Endpoint) SignalReady() error {
	if e.InitFile == "" {
		return nil
	}
	f, err := os.OpenFile(e.InitFile, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("create init file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(e.InitFile, now, now)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
