package config

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveListener(t *testing.T) {
	tests := []struct {
		name  string
		nginx NginxConfig
		port  string
		want  Endpoint
	}{
		{
			name: "fallback",
			want: Endpoint{Network: "tcp", Address: ":8080"},
		},
		{
			name: "port from env",
			port: "5000",
			want: Endpoint{Network: "tcp", Address: ":5000"},
		},
		{
			name:  "nginx socket default path",
			nginx: NginxConfig{UseNginx: true, UseUnixSocket: true},
			port:  "5000",
			want:  Endpoint{Network: "unix", Address: DefaultUnixSocketPath},
		},
		{
			name:  "nginx without socket uses port",
			nginx: NginxConfig{UseNginx: true, UseInitFile: true, InitFilePath: "/run/ready"},
			port:  ":7000",
			want:  Endpoint{Network: "tcp", Address: ":7000", InitFile: "/run/ready"},
		},
		{
			name:  "socket flag alone is ignored",
			nginx: NginxConfig{UseUnixSocket: true, UnixSocketPath: "/x.sock", UseInitFile: true},
			want:  Endpoint{Network: "tcp", Address: ":8080", InitFile: DefaultInitFilePath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveListener(tt.nginx, tt.port)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveListener_InvalidPort(t *testing.T) {
	for _, port := range []string{"http", "0", "70000"} {
		_, err := ResolveListener(NginxConfig{}, port)
		assert.Error(t, err, port)
	}
}

func TestEndpoint_ListenUnixReplacesStaleSocket(t *testing.T) {
	dir := t.TempDir()
	sock := filepath.Join(dir, "app.sock")
	require.NoError(t, os.WriteFile(sock, nil, 0o600))

	ep := Endpoint{Network: "unix", Address: sock, InitFile: filepath.Join(dir, "app-initialized")}
	ln, err := ep.Listen()
	require.NoError(t, err)
	defer ln.Close()

	info, err := os.Stat(sock)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o666), info.Mode().Perm())

	conn, err := net.Dial("unix", sock)
	require.NoError(t, err)
	_ = conn.Close()

	require.NoError(t, ep.SignalReady())
	_, err = os.Stat(ep.InitFile)
	assert.NoError(t, err)
}

func TestEndpoint_SignalReadyDisabled(t *testing.T) {
	assert.NoError(t, Endpoint{}.SignalReady())
}
