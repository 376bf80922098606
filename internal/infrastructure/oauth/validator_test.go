package oauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "catalog-test-signing-key-0123456789"

func hmacToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func baseClaims(iss string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":       iss,
		"sub":       "alice",
		"client_id": "catalogswaggerui",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
}

func TestValidateToken_HMACScopeForms(t *testing.T) {
	v, err := NewValidator(context.Background(), Config{Authority: "http://identity", SigningKey: testSecret})
	require.NoError(t, err)

	for name, scope := range map[string]any{
		"string": "catalog catalog.bff",
		"array":  []string{"catalog", "catalog.bff"},
	} {
		t.Run(name, func(t *testing.T) {
			claims := baseClaims("http://identity")
			claims["scope"] = scope

			p, err := v.ValidateToken(context.Background(), hmacToken(t, claims))
			require.NoError(t, err)
			assert.Equal(t, "alice", p.Subject)
			assert.Equal(t, "catalogswaggerui", p.ClientID)
			assert.True(t, p.HasScope("catalog"))
			assert.True(t, p.HasScope("catalog.bff"))
		})
	}
}

func TestValidateToken_Rejections(t *testing.T) {
	v, err := NewValidator(context.Background(), Config{Authority: "http://identity", SigningKey: testSecret, Audience: "catalog"})
	require.NoError(t, err)

	expired := baseClaims("http://identity")
	expired["aud"] = "catalog"
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongIssuer := baseClaims("http://elsewhere")
	wrongIssuer["aud"] = "catalog"

	wrongAudience := baseClaims("http://identity")
	wrongAudience["aud"] = "basket"

	noExpiry := baseClaims("http://identity")
	noExpiry["aud"] = "catalog"
	delete(noExpiry, "exp")

	for name, claims := range map[string]jwt.MapClaims{
		"expired":        expired,
		"wrong issuer":   wrongIssuer,
		"wrong audience": wrongAudience,
		"no expiry":      noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.ValidateToken(context.Background(), hmacToken(t, claims))
			assert.Error(t, err)
		})
	}

	_, err = v.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestNewValidator_RequiresIssuerOrKey(t *testing.T) {
	_, err := NewValidator(context.Background(), Config{})
	assert.Error(t, err)
}

func TestScopes_UnmarshalJSON(t *testing.T) {
	var s Scopes
	require.NoError(t, json.Unmarshal([]byte(`"  a  b "`), &s))
	assert.Equal(t, Scopes{"a", "b"}, s)

	require.NoError(t, json.Unmarshal([]byte(`["a", "b c"]`), &s))
	assert.Equal(t, Scopes{"a", "b", "c"}, s)

	assert.Error(t, json.Unmarshal([]byte(`42`), &s))
}

type fakeAuthority struct {
	server         *httptest.Server
	key            *rsa.PrivateKey
	kid            string
	discoveryDown  atomic.Bool
	discoveryCalls atomic.Int32
	jwksCalls      atomic.Int32
}

func newFakeAuthority(t *testing.T) *fakeAuthority {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fa := &fakeAuthority{key: key, kid: "k1"}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		if fa.discoveryDown.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fa.discoveryCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"issuer":   fa.server.URL,
			"jwks_uri": fa.server.URL + "/.well-known/openid-configuration/jwks",
		})
	})
	mux.HandleFunc("/.well-known/openid-configuration/jwks", func(w http.ResponseWriter, r *http.Request) {
		fa.jwksCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kid": fa.kid,
				"kty": "RSA",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	})
	fa.server = httptest.NewServer(mux)
	t.Cleanup(fa.server.Close)
	return fa
}

func (fa *fakeAuthority) token(t *testing.T, kid string) string {
	t.Helper()
	claims := baseClaims(fa.server.URL)
	claims["scope"] = []string{"catalog.bff"}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(fa.key)
	require.NoError(t, err)
	return s
}

func TestValidateToken_JWKS(t *testing.T) {
	fa := newFakeAuthority(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	v, err := NewValidator(ctx, Config{Authority: fa.server.URL, HTTPClient: fa.server.Client()})
	require.NoError(t, err)
	assert.Zero(t, fa.discoveryCalls.Load())

	p, err := v.ValidateToken(ctx, fa.token(t, "k1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog.bff"}, p.Scopes)

	_, err = v.ValidateToken(ctx, fa.token(t, "k1"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, fa.discoveryCalls.Load())
	assert.EqualValues(t, 1, fa.jwksCalls.Load())

	_, err = v.ValidateToken(ctx, fa.token(t, "rotated"))
	assert.Error(t, err)
	assert.EqualValues(t, 1, fa.discoveryCalls.Load())
}

func TestValidateToken_DiscoveryRetriedAfterFailure(t *testing.T) {
	fa := newFakeAuthority(t)
	fa.discoveryDown.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	v, err := NewValidator(ctx, Config{Authority: fa.server.URL, HTTPClient: fa.server.Client()})
	require.NoError(t, err)

	_, err = v.ValidateToken(ctx, fa.token(t, "k1"))
	assert.ErrorContains(t, err, "openid discovery")

	fa.discoveryDown.Store(false)
	_, err = v.ValidateToken(ctx, fa.token(t, "k1"))
	assert.NoError(t, err)
}

func TestValidateToken_JWKSRejectsHMAC(t *testing.T) {
	fa := newFakeAuthority(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	v, err := NewValidator(ctx, Config{Authority: fa.server.URL, HTTPClient: fa.server.Client()})
	require.NoError(t, err)

	_, err = v.ValidateToken(ctx, hmacToken(t, baseClaims(fa.server.URL)))
	assert.Error(t, err)
}
