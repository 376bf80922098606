package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

type discoveryDocument struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

// keySource resolves the authority's JWKS endpoint through OpenID discovery
// on first use and hands key lookups to keyfunc, which caches the set and
// refetches it for unknown kids. A failed discovery is retried on the next
// token.
type keySource struct {
	authority string
	client    *http.Client
	// ctx bounds the background JWKS refresh.
	ctx context.Context

	mu sync.Mutex
	kf keyfunc.Keyfunc
}

func newKeySource(ctx context.Context, authority string, client *http.Client) *keySource {
	return &keySource{authority: authority, client: client, ctx: ctx}
}

// Keyfunc returns the jwt.Keyfunc for tokens validated under ctx.
func (s *keySource) Keyfunc(ctx context.Context) (jwt.Keyfunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kf == nil {
		uri, err := s.discover(ctx)
		if err != nil {
			return nil, err
		}
		kf, err := keyfunc.NewDefaultCtx(s.ctx, []string{uri})
		if err != nil {
			return nil, fmt.Errorf("jwks %s: %w", uri, err)
		}
		s.kf = kf
	}
	return s.kf.KeyfuncCtx(ctx), nil
}

func (s *keySource) discover(ctx context.Context) (string, error) {
	url := s.authority + "/.well-known/openid-configuration"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openid discovery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openid discovery: GET %s: status %d", url, resp.StatusCode)
	}
	var doc discoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("openid discovery: %w", err)
	}
	if doc.JWKSURI == "" {
		return "", errors.New("openid discovery: jwks_uri missing")
	}
	return doc.JWKSURI, nil
}
