package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "catalog/internal/core/context"
)

// Config describes the token issuer.
type Config struct {
	// Authority is the issuer URL without a trailing slash. When set it is
	// required as the iss claim and used for key discovery.
	Authority string
	// SigningKey switches validation to HS256 with this shared secret.
	SigningKey string
	// Audience, when set, must appear in the aud claim.
	Audience string
	// HTTPClient fetches the discovery document.
	HTTPClient *http.Client
	Leeway     time.Duration
}

// Validator checks bearer tokens.
type Validator struct {
	cfg    Config
	keys   *keySource
	parser *jwt.Parser
}

// NewValidator creates a validator. Without a SigningKey an Authority is
// required to discover RSA keys. ctx bounds background key refreshes.
func NewValidator(ctx context.Context, cfg Config) (*Validator, error) {
	if cfg.SigningKey == "" && cfg.Authority == "" {
		return nil, errors.New("oauth: Authorization:Authority or Authorization:SigningKey is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Leeway == 0 {
		cfg.Leeway = 30 * time.Second
	}

	opts := []jwt.ParserOption{
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.SigningKey != "" {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))
	}
	if cfg.Authority != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Authority))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	v := &Validator{cfg: cfg, parser: jwt.NewParser(opts...)}
	if cfg.SigningKey == "" {
		v.keys = newKeySource(ctx, cfg.Authority, cfg.HTTPClient)
	}
	return v, nil
}

// ValidateToken verifies the signature and registered claims and returns the
// caller's principal.
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (*appctx.Principal, error) {
	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(v.cfg.SigningKey), nil
	}
	if v.keys != nil {
		kf, err := v.keys.Keyfunc(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve signing keys: %w", err)
		}
		keyFunc = kf
	}

	claims := &Claims{}
	if _, err := v.parser.ParseWithClaims(tokenString, claims, keyFunc); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	return &appctx.Principal{
		Subject:  claims.Subject,
		ClientID: claims.ClientID,
		Scopes:   claims.Scope,
	}, nil
}
