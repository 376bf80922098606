// Package oauth validates bearer tokens issued by the OAuth2/OpenID Connect
// authority and turns them into request principals.
package oauth

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access token claims the service reads.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id,omitempty"`
	Scope    Scopes `json:"scope,omitempty"`
}

// Scopes decodes the scope claim, which authorities emit either as a space
// separated string or as an array of strings.
type Scopes []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scopes) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = strings.Fields(single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("scope claim: %w", err)
	}
	out := make([]string, 0, len(many))
	for _, v := range many {
		out = append(out, strings.Fields(v)...)
	}
	*s = out
	return nil
}
