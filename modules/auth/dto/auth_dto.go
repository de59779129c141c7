package dto

import "time"

// TokenRequest optionally narrows the Graph scopes to exchange for
type TokenRequest struct {
	Scopes []string `json:"scopes,omitempty"`
}

// TokenResponse is the result of the on-behalf-of exchange
type TokenResponse struct {
	AccessToken string     `json:"accessToken"`
	ExpiresOn   *time.Time `json:"expiresOn,omitempty"`
	Scopes      []string   `json:"scopes,omitempty"`
	Cached      bool       `json:"cached,omitempty"`
}
