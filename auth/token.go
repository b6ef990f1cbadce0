package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ngongtopro/love-story-chat/domain"
)

// Claims is the subset of the access token payload the client cares about.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// ParseClaims decodes an access token WITHOUT checking its signature or expiry.
// The client cannot verify tokens; the service does that. The claims are only
// used to describe the principal.
func ParseClaims(accessToken string) (*Claims, error) {
	var claims Claims
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	return &claims, nil
}

// PrincipalFromToken builds a best-effort principal. username wins over the
// token's own claim when the caller knows it (it came from the login form).
func PrincipalFromToken(accessToken, username string) *domain.Principal {
	principal := &domain.Principal{Username: username}
	claims, err := ParseClaims(accessToken)
	if err != nil {
		return principal
	}
	principal.UserID = domain.ParticipantID(claims.UserID)
	if principal.Username == "" {
		principal.Username = claims.Username
	}
	return principal
}
