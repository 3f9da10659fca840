package utils

import (
	"github.com/go-chi/jwtauth"
)

// NewTokenAuth builds the process-wide JWT authority from the configured
// signing secret. The same instance backs both token issuance and the
// router's verification middleware.
func NewTokenAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// IssueToken signs a session token bound to the given username.
func IssueToken(tokenAuth *jwtauth.JWTAuth, username string) (string, error) {
	_, tokenString, err := tokenAuth.Encode(map[string]interface{}{"username": username})
	if err != nil {
		return "", err
	}
	return tokenString, nil
}
