package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the JWT claims embedded in a session token.
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}
