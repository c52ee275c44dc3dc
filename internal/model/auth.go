package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims are JWT claims for anonymous player tokens
type PlayerClaims struct {
	PlayerID string `json:"playerId"`
	jwt.RegisteredClaims
}

// AnonymousPlayerResponse is returned when a new anonymous player is issued
type AnonymousPlayerResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
}
