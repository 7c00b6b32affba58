package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the JWT payload for both access and refresh tokens.
type AppClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
