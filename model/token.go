package model

// TokenKind selects the secret and lifetime a token is signed with.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)
