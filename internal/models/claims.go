package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload carried on authenticated requests.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// Caller converts the claims into the ledger's caller identity.
func (c *UserClaims) Caller() Caller {
	return Caller{UserID: c.UserID, Role: c.Role}
}
