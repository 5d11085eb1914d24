package types

import "github.com/google/uuid"

// TokenClaims carries the identity encoded in a bearer token.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}
