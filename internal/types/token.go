package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a signed bearer token
type TokenClaims struct {
	jwt.RegisteredClaims
	EID int64 `json:"eid"`
}
