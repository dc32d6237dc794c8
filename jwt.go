package main

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	tokenIssuer = "kisansathi"
	tokenTTL    = 24 * time.Hour
)

// authClaims carries only registered claims; the subject is the user's
// ObjectID hex.
type authClaims struct {
	jwt.RegisteredClaims
}

// signJWT issues an HS256 token for the user, valid for tokenTTL.
func signJWT(secret string, userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseJWT validates the token (HMAC only, issuer and expiry enforced) and
// returns the subject as an ObjectID.
func parseJWT(secret, tokenStr string) (primitive.ObjectID, error) {
	var claims authClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return primitive.NilObjectID, errors.New("invalid token")
	}
	return primitive.ObjectIDFromHex(claims.Subject)
}
