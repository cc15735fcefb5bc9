package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const ClaimUserID = "user_id"

func GenerateSessionToken(userID uuid.UUID, secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		ClaimUserID: userID.String(),
		"iat":       time.Now().Unix(),
		"exp":       expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken verifies signature and expiry and returns the bound user
// id together with the token's expiry.
func ParseSessionToken(tokenString, secret string) (uuid.UUID, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, time.Time{}, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, time.Time{}, errors.New("invalid token claims")
	}
	return UserIDFromClaims(claims)
}

func UserIDFromClaims(claims jwt.MapClaims) (uuid.UUID, time.Time, error) {
	raw, ok := claims[ClaimUserID].(string)
	if !ok {
		return uuid.Nil, time.Time{}, errors.New("invalid user id in token")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, time.Time{}, errors.New("invalid user id in token")
	}
	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}
	return userID, expiresAt, nil
}

// TokenHash is what gets stored for revoked tokens; the raw token never is.
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
