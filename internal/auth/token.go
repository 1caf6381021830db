package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified content of a session token.
type Claims struct {
	UserID   uint
	IssuedAt time.Time
}

func SignToken(userID uint, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func VerifyToken(tokenString, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("token subject: %w", jwt.ErrTokenInvalidClaims)
	}
	iat, ok := mapClaims["iat"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("token issue time: %w", jwt.ErrTokenInvalidClaims)
	}

	return Claims{
		UserID:   uint(sub),
		IssuedAt: time.Unix(int64(iat), 0),
	}, nil
}
