package utils

import (
	"errors"
	"fmt"
	"time"

	"soulspace/config"

	"github.com/golang-jwt/jwt"
)

// IssueActorToken signs an access token carrying the authenticated actor's
// id and role ("user" or "provider").
func IssueActorToken(actorID, role string, ttl time.Duration) (string, error) {
	if actorID == "" || role == "" {
		return "", errors.New("actor id and role are required")
	}
	claims := jwt.MapClaims{
		"sub":  actorID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseActorToken validates a token and extracts the actor id and role.
func ParseActorToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	actorID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if actorID == "" || role == "" {
		return "", "", errors.New("token missing actor claims")
	}
	return actorID, role, nil
}
