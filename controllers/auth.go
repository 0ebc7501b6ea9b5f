package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dgrijalva/jwt-go"

	"citypark/util"
)

var errUnauthorized = errors.New("you are not authorized")

func jwtSecret() []byte {
	secret := util.GoDotEnvVariable("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	return []byte(secret)
}

// userIDFromRequest validates the bearer token and returns the account id in
// its claims.
func userIDFromRequest(r *http.Request) (string, error) {
	tokenString := r.Header.Get("Authorization")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errUnauthorized
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", errUnauthorized
	}
	return id, nil
}
