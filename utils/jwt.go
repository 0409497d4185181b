// utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Secret di-override dari ENV (JWT_SECRET) di main.
var JWTSecret = []byte("rahasia-koperasi")

func GenerateToken(userID uint, nama string, role string, koperasiID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     userID,
		"nama":        nama,
		"role":        role,
		"koperasi_id": koperasiID,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(JWTSecret)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode signing tidak dikenal")
		}
		return JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("token tidak valid")
}
