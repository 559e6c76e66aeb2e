package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos de identidad del usuario.
// SecurityStamp permite invalidar credenciales emitidas antes de rotar el stamp del usuario.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	Name          string `json:"name,omitempty"`
	SecurityStamp string `json:"stamp"`
}

// Identity datos del usuario que viajan en el token.
type Identity struct {
	UserID        string
	UserName      string
	Name          string
	SecurityStamp string
}

// Generate genera un token JWT firmado (HS256) para la identidad dada.
func Generate(secret, issuer string, id Identity, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:        id.UserID,
		UserName:      id.UserName,
		Name:          id.Name,
		SecurityStamp: id.SecurityStamp,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID:        claims.UserID,
		UserName:      claims.UserName,
		Name:          claims.Name,
		SecurityStamp: claims.SecurityStamp,
	}, nil
}
