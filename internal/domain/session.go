package domain

import "github.com/golang-jwt/jwt/v5"

// Claims é o conteúdo do token de sessão do painel
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session é devolvida ao cliente após o login
type Session struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}
