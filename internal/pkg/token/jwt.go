package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims resume o que o front end consegue ler de um JWT emitido pela API.
// A assinatura NÃO é verificada: a chave fica no backend. Use apenas para exibição e logs.
type Claims struct {
	Subject   string
	UserID    string
	ExpiresAt time.Time // Zero quando o token não tem "exp"
}

// Expired informa se "exp" já passou. Tokens sem "exp" nunca expiram aqui.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// customClaims aceita os nomes de id mais comuns usados por backends Node.
type customClaims struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Inspect decodifica o token sem validar a assinatura.
// Tokens opacos (não-JWT) retornam erro; quem chama deve tratar como "sem claims".
func Inspect(tokenString string) (Claims, error) {
	claims := &customClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return Claims{}, fmt.Errorf("token não é um JWT legível: %w", err)
	}

	out := Claims{Subject: claims.Subject, UserID: claims.UserID}
	if out.UserID == "" {
		out.UserID = claims.ID
	}
	if out.UserID == "" {
		out.UserID = claims.Subject
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
