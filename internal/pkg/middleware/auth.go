package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Chaves de contexto devem ser não-exportadas e de um tipo único.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
	RequestIDKey
)

// SessionChecker define o contrato de sessão necessário para o middleware.
type SessionChecker interface {
	IsLoggedIn() bool
	Claims() (token.Claims, bool)
}

// RequireLogin bloqueia rotas protegidas quando não há sessão.
// Páginas HTML são redirecionadas para /login; rotas /v1/ recebem 401 em JSON.
func RequireLogin(sess SessionChecker) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Verificar a sessão local
			if !sess.IsLoggedIn() {
				if strings.HasPrefix(r.URL.Path, "/v1/") {
					writeUnauthorized(w, apperror.NewUnauthorizedError("Login required."))
					return
				}
				target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			// 2. Anexar as claims legíveis do token (quando for um JWT)
			ctx := r.Context()
			if claims, ok := sess.Claims(); ok {
				ctx = context.WithValue(ctx, UserClaimsKey, claims)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(token.Claims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	})
}
