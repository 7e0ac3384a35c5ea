package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"mediahub/internal/httputil"
	"mediahub/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// AuthUserKey is the context key for the authenticated identity
	AuthUserKey contextKey = "auth_user"
)

// AuthUser is the identity extracted from a verified access token.
// Handlers pass it down explicitly; services never reach back into the
// request context for it.
type AuthUser struct {
	ID       int64
	Email    string
	Username string
}

// AuthMiddleware creates a middleware that validates JWT tokens.
// Checks Authorization header first (for mobile), then falls back to
// cookie (for web).
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				cookie, err := r.Cookie("access_token")
				if err == nil && cookie.Value != "" {
					tokenString = cookie.Value
				}
			}

			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil {
				if strings.Contains(err.Error(), "expired") {
					httputil.WriteUnauthorizedWithCode(w, model.CodeTokenExpired, "Access token has expired")
					return
				}
				httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Invalid authentication token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Invalid authentication token")
				return
			}

			user, ok := userFromClaims(claims)
			if !ok {
				httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), AuthUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFromClaims builds the identity from the sub/email/username claims.
func userFromClaims(claims jwt.MapClaims) (AuthUser, bool) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return AuthUser{}, false
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return AuthUser{}, false
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	return AuthUser{ID: id, Email: email, Username: username}, true
}

// GetUserFromContext extracts the authenticated identity from the
// request context. Returns false when the request did not pass through
// AuthMiddleware.
func GetUserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(AuthUserKey).(AuthUser)
	return user, ok
}
