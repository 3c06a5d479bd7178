package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"velora/internal/token"
)

// TokenVerifier is implemented by the token service.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// CustomerCookieName is the signed-cookie fallback the storefront sets at
// login; /customer/me accepts it when no Authorization header is present.
const CustomerCookieName = "velora_token"

// AdminCookieName is the httpOnly cookie the admin panel login sets.
const AdminCookieName = "accessToken"

type contextKeyUserID struct{}
type contextKeyRole struct{}

// GetUserID retrieves the authenticated principal id from the context.
func GetUserID(ctx context.Context) string {
	id, ok := ctx.Value(contextKeyUserID{}).(string)
	if !ok {
		return ""
	}
	return id
}

// GetRole retrieves the authenticated principal's role claim, if any.
func GetRole(ctx context.Context) string {
	role, ok := ctx.Value(contextKeyRole{}).(string)
	if !ok {
		return ""
	}
	return role
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, code, reason, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := `{"error":"` + code + `","message":"` + message + `"}`
	if reason != "" {
		body = `{"error":"` + code + `","reason":"` + reason + `","message":"` + message + `"}`
	}
	_, _ = w.Write([]byte(body))
}

// RequireAuth guards customer endpoints. It takes the bearer token from
// the Authorization header, falling back to the storefront cookie when
// allowCookie is set.
func RequireAuth(verifier TokenVerifier, allowCookie bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" && allowCookie {
				if c, err := r.Cookie(CustomerCookieName); err == nil {
					tok = c.Value
				}
			}
			if tok == "" {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"request_id", GetRequestID(r.Context()),
				)
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "", "Yetkisiz. Lütfen giriş yapın.")
				return
			}

			claims, err := verifier.Verify(tok)
			if err != nil || claims.Subject == "" {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "", "Geçersiz oturum")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUserID{}, claims.Subject)
			ctx = context.WithValue(ctx, contextKeyRole{}, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminRoles is the allow-list of role claims accepted by the admin gate.
var adminRoles = map[string]struct{}{
	"admin":      {},
	"superadmin": {},
	"owner":      {},
}

func isAdminRole(role string) bool {
	_, ok := adminRoles[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// RequireAdmin guards the admin surface. The token comes from the
// Authorization header or the panel's httpOnly cookie. Three distinct
// outcomes, each with a machine-readable reason: no token (401
// TOKEN_MISSING), invalid token (401 TOKEN_INVALID), valid token
// without an admin-equivalent role (403 NOT_ADMIN).
func RequireAdmin(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				if c, err := r.Cookie(AdminCookieName); err == nil {
					tok = c.Value
				}
			}
			if tok == "" {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "TOKEN_MISSING", "Yetkisiz. Admin girişi gerekli.")
				return
			}

			claims, err := verifier.Verify(tok)
			if err != nil {
				logger.WarnContext(r.Context(), "admin gate - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "TOKEN_INVALID", "Yetkisiz. Admin girişi gerekli.")
				return
			}

			if !isAdminRole(claims.Role) {
				logger.WarnContext(r.Context(), "admin gate - insufficient role",
					"role", claims.Role,
					"request_id", GetRequestID(r.Context()),
				)
				writeAuthError(w, http.StatusForbidden, "forbidden", "NOT_ADMIN", "Yetkisiz. Admin yetkisi yok.")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUserID{}, claims.Subject)
			ctx = context.WithValue(ctx, contextKeyRole{}, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
