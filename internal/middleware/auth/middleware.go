package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"registro-os/internal/config"
	"registro-os/internal/lib/apperr"
)

type ctxKey struct{}

// Privileges é a ordem dos níveis vinda da configuração; índice maior tem mais acesso.
type Privileges struct {
	rank map[string]int
}

func NewPrivileges(levels []string) Privileges {
	rank := make(map[string]int, len(levels))
	for i, l := range levels {
		rank[strings.ToUpper(strings.TrimSpace(l))] = i
	}
	return Privileges{rank: rank}
}

func (p Privileges) Known(level string) bool {
	_, ok := p.rank[strings.ToUpper(level)]
	return ok
}

// Allows informa se have alcança min. Níveis desconhecidos nunca passam.
func (p Privileges) Allows(have, min string) bool {
	h, ok := p.rank[strings.ToUpper(have)]
	if !ok {
		return false
	}
	m, ok := p.rank[strings.ToUpper(min)]
	if !ok {
		return false
	}
	return h >= m
}

type Authenticator struct {
	log        *slog.Logger
	tokens     *TokenManager
	privileges Privileges
	cookieName string
}

func NewAuthenticator(log *slog.Logger, tokens *TokenManager, cfg config.Auth) *Authenticator {
	return &Authenticator{
		log:        log,
		tokens:     tokens,
		privileges: NewPrivileges(cfg.PrivilegeLevels),
		cookieName: cfg.CookieName,
	}
}

// Authenticate aceita o cookie HttpOnly e, como alternativa, o header Authorization: Bearer.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "middleware.auth.Authenticate"

		token := a.tokenFromRequest(r)
		if token == "" {
			deny(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "autenticação necessária")
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			a.log.Warn("invalid token",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			)
			deny(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "token inválido ou expirado")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireLevel deve ficar depois de Authenticate. Nível mínimo fora da configuração é erro de montagem das rotas.
func (a *Authenticator) RequireLevel(min string) func(http.Handler) http.Handler {
	if !a.privileges.Known(min) {
		panic(fmt.Sprintf("auth: unknown privilege level %q", min))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				deny(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "autenticação necessária")
				return
			}

			if !a.privileges.Allows(claims.PrivilegeLevel, min) {
				deny(w, r, http.StatusForbidden, "FORBIDDEN", "privilégio insuficiente")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *Authenticator) tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(a.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}

	return ""
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok && claims != nil
}

func deny(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, apperr.Response{Error: code, Message: message})
}
