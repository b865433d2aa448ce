package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"registro-os/internal/config"
	"registro-os/internal/lib/apperr"
	"registro-os/internal/middleware/auth"
)

type MeResponse struct {
	UserID         int64     `json:"id"`
	Email          string    `json:"email"`
	Nome           string    `json:"nome"`
	PrivilegeLevel string    `json:"privilege_level"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Logout expira o cookie; o token em si continua válido até o exp.
func Logout(cfg config.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func Me(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			log.Warn("me without claims", slog.String("op", "handlers.auth.session.Me"))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, apperr.Response{Error: "UNAUTHORIZED", Message: "autenticação necessária"})
			return
		}

		resp := MeResponse{
			UserID:         claims.UserID,
			Email:          claims.Email,
			Nome:           claims.Nome,
			PrivilegeLevel: claims.PrivilegeLevel,
		}
		if claims.ExpiresAt != nil {
			resp.ExpiresAt = claims.ExpiresAt.Time
		}

		render.JSON(w, r, resp)
	}
}
