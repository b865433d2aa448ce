package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"registro-os/internal/config"
	"registro-os/internal/lib/apperr"
	"registro-os/internal/lib/validation"
	"registro-os/internal/storage"
)

type Usuarios interface {
	GetUsuarioByEmail(ctx context.Context, email string) (*storage.Usuario, error)
}

type TokenIssuer interface {
	Generate(userID int64, email, nome, privilegeLevel string) (string, error)
	TTL() time.Duration
}

var compareHash = bcrypt.CompareHashAndPassword

// hashFicticio iguala o custo de e-mail inexistente ao de senha errada.
var hashFicticio, _ = bcrypt.GenerateFromPassword([]byte("registro-os"), bcrypt.DefaultCost)

type Request struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Senha string `json:"senha" validate:"required,max=72"`
}

type Response struct {
	Usuario   storage.Usuario `json:"usuario"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Login confere a senha com bcrypt e grava o JWT no cookie HttpOnly.
// E-mail inexistente, senha errada e usuário inativo recebem a mesma resposta.
func Login(log *slog.Logger, usuarios Usuarios, tokens TokenIssuer, cfg config.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.Login"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			apperr.Respond(w, r, log, apperr.Validation("corpo da requisição inválido", nil))
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if err := validation.Struct(req); err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		u, err := usuarios.GetUsuarioByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				_ = compareHash(hashFicticio, []byte(req.Senha))
				log.Info("login rejected", slog.String("reason", "unknown email"))
				invalidCredentials(w, r)
				return
			}
			apperr.Respond(w, r, log, apperr.Internal(err))
			return
		}

		if err := compareHash([]byte(u.SenhaHash), []byte(req.Senha)); err != nil {
			log.Info("login rejected", slog.String("reason", "wrong password"), slog.Int64("user_id", u.ID))
			invalidCredentials(w, r)
			return
		}
		if !u.Ativo {
			log.Info("login rejected", slog.String("reason", "inactive user"), slog.Int64("user_id", u.ID))
			invalidCredentials(w, r)
			return
		}

		token, err := tokens.Generate(u.ID, u.Email, u.Nome, u.PrivilegeLevel)
		if err != nil {
			apperr.Respond(w, r, log, apperr.Internal(err))
			return
		}

		expiresAt := time.Now().Add(tokens.TTL())
		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			MaxAge:   int(tokens.TTL().Seconds()),
			HttpOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info("login ok", slog.Int64("user_id", u.ID), slog.String("privilege_level", u.PrivilegeLevel))

		render.JSON(w, r, Response{Usuario: *u, ExpiresAt: expiresAt})
	}
}

func invalidCredentials(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, apperr.Response{Error: "UNAUTHORIZED", Message: storage.ErrInvalidCredentials.Error()})
}
