package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/lib/validation"
	"registro-os/internal/storage"
)

type Pendencias interface {
	GetOSByNumero(ctx context.Context, numero string) (*storage.OrdemServico, error)
	ListPendenciasByOS(ctx context.Context, idOS int64, status string) ([]storage.Pendencia, error)
}

type Request struct {
	Numero string `json:"numero" validate:"required,max=32"`
	Status string `json:"status" validate:"omitempty,oneof=ABERTA FECHADA"`
}

type Response struct {
	NumeroOS   string              `json:"os_numero"`
	Pendencias []storage.Pendencia `json:"pendencias"`
}

func GetPendencias(log *slog.Logger, p Pendencias) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pendencias.get.GetPendencias"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req := Request{
			Numero: chi.URLParam(r, "numero"),
			Status: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))),
		}
		if err := validation.Struct(req); err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ordem, err := p.GetOSByNumero(ctx, req.Numero)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				apperr.Respond(w, r, log, apperr.NotFound("OS "+req.Numero+" não encontrada", err))
				return
			}
			apperr.Respond(w, r, log, apperr.Internal(err))
			return
		}

		pendencias, err := p.ListPendenciasByOS(ctx, ordem.ID, req.Status)
		if err != nil {
			apperr.Respond(w, r, log, apperr.Internal(err))
			return
		}

		render.JSON(w, r, Response{NumeroOS: ordem.Numero, Pendencias: pendencias})
	}
}
