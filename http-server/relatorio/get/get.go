package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/lib/validation"
	"registro-os/internal/service/relatorio"
)

type RelatorioCompleto interface {
	RelatorioCompleto(ctx context.Context, numero string) (*relatorio.RelatorioCompleto, error)
}

type Request struct {
	Numero string `json:"numero" validate:"required,max=32"`
}

func GetRelatorioCompleto(log *slog.Logger, rel RelatorioCompleto) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relatorio.get.GetRelatorioCompleto"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req := Request{Numero: chi.URLParam(r, "numero")}
		if err := validation.Struct(req); err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		report, err := rel.RelatorioCompleto(ctx, req.Numero)
		if err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		log.Debug("relatorio gerado",
			slog.String("os", req.Numero),
			slog.String("status_geral", report.ResumoGerencial.StatusGeral),
		)

		render.JSON(w, r, report)
	}
}
