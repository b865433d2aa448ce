package get

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/lib/query"
	"registro-os/internal/lib/validation"
	"registro-os/internal/storage"
)

type Programacoes interface {
	ListProgramacoes(ctx context.Context, f storage.FiltroProgramacao) ([]storage.Programacao, error)
}

type Request struct {
	Status  string `json:"status" validate:"omitempty,oneof=PROGRAMADA EM_ANDAMENTO CONCLUIDA CANCELADA"`
	IDSetor int64  `json:"setor_id" validate:"gte=0"`
}

type Response struct {
	Programacoes []storage.Programacao `json:"programacoes"`
}

// GetProgramacoes lista a agenda do PCP. fim é inclusivo: fim=2025-03-10 cobre o dia 10 inteiro.
func GetProgramacoes(log *slog.Logger, p Programacoes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pcp.get.GetProgramacoes"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filtro, err := parseFiltro(r)
		if err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		programacoes, err := p.ListProgramacoes(ctx, filtro)
		if err != nil {
			apperr.Respond(w, r, log, apperr.Internal(err))
			return
		}

		render.JSON(w, r, Response{Programacoes: programacoes})
	}
}

func parseFiltro(r *http.Request) (storage.FiltroProgramacao, error) {
	var f storage.FiltroProgramacao

	inicio, err := query.Date(r, "inicio")
	if err != nil {
		return f, err
	}
	fim, err := query.Date(r, "fim")
	if err != nil {
		return f, err
	}
	if !inicio.IsZero() && !fim.IsZero() && fim.Before(inicio) {
		return f, apperr.Validation("fim: deve ser igual ou posterior a inicio", nil)
	}
	if !fim.IsZero() {
		fim = fim.AddDate(0, 0, 1)
	}

	req := Request{Status: strings.ToUpper(query.String(r, "status"))}
	if req.IDSetor, err = query.Int64(r, "setor_id"); err != nil {
		return f, err
	}
	if err := validation.Struct(req); err != nil {
		return f, err
	}

	return storage.FiltroProgramacao{
		Inicio:  inicio,
		Fim:     fim,
		Status:  req.Status,
		IDSetor: req.IDSetor,
	}, nil
}
