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

const defaultLimit = 50

type ListOS interface {
	ListOS(ctx context.Context, f storage.FiltroOS) (*storage.ListaOS, error)
}

type Request struct {
	Status  string `json:"status" validate:"max=50"`
	IDSetor int64  `json:"setor_id" validate:"gte=0"`
	Search  string `json:"search" validate:"max=100"`
	Limit   int    `json:"limit" validate:"gte=1,lte=200"`
	Offset  int    `json:"offset" validate:"gte=0"`
}

type Response struct {
	Itens  []storage.OrdemServico `json:"itens"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

func GetOrdens(log *slog.Logger, list ListOS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ordem_servico.get.GetOrdens"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req, err := parseRequest(r)
		if err != nil {
			apperr.Respond(w, r, log, err)
			return
		}
		if err := validation.Struct(req); err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lista, err := list.ListOS(ctx, storage.FiltroOS{
			Status:  req.Status,
			IDSetor: req.IDSetor,
			Search:  req.Search,
			Limit:   req.Limit,
			Offset:  req.Offset,
		})
		if err != nil {
			apperr.Respond(w, r, log, apperr.Internal(err))
			return
		}

		render.JSON(w, r, Response{
			Itens:  lista.Itens,
			Total:  lista.Total,
			Limit:  req.Limit,
			Offset: req.Offset,
		})
	}
}

func parseRequest(r *http.Request) (Request, error) {
	req := Request{
		Status: strings.ToUpper(query.String(r, "status")),
		Search: query.String(r, "search"),
	}

	var err error
	if req.IDSetor, err = query.Int64(r, "setor_id"); err != nil {
		return req, err
	}
	if req.Limit, err = query.Int(r, "limit", defaultLimit); err != nil {
		return req, err
	}
	if req.Offset, err = query.Int(r, "offset", 0); err != nil {
		return req, err
	}

	return req, nil
}
