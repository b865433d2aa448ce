package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/storage"
)

type Dashboard interface {
	Dashboard(ctx context.Context) (*storage.Dashboard, error)
}

func GetDashboard(log *slog.Logger, svc Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.relatorio.dashboard.GetDashboard"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		d, err := svc.Dashboard(ctx)
		if err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		render.JSON(w, r, d)
	}
}
