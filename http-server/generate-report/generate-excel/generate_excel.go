package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"registro-os/internal/lib/apperr"
	"registro-os/internal/lib/validation"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, numero string) ([]byte, error)
}

type Request struct {
	Numero string `json:"numero" validate:"required,max=32"`
}

// GenerateRelatorioExcel usa timeout próprio, menor que o WriteTimeout do servidor.
func GenerateRelatorioExcel(log *slog.Logger, gen GenerateExcelHandler, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate_excel.GenerateRelatorioExcel"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req := Request{Numero: chi.URLParam(r, "numero")}
		if err := validation.Struct(req); err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, req.Numero)
		if err != nil {
			apperr.Respond(w, r, log, err)
			return
		}

		fileName := fmt.Sprintf("Relatorio_OS_%s_%s.xlsx", req.Numero, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", contentTypeXLSX)
		w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(fileName))
		w.Header().Set("Content-Length", strconv.Itoa(len(excelBytes)))
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel", slog.String("error", err.Error()))
		}
	}
}
