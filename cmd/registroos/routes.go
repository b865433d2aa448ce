package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"registro-os/http-server/auth/login"
	"registro-os/http-server/auth/session"
	generate_excel "registro-os/http-server/generate-report/generate-excel"
	getos "registro-os/http-server/ordem-servico/get"
	getpcp "registro-os/http-server/pcp/get"
	getpendencias "registro-os/http-server/pendencias/get"
	"registro-os/http-server/relatorio/dashboard"
	getrelatorio "registro-os/http-server/relatorio/get"
	"registro-os/internal/config"
	"registro-os/internal/lib/apperr"
	"registro-os/internal/metrics"
	"registro-os/internal/middleware/auth"
	excelservice "registro-os/internal/service/generate-excel"
	"registro-os/internal/service/relatorio"
	"registro-os/internal/storage/mysql"
)

type services struct {
	relatorio *relatorio.Service
	dashboard *relatorio.DashboardService
	excel     *excelservice.GenerateExcelService
	tokens    *auth.TokenManager
}

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, apperr.Response{Error: apperr.KindNotFound.String(), Message: "rota não encontrada"})
	})

	authenticator := auth.NewAuthenticator(log, svc.tokens, cfg.Auth)

	router.Route("/api/auth", func(r chi.Router) {
		r.With(httprate.LimitByIP(cfg.LoginRate.Requests, cfg.LoginRate.Window)).
			Post("/login", login.Login(log, storage, svc.tokens, cfg.Auth))
		r.Post("/logout", session.Logout(cfg.Auth))
		r.With(authenticator.Authenticate).Get("/me", session.Me(log))
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticator.Authenticate)
		r.Use(authenticator.RequireLevel(config.LevelUser))

		r.Get("/api/os", getos.GetOrdens(log, storage))
		r.Get("/api/os/{numero}/pendencias", getpendencias.GetPendencias(log, storage))
		r.Get("/api/pcp/programacoes", getpcp.GetProgramacoes(log, storage))

		r.Get("/api/relatorio-completo/{numero}", getrelatorio.GetRelatorioCompleto(log, svc.relatorio))
		r.Get("/api/relatorio-completo/{numero}/excel", generate_excel.GenerateRelatorioExcel(log, svc.excel, cfg.HTTPServer.ExportTimeout()))

		r.With(authenticator.RequireLevel(config.LevelSupervisor)).
			Get("/api/relatorios/dashboard", dashboard.GetDashboard(log, svc.dashboard))
	})

	router.With(auth.BasicAuth(cfg.Metrics.User, cfg.Metrics.Pass)).Handle("/metrics", promhttp.Handler())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	return router
}
