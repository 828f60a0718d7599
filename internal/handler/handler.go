package handler

import (
	"net/http"

	"canteen-connect/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	router *chi.Mux

	auth  *service.AuthService
	menu  *service.MenuService
	crowd *service.CrowdService
}

func NewHandler(auth *service.AuthService, menu *service.MenuService, crowd *service.CrowdService) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	h := &Handler{
		router: router,
		auth:   auth,
		menu:   menu,
		crowd:  crowd,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
	})

	h.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Route("/crowd", func(r chi.Router) {
			r.Post("/report", h.ReportCrowd)
			r.Get("/latest", h.LatestCrowd)
			r.Get("/history", h.CrowdHistory)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", h.ListMenu)

			r.Group(func(r chi.Router) {
				r.Use(h.Authenticate)
				r.With(h.RequireAdmin).Post("/", h.CreateMenuItem)
				r.With(h.RequireAdmin).Put("/{id}", h.UpdateMenuItem)
				r.With(h.RequireAdmin).Delete("/{id}", h.DeleteMenuItem)
				r.Post("/{id}/rate", h.RateMenuItem)
			})
		})

		r.Get("/dashboard", h.Dashboard)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
