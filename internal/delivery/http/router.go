package http //nolint:revive // directory-based package name, imported with alias

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Heartbeat("/healthz"))

	r.Post("/api/GenerateQRBill", h.HandleGenerateBill)
	r.Post("/api/qrbill", h.HandleGenerateBill)

	return r
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
