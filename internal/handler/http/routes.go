// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-newsroom/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Post("/auth/password-reset/request", h.requestPasswordReset)
		r.Get("/auth/password-reset/{token}", h.checkPasswordResetToken)
		r.Post("/auth/password-reset/confirm", h.confirmPasswordReset)

		r.Get("/api/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/auth/me", h.me)
		r.Put("/auth/me", h.updateMe)

		r.With(requireRole(models.RoleAdmin)).Get("/api/admin/ping", h.adminPing)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
