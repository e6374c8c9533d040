// AngelaMos | 2026
// handler.go

package siteprofile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/wedding-backend/internal/asset"
	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	routes := func(r chi.Router) {
		r.Get("/", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Put("/", h.Upsert)
			r.Delete("/", h.Delete)
		})
	}

	r.Route("/site-profile", routes)
	// path used by the existing admin pages
	r.Route("/website-profile", routes)
}

type emptyProfileResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.JSON(w, http.StatusNotFound, emptyProfileResponse{
				Message: "No profile found",
			})
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, profile)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, err := core.FormValues(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), ContentFromValues(vals), formUploads(r))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, "Website profile created successfully", id)
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	vals, err := core.FormValues(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	if err := h.service.Upsert(r.Context(), ContentFromValues(vals), formUploads(r)); err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Message(w, "Website profile updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context()); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "website profile")
			return
		}
		core.JSONError(w, r, err)
		return
	}

	core.Message(w, "Website profile deleted successfully")
}

func formUploads(r *http.Request) Uploads {
	uploads := make(Uploads)
	for _, field := range ImageFields {
		if up := asset.FormFile(r, field); up != nil {
			uploads[field] = up
		}
	}
	return uploads
}
