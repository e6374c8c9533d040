// AngelaMos | 2026
// handler.go

package catalog

import (
	"errors"
	"net/http"
	"net/url"

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
	r.Route("/packages", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, packages)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	pkg, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wedding package")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, pkg)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, err := core.FormValues(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	id, err := h.service.Create(
		r.Context(),
		packageInput(vals),
		packageImage(r),
	)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, "Wedding package created successfully", id)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	vals, err := core.FormValues(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	rawID := vals.Get("id")
	if rawID == "" {
		rawID = r.URL.Query().Get("id")
	}
	id, err := core.ParseID(rawID)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	if err := h.service.Update(
		r.Context(),
		id,
		packageInput(vals),
		packageImage(r),
	); err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Message(w, "Wedding package updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.QueryID(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Message(w, "Wedding package deleted successfully")
}

func packageInput(vals url.Values) PackageInput {
	return PackageInput{
		Name:        core.FirstValue(vals, "name", "package_name"),
		Description: core.FirstValue(vals, "description", "package_description"),
		Price:       core.FirstValue(vals, "price", "package_price"),
	}
}

func packageImage(r *http.Request) *asset.Upload {
	if up := asset.FormFile(r, "image"); up != nil {
		return up
	}
	return asset.FormFile(r, "package_image")
}
