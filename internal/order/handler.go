// AngelaMos | 2026
// handler.go

package order

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

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
	orderLimiter func(http.Handler) http.Handler,
) {
	r.Route("/orders", func(r chi.Router) {
		r.With(orderLimiter).Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, orders)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.URLParamID(r, "id")
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	core.OK(w, o)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, err := core.FormValues(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), createInput(vals))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.Created(w, "Order created successfully", id)
}

// Update changes only the status when the body carries a status and no
// customer_name. Anything else is a full update.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	vals, err := core.FormValues(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	id, err := core.ParseID(vals.Get("id"))
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	status := core.FirstValue(vals, "status")
	if status != "" && core.FirstValue(vals, "customer_name") == "" {
		if err := h.service.UpdateStatus(r.Context(), id, status); err != nil {
			writeError(w, r, err)
			return
		}
		core.Message(w, "Order status updated successfully")
		return
	}

	if err := h.service.Update(r.Context(), id, UpdateOrderInput{
		CreateOrderInput: createInput(vals),
		Status:           status,
	}); err != nil {
		writeError(w, r, err)
		return
	}

	core.Message(w, "Order updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.QueryID(r)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.Message(w, "Order deleted successfully")
}

func createInput(vals url.Values) CreateOrderInput {
	return CreateOrderInput{
		PackageID:    core.FirstValue(vals, "package_id"),
		CustomerName: core.FirstValue(vals, "customer_name"),
		PhoneNumber:  core.FirstValue(vals, "phone_number"),
		Email:        core.FirstValue(vals, "email"),
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := core.AsAppError(err); !ok && errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "order")
		return
	}
	core.JSONError(w, r, err)
}
