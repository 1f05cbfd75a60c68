// AngelaMos | 2026
// handler.go

package appointment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", h.Book)
		r.With(adminOnly).Get("/", h.List)
	})
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailure(err))
		return
	}

	a, err := h.service.Book(
		r.Context(),
		middleware.GetIdentity(r.Context()),
		req,
	)
	if err != nil {
		if errors.Is(err, ErrUnknownService) {
			core.JSONError(
				w,
				core.ValidationError("serviceId", "service does not exist"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToAppointmentResponse(a))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAppointmentResponseList(list))
}
