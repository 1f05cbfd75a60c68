// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	cookies   *CookieJar
	validator *validator.Validate
}

func NewHandler(service *Service, cookies *CookieJar) *Handler {
	return &Handler{
		service:   service,
		cookies:   cookies,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /auth plus the legacy GET /user alias for the
// current user. loginLimiter throttles credential guessing.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	loginLimiter, requireAuth func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)
		r.With(loginLimiter).Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.With(requireAuth).Get("/me", h.GetMe)
	})

	r.With(requireAuth).Get("/user", h.GetMe)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailure(err))
		return
	}

	user, token, err := h.service.Login(
		r.Context(),
		req,
		r.UserAgent(),
		extractIPAddress(r),
	)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(
				w,
				core.UnauthorizedError("invalid email or password"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if err := h.cookies.Issue(w, r, token); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toUserResponse(user))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(w, core.ValidationFailure(err))
		return
	}

	user, token, err := h.service.Register(
		r.Context(),
		req,
		r.UserAgent(),
		extractIPAddress(r),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			core.JSONError(
				w,
				core.ValidationError("confirmPassword", "passwords don't match"),
			)
		case errors.Is(err, ErrEmailExists):
			core.JSONError(w, core.DuplicateError("email"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	if err := h.cookies.Issue(w, r, token); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, toUserResponse(user))
}

// Logout always answers 200 and expires the cookie, whether or not a live
// session was attached.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), h.cookies.Token(r)); err != nil {
		core.InternalServerError(w, err)
		return
	}

	if err := h.cookies.Clear(w, r); err != nil {
		slog.WarnContext(r.Context(), "clear session cookie", "error", err)
	}

	core.OK(w, MessageResponse{Message: "logged out"})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toUserResponse(user))
}

func extractIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
