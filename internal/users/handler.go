package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

type Handler struct {
	Svc       *Service
	validator *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, validator: validator.New()}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/users/register", h.register)
	public.POST("/users/login", h.login)
	protected.GET("/users/data", h.data)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "Missing or invalid fields", validationDetails(err))
		return
	}

	session, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond.Error(c, http.StatusBadRequest, "user_exists", "User already exists", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register user", nil)
		return
	}
	respond.Created(c, gin.H{"message": "User created successfully", "token": session.Token, "user": session.User})
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "Missing or invalid fields", validationDetails(err))
		return
	}

	session, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusBadRequest, "invalid_credentials", "Invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Login successful", "token": session.Token, "user": session.User})
}

func (h *Handler) data(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, gin.H{"user": user})
}

func validationDetails(err error) []gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, gin.H{"field": fe.Field(), "tag": fe.Tag()})
	}
	return out
}
