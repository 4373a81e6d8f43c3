package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthrisk-backend/internal/shared/server/middleware"
	"healthrisk-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// loginRequest accepts OAuth2 password-form fields or a JSON body.
type loginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (r loginRequest) identifier() string {
	if v := strings.TrimSpace(r.Email); v != "" {
		return v
	}
	return strings.TrimSpace(r.Username)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.signup)
	rg.POST("/login", h.login)
	rg.GET("/users/me", h.me)
	rg.GET("/me", h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	user, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond.Error(c, http.StatusBadRequest, "email_taken", "Email already registered", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		return
	}
	respond.Created(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if req.identifier() == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request validation failed", []respond.FieldError{{
			Field: "username",
			Rule:  "required",
		}})
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.identifier(), req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Incorrect email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}
	respond.OK(c, token)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	resp := gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
	if user.PictureURL != "" {
		resp["pictureUrl"] = user.PictureURL
	}
	respond.OK(c, resp)
}
