package assessments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"healthrisk-backend/internal/risk"
	"healthrisk-backend/internal/shared/server/middleware"
	"healthrisk-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the assessments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches assessment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assessments/preview", h.preview)
	rg.GET("/assessments/samples", h.samples)
	rg.POST("/assessments", h.create)
	rg.GET("/assessments", h.list)
	rg.GET("/assessments/:id", h.get)
}

func (h *Handler) preview(c *gin.Context) {
	var req MetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	report, err := h.Svc.Preview(c.Request.Context(), req.Record())
	if err != nil {
		writeEngineError(c, err, "failed to evaluate metrics")
		return
	}
	c.Set(middleware.RiskLevelKey, report.Level.String())
	respond.OK(c, report)
}

func (h *Handler) samples(c *gin.Context) {
	respond.OK(c, risk.Samples())
}

func (h *Handler) create(c *gin.Context) {
	var req MetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	userID := middleware.UserIDFromContext(c)
	assessment, err := h.Svc.Create(c.Request.Context(), userID, req.Record())
	if err != nil {
		writeEngineError(c, err, "failed to store assessment")
		return
	}
	c.Set(middleware.AssessmentIDKey, assessment.ID)
	c.Set(middleware.RiskLevelKey, assessment.Level.String())
	respond.Created(c, assessment)
}

func (h *Handler) get(c *gin.Context) {
	assessmentID := c.Param("id")
	c.Set(middleware.AssessmentIDKey, assessmentID)

	assessment, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), assessmentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "assessment not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch assessment", nil)
		}
		return
	}
	respond.OK(c, assessment)
}

func (h *Handler) list(c *gin.Context) {
	limit := DefaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list assessments", nil)
		return
	}

	resp := make([]listItem, 0, len(items))
	for _, a := range items {
		resp = append(resp, listItem{
			ID:          a.ID,
			Score:       a.Score,
			Level:       a.Level,
			GeneratedAt: a.GeneratedAt.UTC().Format(time.RFC3339),
		})
	}
	respond.OK(c, resp)
}

func writeEngineError(c *gin.Context, err error, fallback string) {
	var verr *risk.ValidationError
	if errors.As(err, &verr) {
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), []respond.FieldError{{
			Field:  verr.Field,
			Rule:   "format",
			Reason: verr.Reason,
		}})
		return
	}
	if errors.Is(err, ErrUserRequired) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
}
