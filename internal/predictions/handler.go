package predictions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthrisk-backend/internal/shared/server/middleware"
	"healthrisk-backend/internal/shared/server/respond"
	"healthrisk-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predict", h.predict)
}

func (h *Handler) predict(c *gin.Context) {
	var req PatientData
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	prediction, err := h.Svc.Predict(c.Request.Context(), req.Patient())
	if err != nil {
		telemetry.Error("prediction.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "prediction failed", nil)
		return
	}
	c.Set(middleware.RiskLevelKey, prediction.Risk)
	respond.OK(c, prediction)
}
