package handlers

import (
	"context"
	"net/http"
	"time"

	apierrors "github.com/jordanlanch/namereport/pkg/api/errors"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/jordanlanch/namereport/pkg/naming"
	"github.com/jordanlanch/namereport/pkg/prompt"
	"github.com/labstack/echo/v4"
)

// CardHandler reports card key status
type CardHandler struct {
	service *naming.Service
	logger  logger.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(service *naming.Service, log logger.Logger) *CardHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &CardHandler{service: service, logger: log}
}

// Status godoc
// @Summary Card key status
// @Description Returns the uses left on a card key without spending one. Only available with the metered access policy.
// @Tags Cards
// @Produce json
// @Param code path string true "Card key"
// @Success 200 {object} models.CardStatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/cards/{code} [get]
func (h *CardHandler) Status(c echo.Context) error {
	status, err := h.service.Remaining(c.Request().Context(), c.Param("code"))
	if err != nil {
		return apierrors.Respond(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, status)
}

// ListStyles godoc
// @Summary List naming styles
// @Tags Names
// @Produce json
// @Success 200 {object} map[string]interface{} "Styles in form order"
// @Router /api/v1/styles [get]
func ListStyles(c echo.Context) error {
	styles := prompt.Styles()
	return c.JSON(http.StatusOK, map[string]any{
		"styles":  styles,
		"default": string(prompt.DefaultStyle),
		"total":   len(styles),
	})
}

// Pinger is a dependency the health check pings
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process and dependency health
type HealthHandler struct {
	store    Pinger
	policy   string
	provider string
}

// NewHealthHandler creates a health handler. store may be nil when no quota
// store is in use; provider is empty when the model is not configured.
func NewHealthHandler(store Pinger, policy, provider string) *HealthHandler {
	return &HealthHandler{store: store, policy: policy, provider: provider}
}

// Check godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	llmStatus := "configured"
	if h.provider == "" {
		llmStatus = "unconfigured"
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"policy": h.policy,
				"cache":  "down",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":   "healthy",
		"policy":   h.policy,
		"llm":      llmStatus,
		"provider": h.provider,
	})
}
