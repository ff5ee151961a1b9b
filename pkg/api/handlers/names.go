package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/jordanlanch/namereport/pkg/api/errors"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/jordanlanch/namereport/pkg/naming"
	"github.com/labstack/echo/v4"
)

// HeaderQuotaRemaining reports uses left on a metered card key
const HeaderQuotaRemaining = "X-Quota-Remaining"

// HeaderRequestID echoes the per-call request id
const HeaderRequestID = "X-Request-ID"

// NameHandler handles name generation requests
type NameHandler struct {
	service *naming.Service
	logger  logger.Logger
}

// NewNameHandler creates a new name handler
func NewNameHandler(service *naming.Service, log logger.Logger) *NameHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &NameHandler{
		service: service,
		logger:  log,
	}
}

// Chat godoc
// @Summary Raw chat completion
// @Description Checks the card key, spends one use and forwards the prompt to the model. Returns the provider completion envelope unchanged.
// @Tags Names
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Prompt and card key"
// @Success 200 {object} map[string]interface{} "Completion envelope"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "Card key missing or invalid"
// @Failure 403 {object} models.ErrorResponse "Card key has no uses left"
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/chat [post]
func (h *NameHandler) Chat(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return apierrors.MethodNotAllowedError(c)
	}

	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, h.logger, err)
	}

	res, err := h.service.Chat(c.Request().Context(), naming.ChatInput{
		Message:           req.Message,
		CardCode:          req.CardCode,
		SystemInstruction: req.SystemInstruction,
	})
	if err != nil {
		return apierrors.Respond(c, h.logger, err)
	}

	setGateHeaders(c, res.RequestID, res.Remaining)
	return c.JSON(http.StatusOK, res.Response.Envelope)
}

// Generate godoc
// @Summary Generate a name report
// @Description Builds the prompt from the questionnaire, spends one use and returns the parsed report.
// @Tags Names
// @Accept json
// @Produce json
// @Param request body models.UserPreferences true "Questionnaire"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/names [post]
func (h *NameHandler) Generate(c echo.Context) error {
	var prefs models.UserPreferences
	if err := c.Bind(&prefs); err != nil {
		return apierrors.ValidationError(c, h.logger, err)
	}

	res, err := h.service.Generate(c.Request().Context(), prefs)
	if err != nil {
		return apierrors.Respond(c, h.logger, err)
	}

	setGateHeaders(c, res.RequestID, res.Remaining)
	return c.JSON(http.StatusOK, models.GenerateResponse{
		NameResponse: res.Names,
		RequestID:    res.RequestID,
		Remaining:    res.Remaining,
	})
}

func setGateHeaders(c echo.Context, requestID string, remaining *int64) {
	h := c.Response().Header()
	if requestID != "" {
		h.Set(HeaderRequestID, requestID)
	}
	if remaining != nil {
		h.Set(HeaderQuotaRemaining, strconv.FormatInt(*remaining, 10))
	}
}
