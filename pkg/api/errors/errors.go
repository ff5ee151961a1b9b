package errors

import (
	"net/http"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/labstack/echo/v4"
)

// User-facing messages
const (
	MsgCredentialMissing = "请输入卡密"
	MsgCredentialInvalid = "无效的卡密 (Invalid Card Key)"
	MsgQuotaExhausted    = "卡密次数已用完，请购买新的卡密"
	MsgTryAgainLater     = "服务器繁忙，请稍后再试"
	MsgConfiguration     = "Server API configuration error."
	MsgValidation        = "请求参数无效 (Invalid request data)"
	MsgNotFound          = "未找到 (Not Found)"
	MsgMethodNotAllowed  = "Method Not Allowed"
	MsgInternal          = "Internal Server Error"
)

// Classify maps an error to its HTTP status and response body.
// Internal details never reach the body.
func Classify(err error) (int, models.ErrorResponse) {
	switch {
	case domain.IsCredentialMissing(err):
		return http.StatusUnauthorized, body(domain.ErrCodeCredentialMissing, MsgCredentialMissing)
	case domain.IsCredentialInvalid(err):
		return http.StatusUnauthorized, body(domain.ErrCodeCredentialInvalid, MsgCredentialInvalid)
	case domain.IsQuotaExhausted(err):
		return http.StatusForbidden, body(domain.ErrCodeQuotaExhausted, MsgQuotaExhausted)
	case domain.IsValidation(err):
		return http.StatusBadRequest, body(domain.ErrCodeValidation, MsgValidation)
	case domain.IsNotFound(err):
		return http.StatusNotFound, body(domain.ErrCodeNotFound, MsgNotFound)
	case domain.IsUpstream(err):
		return http.StatusInternalServerError, body(domain.ErrCodeUpstream, MsgTryAgainLater)
	case domain.IsMalformedPayload(err):
		return http.StatusInternalServerError, body(domain.ErrCodeMalformedPayload, MsgTryAgainLater)
	case domain.IsConfiguration(err):
		return http.StatusInternalServerError, body(domain.ErrCodeConfiguration, MsgConfiguration)
	default:
		return http.StatusInternalServerError, body(domain.ErrCodeInternal, MsgInternal)
	}
}

func body(code, msg string) models.ErrorResponse {
	return models.ErrorResponse{Error: msg, Code: strings.ToLower(code)}
}

// Respond writes the classified error. Server-side failures are logged with
// their full cause and reported to Sentry when the hub is attached.
func Respond(c echo.Context, log logger.Logger, err error) error {
	status, resp := Classify(err)

	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed",
				"path", c.Request().URL.Path,
				"code", resp.Code,
				"error", err,
			)
		}
		if hub := sentryecho.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	} else if log != nil {
		log.Debug("request rejected", "path", c.Request().URL.Path, "code", resp.Code)
	}

	return c.JSON(status, resp)
}

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, log logger.Logger, err error) error {
	if log != nil {
		log.Warn("validation error", "path", c.Request().URL.Path, "error", err)
	}
	return c.JSON(http.StatusBadRequest, body(domain.ErrCodeValidation, MsgValidation))
}

// MethodNotAllowedError returns the plain 405 body used by the chat endpoint
func MethodNotAllowedError(c echo.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Error: MsgMethodNotAllowed})
}
