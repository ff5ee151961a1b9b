package handlers

import (
	"fmt"
	"net/http"
	"strings"

	apierrors "github.com/jordanlanch/namereport/pkg/api/errors"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/jordanlanch/namereport/pkg/metrics"
	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/jordanlanch/namereport/pkg/report"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler renders a displayed recommendation for download
type ReportHandler struct {
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(m *metrics.Metrics, log logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ReportHandler{metrics: m, logger: log}
}

// Render godoc
// @Summary Render a report
// @Description Renders one recommendation as HTML, Markdown or XLSX. No card key is needed and no use is spent.
// @Tags Reports
// @Accept json
// @Produce html
// @Param format query string false "html (default), markdown or xlsx"
// @Param request body models.NameRecommendation true "Recommendation as returned by /api/v1/names"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/reports [post]
func (h *ReportHandler) Render(c echo.Context) error {
	format := strings.ToLower(strings.TrimSpace(c.QueryParam("format")))
	if format == "" {
		format = report.FormatHTML
	}

	var rec models.NameRecommendation
	if err := c.Bind(&rec); err != nil {
		return apierrors.ValidationError(c, h.logger, err)
	}
	if err := report.ValidateRecommendation(&rec); err != nil {
		return apierrors.ValidationError(c, h.logger, err)
	}

	switch format {
	case report.FormatHTML:
		page, err := report.RenderHTML(&rec)
		if err != nil {
			return apierrors.Respond(c, h.logger, err)
		}
		h.metrics.RecordReport(format)
		return c.HTML(http.StatusOK, page)

	case report.FormatMarkdown:
		h.metrics.RecordReport(format)
		return c.Blob(http.StatusOK, "text/markdown; charset=UTF-8", []byte(report.RenderMarkdown(&rec)))

	case report.FormatXLSX:
		data, err := report.RenderXLSX(&rec)
		if err != nil {
			return apierrors.Respond(c, h.logger, err)
		}
		h.metrics.RecordReport(format)
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="name-report-%s.xlsx"`, strings.ToLower(ulid.Make().String())))
		return c.Blob(http.StatusOK, xlsxContentType, data)

	default:
		return apierrors.ValidationError(c, h.logger, fmt.Errorf("unsupported report format %q", format))
	}
}
