package report

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/models"
)

var codeFence = regexp.MustCompile("```json\\n?|\\n?```")

var validate = validator.New()

// StripCodeFences removes optional markdown code fences around the model output
func StripCodeFences(s string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(s, ""))
}

// Parse decodes model output into a NameResponse and checks its shape.
// Any failure is a malformed upstream payload.
func Parse(content string) (*models.NameResponse, error) {
	cleaned := StripCodeFences(content)
	if cleaned == "" {
		return nil, domain.NewMalformedPayloadError("model output is empty", nil)
	}

	var resp models.NameResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, domain.NewMalformedPayloadError("model output is not valid JSON", err)
	}

	if err := validate.Struct(resp); err != nil {
		return nil, domain.NewMalformedPayloadError("model output does not match the report schema", err)
	}

	return &resp, nil
}

// ValidateRecommendation checks a single recommendation supplied by a client
func ValidateRecommendation(rec *models.NameRecommendation) error {
	if rec == nil {
		return domain.NewValidationError("recommendation is required")
	}
	if err := validate.Struct(rec); err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}

// First returns the first (and only) recommendation
func First(resp *models.NameResponse) *models.NameRecommendation {
	if resp == nil || len(resp.Names) == 0 {
		return nil
	}
	return &resp.Names[0]
}
