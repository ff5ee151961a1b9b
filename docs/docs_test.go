package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

func TestReadDoc_ListsRoutes(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths       map[string]any `json:"paths"`
		Definitions map[string]any `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "Name Report API", parsed.Info.Title)
	for _, path := range []string{"/api/chat", "/api/v1/names", "/api/v1/reports", "/api/v1/cards/{code}", "/api/v1/styles", "/health"} {
		assert.Contains(t, parsed.Paths, path)
	}
	assert.Contains(t, parsed.Definitions, "models.NameRecommendation")
	assert.Contains(t, parsed.Definitions, "models.ErrorResponse")
}

func TestSwaggerHandler_ServesDoc(t *testing.T) {
	e := echo.New()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/api/v1/names"`)
}
