package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jordanlanch/namereport/config"
	apierrors "github.com/jordanlanch/namereport/pkg/api/errors"
	"github.com/jordanlanch/namereport/pkg/api/handlers"
	"github.com/jordanlanch/namereport/pkg/app"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
	custommiddleware "github.com/jordanlanch/namereport/pkg/middleware"
	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/jordanlanch/namereport/pkg/naming"
	"github.com/prometheus/client_golang/prometheus"
)

// chatHandler serves the chat contract behind API Gateway
type chatHandler struct {
	service *naming.Service
	logger  logger.Logger
}

func (h *chatHandler) handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodOptions:
		return respond(http.StatusOK, nil, ""), nil
	case http.MethodPost:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, nil, models.ErrorResponse{Error: apierrors.MsgMethodNotAllowed}), nil
	}

	body := request.Body
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return h.fail(domain.NewValidationError(err.Error())), nil
		}
		body = string(decoded)
	}

	var req models.ChatRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return h.fail(domain.NewValidationError(err.Error())), nil
	}

	res, err := h.service.Chat(ctx, naming.ChatInput{
		Message:           req.Message,
		CardCode:          req.CardCode,
		SystemInstruction: req.SystemInstruction,
	})
	if err != nil {
		return h.fail(err), nil
	}

	headers := map[string]string{handlers.HeaderRequestID: res.RequestID}
	if res.Remaining != nil {
		headers[handlers.HeaderQuotaRemaining] = strconv.FormatInt(*res.Remaining, 10)
	}
	return jsonResponse(http.StatusOK, headers, res.Response.Envelope), nil
}

func (h *chatHandler) fail(err error) events.APIGatewayProxyResponse {
	status, body := apierrors.Classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "code", body.Code, "error", err)
	}
	return jsonResponse(status, nil, body)
}

func jsonResponse(status int, headers map[string]string, v any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(v)
	if err != nil {
		return respond(http.StatusInternalServerError, nil, `{"error":"Internal Server Error"}`)
	}
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/json; charset=UTF-8"
	return respond(status, headers, string(data))
}

// respond adds the CORS headers every response carries
func respond(status int, headers map[string]string, body string) events.APIGatewayProxyResponse {
	cors := custommiddleware.DefaultCORSConfig()
	out := map[string]string{
		"Access-Control-Allow-Origin":      cors.AllowOrigin,
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Methods":     strings.Join(cors.AllowMethods, ","),
		"Access-Control-Allow-Headers":     strings.Join(cors.AllowHeaders, ", "),
	}
	for k, v := range headers {
		out[k] = v
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Headers: out, Body: body}
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := app.LoadSecrets(ctx, cfg, log); err != nil {
		log.Error("failed to load secrets", "backend", cfg.SecretsBackend, "error", err)
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg, log, prometheus.NewRegistry())
	if err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}

	h := &chatHandler{service: a.Naming, logger: log}
	lambda.Start(h.handle)
}
