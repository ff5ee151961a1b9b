package naming

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jordanlanch/namereport/pkg/ai/llm"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/jordanlanch/namereport/pkg/metrics"
	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/jordanlanch/namereport/pkg/prompt"
	"github.com/jordanlanch/namereport/pkg/quota"
	"github.com/jordanlanch/namereport/pkg/report"
	"golang.org/x/text/unicode/norm"
)

// Endpoint labels for metrics
const (
	EndpointChat  = "chat"
	EndpointNames = "names"
)

// DefaultTemperature is used when Options leaves it unset
const DefaultTemperature float32 = 1.1

// Options tunes the generation calls
type Options struct {
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Service runs one generation per call: gate, invoke, parse
type Service struct {
	policy    quota.AccessPolicy
	client    llm.LLMClient
	metrics   *metrics.Metrics
	logger    logger.Logger
	validator *validator.Validate
	opts      Options
}

// NewService creates a naming service. client may be nil when the provider
// is not configured; every generation then fails with a configuration error.
func NewService(policy quota.AccessPolicy, client llm.LLMClient, m *metrics.Metrics, log logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	return &Service{
		policy:    policy,
		client:    client,
		metrics:   m,
		logger:    log,
		validator: validator.New(),
		opts:      opts,
	}
}

// ChatInput is the raw chat contract
type ChatInput struct {
	Message           string
	CardCode          string
	SystemInstruction string
}

// ChatResult carries the provider envelope and the gate outcome
type ChatResult struct {
	Response  *llm.ChatResponse
	RequestID string
	Remaining *int64
}

// GenerateResult is a parsed name report
type GenerateResult struct {
	Names     *models.NameResponse
	RequestID string
	Remaining *int64
}

// PolicyName returns the active access policy
func (s *Service) PolicyName() string {
	return s.policy.Name()
}

// Chat forwards a caller-built prompt and returns the raw completion
func (s *Service) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	if strings.TrimSpace(in.Message) == "" {
		s.metrics.RecordGeneration(EndpointChat, "invalid")
		return nil, domain.NewValidationError("message is required")
	}

	system := in.SystemInstruction
	if strings.TrimSpace(system) == "" {
		system = prompt.DefaultSystemInstruction
	}

	resp, requestID, remaining, err := s.invoke(ctx, EndpointChat, in.CardCode, prompt.Instructions{
		System: system,
		User:   in.Message,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordGeneration(EndpointChat, "success")
	return &ChatResult{Response: resp, RequestID: requestID, Remaining: remaining}, nil
}

// Generate builds the prompt from a questionnaire and returns the parsed report
func (s *Service) Generate(ctx context.Context, prefs models.UserPreferences) (*GenerateResult, error) {
	// Fold full-width and compatibility forms typed by IMEs
	prefs.Surname = strings.TrimSpace(norm.NFKC.String(prefs.Surname))
	if err := s.validator.Struct(prefs); err != nil {
		s.metrics.RecordGeneration(EndpointNames, "invalid")
		return nil, domain.NewValidationError(err.Error())
	}

	resp, requestID, remaining, err := s.invoke(ctx, EndpointNames, prefs.CardKey, prompt.Build(prefs))
	if err != nil {
		return nil, err
	}

	names, err := report.Parse(resp.Content)
	if err != nil {
		s.logger.Warn("model output rejected",
			"request_id", requestID,
			"finish_reason", resp.FinishReason,
			"error", err,
		)
		s.metrics.RecordGeneration(EndpointNames, "malformed")
		return nil, err
	}

	s.metrics.RecordGeneration(EndpointNames, "success")
	return &GenerateResult{Names: names, RequestID: requestID, Remaining: remaining}, nil
}

// invoke runs the gate then the model call. The configuration check comes
// first so a misconfigured server never spends uses.
func (s *Service) invoke(ctx context.Context, endpoint, token string, in prompt.Instructions) (*llm.ChatResponse, string, *int64, error) {
	if s.client == nil {
		s.metrics.RecordGeneration(endpoint, "error")
		return nil, "", nil, domain.NewConfigurationError("LLM provider is not configured")
	}

	log := s.logger.With("endpoint", endpoint, "policy", s.policy.Name(), "card", quota.Fingerprint(strings.TrimSpace(token)))

	grant, err := s.policy.Authorize(ctx, token)
	s.metrics.RecordAuthorization(s.policy.Name(), authorizationResult(err))
	if err != nil {
		log.Info("authorization denied", "code", domain.GetErrorCode(err))
		s.metrics.RecordGeneration(endpoint, "denied")
		return nil, "", nil, err
	}

	var remaining *int64
	if !grant.Unlimited {
		left := grant.Remaining
		remaining = &left
	}

	requestID := uuid.NewString()
	ctx = llm.WithRequestID(ctx, requestID)
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: in.System},
			{Role: "user", Content: in.User},
		},
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
		JSONMode:    true,
	})
	duration := time.Since(start)
	s.metrics.RecordLLMRequest(s.client.Provider(), err == nil, duration)

	if err != nil {
		log.Error("generation failed", "request_id", requestID, "duration", duration, "error", err)
		outcome := "upstream_error"
		if domain.IsMalformedPayload(err) {
			outcome = "malformed"
		}
		s.metrics.RecordGeneration(endpoint, outcome)
		return nil, requestID, remaining, err
	}

	log.Info("generation completed",
		"request_id", requestID,
		"provider", s.client.Provider(),
		"duration", duration,
		"tokens", resp.TokensUsed,
	)
	return resp, requestID, remaining, nil
}

// Remaining reports the uses left on a card key without spending one
func (s *Service) Remaining(ctx context.Context, token string) (*models.CardStatusResponse, error) {
	metered, ok := s.policy.(*quota.MeteredTokenPolicy)
	if !ok {
		return nil, domain.NewValidationError("card status requires the metered access policy")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.NewCredentialMissingError()
	}

	remaining, found, err := metered.Store().Get(ctx, token)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if !found {
		return nil, domain.NewNotFoundError("card key")
	}
	if remaining < 0 {
		remaining = 0
	}

	return &models.CardStatusResponse{Remaining: remaining, Exhausted: remaining == 0}, nil
}

func authorizationResult(err error) string {
	switch {
	case err == nil:
		return "granted"
	case domain.IsCredentialMissing(err):
		return "missing"
	case domain.IsCredentialInvalid(err):
		return "invalid"
	case domain.IsQuotaExhausted(err):
		return "exhausted"
	default:
		return "error"
	}
}
