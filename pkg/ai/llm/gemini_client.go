package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// GeminiClient calls Google Gemini and reshapes its answer into the same
// completion envelope the OpenAI-compatible client returns.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      logger.Logger
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, cfg Config, log logger.Logger) (*GeminiClient, error) {
	if cfg.Model == "" {
		cfg.Model = GeminiModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: NewHTTPClient(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	return &GeminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      log.With("provider", "gemini", "model", cfg.Model),
	}, nil
}

// Provider implements LLMClient
func (c *GeminiClient) Provider() string { return "gemini" }

// Chat implements LLMClient. In JSON mode the answer is constrained to the
// name report schema.
func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	contents, system := geminiContents(req.Messages)

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: system,
	}
	if temperature != 0 {
		genCfg.Temperature = genai.Ptr(temperature)
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}
	if maxTokens > 0 {
		genCfg.MaxOutputTokens = int32(maxTokens)
	}
	if req.JSONMode {
		genCfg.ResponseMIMEType = "application/json"
		genCfg.ResponseSchema = NameResponseSchema()
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error("generate content failed",
			"error", err,
			"duration_ms", duration.Milliseconds(),
			"request_id", RequestIDFromContext(ctx),
		)
		return nil, domain.NewUpstreamError(err)
	}

	content := resp.Text()
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewMalformedPayloadError("model response has no content", nil)
	}

	envelope := envelopeFromGemini(resp, c.model, content)
	c.logger.Info("generate content done",
		"tokens", envelope.Usage.TotalTokens,
		"duration_ms", duration.Milliseconds(),
		"request_id", RequestIDFromContext(ctx),
	)

	return &ChatResponse{
		Content:      content,
		Envelope:     envelope,
		TokensUsed:   envelope.Usage.TotalTokens,
		FinishReason: string(envelope.Choices[0].FinishReason),
	}, nil
}

// geminiContents splits chat messages into Gemini contents and a system instruction
func geminiContents(messages []ChatMessage) ([]*genai.Content, *genai.Content) {
	var (
		contents []*genai.Content
		system   []string
	)
	for _, m := range messages {
		switch m.Role {
		case openai.ChatMessageRoleSystem:
			system = append(system, m.Content)
		case openai.ChatMessageRoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) == 0 {
		return contents, nil
	}
	return contents, genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
}

// envelopeFromGemini builds an OpenAI-style completion envelope
func envelopeFromGemini(resp *genai.GenerateContentResponse, model, content string) openai.ChatCompletionResponse {
	finish := openai.FinishReasonStop
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		switch resp.Candidates[0].FinishReason {
		case genai.FinishReasonMaxTokens:
			finish = openai.FinishReasonLength
		case genai.FinishReasonSafety:
			finish = openai.FinishReasonContentFilter
		}
	}

	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}

	envelope := openai.ChatCompletionResponse{
		ID:      "gemini-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []openai.ChatCompletionChoice{{
			Index: 0,
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: content,
			},
			FinishReason: finish,
		}},
	}

	if u := resp.UsageMetadata; u != nil {
		envelope.Usage = openai.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	return envelope
}

func stringSchema() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func objectSchema(fields ...string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = stringSchema()
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: fields}
}

// NameResponseSchema is the structured-output schema for the name report
func NameResponseSchema() *genai.Schema {
	scoreFields := []string{"total", "sound", "shape", "meaning", "culture", "balance"}
	scores := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}, Required: scoreFields}
	for _, f := range scoreFields {
		scores.Properties[f] = &genai.Schema{Type: genai.TypeInteger}
	}

	recommendation := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"chinese_name": {Type: genai.TypeString, Description: "The suggested Chinese name"},
			"pinyin":       {Type: genai.TypeString, Description: "Pinyin with tone marks"},
			"scores":       scores,
			"mbti":         objectSchema("type", "desc"),
			"bazi":         objectSchema("zodiac", "zodiac_desc", "constellation", "constellation_desc", "wuxing", "wuxing_desc"),
			"analysis":     objectSchema("sound_analysis", "shape_analysis", "meaning_analysis", "culture_analysis", "balance_analysis"),
			"nickname":     objectSchema("name", "meaning"),
			"english_name": objectSchema("name", "meaning"),
			"summary":      stringSchema(),
			"tags":         {Type: genai.TypeArray, Items: stringSchema()},
		},
		Required: []string{
			"chinese_name", "pinyin", "scores", "mbti", "bazi", "analysis",
			"nickname", "english_name", "summary", "tags",
		},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"names": {Type: genai.TypeArray, Items: recommendation},
		},
		Required: []string{"names"},
	}
}
