package testdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jordanlanch/namereport/pkg/ai/llm"
	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/jordanlanch/namereport/pkg/prompt"
	"github.com/sashabaranov/go-openai"
)

// ReportJSON is a well-formed model answer with one recommendation
const ReportJSON = `{
  "names": [{
    "chinese_name": "陈澈",
    "pinyin": "Chén Chè",
    "scores": {"total": 95, "sound": 92, "shape": 90, "meaning": 96, "culture": 93, "balance": 88},
    "mbti": {"type": "INFJ", "desc": "温和而坚定"},
    "bazi": {
      "zodiac": "龙", "zodiac_desc": "龙年出生",
      "constellation": "双子座", "constellation_desc": "灵动聪慧",
      "wuxing": "水弱", "wuxing_desc": "宜补水"
    },
    "analysis": {
      "sound_analysis": "平仄相间",
      "shape_analysis": "左右结构",
      "meaning_analysis": "清澈透明",
      "culture_analysis": "取自《诗经》",
      "balance_analysis": "澈字属水"
    },
    "nickname": {"name": "冰糖", "meaning": "透亮"},
    "english_name": {"name": "Claire", "meaning": "清澈明亮"},
    "summary": "一个清新雅致的名字",
    "tags": ["清澈", "雅致", "补水"]
  }]
}`

// Recommendation returns the recommendation in ReportJSON
func Recommendation() *models.NameRecommendation {
	var resp models.NameResponse
	if err := json.Unmarshal([]byte(ReportJSON), &resp); err != nil {
		panic(fmt.Sprintf("testdata: bad ReportJSON: %v", err))
	}
	return &resp.Names[0]
}

var surnames = []string{"陈", "李", "王", "张", "刘", "欧阳", "司马", "诸葛", "林", "赵"}

var genders = []string{models.GenderBoy, models.GenderGirl, models.GenderUnisex, ""}

// GeneratePreferences produces count questionnaire submissions from a fixed seed
func GeneratePreferences(seed int64, count int) []models.UserPreferences {
	faker := gofakeit.New(seed)

	styles := []string{"", "赛博朋克"}
	for _, s := range prompt.Styles() {
		styles = append(styles, s.Name)
	}

	prefs := make([]models.UserPreferences, 0, count)
	for i := 0; i < count; i++ {
		birth := faker.DateRange(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC))

		p := models.UserPreferences{
			Surname:   faker.RandomString(surnames),
			Gender:    faker.RandomString(genders),
			BirthDate: birth.Format("2006-01-02"),
			Style:     faker.RandomString(styles),
		}
		if faker.Bool() {
			p.BirthTime = fmt.Sprintf("%02d:%02d", faker.Number(0, 23), faker.Number(0, 59))
		}
		if faker.Bool() {
			p.AdditionalNotes = faker.Sentence(faker.Number(3, 12))
		}
		prefs = append(prefs, p)
	}
	return prefs
}

// FakeLLM is an in-memory llm.LLMClient returning a canned answer
type FakeLLM struct {
	Content string
	Err     error

	mu       sync.Mutex
	requests []llm.ChatRequest
	ids      []string
}

var _ llm.LLMClient = (*FakeLLM)(nil)

// NewFakeLLM creates a fake returning content
func NewFakeLLM(content string) *FakeLLM {
	return &FakeLLM{Content: content}
}

// Provider implements llm.LLMClient
func (f *FakeLLM) Provider() string { return "fake" }

// Chat implements llm.LLMClient
func (f *FakeLLM) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.ids = append(f.ids, llm.RequestIDFromContext(ctx))
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	return &llm.ChatResponse{
		Content: f.Content,
		Envelope: openai.ChatCompletionResponse{
			ID:      "chatcmpl-fake",
			Object:  "chat.completion",
			Created: 1700000000,
			Model:   "fake-model",
			Choices: []openai.ChatCompletionChoice{{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.Content},
				FinishReason: openai.FinishReasonStop,
			}},
			Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
		},
		TokensUsed:   30,
		FinishReason: string(openai.FinishReasonStop),
	}, nil
}

// Calls returns how many times Chat was invoked
func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// LastRequest returns the most recent request
func (f *FakeLLM) LastRequest() llm.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return llm.ChatRequest{}
	}
	return f.requests[len(f.requests)-1]
}

// RequestIDs returns the request id seen on each call
func (f *FakeLLM) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}
