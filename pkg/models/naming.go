package models

// Gender values accepted from the questionnaire
const (
	GenderBoy    = "boy"
	GenderGirl   = "girl"
	GenderUnisex = "unisex"
)

// UserPreferences is one questionnaire submission. It is never persisted.
type UserPreferences struct {
	Surname         string `json:"surname" validate:"required,max=4"`
	Gender          string `json:"gender" validate:"omitempty,oneof=boy girl unisex"`
	BirthDate       string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	BirthTime       string `json:"birthTime" validate:"omitempty,datetime=15:04"`
	Style           string `json:"style" validate:"max=32"`
	AdditionalNotes string `json:"additionalNotes,omitempty" validate:"max=500"`
	CardKey         string `json:"cardKey,omitempty"`
}

// NameScore is the five-axis score set, each 0-100, plus a total.
// Axes are pointers so an absent score is distinguishable from zero.
type NameScore struct {
	Total   *int `json:"total" validate:"required,gte=0,lte=100"`
	Sound   *int `json:"sound" validate:"required,gte=0,lte=100"`
	Shape   *int `json:"shape" validate:"required,gte=0,lte=100"`
	Meaning *int `json:"meaning" validate:"required,gte=0,lte=100"`
	Culture *int `json:"culture" validate:"required,gte=0,lte=100"`
	Balance *int `json:"balance" validate:"required,gte=0,lte=100"`
}

// Score dereferences an axis, reading an absent one as 0
func Score(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// MBTIInfo is the personality-type tag suggested for the name
type MBTIInfo struct {
	Type string `json:"type" validate:"required"`
	Desc string `json:"desc" validate:"required"`
}

// NameAnalysis holds the free-text analysis for each scoring axis
type NameAnalysis struct {
	SoundAnalysis   string `json:"sound_analysis" validate:"required"`
	ShapeAnalysis   string `json:"shape_analysis" validate:"required"`
	MeaningAnalysis string `json:"meaning_analysis" validate:"required"`
	CultureAnalysis string `json:"culture_analysis" validate:"required"`
	BalanceAnalysis string `json:"balance_analysis" validate:"required"`
}

// SubNameInfo is a secondary name (nickname or romanized name) with its meaning
type SubNameInfo struct {
	Name    string `json:"name" validate:"required"`
	Meaning string `json:"meaning" validate:"required"`
}

// BaziInfo holds the birth-derived attributes
type BaziInfo struct {
	Zodiac            string `json:"zodiac" validate:"required"`
	ZodiacDesc        string `json:"zodiac_desc" validate:"required"`
	Constellation     string `json:"constellation" validate:"required"`
	ConstellationDesc string `json:"constellation_desc" validate:"required"`
	Wuxing            string `json:"wuxing" validate:"required"`
	WuxingDesc        string `json:"wuxing_desc" validate:"required"`
}

// NameRecommendation is the single structured result produced by the model
type NameRecommendation struct {
	ChineseName string        `json:"chinese_name" validate:"required"`
	Pinyin      string        `json:"pinyin" validate:"required"`
	Scores      *NameScore    `json:"scores" validate:"required"`
	MBTI        *MBTIInfo     `json:"mbti" validate:"required"`
	Analysis    *NameAnalysis `json:"analysis" validate:"required"`
	Nickname    *SubNameInfo  `json:"nickname" validate:"required"`
	EnglishName *SubNameInfo  `json:"english_name" validate:"required"`
	Bazi        *BaziInfo     `json:"bazi" validate:"required"`
	Summary     string        `json:"summary" validate:"required"`
	Tags        []string      `json:"tags" validate:"required"`
}

// NameResponse is the JSON document the model must return
type NameResponse struct {
	Names []NameRecommendation `json:"names" validate:"required,min=1,dive"`
}
