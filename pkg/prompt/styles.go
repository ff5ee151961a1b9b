package prompt

import "github.com/jordanlanch/namereport/pkg/models"

// Style selects which directive is injected into the user instruction
type Style string

// Supported styles, in the order the questionnaire offers them
const (
	StyleTraditional Style = "传统国风"
	StyleModern      Style = "现代简约"
	StyleFiveElement Style = "五行平衡"
	StylePoetic      Style = "诗词歌赋"
	StyleDistinctive Style = "高雅独特"
)

// DefaultStyle is the style the questionnaire preselects
const DefaultStyle = StyleTraditional

// FallbackDirective is used for styles outside the enumeration
const FallbackDirective = "核心要求：根据用户描述的风格进行创作。"

var styleOrder = []Style{
	StyleTraditional,
	StyleModern,
	StyleFiveElement,
	StylePoetic,
	StyleDistinctive,
}

var styleDirectives = map[Style]string{
	StyleTraditional: "核心要求：引经据典，体现深厚的国学底蕴。多取自《周易》、《论语》、《孟子》等经典，强调‘雅正’与‘气节’。名字应具有大家风范，稳重端庄。",
	StyleModern:      "核心要求：符合现代审美，字形简洁好看，笔画不宜繁杂。读音要朗朗上口，响亮悦耳。拒绝老气横秋，追求洋气、清新、阳光的感觉。",
	StyleFiveElement: "核心要求：将‘五行补救’作为第一优先级。必须精准分析八字喜用神，选用相应五行属性的字来平衡命理。在补益五行的基础上兼顾好听。",
	StylePoetic:      "核心要求：名字必须直接取材于著名的古诗词（如诗经、楚辞、唐诗宋词）。讲究‘画意诗情’，必须在分析中明确指出‘取自某朝某人某诗’，意境要美。",
	StyleDistinctive: "核心要求：避开大众常用字（如子、涵、轩等），追求独特性与清冷的高级感。用字可稍选冷门但不可生僻（确保能读能写），旨在打造独特的个人气质。",
}

// Valid reports whether s is one of the supported styles
func (s Style) Valid() bool {
	_, ok := styleDirectives[s]
	return ok
}

// Directive returns the style-specific instruction, or FallbackDirective
func (s Style) Directive() string {
	if d, ok := styleDirectives[s]; ok {
		return d
	}
	return FallbackDirective
}

// Styles lists the supported styles with their directives
func Styles() []models.StyleInfo {
	out := make([]models.StyleInfo, 0, len(styleOrder))
	for _, s := range styleOrder {
		out = append(out, models.StyleInfo{Name: string(s), Directive: s.Directive()})
	}
	return out
}
