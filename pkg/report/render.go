package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Export formats
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatXLSX     = "xlsx"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Table))
	policy   = bluemonday.UGCPolicy()
)

// axis pairs a score with its analysis for rendering
type axis struct {
	label    string
	score    int
	analysis string
}

func axes(rec *models.NameRecommendation) []axis {
	var s models.NameScore
	if rec.Scores != nil {
		s = *rec.Scores
	}
	var a models.NameAnalysis
	if rec.Analysis != nil {
		a = *rec.Analysis
	}
	return []axis{
		{"音律 Sound", models.Score(s.Sound), a.SoundAnalysis},
		{"字形 Shape", models.Score(s.Shape), a.ShapeAnalysis},
		{"寓意 Meaning", models.Score(s.Meaning), a.MeaningAnalysis},
		{"文化 Culture", models.Score(s.Culture), a.CultureAnalysis},
		{"平衡 Balance", models.Score(s.Balance), a.BalanceAnalysis},
	}
}

// RenderMarkdown renders one recommendation as a markdown report card
func RenderMarkdown(rec *models.NameRecommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", oneLine(rec.ChineseName))
	fmt.Fprintf(&b, "*%s*\n\n", oneLine(rec.Pinyin))

	total := 0
	if rec.Scores != nil {
		total = models.Score(rec.Scores.Total)
	}
	fmt.Fprintf(&b, "**综合评分 Total: %d**\n\n", total)

	if len(rec.Tags) > 0 {
		tags := make([]string, len(rec.Tags))
		for i, t := range rec.Tags {
			tags[i] = "`" + strings.ReplaceAll(oneLine(t), "`", "") + "`"
		}
		fmt.Fprintf(&b, "%s\n\n", strings.Join(tags, " "))
	}

	b.WriteString("## 五维分析\n\n| 维度 | 分数 | 分析 |\n|---|---|---|\n")
	for _, ax := range axes(rec) {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", ax.label, ax.score, cell(ax.analysis))
	}
	b.WriteString("\n")

	if rec.Bazi != nil {
		b.WriteString("## 命理百科\n\n")
		fmt.Fprintf(&b, "- **生肖 %s**: %s\n", oneLine(rec.Bazi.Zodiac), oneLine(rec.Bazi.ZodiacDesc))
		fmt.Fprintf(&b, "- **星座 %s**: %s\n", oneLine(rec.Bazi.Constellation), oneLine(rec.Bazi.ConstellationDesc))
		fmt.Fprintf(&b, "- **五行 %s**: %s\n\n", oneLine(rec.Bazi.Wuxing), oneLine(rec.Bazi.WuxingDesc))
	}

	if rec.MBTI != nil {
		fmt.Fprintf(&b, "## MBTI: %s\n\n%s\n\n", oneLine(rec.MBTI.Type), rec.MBTI.Desc)
	}

	if rec.Nickname != nil {
		fmt.Fprintf(&b, "## 乳名: %s\n\n%s\n\n", oneLine(rec.Nickname.Name), rec.Nickname.Meaning)
	}
	if rec.EnglishName != nil {
		fmt.Fprintf(&b, "## English name: %s\n\n%s\n\n", oneLine(rec.EnglishName.Name), rec.EnglishName.Meaning)
	}

	fmt.Fprintf(&b, "## 综合评价\n\n%s\n", rec.Summary)

	return b.String()
}

// RenderHTML renders one recommendation as a standalone, sanitised HTML page
func RenderHTML(rec *models.NameRecommendation) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(RenderMarkdown(rec)), &body); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	safe := policy.SanitizeBytes(body.Bytes())

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body{font-family:"Noto Serif SC",serif;max-width:720px;margin:2rem auto;padding:0 1rem;color:#292524;background:#fafaf9}
h1{font-size:2.5rem;margin-bottom:0}
table{border-collapse:collapse;width:100%%}
td,th{border:1px solid #e7e5e4;padding:.5rem;vertical-align:top}
code{background:#fef3c7;border-radius:4px;padding:0 .3rem}
</style>
</head>
<body>
<article class="name-report">
%s
</article>
</body>
</html>
`, html.EscapeString(rec.ChineseName), safe), nil
}

// oneLine collapses newlines so values cannot break the markdown structure
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cell makes text safe for a markdown table cell
func cell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", "\\|")
}
