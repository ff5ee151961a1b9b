package report

import (
	"fmt"
	"strings"

	"github.com/jordanlanch/namereport/pkg/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report
const SheetName = "Report"

// RenderXLSX renders one recommendation as a two-column spreadsheet
func RenderXLSX(rec *models.NameRecommendation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FEF3C7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	rows := [][2]any{
		{"Field", "Value"},
		{"Name", rec.ChineseName},
		{"Pinyin", rec.Pinyin},
	}
	if rec.Scores != nil {
		rows = append(rows, [2]any{"Total score", models.Score(rec.Scores.Total)})
	}
	for _, ax := range axes(rec) {
		rows = append(rows,
			[2]any{ax.label + " score", ax.score},
			[2]any{ax.label + " analysis", ax.analysis},
		)
	}
	if rec.Bazi != nil {
		rows = append(rows,
			[2]any{"Zodiac", rec.Bazi.Zodiac + " - " + rec.Bazi.ZodiacDesc},
			[2]any{"Constellation", rec.Bazi.Constellation + " - " + rec.Bazi.ConstellationDesc},
			[2]any{"Wuxing", rec.Bazi.Wuxing + " - " + rec.Bazi.WuxingDesc},
		)
	}
	if rec.MBTI != nil {
		rows = append(rows, [2]any{"MBTI", rec.MBTI.Type + " - " + rec.MBTI.Desc})
	}
	if rec.Nickname != nil {
		rows = append(rows, [2]any{"Nickname", rec.Nickname.Name + " - " + rec.Nickname.Meaning})
	}
	if rec.EnglishName != nil {
		rows = append(rows, [2]any{"English name", rec.EnglishName.Name + " - " + rec.EnglishName.Meaning})
	}
	rows = append(rows,
		[2]any{"Summary", rec.Summary},
		[2]any{"Tags", strings.Join(rec.Tags, ", ")},
	)

	for i, row := range rows {
		r := i + 1
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", r), row[0]); err != nil {
			return nil, fmt.Errorf("failed to write cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, fmt.Sprintf("B%d", r), row[1]); err != nil {
			return nil, fmt.Errorf("failed to write cell: %w", err)
		}
	}

	if err := f.SetCellStyle(SheetName, "A1", "B1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	_ = f.SetColWidth(SheetName, "A", "A", 24)
	_ = f.SetColWidth(SheetName, "B", "B", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
