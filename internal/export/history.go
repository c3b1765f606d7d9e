// Package export renders score history as spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/marinai/marinai-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of the workbook returned by History.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const summarySheet = "결과"

var summaryHeaders = []string{"응시번호", "시험", "소요시간(초)", "문항수", "정답수", "점수", "합격"}

// History writes one row per report, followed by one row per subject in a
// second sheet. Reports keep their given order.
func History(reports []model.ScoreReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	writeRow(f, summarySheet, 1, toAny(summaryHeaders))
	for i, r := range reports {
		duration := any("")
		if r.DurationSec != nil {
			duration = *r.DurationSec
		}
		writeRow(f, summarySheet, i+2, []any{
			r.ResultSetID,
			r.ExamDetail,
			duration,
			r.TotalAmountOfQuestions,
			r.TotalCorrectCounts,
			r.TotalScore,
			passLabel(r.IfPassedTest),
		})
	}
	_ = f.SetColWidth(summarySheet, "A", "G", 16)
	_ = f.SetColWidth(summarySheet, "B", "B", 28)

	const subjectSheet = "과목별"
	if _, err := f.NewSheet(subjectSheet); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}
	writeRow(f, subjectSheet, 1, []any{"응시번호", "과목", "문항수", "정답수", "과락 여부"})
	row := 2
	for _, r := range reports {
		for _, subject := range model.Subjects {
			s, ok := r.SubjectScores[subject]
			if !ok {
				continue
			}
			writeRow(f, subjectSheet, row, []any{
				r.ResultSetID, string(subject), s.QuestionCounts, s.CorrectCounts, passLabel(s.Passed),
			})
			row++
		}
	}
	_ = f.SetColWidth(subjectSheet, "A", "E", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func passLabel(passed bool) string {
	if passed {
		return "합격"
	}
	return "불합격"
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
