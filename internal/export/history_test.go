package export

import (
	"bytes"
	"testing"

	"github.com/marinai/marinai-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHistory(t *testing.T) {
	duration := 3600
	reports := []model.ScoreReport{
		{
			ResultSetID:            12,
			DurationSec:            &duration,
			ExamDetail:             "항해사 1급 2023년 1회",
			TotalAmountOfQuestions: 100,
			TotalCorrectCounts:     89,
			TotalScore:             356,
			SubjectScores: map[model.Subject]model.SubjectScore{
				model.SubjectBeopgyu: {QuestionCounts: 25, CorrectCounts: 14},
				model.SubjectHanghae: {QuestionCounts: 25, CorrectCounts: 25, Passed: true},
			},
		},
		{
			ResultSetID:            9,
			ExamDetail:             model.MockExamLabel,
			TotalAmountOfQuestions: 25,
			TotalCorrectCounts:     20,
			TotalScore:             80,
			IfPassedTest:           true,
			SubjectScores: map[model.Subject]model.SubjectScore{
				model.SubjectEnglish: {QuestionCounts: 25, CorrectCounts: 20, Passed: true},
			},
		},
	}

	data, err := History(reports)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("결과")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"12", "항해사 1급 2023년 1회", "3600", "100", "89", "356", "불합격"}, rows[1])
	assert.Equal(t, []string{"9", "모의고사", "", "25", "20", "80", "합격"}, rows[2])

	subjects, err := f.GetRows("과목별")
	require.NoError(t, err)
	require.Len(t, subjects, 4)
	// canonical subject order within a report
	assert.Equal(t, []string{"12", "항해", "25", "25", "합격"}, subjects[1])
	assert.Equal(t, []string{"12", "법규", "25", "14", "불합격"}, subjects[2])
	assert.Equal(t, []string{"9", "영어", "25", "20", "합격"}, subjects[3])
}

func TestHistory_Empty(t *testing.T) {
	data, err := History(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("결과")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
