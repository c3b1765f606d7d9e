package grading

import (
	"testing"

	"github.com/marinai/marinai-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassCount(t *testing.T) {
	tests := []struct {
		name    string
		license model.LicenseType
		subject model.Subject
		want    int
	}{
		{name: "navigator regulations", license: model.LicenseHanghaesa, subject: model.SubjectBeopgyu, want: 15},
		{name: "navigator seamanship", license: model.LicenseHanghaesa, subject: model.SubjectUnyong, want: 10},
		{name: "engineer regulations", license: model.LicenseGigwansa, subject: model.SubjectBeopgyu, want: 10},
		{name: "small vessel regulations", license: model.LicenseSohyeong, subject: model.SubjectBeopgyu, want: 10},
		{name: "unknown subject falls back", license: model.LicenseHanghaesa, subject: model.Subject("천문"), want: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PassCount(tc.license, tc.subject))
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		license model.LicenseType
		scores  Scores
		passed  bool
		failed  []model.Subject
	}{
		{
			name:    "boundary counts pass",
			license: model.LicenseHanghaesa,
			scores: Scores{
				model.SubjectBeopgyu: {QuestionCount: 25, CorrectCount: 15},
				model.SubjectHanghae: {QuestionCount: 25, CorrectCount: 15},
			},
			passed: true,
		},
		{
			name:    "navigator regulations below fifteen fails",
			license: model.LicenseHanghaesa,
			scores: Scores{
				model.SubjectHanghae: {QuestionCount: 25, CorrectCount: 20},
				model.SubjectUnyong:  {QuestionCount: 25, CorrectCount: 20},
				model.SubjectBeopgyu: {QuestionCount: 25, CorrectCount: 14},
				model.SubjectEnglish: {QuestionCount: 25, CorrectCount: 20},
			},
			passed: false,
			failed: []model.Subject{model.SubjectBeopgyu},
		},
		{
			name:    "engineer regulations at fourteen passes",
			license: model.LicenseGigwansa,
			scores: Scores{
				model.SubjectGigwan1: {QuestionCount: 25, CorrectCount: 20},
				model.SubjectBeopgyu: {QuestionCount: 25, CorrectCount: 14},
			},
			passed: true,
		},
		{
			name:    "all subjects pass but mean too low",
			license: model.LicenseGigwansa,
			scores: Scores{
				model.SubjectGigwan1: {QuestionCount: 25, CorrectCount: 14},
				model.SubjectGigwan2: {QuestionCount: 25, CorrectCount: 15},
			},
			passed: false,
		},
		{
			name:    "high mean cannot rescue a failed subject",
			license: model.LicenseSohyeong,
			scores: Scores{
				model.SubjectHanghae: {QuestionCount: 25, CorrectCount: 25},
				model.SubjectUnyong:  {QuestionCount: 25, CorrectCount: 9},
			},
			passed: false,
			failed: []model.Subject{model.SubjectUnyong},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Evaluate(tc.license, tc.scores)
			require.NoError(t, err)
			assert.Equal(t, tc.passed, v.Passed)

			var failed []model.Subject
			for subject, s := range v.Subjects {
				if !s.Passed {
					failed = append(failed, subject)
				}
			}
			assert.ElementsMatch(t, tc.failed, failed)
		})
	}
}

func TestEvaluate_TotalsAreSums(t *testing.T) {
	scores := Scores{
		model.SubjectHanghae: {QuestionCount: 25, CorrectCount: 20},
		model.SubjectUnyong:  {QuestionCount: 24, CorrectCount: 11},
		model.SubjectEnglish: {QuestionCount: 3, CorrectCount: 0},
	}

	v, err := Evaluate(model.LicenseHanghaesa, scores)
	require.NoError(t, err)

	assert.Equal(t, 52, v.TotalQuestions)
	assert.Equal(t, 31, v.TotalCorrect)
	assert.Len(t, v.Subjects, 3)
	for subject, s := range v.Subjects {
		assert.Equal(t, scores[subject].QuestionCount, s.QuestionCounts)
		assert.Equal(t, scores[subject].CorrectCount, s.CorrectCounts)
	}
}

func TestEvaluate_EmptyScoresFail(t *testing.T) {
	v, err := Evaluate(model.LicenseHanghaesa, Scores{})

	assert.ErrorIs(t, err, ErrNoSubjectScores)
	assert.False(t, v.Passed)
	assert.Zero(t, v.TotalQuestions)
	assert.Empty(t, v.Subjects)
}

func TestScoreAnswers(t *testing.T) {
	hanghae := &model.Question{ID: 1, Subject: model.SubjectHanghae}
	beopgyu := &model.Question{ID: 2, Subject: model.SubjectBeopgyu}

	answers := []model.Answer{
		{QuestionID: 1, Correct: true, Question: hanghae},
		{QuestionID: 1, Correct: false, Question: hanghae},
		{QuestionID: 2, Correct: true, Question: beopgyu},
		{QuestionID: 99, Correct: true},
	}

	scores, unresolved := ScoreAnswers(answers)

	assert.Equal(t, 1, unresolved)
	assert.Equal(t, Scores{
		model.SubjectHanghae: {QuestionCount: 2, CorrectCount: 1},
		model.SubjectBeopgyu: {QuestionCount: 1, CorrectCount: 1},
	}, scores)
}

func TestReport(t *testing.T) {
	duration := 1200
	set := &model.AttemptSet{ID: 7, DurationSec: &duration}
	v := Verdict{
		TotalQuestions: 50,
		TotalCorrect:   38,
		Passed:         true,
		Subjects: map[model.Subject]model.SubjectScore{
			model.SubjectHanghae: {QuestionCounts: 25, CorrectCounts: 20, Passed: true},
			model.SubjectBeopgyu: {QuestionCounts: 25, CorrectCounts: 18, Passed: true},
		},
	}

	r := Report(set, "항해사 1급 2023년 1회", v)

	assert.Equal(t, 7, r.ResultSetID)
	assert.Equal(t, &duration, r.DurationSec)
	assert.Equal(t, "항해사 1급 2023년 1회", r.ExamDetail)
	assert.Equal(t, 50, r.TotalAmountOfQuestions)
	assert.Equal(t, 38, r.TotalCorrectCounts)
	assert.Equal(t, 152, r.TotalScore)
	assert.True(t, r.IfPassedTest)
	assert.Equal(t, v.Subjects, r.SubjectScores)
}
