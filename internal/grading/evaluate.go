package grading

import "github.com/marinai/marinai-backend/internal/model"

// Verdict is the evaluated outcome of a set of subject scores.
type Verdict struct {
	TotalQuestions int
	TotalCorrect   int
	Passed         bool
	Subjects       map[model.Subject]model.SubjectScore
}

// Evaluate applies the license rules to scores. Every subject must reach its
// pass count and the mean correct count must reach MeanPassCount.
// Empty scores yield a failed zero verdict together with ErrNoSubjectScores.
func Evaluate(license model.LicenseType, scores Scores) (Verdict, error) {
	v := Verdict{Subjects: make(map[model.Subject]model.SubjectScore, len(scores))}
	if len(scores) == 0 {
		return v, ErrNoSubjectScores
	}

	allPassed := true
	for subject, t := range scores {
		passed := t.CorrectCount >= PassCount(license, subject)
		if !passed {
			allPassed = false
		}
		v.Subjects[subject] = model.SubjectScore{
			QuestionCounts: t.QuestionCount,
			CorrectCounts:  t.CorrectCount,
			Passed:         passed,
		}
		v.TotalQuestions += t.QuestionCount
		v.TotalCorrect += t.CorrectCount
	}

	// mean >= MeanPassCount without float division
	meanPassed := v.TotalCorrect >= MeanPassCount*len(scores)
	v.Passed = allPassed && meanPassed
	return v, nil
}

// Score converts a correct count into exam points.
func Score(correct int) int {
	return correct * PointsPerQuestion
}

// Report builds the external report for an attempt set.
func Report(set *model.AttemptSet, examDetail string, v Verdict) model.ScoreReport {
	return model.ScoreReport{
		ResultSetID:            set.ID,
		DurationSec:            set.DurationSec,
		ExamDetail:             examDetail,
		TotalAmountOfQuestions: v.TotalQuestions,
		TotalCorrectCounts:     v.TotalCorrect,
		TotalScore:             Score(v.TotalCorrect),
		IfPassedTest:           v.Passed,
		SubjectScores:          v.Subjects,
	}
}
