package grading

import "github.com/marinai/marinai-backend/internal/model"

// Tally counts questions and correct answers for one subject.
type Tally struct {
	QuestionCount int
	CorrectCount  int
}

// Scores maps each touched subject to its tally.
type Scores map[model.Subject]Tally

// ScoreAnswers aggregates answers into per-subject tallies. Answers whose
// question was not loaded are skipped and counted in unresolved.
func ScoreAnswers(answers []model.Answer) (scores Scores, unresolved int) {
	scores = make(Scores)
	for i := range answers {
		q := answers[i].Question
		if q == nil {
			unresolved++
			continue
		}
		t := scores[q.Subject]
		t.QuestionCount++
		if answers[i].Correct {
			t.CorrectCount++
		}
		scores[q.Subject] = t
	}
	return scores, unresolved
}
