package grading

import (
	"cmp"
	"slices"

	"github.com/marinai/marinai-backend/internal/model"
)

// LatestWrongAnswers collapses a user's attempt history into one review entry
// per question answered wrongly.
//
// Attempt sets are walked newest first. An answer counts as a miss when it is
// visible, incorrect and has a selected option. The first miss seen for a
// question becomes its recorded state; older misses only raise AttemptCounts.
// Entries keep the order in which their question was first seen. ExamSet and
// ImgPaths are left for the caller to fill.
func LatestWrongAnswers(sets []model.AttemptSet) []model.ReviewEntry {
	ordered := make([]*model.AttemptSet, len(sets))
	for i := range sets {
		ordered[i] = &sets[i]
	}
	slices.SortStableFunc(ordered, func(a, b *model.AttemptSet) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	var entries []model.ReviewEntry
	index := make(map[int]int)

	for _, set := range ordered {
		for i := range set.Answers {
			a := &set.Answers[i]
			if a.Hidden || a.Correct || a.Choice == nil || a.Question == nil {
				continue
			}
			if pos, ok := index[a.QuestionID]; ok {
				entries[pos].AttemptCounts++
				continue
			}
			index[a.QuestionID] = len(entries)
			entries = append(entries, model.ReviewEntry{
				Question:      *a.Question,
				Choice:        a.Choice,
				ResultID:      a.ID,
				Hidden:        a.Hidden,
				AttemptCounts: 1,
			})
		}
	}
	return entries
}
