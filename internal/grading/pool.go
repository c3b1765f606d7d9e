package grading

import (
	"fmt"
	"math/rand/v2"

	"github.com/marinai/marinai-backend/internal/model"
)

// Pool holds the deduplicated questions of one license and grade, per subject.
type Pool map[model.Subject][]model.Question

// BuildPool deduplicates questions per subject. Two questions are the same
// when their text and first option match exactly; the first one seen is kept.
// Questions lacking text or a first option are not eligible.
func BuildPool(questions []model.Question) Pool {
	pool := make(Pool)
	seen := make(map[model.Subject]map[string]struct{})

	for _, q := range questions {
		if q.QuestionStr == "" || q.Ex1Str == "" {
			continue
		}
		keys, ok := seen[q.Subject]
		if !ok {
			keys = make(map[string]struct{})
			seen[q.Subject] = keys
		}
		key := dedupKey(&q)
		if _, dup := keys[key]; dup {
			continue
		}
		keys[key] = struct{}{}
		pool[q.Subject] = append(pool[q.Subject], q)
	}
	return pool
}

func dedupKey(q *model.Question) string {
	return q.QuestionStr + " " + q.Ex1Str
}

// Sample draws SampleSize distinct questions per requested subject, uniformly
// without replacement, and renumbers each list from 1. A nil rng uses the
// package-level source. Repeated subjects in the request are drawn once.
func (p Pool) Sample(subjects []model.Subject, rng *rand.Rand) (map[model.Subject][]model.Question, error) {
	out := make(map[model.Subject][]model.Question, len(subjects))
	for _, subject := range subjects {
		if !subject.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
		}
		if _, done := out[subject]; done {
			continue
		}
		candidates := p[subject]
		if len(candidates) < SampleSize {
			return nil, fmt.Errorf("%w: %s has %d, need %d",
				ErrInsufficientPool, subject, len(candidates), SampleSize)
		}

		picked := sampleN(candidates, SampleSize, rng)
		for i := range picked {
			picked[i].QNum = i + 1
		}
		out[subject] = picked
	}
	return out, nil
}

// sampleN runs a partial Fisher-Yates shuffle over a copy of src.
func sampleN(src []model.Question, n int, rng *rand.Rand) []model.Question {
	buf := make([]model.Question, len(src))
	copy(buf, src)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := 0; i < n; i++ {
		j := i + intN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:n:n]
}
