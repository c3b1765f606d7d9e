package worker

import (
	"testing"

	"github.com/marinai/marinai-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDedupeTotals(t *testing.T) {
	batch := []model.AttemptTotals{
		{AttemptSetID: 1, TotalAmount: 25, TotalScore: 40},
		{AttemptSetID: 2, TotalAmount: 50, TotalScore: 160, Passed: true},
		{AttemptSetID: 1, TotalAmount: 50, TotalScore: 120, Passed: true},
	}

	got := dedupeTotals(batch)

	assert.Equal(t, []model.AttemptTotals{
		{AttemptSetID: 1, TotalAmount: 50, TotalScore: 120, Passed: true},
		{AttemptSetID: 2, TotalAmount: 50, TotalScore: 160, Passed: true},
	}, got)
}

func TestDedupeTotals_Empty(t *testing.T) {
	assert.Empty(t, dedupeTotals(nil))
}
