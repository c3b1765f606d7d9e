package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/marinai/marinai-backend/internal/grading"
	"github.com/marinai/marinai-backend/internal/imagepath"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCBTCorpus stores two navigator grade-1 exam sets and one engineer set.
// Set 2 repeats ten navigation questions of set 1 verbatim, so only 30 of the
// 40 navigation questions are distinct.
func seedCBTCorpus(m *memStore) {
	m.examSets = append(m.examSets,
		model.ExamSet{ID: 1, License: model.LicenseHanghaesa, Grade: model.Grade1, Year: 2022, Inning: model.Inning1},
		model.ExamSet{ID: 2, License: model.LicenseHanghaesa, Grade: model.Grade1, Year: 2023, Inning: model.Inning2},
		model.ExamSet{ID: 3, License: model.LicenseGigwansa, Grade: model.Grade1, Year: 2023, Inning: model.Inning2},
	)
	id := 1
	add := func(setID int, subject model.Subject, text string, qnum int) {
		m.questions = append(m.questions, model.Question{
			ID: id, Subject: subject, QNum: qnum, QuestionStr: text, Ex1Str: "보기1",
			Answer: model.Choice1, ExamSetID: setID,
		})
		id++
	}
	for n := 0; n < 20; n++ {
		add(1, model.SubjectHanghae, fmt.Sprintf("항해 %d", n), n+1)
	}
	for n := 0; n < 20; n++ {
		// the first ten repeat set 1
		text := n
		if n >= 10 {
			text = n + 10
		}
		add(2, model.SubjectHanghae, fmt.Sprintf("항해 %d", text), n+1)
	}
	for n := 0; n < 24; n++ {
		add(1, model.SubjectBeopgyu, fmt.Sprintf("법규 %d", n), n+1)
	}
	for n := 0; n < 30; n++ {
		add(3, model.SubjectGigwan1, fmt.Sprintf("기관 %d", n), n+1)
	}
	m.questions[0].Ex2Str = "그림 @pic1 참조"
}

func newTestCBTService(m *memStore, cache PoolCache, fsys fstest.MapFS) *CBTService {
	if fsys == nil {
		fsys = fstest.MapFS{}
	}
	return NewCBTService(m, questionStore{m}, attemptStore{m}, cache,
		imagepath.NewResolver(fsys, zerolog.Nop()), zerolog.Nop())
}

func TestCBTService_Generate(t *testing.T) {
	m := newMemStore()
	seedCBTCorpus(m)
	svc := newTestCBTService(m, newFakePoolCache(), fstest.MapFS{
		"항해사/D1_2022_01/x-pic1.png": {Data: []byte("png")},
	})
	ctx := context.Background()

	for round := 0; round < 10; round++ {
		resp, err := svc.Generate(ctx, model.CBTQuery{
			License:  model.LicenseHanghaesa,
			Grade:    model.Grade1,
			Subjects: []model.Subject{model.SubjectHanghae},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, resp.OdapsetID)

		list := resp.Subjects[model.SubjectHanghae]
		require.Len(t, list, grading.SampleSize)
		seen := make(map[string]bool)
		for i, q := range list {
			assert.Equal(t, i+1, q.QNum)
			key := q.QuestionStr + " " + q.Ex1Str
			assert.False(t, seen[key], "duplicate %q", key)
			seen[key] = true
			if q.ID == 1 {
				assert.Equal(t, []string{"항해사/D1_2022_01/x-pic1.png"}, q.ImgPaths)
			}
		}
	}
}

func TestCBTService_Generate_SignedInOpensAttemptSet(t *testing.T) {
	m := newMemStore()
	seedCBTCorpus(m)
	svc := newTestCBTService(m, newFakePoolCache(), nil)

	resp, err := svc.Generate(context.Background(), model.CBTQuery{
		License:  model.LicenseHanghaesa,
		Grade:    model.Grade1,
		Subjects: []model.Subject{model.SubjectHanghae},
	}, &model.User{ID: testUserID})
	require.NoError(t, err)

	require.NotNil(t, resp.OdapsetID)
	require.Len(t, m.attempts, 1)
	assert.Equal(t, *resp.OdapsetID, m.attempts[0].ID)
	assert.Equal(t, model.ExamTypeCBT, m.attempts[0].ExamType)
}

func TestCBTService_Generate_InvalidSelection(t *testing.T) {
	m := newMemStore()
	seedCBTCorpus(m)
	svc := newTestCBTService(m, newFakePoolCache(), nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		subjects []model.Subject
		wantErr  error
	}{
		{name: "unknown subject", subjects: []model.Subject{"천문"}, wantErr: grading.ErrUnknownSubject},
		{name: "only 24 distinct", subjects: []model.Subject{model.SubjectBeopgyu}, wantErr: grading.ErrInsufficientPool},
		{name: "subject of another license", subjects: []model.Subject{model.SubjectGigwan1}, wantErr: grading.ErrInsufficientPool},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, model.CBTQuery{
				License:  model.LicenseHanghaesa,
				Grade:    model.Grade1,
				Subjects: tc.subjects,
			}, &model.User{ID: testUserID})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Empty(t, m.attempts)
}

func TestCBTService_PoolCaching(t *testing.T) {
	m := newMemStore()
	seedCBTCorpus(m)
	cache := newFakePoolCache()
	svc := newTestCBTService(m, cache, nil)
	ctx := context.Background()

	require.NoError(t, svc.PrewarmPools(ctx))
	assert.Len(t, cache.pools, 2)

	lg := model.LicenseGrade{License: model.LicenseHanghaesa, Grade: model.Grade1}
	assert.Len(t, cache.pools[lg][model.SubjectHanghae], 30)

	// A cached pool is served even when storage changes underneath.
	m.questions = nil
	pool, err := svc.Pool(ctx, lg)
	require.NoError(t, err)
	assert.Len(t, pool[model.SubjectHanghae], 30)
}

func TestCBTService_PoolCacheFailureRebuilds(t *testing.T) {
	m := newMemStore()
	seedCBTCorpus(m)
	cache := newFakePoolCache()
	cache.err = errors.New("connection refused")
	svc := newTestCBTService(m, cache, nil)

	pool, err := svc.Pool(context.Background(), model.LicenseGrade{License: model.LicenseHanghaesa, Grade: model.Grade1})
	require.NoError(t, err)
	assert.Len(t, pool[model.SubjectHanghae], 30)
	assert.Len(t, pool[model.SubjectBeopgyu], 24)
}
