package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marinai/marinai-backend/internal/grading"
	"github.com/marinai/marinai-backend/internal/imagepath"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/rs/zerolog"
)

// CBTService assembles mixed-practice sessions from the pooled questions of
// every exam set of a license and grade.
type CBTService struct {
	examSets  ExamSetStore
	questions QuestionStore
	attempts  AttemptSetStore
	cache     PoolCache
	images    *imagepath.Resolver
	log       zerolog.Logger
}

// NewCBTService creates a new CBTService.
func NewCBTService(
	examSets ExamSetStore,
	questions QuestionStore,
	attempts AttemptSetStore,
	cache PoolCache,
	images *imagepath.Resolver,
	log zerolog.Logger,
) *CBTService {
	return &CBTService{
		examSets:  examSets,
		questions: questions,
		attempts:  attempts,
		cache:     cache,
		images:    images,
		log:       log.With().Str("component", "cbt_service").Logger(),
	}
}

// Pool returns the deduplicated pool for lg, from cache when possible.
// Cache failures fall back to rebuilding from storage.
func (s *CBTService) Pool(ctx context.Context, lg model.LicenseGrade) (grading.Pool, error) {
	pool, err := s.cache.Get(ctx, lg)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.log.Warn().Err(err).
			Str("license", string(lg.License)).
			Str("grade", string(lg.Grade)).
			Msg("Pool cache read failed, rebuilding")
	}
	return s.WarmPool(ctx, lg)
}

// WarmPool builds the pool for lg from storage and stores it in the cache.
func (s *CBTService) WarmPool(ctx context.Context, lg model.LicenseGrade) (grading.Pool, error) {
	questions, err := s.questions.ListByLicenseGrade(ctx, lg.License, lg.Grade)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	pool := grading.BuildPool(questions)

	if err := s.cache.Set(ctx, lg, pool); err != nil {
		s.log.Warn().Err(err).
			Str("license", string(lg.License)).
			Str("grade", string(lg.Grade)).
			Msg("Pool cache write failed")
	}
	return pool, nil
}

// PrewarmPools builds and caches the pool of every license and grade that
// has exam sets. Called on application startup.
func (s *CBTService) PrewarmPools(ctx context.Context) error {
	pairs, err := s.examSets.ListLicenseGrades(ctx)
	if err != nil {
		return fmt.Errorf("list license grades: %w", err)
	}

	if len(pairs) == 0 {
		s.log.Info().Msg("No question pools to prewarm")
		return nil
	}

	warmed := 0
	for _, lg := range pairs {
		if _, err := s.WarmPool(ctx, lg); err != nil {
			s.log.Warn().Err(err).
				Str("license", string(lg.License)).
				Str("grade", string(lg.Grade)).
				Msg("Failed to warm pool, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(pairs)).
		Msg("Pool prewarming complete")
	return nil
}

// Generate draws a fresh session of grading.SampleSize questions per
// requested subject. Unknown subjects and undersized pools surface as
// grading.ErrUnknownSubject and grading.ErrInsufficientPool. For a signed-in
// user a cbt attempt set is opened and its id returned as OdapsetID.
func (s *CBTService) Generate(ctx context.Context, q model.CBTQuery, user *model.User) (*model.CBTResponse, error) {
	lg := model.LicenseGrade{License: q.License, Grade: q.Grade}

	pool, err := s.Pool(ctx, lg)
	if err != nil {
		return nil, err
	}

	sampled, err := pool.Sample(q.Subjects, nil)
	if err != nil {
		return nil, err
	}

	sets, err := s.examSets.ListByLicenseGrade(ctx, lg.License, lg.Grade)
	if err != nil {
		return nil, fmt.Errorf("list exam sets: %w", err)
	}
	byID := make(map[int]model.ExamSet, len(sets))
	for _, set := range sets {
		byID[set.ID] = set
	}
	s.images.Prewarm(sets)

	resp := &model.CBTResponse{Subjects: make(map[model.Subject][]model.QuestionWithImages, len(sampled))}
	for subject, questions := range sampled {
		out := make([]model.QuestionWithImages, len(questions))
		for i, question := range questions {
			out[i] = model.QuestionWithImages{Question: question}
			set, ok := byID[question.ExamSetID]
			if !ok {
				s.log.Warn().
					Int("question_id", question.ID).
					Int("exam_set_id", question.ExamSetID).
					Msg("Pooled question has no exam set, serving without images")
				continue
			}
			out[i].ImgPaths = s.images.Resolve(set, question.FullText())
		}
		resp.Subjects[subject] = out
	}

	if user == nil {
		return resp, nil
	}

	attempt, err := s.attempts.Create(ctx, model.ExamTypeCBT, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create attempt set: %w", err)
	}
	resp.OdapsetID = &attempt.ID
	return resp, nil
}
