package service

import (
	"context"
	"fmt"

	"github.com/marinai/marinai-backend/internal/imagepath"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/rs/zerolog"
)

// SolveService serves one full exam set for solving.
type SolveService struct {
	examSets  ExamSetStore
	questions QuestionStore
	attempts  AttemptSetStore
	images    *imagepath.Resolver
	log       zerolog.Logger
}

// NewSolveService creates a new SolveService.
func NewSolveService(
	examSets ExamSetStore,
	questions QuestionStore,
	attempts AttemptSetStore,
	images *imagepath.Resolver,
	log zerolog.Logger,
) *SolveService {
	return &SolveService{
		examSets:  examSets,
		questions: questions,
		attempts:  attempts,
		images:    images,
		log:       log.With().Str("component", "solve_service").Logger(),
	}
}

// RetrieveOneInning loads the exam set selected by q with its questions in
// qnum order and resolved image paths. For a signed-in user a new attempt set
// of q.ExamType is opened and its id returned as OdapsetID.
func (s *SolveService) RetrieveOneInning(ctx context.Context, q model.SolveQuery, user *model.User) (*model.SolveResponse, error) {
	set, err := s.examSets.FindOne(ctx, q.Year, q.License, q.Grade, q.Inning)
	if err != nil {
		return nil, notFound(err, "find exam set")
	}

	questions, err := s.questions.ListByExamSet(ctx, set.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	resp := &model.SolveResponse{Qnas: s.images.Attach(*set, questions)}
	if user == nil {
		return resp, nil
	}

	attempt, err := s.attempts.Create(ctx, q.ExamType, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create attempt set: %w", err)
	}
	resp.OdapsetID = &attempt.ID

	s.log.Debug().
		Int("user_id", user.ID).
		Int("exam_set_id", set.ID).
		Int("attempt_set_id", attempt.ID).
		Msg("Attempt set opened")
	return resp, nil
}
