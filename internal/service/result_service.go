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

// TotalsPublisher hands scored aggregates to the asynchronous write-back worker.
type TotalsPublisher interface {
	PublishTotals(ctx context.Context, t model.AttemptTotals) error
}

// ResultService records answers and turns attempt history into score reports
// and the wrong-answer review list.
type ResultService struct {
	examSets ExamSetStore
	attempts AttemptSetStore
	answers  AnswerStore
	totals   TotalsPublisher
	images   *imagepath.Resolver
	log      zerolog.Logger
}

// NewResultService creates a new ResultService. A nil totals publisher makes
// the service write aggregates back synchronously.
func NewResultService(
	examSets ExamSetStore,
	attempts AttemptSetStore,
	answers AnswerStore,
	totals TotalsPublisher,
	images *imagepath.Resolver,
	log zerolog.Logger,
) *ResultService {
	return &ResultService{
		examSets: examSets,
		attempts: attempts,
		answers:  answers,
		totals:   totals,
		images:   images,
		log:      log.With().Str("component", "result_service").Logger(),
	}
}

// SaveOne records a single answer into one of the user's attempt sets.
func (s *ResultService) SaveOne(ctx context.Context, userID int, req model.SaveOneRequest) (*model.Answer, error) {
	if userID <= 0 {
		return nil, ErrAnonymous
	}
	if _, err := s.attempts.GetOwned(ctx, req.OdapsetID, userID); err != nil {
		return nil, notFound(err, "get attempt set")
	}

	choice := req.Choice
	a := &model.Answer{
		Choice:       &choice,
		Correct:      model.IsCorrect(&choice, req.Answer),
		QuestionID:   req.QuestionID,
		AttemptSetID: req.OdapsetID,
	}
	if err := s.answers.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	return a, nil
}

// SubmitMany records a whole session, scores it and returns its report. The
// aggregates are written back onto the attempt set.
func (s *ResultService) SubmitMany(ctx context.Context, userID int, req model.SubmitManyRequest) (*model.ScoreReport, error) {
	if userID <= 0 {
		return nil, ErrAnonymous
	}
	if _, err := s.attempts.GetOwned(ctx, req.OdapsetID, userID); err != nil {
		return nil, notFound(err, "get attempt set")
	}

	if req.DurationSec != nil {
		if err := s.attempts.UpdateDuration(ctx, req.OdapsetID, *req.DurationSec); err != nil {
			return nil, fmt.Errorf("update duration: %w", err)
		}
	}

	answers := make([]model.Answer, len(req.Results))
	for i, r := range req.Results {
		answers[i] = model.Answer{
			Choice:       r.Choice,
			Correct:      model.IsCorrect(r.Choice, r.Answer),
			QuestionID:   r.QuestionID,
			AttemptSetID: req.OdapsetID,
		}
	}
	if err := s.answers.CreateMany(ctx, answers); err != nil {
		return nil, fmt.Errorf("create answers: %w", err)
	}

	set, err := s.attempts.GetOwnedWithAnswers(ctx, req.OdapsetID, userID)
	if err != nil {
		return nil, notFound(err, "reload attempt set")
	}

	sets, err := s.examSetsOf(ctx, []model.AttemptSet{*set})
	if err != nil {
		return nil, err
	}
	report := s.score(set, sets)
	s.writeTotals(ctx, model.AttemptTotals{
		AttemptSetID: set.ID,
		TotalAmount:  report.TotalAmountOfQuestions,
		TotalScore:   report.TotalScore,
		Passed:       report.IfPassedTest,
	})

	s.log.Info().
		Int("user_id", userID).
		Int("attempt_set_id", set.ID).
		Int("answers", len(answers)).
		Bool("passed", report.IfPassedTest).
		Msg("Attempt set submitted")
	return &report, nil
}

// History returns one score report per attempt set of mode, newest first.
func (s *ResultService) History(ctx context.Context, userID int, mode model.ExamType) ([]model.ScoreReport, error) {
	if userID <= 0 {
		return nil, ErrAnonymous
	}
	sets, err := s.attempts.ListWithAnswers(ctx, userID, mode)
	if err != nil {
		return nil, fmt.Errorf("list attempt sets: %w", err)
	}

	examSets, err := s.examSetsOf(ctx, sets)
	if err != nil {
		return nil, err
	}

	reports := make([]model.ScoreReport, 0, len(sets))
	for i := range sets {
		reports = append(reports, s.score(&sets[i], examSets))
	}
	return reports, nil
}

// ReviewList returns the user's latest wrong answer per question across all
// modes, with the source exam set and resolved images attached.
func (s *ResultService) ReviewList(ctx context.Context, userID int) ([]model.ReviewEntry, error) {
	if userID <= 0 {
		return nil, ErrAnonymous
	}
	sets, err := s.attempts.ListWithAnswers(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("list attempt sets: %w", err)
	}

	entries := grading.LatestWrongAnswers(sets)
	if len(entries) == 0 {
		return []model.ReviewEntry{}, nil
	}

	ids := make([]int, 0, len(entries))
	seen := make(map[int]bool)
	for _, e := range entries {
		if !seen[e.ExamSetID] {
			seen[e.ExamSetID] = true
			ids = append(ids, e.ExamSetID)
		}
	}
	list, err := s.examSets.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list exam sets: %w", err)
	}
	byID := make(map[int]*model.ExamSet, len(list))
	for i := range list {
		byID[list[i].ID] = &list[i]
	}
	s.images.Prewarm(list)

	for i := range entries {
		e := &entries[i]
		set, ok := byID[e.ExamSetID]
		if !ok {
			s.log.Warn().
				Int("question_id", e.ID).
				Int("exam_set_id", e.ExamSetID).
				Msg("Review entry has no exam set, serving without images")
			continue
		}
		e.ExamSet = set
		e.ImgPaths = s.images.Resolve(*set, e.FullText())
	}
	return entries, nil
}

// Hide soft-deletes one of the user's answers so it leaves the review list.
func (s *ResultService) Hide(ctx context.Context, userID, answerID int) error {
	if userID <= 0 {
		return ErrAnonymous
	}
	if err := s.answers.HideOwned(ctx, answerID, userID); err != nil {
		return notFound(err, "hide answer")
	}
	return nil
}

// Detail returns one of the user's attempt sets with its answered questions.
func (s *ResultService) Detail(ctx context.Context, userID, attemptSetID int) (*model.ResultSetDetail, error) {
	if userID <= 0 {
		return nil, ErrAnonymous
	}
	set, err := s.attempts.GetOwnedWithAnswers(ctx, attemptSetID, userID)
	if err != nil {
		return nil, notFound(err, "get attempt set")
	}

	d := &model.ResultSetDetail{
		ID:          set.ID,
		ExamType:    set.ExamType,
		CreatedAt:   set.CreatedAt,
		DurationSec: set.DurationSec,
		TotalAmount: set.TotalAmount,
		TotalScore:  set.TotalScore,
		Passed:      set.Passed,
		Results:     make([]model.ResultDetail, 0, len(set.Answers)),
	}
	for _, a := range set.Answers {
		if a.Question == nil {
			s.log.Warn().
				Int("attempt_set_id", set.ID).
				Int("question_id", a.QuestionID).
				Msg("Answer references a missing question")
			continue
		}
		d.Results = append(d.Results, model.ResultDetail{
			ID:       a.ID,
			Choice:   a.Choice,
			Correct:  a.Correct,
			Question: *a.Question,
		})
	}
	return d, nil
}

// examSetsOf loads the exam set each attempt set's first resolvable question
// belongs to.
func (s *ResultService) examSetsOf(ctx context.Context, sets []model.AttemptSet) (map[int]*model.ExamSet, error) {
	var ids []int
	seen := make(map[int]bool)
	for i := range sets {
		if id, ok := sourceExamSetID(&sets[i]); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	list, err := s.examSets.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list exam sets: %w", err)
	}
	byID := make(map[int]*model.ExamSet, len(list))
	for i := range list {
		byID[list[i].ID] = &list[i]
	}
	return byID, nil
}

func sourceExamSetID(set *model.AttemptSet) (int, bool) {
	for _, a := range set.Answers {
		if a.Question != nil {
			return a.Question.ExamSetID, true
		}
	}
	return 0, false
}

// score runs the scorer and evaluator over a loaded attempt set. Data
// integrity problems are logged and scored fail-safe.
func (s *ResultService) score(set *model.AttemptSet, examSets map[int]*model.ExamSet) model.ScoreReport {
	var (
		license model.LicenseType
		detail  string
	)
	if id, ok := sourceExamSetID(set); ok {
		if es, found := examSets[id]; found {
			license = es.License
			detail = es.Label()
		}
	}
	if set.ExamType == model.ExamTypeCBT {
		detail = model.MockExamLabel
	}

	scores, unresolved := grading.ScoreAnswers(set.Answers)
	if unresolved > 0 {
		s.log.Warn().
			Int("attempt_set_id", set.ID).
			Int("unresolved", unresolved).
			Msg("Answers reference missing questions, skipped in scoring")
	}

	v, err := grading.Evaluate(license, scores)
	if err != nil {
		if errors.Is(err, grading.ErrNoSubjectScores) {
			s.log.Warn().
				Int("attempt_set_id", set.ID).
				Msg("Attempt set has no scorable answers, reported as failed")
		} else {
			s.log.Error().Err(err).Int("attempt_set_id", set.ID).Msg("Evaluation failed")
		}
	}

	return grading.Report(set, detail, v)
}

// writeTotals queues the aggregates for the write-back worker, or writes them
// directly when no queue is available.
func (s *ResultService) writeTotals(ctx context.Context, t model.AttemptTotals) {
	if s.totals != nil {
		err := s.totals.PublishTotals(ctx, t)
		if err == nil {
			return
		}
		s.log.Warn().Err(err).
			Int("attempt_set_id", t.AttemptSetID).
			Msg("Totals enqueue failed, writing directly")
	}

	if err := s.attempts.UpdateTotals(ctx, t); err != nil {
		s.log.Error().Err(err).
			Int("attempt_set_id", t.AttemptSetID).
			Msg("Failed to write attempt totals")
	}
}
