package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/marinai/marinai-backend/internal/model"
)

// Domain errors shared by the exam services.
var (
	// ErrNotFound means the referenced exam set, attempt set or answer does
	// not exist or does not belong to the requesting user.
	ErrNotFound = errors.New("not found")
	// ErrAnonymous is returned when an operation needs a signed-in user.
	ErrAnonymous = errors.New("operation requires a signed-in user")
)

// ExamSetStore reads exam sets. Implemented by repository.ExamSetRepository.
type ExamSetStore interface {
	FindOne(ctx context.Context, year int, license model.LicenseType, grade model.Grade, inning model.Inning) (*model.ExamSet, error)
	ListByLicenseGrade(ctx context.Context, license model.LicenseType, grade model.Grade) ([]model.ExamSet, error)
	ListByIDs(ctx context.Context, ids []int) ([]model.ExamSet, error)
	ListLicenseGrades(ctx context.Context) ([]model.LicenseGrade, error)
}

// QuestionStore reads questions. Implemented by repository.QuestionRepository.
type QuestionStore interface {
	ListByExamSet(ctx context.Context, examSetID int) ([]model.Question, error)
	ListByLicenseGrade(ctx context.Context, license model.LicenseType, grade model.Grade) ([]model.Question, error)
}

// AttemptSetStore persists attempt sets. Implemented by repository.AttemptSetRepository.
type AttemptSetStore interface {
	Create(ctx context.Context, examType model.ExamType, userID int) (*model.AttemptSet, error)
	GetOwned(ctx context.Context, id, userID int) (*model.AttemptSet, error)
	GetOwnedWithAnswers(ctx context.Context, id, userID int) (*model.AttemptSet, error)
	ListWithAnswers(ctx context.Context, userID int, examType model.ExamType) ([]model.AttemptSet, error)
	UpdateDuration(ctx context.Context, id, durationSec int) error
	UpdateTotals(ctx context.Context, t model.AttemptTotals) error
}

// AnswerStore persists answers. Implemented by repository.AnswerRepository.
type AnswerStore interface {
	Create(ctx context.Context, a *model.Answer) error
	CreateMany(ctx context.Context, answers []model.Answer) error
	HideOwned(ctx context.Context, id, userID int) error
}

// UserStore persists users. Implemented by repository.UserRepository.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}

// notFound translates a storage miss into ErrNotFound and wraps anything else.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
