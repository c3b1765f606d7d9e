package handler

import (
	"context"

	"github.com/marinai/marinai-backend/internal/model"
	"github.com/marinai/marinai-backend/internal/service"
)

// The handlers depend on these narrow views of the services.

type solver interface {
	RetrieveOneInning(ctx context.Context, q model.SolveQuery, user *model.User) (*model.SolveResponse, error)
}

type imageOpener interface {
	Open(name string) (*service.Image, error)
}

type cbtGenerator interface {
	Generate(ctx context.Context, q model.CBTQuery, user *model.User) (*model.CBTResponse, error)
}

type resultRecorder interface {
	SaveOne(ctx context.Context, userID int, req model.SaveOneRequest) (*model.Answer, error)
	SubmitMany(ctx context.Context, userID int, req model.SubmitManyRequest) (*model.ScoreReport, error)
	Hide(ctx context.Context, userID, answerID int) error
	Detail(ctx context.Context, userID, attemptSetID int) (*model.ResultSetDetail, error)
	History(ctx context.Context, userID int, mode model.ExamType) ([]model.ScoreReport, error)
	ReviewList(ctx context.Context, userID int) ([]model.ReviewEntry, error)
}

type authenticator interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}
