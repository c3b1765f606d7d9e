package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marinai/marinai-backend/internal/model"
)

// AnswerRepository handles answer ("result") data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Create inserts a single answer.
func (r *AnswerRepository) Create(ctx context.Context, a *model.Answer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO answers (choice, correct, question_id, attempt_set_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.Choice, a.Correct, a.QuestionID, a.AttemptSetID,
	).Scan(&a.ID)
}

// CreateMany inserts answers in one batch and fills in their ids.
func (r *AnswerRepository) CreateMany(ctx context.Context, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range answers {
		a := &answers[i]
		batch.Queue(
			`INSERT INTO answers (choice, correct, question_id, attempt_set_id)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			a.Choice, a.Correct, a.QuestionID, a.AttemptSetID,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&a.ID)
		})
	}

	return r.pool.SendBatch(ctx, batch).Close()
}

// HideOwned soft-deletes an answer that belongs to one of userID's attempt sets.
// Returns pgx.ErrNoRows when there is no such answer.
func (r *AnswerRepository) HideOwned(ctx context.Context, id, userID int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE answers a
		 SET hidden = TRUE
		 FROM attempt_sets s
		 WHERE a.id = $1
		   AND a.attempt_set_id = s.id
		   AND s.user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
