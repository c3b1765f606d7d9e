package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marinai/marinai-backend/internal/model"
)

const questionColumns = `q.id, q.subject, q.qnum, q.questionstr, q.ex1str, q.ex2str, q.ex3str, q.ex4str, q.answer, q.explanation, q.exam_set_id`

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByExamSet retrieves all questions of an exam set, ordered by qnum.
func (r *QuestionRepository) ListByExamSet(ctx context.Context, examSetID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions q
		 WHERE q.exam_set_id = $1
		 ORDER BY q.qnum, q.id`, examSetID,
	)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

// ListByLicenseGrade retrieves the questions of every exam set of a license
// and grade, in exam set then qnum order.
func (r *QuestionRepository) ListByLicenseGrade(ctx context.Context, license model.LicenseType, grade model.Grade) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions q
		 JOIN exam_sets s ON s.id = q.exam_set_id
		 WHERE s.license = $1 AND s.grade = $2
		 ORDER BY s.id, q.qnum, q.id`, license, grade,
	)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

// ReplaceForExamSet deletes the questions of an exam set and bulk-inserts qs
// in their place, in one transaction.
func (r *QuestionRepository) ReplaceForExamSet(ctx context.Context, examSetID int, qs []model.Question) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE exam_set_id = $1`, examSetID); err != nil {
		return 0, fmt.Errorf("clear questions: %w", err)
	}

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"questions"},
		[]string{"exam_set_id", "subject", "qnum", "questionstr", "ex1str", "ex2str", "ex3str", "ex4str", "answer", "explanation"},
		pgx.CopyFromSlice(len(qs), func(i int) ([]any, error) {
			q := qs[i]
			return []any{examSetID, string(q.Subject), q.QNum, q.QuestionStr, q.Ex1Str, q.Ex2Str, q.Ex3Str, q.Ex4Str, string(q.Answer), q.Explanation}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy questions: %w", err)
	}

	return n, tx.Commit(ctx)
}

func scanQuestion(row pgx.Row, q *model.Question) error {
	return row.Scan(&q.ID, &q.Subject, &q.QNum, &q.QuestionStr, &q.Ex1Str, &q.Ex2Str, &q.Ex3Str, &q.Ex4Str, &q.Answer, &q.Explanation, &q.ExamSetID)
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
