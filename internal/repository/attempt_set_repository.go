package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marinai/marinai-backend/internal/model"
)

const attemptSetColumns = `id, examtype, user_id, created_at, duration_sec, total_amount, total_score, passed`

// AttemptSetRepository handles attempt set ("resultset") data access.
type AttemptSetRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptSetRepository creates a new AttemptSetRepository.
func NewAttemptSetRepository(pool *pgxpool.Pool) *AttemptSetRepository {
	return &AttemptSetRepository{pool: pool}
}

// Create opens a new attempt set for a user.
func (r *AttemptSetRepository) Create(ctx context.Context, examType model.ExamType, userID int) (*model.AttemptSet, error) {
	s := model.AttemptSet{ExamType: examType, UserID: &userID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attempt_sets (examtype, user_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		examType, userID,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOwned retrieves an attempt set without its answers.
// Returns pgx.ErrNoRows when it does not exist or belongs to another user.
func (r *AttemptSetRepository) GetOwned(ctx context.Context, id, userID int) (*model.AttemptSet, error) {
	s, err := scanAttemptSet(r.pool.QueryRow(ctx,
		`SELECT `+attemptSetColumns+`
		 FROM attempt_sets
		 WHERE id = $1 AND user_id = $2`, id, userID,
	))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetOwnedWithAnswers retrieves an attempt set with its answers and their questions.
func (r *AttemptSetRepository) GetOwnedWithAnswers(ctx context.Context, id, userID int) (*model.AttemptSet, error) {
	s, err := r.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	sets := []model.AttemptSet{*s}
	if err := r.attachAnswers(ctx, sets); err != nil {
		return nil, err
	}
	return &sets[0], nil
}

// ListWithAnswers retrieves a user's attempt sets that hold at least one
// answer, newest first, each with its answers and their questions.
// An empty examType lists every mode.
func (r *AttemptSetRepository) ListWithAnswers(ctx context.Context, userID int, examType model.ExamType) ([]model.AttemptSet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attemptSetColumns+`
		 FROM attempt_sets s
		 WHERE s.user_id = $1
		   AND ($2 = '' OR s.examtype = $2)
		   AND EXISTS (SELECT 1 FROM answers a WHERE a.attempt_set_id = s.id)
		 ORDER BY s.created_at DESC, s.id DESC`,
		userID, string(examType),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []model.AttemptSet
	for rows.Next() {
		s, err := scanAttemptSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachAnswers(ctx, sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// UpdateDuration records the elapsed time of a finished attempt set.
func (r *AttemptSetRepository) UpdateDuration(ctx context.Context, id, durationSec int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attempt_sets SET duration_sec = $1 WHERE id = $2`,
		durationSec, id,
	)
	return err
}

// UpdateTotals writes the scored aggregates back onto an attempt set.
func (r *AttemptSetRepository) UpdateTotals(ctx context.Context, t model.AttemptTotals) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attempt_sets
		 SET total_amount = $1, total_score = $2, passed = $3
		 WHERE id = $4`,
		t.TotalAmount, t.TotalScore, t.Passed, t.AttemptSetID,
	)
	return err
}

// attachAnswers loads the answers of sets in one query, in stored order.
// Answers whose question row is missing keep a nil Question.
func (r *AttemptSetRepository) attachAnswers(ctx context.Context, sets []model.AttemptSet) error {
	if len(sets) == 0 {
		return nil
	}

	ids := make([]int, len(sets))
	index := make(map[int]int, len(sets))
	for i := range sets {
		ids[i] = sets[i].ID
		index[sets[i].ID] = i
		sets[i].Answers = []model.Answer{}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.choice, a.correct, a.hidden, COALESCE(a.question_id, 0), a.attempt_set_id,
		        q.id, q.subject, q.qnum, q.questionstr, q.ex1str, q.ex2str, q.ex3str, q.ex4str,
		        q.answer, q.explanation, q.exam_set_id
		 FROM answers a
		 LEFT JOIN questions q ON q.id = a.question_id
		 WHERE a.attempt_set_id = ANY($1)
		 ORDER BY a.attempt_set_id, a.id`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a  model.Answer
			qq nullableQuestion
		)
		if err := rows.Scan(
			&a.ID, &a.Choice, &a.Correct, &a.Hidden, &a.QuestionID, &a.AttemptSetID,
			&qq.ID, &qq.Subject, &qq.QNum, &qq.QuestionStr, &qq.Ex1Str, &qq.Ex2Str, &qq.Ex3Str, &qq.Ex4Str,
			&qq.Answer, &qq.Explanation, &qq.ExamSetID,
		); err != nil {
			return err
		}
		a.Question = qq.question()

		i := index[a.AttemptSetID]
		sets[i].Answers = append(sets[i].Answers, a)
	}
	return rows.Err()
}

// nullableQuestion receives the columns of a LEFT JOINed question.
type nullableQuestion struct {
	ID          *int
	Subject     *model.Subject
	QNum        *int
	QuestionStr *string
	Ex1Str      *string
	Ex2Str      *string
	Ex3Str      *string
	Ex4Str      *string
	Answer      *model.Choice
	Explanation *string
	ExamSetID   *int
}

func (n *nullableQuestion) question() *model.Question {
	if n.ID == nil {
		return nil
	}
	return &model.Question{
		ID:          *n.ID,
		Subject:     deref(n.Subject),
		QNum:        deref(n.QNum),
		QuestionStr: deref(n.QuestionStr),
		Ex1Str:      deref(n.Ex1Str),
		Ex2Str:      deref(n.Ex2Str),
		Ex3Str:      deref(n.Ex3Str),
		Ex4Str:      deref(n.Ex4Str),
		Answer:      deref(n.Answer),
		Explanation: n.Explanation,
		ExamSetID:   deref(n.ExamSetID),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func scanAttemptSet(row pgx.Row) (*model.AttemptSet, error) {
	var s model.AttemptSet
	if err := row.Scan(&s.ID, &s.ExamType, &s.UserID, &s.CreatedAt, &s.DurationSec, &s.TotalAmount, &s.TotalScore, &s.Passed); err != nil {
		return nil, err
	}
	return &s, nil
}
