package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marinai/marinai-backend/internal/model"
)

// ExamSetRepository handles exam set data access.
type ExamSetRepository struct {
	pool *pgxpool.Pool
}

// NewExamSetRepository creates a new ExamSetRepository.
func NewExamSetRepository(pool *pgxpool.Pool) *ExamSetRepository {
	return &ExamSetRepository{pool: pool}
}

// FindOne retrieves the exam set administered in the given year and round.
// Returns pgx.ErrNoRows when no such set exists.
func (r *ExamSetRepository) FindOne(ctx context.Context, year int, license model.LicenseType, grade model.Grade, inning model.Inning) (*model.ExamSet, error) {
	var s model.ExamSet
	err := r.pool.QueryRow(ctx,
		`SELECT id, license, grade, year, inning
		 FROM exam_sets
		 WHERE year = $1 AND license = $2 AND grade = $3 AND inning = $4`,
		year, license, grade, inning,
	).Scan(&s.ID, &s.License, &s.Grade, &s.Year, &s.Inning)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByLicenseGrade retrieves every exam set of a license and grade, oldest first.
func (r *ExamSetRepository) ListByLicenseGrade(ctx context.Context, license model.LicenseType, grade model.Grade) ([]model.ExamSet, error) {
	return r.list(ctx,
		`SELECT id, license, grade, year, inning
		 FROM exam_sets
		 WHERE license = $1 AND grade = $2
		 ORDER BY id`,
		license, grade,
	)
}

// ListByIDs retrieves the exam sets with the given ids.
func (r *ExamSetRepository) ListByIDs(ctx context.Context, ids []int) ([]model.ExamSet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx,
		`SELECT id, license, grade, year, inning
		 FROM exam_sets
		 WHERE id = ANY($1)
		 ORDER BY id`,
		ids,
	)
}

// ListAll retrieves every exam set.
func (r *ExamSetRepository) ListAll(ctx context.Context) ([]model.ExamSet, error) {
	return r.list(ctx, `SELECT id, license, grade, year, inning FROM exam_sets ORDER BY id`)
}

// ListLicenseGrades returns each distinct (license, grade) pair that has exam sets.
func (r *ExamSetRepository) ListLicenseGrades(ctx context.Context) ([]model.LicenseGrade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT license, grade FROM exam_sets ORDER BY license, grade`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []model.LicenseGrade
	for rows.Next() {
		var p model.LicenseGrade
		if err := rows.Scan(&p.License, &p.Grade); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// Upsert inserts an exam set or returns the id of the existing one.
func (r *ExamSetRepository) Upsert(ctx context.Context, s *model.ExamSet) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_sets (license, grade, year, inning)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (license, grade, year, inning) DO UPDATE SET year = EXCLUDED.year
		 RETURNING id`,
		s.License, s.Grade, s.Year, s.Inning,
	).Scan(&s.ID)
}

func (r *ExamSetRepository) list(ctx context.Context, query string, args ...any) ([]model.ExamSet, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []model.ExamSet
	for rows.Next() {
		var s model.ExamSet
		if err := rows.Scan(&s.ID, &s.License, &s.Grade, &s.Year, &s.Inning); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}
