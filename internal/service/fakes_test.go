package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/marinai/marinai-backend/internal/grading"
	"github.com/marinai/marinai-backend/internal/model"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories.
type memStore struct {
	mu        sync.Mutex
	examSets  []model.ExamSet
	questions []model.Question
	attempts  []model.AttemptSet
	answers   []model.Answer
	users     []model.User
	totals    []model.AttemptTotals
	clock     time.Time
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

// ─── ExamSetStore ────────────────────────────────────────────────────

func (m *memStore) FindOne(_ context.Context, year int, license model.LicenseType, grade model.Grade, inning model.Inning) (*model.ExamSet, error) {
	for _, s := range m.examSets {
		if s.Year == year && s.License == license && s.Grade == grade && s.Inning == inning {
			s := s
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) ListByLicenseGrade(_ context.Context, license model.LicenseType, grade model.Grade) ([]model.ExamSet, error) {
	var out []model.ExamSet
	for _, s := range m.examSets {
		if s.License == license && s.Grade == grade {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ListByIDs(_ context.Context, ids []int) ([]model.ExamSet, error) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.ExamSet
	for _, s := range m.examSets {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ListLicenseGrades(_ context.Context) ([]model.LicenseGrade, error) {
	seen := make(map[model.LicenseGrade]bool)
	var out []model.LicenseGrade
	for _, s := range m.examSets {
		lg := model.LicenseGrade{License: s.License, Grade: s.Grade}
		if !seen[lg] {
			seen[lg] = true
			out = append(out, lg)
		}
	}
	return out, nil
}

// ─── QuestionStore ───────────────────────────────────────────────────

type questionStore struct{ *memStore }

func (q questionStore) ListByExamSet(_ context.Context, examSetID int) ([]model.Question, error) {
	var out []model.Question
	for _, question := range q.questions {
		if question.ExamSetID == examSetID {
			out = append(out, question)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].QNum < out[j].QNum })
	return out, nil
}

func (q questionStore) ListByLicenseGrade(_ context.Context, license model.LicenseType, grade model.Grade) ([]model.Question, error) {
	sets := make(map[int]bool)
	for _, s := range q.examSets {
		if s.License == license && s.Grade == grade {
			sets[s.ID] = true
		}
	}
	var out []model.Question
	for _, question := range q.questions {
		if sets[question.ExamSetID] {
			out = append(out, question)
		}
	}
	return out, nil
}

func (m *memStore) question(id int) *model.Question {
	for i := range m.questions {
		if m.questions[i].ID == id {
			q := m.questions[i]
			return &q
		}
	}
	return nil
}

// ─── AttemptSetStore ─────────────────────────────────────────────────

type attemptStore struct{ *memStore }

func (a attemptStore) Create(_ context.Context, examType model.ExamType, userID int) (*model.AttemptSet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clock = a.clock.Add(time.Minute)
	uid := userID
	s := model.AttemptSet{ID: len(a.attempts) + 1, ExamType: examType, UserID: &uid, CreatedAt: a.clock}
	a.attempts = append(a.attempts, s)
	return &s, nil
}

func (a attemptStore) find(id, userID int) *model.AttemptSet {
	for i := range a.attempts {
		s := &a.attempts[i]
		if s.ID == id && s.UserID != nil && *s.UserID == userID {
			return s
		}
	}
	return nil
}

func (a attemptStore) GetOwned(_ context.Context, id, userID int) (*model.AttemptSet, error) {
	s := a.find(id, userID)
	if s == nil {
		return nil, pgx.ErrNoRows
	}
	out := *s
	out.Answers = nil
	return &out, nil
}

func (a attemptStore) withAnswers(s model.AttemptSet) model.AttemptSet {
	s.Answers = []model.Answer{}
	for _, ans := range a.answers {
		if ans.AttemptSetID == s.ID {
			ans.Question = a.question(ans.QuestionID)
			s.Answers = append(s.Answers, ans)
		}
	}
	return s
}

func (a attemptStore) GetOwnedWithAnswers(_ context.Context, id, userID int) (*model.AttemptSet, error) {
	s := a.find(id, userID)
	if s == nil {
		return nil, pgx.ErrNoRows
	}
	out := a.withAnswers(*s)
	return &out, nil
}

func (a attemptStore) ListWithAnswers(_ context.Context, userID int, examType model.ExamType) ([]model.AttemptSet, error) {
	var out []model.AttemptSet
	for i := len(a.attempts) - 1; i >= 0; i-- {
		s := a.attempts[i]
		if s.UserID == nil || *s.UserID != userID {
			continue
		}
		if examType != "" && s.ExamType != examType {
			continue
		}
		full := a.withAnswers(s)
		if len(full.Answers) > 0 {
			out = append(out, full)
		}
	}
	return out, nil
}

func (a attemptStore) UpdateDuration(_ context.Context, id, durationSec int) error {
	for i := range a.attempts {
		if a.attempts[i].ID == id {
			d := durationSec
			a.attempts[i].DurationSec = &d
		}
	}
	return nil
}

func (a attemptStore) UpdateTotals(_ context.Context, t model.AttemptTotals) error {
	a.totals = append(a.totals, t)
	return nil
}

// ─── AnswerStore ─────────────────────────────────────────────────────

type answerStore struct{ *memStore }

func (a answerStore) Create(_ context.Context, ans *model.Answer) error {
	ans.ID = len(a.answers) + 1
	a.answers = append(a.answers, *ans)
	return nil
}

func (a answerStore) CreateMany(ctx context.Context, answers []model.Answer) error {
	for i := range answers {
		if err := a.Create(ctx, &answers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (a answerStore) HideOwned(_ context.Context, id, userID int) error {
	for i := range a.answers {
		ans := &a.answers[i]
		if ans.ID != id {
			continue
		}
		if attemptStore(a).find(ans.AttemptSetID, userID) == nil {
			break
		}
		ans.Hidden = true
		return nil
	}
	return pgx.ErrNoRows
}

// ─── UserStore ───────────────────────────────────────────────────────

type userStore struct{ *memStore }

func (u userStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range u.users {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (u userStore) Create(_ context.Context, user *model.User) error {
	user.ID = len(u.users) + 1
	u.users = append(u.users, *user)
	return nil
}

// ─── Collaborators ───────────────────────────────────────────────────

type fakePoolCache struct {
	pools map[model.LicenseGrade]grading.Pool
	gets  int
	err   error
}

func newFakePoolCache() *fakePoolCache {
	return &fakePoolCache{pools: make(map[model.LicenseGrade]grading.Pool)}
}

func (c *fakePoolCache) Get(_ context.Context, lg model.LicenseGrade) (grading.Pool, error) {
	c.gets++
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.pools[lg]
	if !ok {
		return nil, ErrCacheMiss
	}
	return p, nil
}

func (c *fakePoolCache) Set(_ context.Context, lg model.LicenseGrade, pool grading.Pool) error {
	c.pools[lg] = pool
	return nil
}

type fakePublisher struct {
	published []model.AttemptTotals
	err       error
}

func (p *fakePublisher) PublishTotals(_ context.Context, t model.AttemptTotals) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, t)
	return nil
}
