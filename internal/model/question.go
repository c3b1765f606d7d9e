package model

import (
	"fmt"
	"strings"
)

// ExamSet is one published administration of a license exam.
type ExamSet struct {
	ID      int         `json:"id"`
	License LicenseType `json:"type"`
	Grade   Grade       `json:"grade"`
	Year    int         `json:"year"`
	Inning  Inning      `json:"inning"`
}

// MockExamLabel describes mixed-practice sessions, which span many exam sets.
const MockExamLabel = "모의고사"

// Label returns a human-readable description such as "항해사 1급 2023년 1회".
// The grade is omitted for the grade-less placeholder.
func (s *ExamSet) Label() string {
	if s.Grade == GradeNone {
		return fmt.Sprintf("%s %d년 %s회", s.License, s.Year, s.Inning)
	}
	return fmt.Sprintf("%s %s급 %d년 %s회", s.License, s.Grade, s.Year, s.Inning)
}

// Question is a single authored exam question.
type Question struct {
	ID          int     `json:"id"`
	Subject     Subject `json:"subject"`
	QNum        int     `json:"qnum"`
	QuestionStr string  `json:"questionstr"`
	Ex1Str      string  `json:"ex1str"`
	Ex2Str      string  `json:"ex2str"`
	Ex3Str      string  `json:"ex3str"`
	Ex4Str      string  `json:"ex4str"`
	Answer      Choice  `json:"answer"`
	Explanation *string `json:"explanation"`
	ExamSetID   int     `json:"gichulset_id"`
}

// FullText joins the question and option texts, the places image markers may appear.
func (q *Question) FullText() string {
	return strings.Join([]string{q.QuestionStr, q.Ex1Str, q.Ex2Str, q.Ex3Str, q.Ex4Str}, " ")
}

// QuestionWithImages is a question enriched with resolved image paths.
type QuestionWithImages struct {
	Question
	ImgPaths []string `json:"imgPaths"`
}

// SolveResponse is returned when a full exam set is served for solving.
type SolveResponse struct {
	OdapsetID *int                 `json:"odapset_id"`
	Qnas      []QuestionWithImages `json:"qnas"`
}

// SolveQuery selects one exam set.
type SolveQuery struct {
	ExamType ExamType    `form:"examtype" binding:"required,oneof=practice exam"`
	Year     int         `form:"year" binding:"required,min=2000,max=2100"`
	License  LicenseType `form:"license" binding:"required,license"`
	Grade    Grade       `form:"level" binding:"required,grade"`
	Inning   Inning      `form:"round" binding:"required,inning"`
}

// CBTQuery requests a mixed-practice session.
type CBTQuery struct {
	License  LicenseType `form:"license" binding:"required,license"`
	Grade    Grade       `form:"level" binding:"required,grade"`
	Subjects []Subject   `form:"subjects" binding:"required,min=1"`
}

// CBTResponse carries one sampled question list per requested subject.
type CBTResponse struct {
	OdapsetID *int                             `json:"odapset_id"`
	Subjects  map[Subject][]QuestionWithImages `json:"subjects"`
}

// LicenseGrade identifies the question pool shared by every exam set of one
// license class and grade.
type LicenseGrade struct {
	License LicenseType `json:"license"`
	Grade   Grade       `json:"grade"`
}
