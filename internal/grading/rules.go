// Package grading holds the scoring rules of the licensing exams: per-subject
// tallies, pass/fail evaluation, mixed-practice pool sampling and the
// wrong-answer review list. Everything here is pure and safe for concurrent use.
package grading

import (
	"errors"

	"github.com/marinai/marinai-backend/internal/model"
)

// Exam-board constants.
const (
	// SampleSize is the number of questions drawn per subject for a CBT session.
	SampleSize = 25
	// DefaultPassCount is the minimum correct count for a subject.
	DefaultPassCount = 10
	// LawPassCount is the minimum correct count for the regulations subject
	// of the navigator license.
	LawPassCount = 15
	// MeanPassCount is the minimum mean correct count across subjects.
	MeanPassCount = 15
	// PointsPerQuestion converts a correct count into a score.
	PointsPerQuestion = 4
)

var (
	// ErrUnknownSubject is returned when a requested subject is not recognized.
	ErrUnknownSubject = errors.New("unknown subject")
	// ErrInsufficientPool is returned when a subject has fewer than SampleSize
	// distinct questions.
	ErrInsufficientPool = errors.New("not enough distinct questions for subject")
	// ErrNoSubjectScores is returned when a verdict is requested for no subjects.
	ErrNoSubjectScores = errors.New("no subject scores to evaluate")
)

// PassCount returns the minimum correct count for subject under license.
func PassCount(license model.LicenseType, subject model.Subject) int {
	if license == model.LicenseHanghaesa && subject == model.SubjectBeopgyu {
		return LawPassCount
	}
	return DefaultPassCount
}
