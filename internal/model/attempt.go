package model

import "time"

// AttemptSet is one exam-taking session (a "resultset" on the wire).
type AttemptSet struct {
	ID          int       `json:"id"`
	ExamType    ExamType  `json:"examtype"`
	UserID      *int      `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_date"`
	DurationSec *int      `json:"duration_sec"`
	TotalAmount *int      `json:"total_amount"`
	TotalScore  *int      `json:"total_score"`
	Passed      bool      `json:"passed"`
	Answers     []Answer  `json:"results"`
}

// Answer is a user's response to one question inside an attempt set.
type Answer struct {
	ID           int       `json:"id"`
	Choice       *Choice   `json:"choice"`
	Correct      bool      `json:"correct"`
	Hidden       bool      `json:"hidden"`
	QuestionID   int       `json:"gichulqna_id"`
	AttemptSetID int       `json:"resultset_id"`
	Question     *Question `json:"gichul_qna,omitempty"`
}

// IsCorrect reports whether choice matches the expected option.
// An unanswered question is never correct.
func IsCorrect(choice *Choice, answer Choice) bool {
	return choice != nil && *choice == answer
}

// SaveOneRequest submits a single answer.
type SaveOneRequest struct {
	Choice     Choice `json:"choice" binding:"required,choice"`
	QuestionID int    `json:"gichulqna_id" binding:"required,min=1"`
	Answer     Choice `json:"answer" binding:"required,choice"`
	OdapsetID  int    `json:"odapset_id" binding:"min=0"`
}

// SubmittedAnswer is one entry of a batch submission.
type SubmittedAnswer struct {
	Choice     *Choice `json:"choice" binding:"omitempty,choice"`
	Answer     Choice  `json:"answer" binding:"required,choice"`
	QuestionID int     `json:"gichulqna_id" binding:"required,min=1"`
}

// SubmitManyRequest submits a whole session at once.
type SubmitManyRequest struct {
	OdapsetID   int               `json:"odapset_id" binding:"min=0"`
	DurationSec *int              `json:"duration_sec" binding:"omitempty,min=0"`
	Results     []SubmittedAnswer `json:"results" binding:"required,min=1,dive"`
}

// AttemptTotals are the aggregate figures written back onto an attempt set
// once it has been scored.
type AttemptTotals struct {
	AttemptSetID int  `json:"attempt_set_id"`
	TotalAmount  int  `json:"total_amount"`
	TotalScore   int  `json:"total_score"`
	Passed       bool `json:"passed"`
}
