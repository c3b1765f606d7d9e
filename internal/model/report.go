package model

import "time"

// SubjectScore is the per-subject line of a score report.
type SubjectScore struct {
	QuestionCounts int  `json:"question_counts"`
	CorrectCounts  int  `json:"correct_counts"`
	Passed         bool `json:"passed"`
}

// ScoreReport is the externally visible outcome of one attempt set.
type ScoreReport struct {
	ResultSetID            int                      `json:"resultset_id"`
	DurationSec            *int                     `json:"duration_sec"`
	ExamDetail             string                   `json:"exam_detail"`
	TotalAmountOfQuestions int                      `json:"total_amount_of_questions"`
	TotalCorrectCounts     int                      `json:"total_correct_counts"`
	TotalScore             int                      `json:"total_score"`
	IfPassedTest           bool                     `json:"if_passed_test"`
	SubjectScores          map[Subject]SubjectScore `json:"subject_scores"`
}

// ReviewEntry is one line of the wrong-answer review list.
type ReviewEntry struct {
	Question
	ExamSet       *ExamSet `json:"gichulset"`
	Choice        *Choice  `json:"choice"`
	ResultID      int      `json:"result_id"`
	Hidden        bool     `json:"hidden"`
	AttemptCounts int      `json:"attempt_counts"`
	ImgPaths      []string `json:"imgPaths"`
}

// ResultSetDetail is an attempt set with its answers, as shown on the result page.
type ResultSetDetail struct {
	ID          int            `json:"id"`
	ExamType    ExamType       `json:"examtype"`
	CreatedAt   time.Time      `json:"created_date"`
	DurationSec *int           `json:"duration_sec"`
	TotalAmount *int           `json:"total_amount"`
	TotalScore  *int           `json:"total_score"`
	Passed      bool           `json:"passed"`
	Results     []ResultDetail `json:"results"`
}

// ResultDetail is one answered question inside ResultSetDetail.
type ResultDetail struct {
	ID       int      `json:"id"`
	Choice   *Choice  `json:"choice"`
	Correct  bool     `json:"correct"`
	Question Question `json:"gichul_qna"`
}

// HistoryExportQuery selects the attempt mode of a history download.
type HistoryExportQuery struct {
	Mode ExamType `form:"mode" binding:"required,examtype"`
}
