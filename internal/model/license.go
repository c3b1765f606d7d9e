package model

import (
	"encoding/json"
	"strings"
)

// LicenseType is the class of maritime certification an exam set belongs to.
type LicenseType string

const (
	LicenseGigwansa  LicenseType = "기관사"
	LicenseHanghaesa LicenseType = "항해사"
	LicenseSohyeong  LicenseType = "소형선박조종사"
)

// Licenses lists every supported license class.
var Licenses = []LicenseType{LicenseGigwansa, LicenseHanghaesa, LicenseSohyeong}

// Valid reports whether l is a known license class.
func (l LicenseType) Valid() bool {
	switch l {
	case LicenseGigwansa, LicenseHanghaesa, LicenseSohyeong:
		return true
	}
	return false
}

// Code returns the single-letter code used in media directory names.
func (l LicenseType) Code() string {
	switch l {
	case LicenseGigwansa:
		return "E"
	case LicenseHanghaesa:
		return "D"
	case LicenseSohyeong:
		return "S"
	}
	return ""
}

// Grade is the rank within a license class. GradeNone is a legacy placeholder.
type Grade string

const (
	GradeNone Grade = "0"
	Grade1    Grade = "1"
	Grade2    Grade = "2"
	Grade3    Grade = "3"
	Grade4    Grade = "4"
	Grade5    Grade = "5"
	Grade6    Grade = "6"
)

// Valid reports whether g is a known grade.
func (g Grade) Valid() bool {
	return len(g) == 1 && g[0] >= '0' && g[0] <= '6'
}

// MediaGrade returns the grade used for media directory lookup.
// Grade 0 shares grade 1's directory.
func (g Grade) MediaGrade() Grade {
	if g == GradeNone {
		return Grade1
	}
	return g
}

// Inning is the administration round of an exam within a year.
type Inning string

const (
	Inning1 Inning = "1"
	Inning2 Inning = "2"
	Inning3 Inning = "3"
	Inning4 Inning = "4"
)

// Valid reports whether i is a known round.
func (i Inning) Valid() bool {
	return len(i) == 1 && i[0] >= '1' && i[0] <= '4'
}

// Subject is an exam topic.
type Subject string

const (
	SubjectHanghae  Subject = "항해"
	SubjectUnyong   Subject = "운용"
	SubjectBeopgyu  Subject = "법규"
	SubjectEnglish  Subject = "영어"
	SubjectSangseon Subject = "상선전문"
	SubjectEoseon   Subject = "어선전문"
	SubjectGigwan1  Subject = "기관1"
	SubjectGigwan2  Subject = "기관2"
	SubjectGigwan3  Subject = "기관3"
	SubjectGigwan   Subject = "기관"
	SubjectJikmu    Subject = "직무일반"
)

// Subjects lists every subject in canonical order.
var Subjects = []Subject{
	SubjectHanghae, SubjectUnyong, SubjectBeopgyu, SubjectEnglish,
	SubjectSangseon, SubjectEoseon, SubjectGigwan1, SubjectGigwan2,
	SubjectGigwan3, SubjectGigwan, SubjectJikmu,
}

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	for _, known := range Subjects {
		if s == known {
			return true
		}
	}
	return false
}

// ExamType is the mode an attempt set was taken in.
type ExamType string

const (
	ExamTypePractice ExamType = "practice"
	ExamTypeReal     ExamType = "exam"
	ExamTypeCBT      ExamType = "cbt"
)

// Valid reports whether t is a known exam mode.
func (t ExamType) Valid() bool {
	switch t {
	case ExamTypePractice, ExamTypeReal, ExamTypeCBT:
		return true
	}
	return false
}

// Choice is an option tag. The tags follow the printed exam papers.
type Choice string

const (
	Choice1 Choice = "가"
	Choice2 Choice = "나"
	Choice3 Choice = "사"
	Choice4 Choice = "아"
)

// Valid reports whether c is one of the four option tags.
func (c Choice) Valid() bool {
	switch c {
	case Choice1, Choice2, Choice3, Choice4:
		return true
	}
	return false
}

// UnmarshalJSON trims surrounding spaces; clients sometimes pad the tag.
func (c *Choice) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = Choice(strings.TrimSpace(s))
	return nil
}
