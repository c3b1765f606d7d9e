// Package importer reads exam-set question files in the export format used
// by the question authoring pipeline:
//
//	{"subject": {"name": "항해사 1급", "year": 2023, "inning": 1,
//	  "type": [{"string": "1. 항해", "questions": [{"num": 1, "questionsStr": "...",
//	    "ex1Str": "...", "ex2Str": "...", "ex3Str": "...", "ex4Str": "...", "answer": "가"}]}]}}
//
// Files live at {root}/{license dir}/{set dir}/{set dir}.json, next to the
// images of the same set.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/marinai/marinai-backend/internal/model"
)

var (
	// ErrUnknownLicense is returned when a set name names no known license.
	ErrUnknownLicense = errors.New("unknown license in set name")
	// ErrInvalidQuestion is returned for a question with an unknown subject
	// or answer tag.
	ErrInvalidQuestion = errors.New("invalid question")
)

// nameSeparators splits names such as "항해사 1급" or "1. 항해".
var nameSeparators = regexp.MustCompile(`[.\s?]`)

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) int() (int, error) {
	return strconv.Atoi(string(f))
}

type exportFile struct {
	Subject struct {
		Name     string       `json:"name"`
		Year     flexString   `json:"year"`
		Inning   flexString   `json:"inning"`
		Sections []exportType `json:"type"`
	} `json:"subject"`
}

type exportType struct {
	Label     string           `json:"string"`
	Questions []exportQuestion `json:"questions"`
}

type exportQuestion struct {
	Num          flexString `json:"num"`
	QuestionsStr string     `json:"questionsStr"`
	Ex1Str       string     `json:"ex1Str"`
	Ex2Str       string     `json:"ex2Str"`
	Ex3Str       string     `json:"ex3Str"`
	Ex4Str       string     `json:"ex4Str"`
	Answer       string     `json:"answer"`
}

// ParseSetName maps a free-form set name to its license and grade. Small
// vessel operator sets carry no grade and map to model.GradeNone.
func ParseSetName(name string) (model.LicenseType, model.Grade, error) {
	var license model.LicenseType
	switch {
	case strings.Contains(name, "기관사"):
		license = model.LicenseGigwansa
	case strings.Contains(name, "항해사"):
		license = model.LicenseHanghaesa
	case strings.Contains(name, "소형"):
		return model.LicenseSohyeong, model.GradeNone, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownLicense, name)
	}

	parts := nameSeparators.Split(name, -1)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: no grade in %q", ErrUnknownLicense, name)
	}
	grade := model.Grade(strings.TrimSuffix(parts[1], "급"))
	if !grade.Valid() {
		return "", "", fmt.Errorf("%w: grade %q in %q", ErrUnknownLicense, grade, name)
	}
	return license, grade, nil
}

// ParseSubject extracts the subject from a section label such as "1. 항해".
func ParseSubject(label string) model.Subject {
	parts := nameSeparators.Split(strings.TrimSpace(label), -1)
	return model.Subject(parts[len(parts)-1])
}

// Parse decodes one export file. Questions with blank text are skipped.
func Parse(r io.Reader) (model.ExamSet, []model.Question, error) {
	var f exportFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return model.ExamSet{}, nil, fmt.Errorf("decode: %w", err)
	}

	license, grade, err := ParseSetName(f.Subject.Name)
	if err != nil {
		return model.ExamSet{}, nil, err
	}
	year, err := f.Subject.Year.int()
	if err != nil {
		return model.ExamSet{}, nil, fmt.Errorf("year %q: %w", f.Subject.Year, err)
	}
	inning := model.Inning(f.Subject.Inning)
	if !inning.Valid() {
		return model.ExamSet{}, nil, fmt.Errorf("invalid inning %q", f.Subject.Inning)
	}
	set := model.ExamSet{License: license, Grade: grade, Year: year, Inning: inning}

	var questions []model.Question
	for _, section := range f.Subject.Sections {
		subject := ParseSubject(section.Label)
		if !subject.Valid() {
			return set, nil, fmt.Errorf("%w: subject %q", ErrInvalidQuestion, section.Label)
		}
		for _, q := range section.Questions {
			if strings.TrimSpace(q.QuestionsStr) == "" {
				continue
			}
			num, err := q.Num.int()
			if err != nil {
				return set, nil, fmt.Errorf("%w: %s number %q", ErrInvalidQuestion, subject, q.Num)
			}
			answer := model.Choice(strings.TrimSpace(q.Answer))
			if !answer.Valid() {
				return set, nil, fmt.Errorf("%w: %s %d answer %q", ErrInvalidQuestion, subject, num, q.Answer)
			}
			questions = append(questions, model.Question{
				Subject:     subject,
				QNum:        num,
				QuestionStr: q.QuestionsStr,
				Ex1Str:      q.Ex1Str,
				Ex2Str:      q.Ex2Str,
				Ex3Str:      q.Ex3Str,
				Ex4Str:      q.Ex4Str,
				Answer:      answer,
			})
		}
	}
	return set, questions, nil
}

// Find lists the export files below the root of fsys, one per set folder.
// Folders without a matching file are returned in missing.
func Find(fsys fs.FS) (files, missing []string, err error) {
	dirs, err := fs.Glob(fsys, "*/*")
	if err != nil {
		return nil, nil, err
	}
	for _, dir := range dirs {
		info, err := fs.Stat(fsys, dir)
		if err != nil || !info.IsDir() {
			continue
		}
		name := path.Join(dir, path.Base(dir)+".json")
		if _, err := fs.Stat(fsys, name); err != nil {
			missing = append(missing, name)
			continue
		}
		files = append(files, name)
	}
	return files, missing, nil
}
