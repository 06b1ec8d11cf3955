package models

import (
	"encoding/json"
	"strings"
	"time"
)

// QuestionKind discriminates the question/answer union. The stored form is
// upper-case; the public wire form is lower-case (see WireKind / ParseKind).
type QuestionKind string

const (
	KindSingle   QuestionKind = "SINGLE"
	KindMultiple QuestionKind = "MULTIPLE"
	KindMatch    QuestionKind = "MATCH"
	KindText     QuestionKind = "TEXT"
)

func (k QuestionKind) Valid() bool {
	switch k {
	case KindSingle, KindMultiple, KindMatch, KindText:
		return true
	}
	return false
}

// WireKind is the lower-case form used in answer payloads and the
// quiz-taking response.
func (k QuestionKind) WireKind() string {
	return strings.ToLower(string(k))
}

// ParseKind accepts either casing and normalizes to the stored form.
func ParseKind(s string) (QuestionKind, bool) {
	k := QuestionKind(strings.ToUpper(strings.TrimSpace(s)))
	return k, k.Valid()
}

// UnmarshalJSON normalizes incoming kind tags, which arrive lower-case from
// the quiz-taking client and upper-case from authoring payloads.
func (k *QuestionKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, _ := ParseKind(s)
	*k = parsed
	return nil
}

type Quiz struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Title  string `json:"title" gorm:"not null;size:300"`
	PoetID uint   `json:"poetId" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// Question is the stored representation. Correctness for choice kinds lives
// in the per-option IsCorrect flags; for match kind the pair order itself is
// the ground truth; for text kind it is the attached TextAnswer row.
type Question struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	QuizID   uint         `json:"quizId" gorm:"not null;index"`
	Prompt   string       `json:"question" gorm:"type:text;not null"`
	Kind     QuestionKind `json:"type" gorm:"not null;size:10"`
	Position int          `json:"-" gorm:"not null;default:0"`

	Options    []Option    `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	MatchPairs []MatchPair `json:"matchPairs,omitempty" gorm:"foreignKey:QuestionID"`
	TextAnswer *TextAnswer `json:"textAnswer,omitempty" gorm:"foreignKey:QuestionID"`
}

type Option struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"-" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"isCorrect" gorm:"not null;default:false"`
	Position   int    `json:"-" gorm:"not null;default:0"`
}

type MatchPair struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"-" gorm:"not null;index"`
	Left       string `json:"left" gorm:"not null"`
	Right      string `json:"right" gorm:"not null"`
	Position   int    `json:"-" gorm:"not null;default:0"`
}

type TextAnswer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"-" gorm:"uniqueIndex;not null"`
	Answer     string `json:"answer" gorm:"not null"`
}

// QuizResult is the compact history row persisted once per grading call.
// The per-question breakdown is only returned in the response, never stored.
type QuizResult struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"userId" gorm:"not null;index"`
	QuizID          uint      `json:"quizId" gorm:"not null;index"`
	ScorePercent    int       `json:"scorePercent" gorm:"not null"`
	DurationSeconds int       `json:"durationSeconds" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (Question) TableName() string {
	return "questions"
}

func (Option) TableName() string {
	return "options"
}

func (MatchPair) TableName() string {
	return "match_pairs"
}

func (TextAnswer) TableName() string {
	return "text_answers"
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// CorrectIndexes collects the positions of options flagged correct, in
// option order.
func (q *Question) CorrectIndexes() []int {
	idxs := make([]int, 0, len(q.Options))
	for i, opt := range q.Options {
		if opt.IsCorrect {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
