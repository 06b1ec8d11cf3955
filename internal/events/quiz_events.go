package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of quiz events
type EventType string

const (
	// Authoring events
	EventQuizSaved EventType = "quiz.saved"

	// Grading events
	EventQuizGraded EventType = "quiz.graded"
)

const eventSource = "poetry-service"

// QuizEvent is the base event structure for all quiz events
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// QuizSavedEvent is emitted after an editor replaces a quiz's question set.
type QuizSavedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	PoetID        uint   `json:"poet_id"`
	QuizTitle     string `json:"quiz_title"`
	EditorID      uint   `json:"editor_id"`
	QuestionCount int    `json:"question_count"`
}

// QuizGradedEvent is emitted after a submission is graded and its history
// row persisted.
type QuizGradedEvent struct {
	QuizID          uint `json:"quiz_id"`
	PoetID          uint `json:"poet_id"`
	UserID          uint `json:"user_id"`
	Score           int  `json:"score"`
	Total           int  `json:"total"`
	ScorePercent    int  `json:"score_percent"`
	DurationSeconds int  `json:"duration_seconds"`
}

// NewQuizEvent wraps a payload in the event envelope.
func NewQuizEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}
