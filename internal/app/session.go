package app

import (
	"github.com/olwandejj/Quizzify/internal/domain"
)

// SessionPhase tracks where a quiz attempt is in its lifecycle.
type SessionPhase string

const (
	PhaseNotStarted SessionPhase = "not_started"
	PhaseInProgress SessionPhase = "in_progress"
	PhaseFinished   SessionPhase = "finished"
)

// QuizSession walks a fixed question list, scoring answers as it advances.
// The position only moves forward and equals the question count once the
// quiz is done. The zero value is a session that has not been started.
type QuizSession struct {
	category  string
	questions []domain.Question
	position  int
	score     int
	started   bool
}

func NewQuizSession() *QuizSession {
	return &QuizSession{}
}

// Start resets the session onto a category's question list. An empty list is
// legal and leaves the session immediately finished with a zero score.
func (s *QuizSession) Start(category string, questions []domain.Question) {
	s.category = category
	s.questions = questions
	s.position = 0
	s.score = 0
	s.started = true
}

// Reset returns the session to its pre-start state.
func (s *QuizSession) Reset() {
	*s = QuizSession{}
}

// CurrentQuestion returns the question at the current position. ok is false
// before the first Start and after the last question was answered.
func (s *QuizSession) CurrentQuestion() (domain.Question, bool) {
	if !s.started || s.position >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.position], true
}

// SubmitAnswer scores option against the current question and advances. A
// wrong or out-of-range option still advances the position; only an exact
// match with the correct index scores. Submitting with no active question
// changes nothing and returns ErrNoActiveQuestion.
func (s *QuizSession) SubmitAnswer(option int) (domain.AnswerResult, error) {
	question, ok := s.CurrentQuestion()
	if !ok {
		return domain.AnswerResult{}, domain.ErrNoActiveQuestion
	}

	correct := option == question.CorrectOption
	if correct {
		s.score++
	}
	s.position++

	return domain.AnswerResult{
		Option:   option,
		Correct:  correct,
		Score:    s.score,
		Finished: s.position >= len(s.questions),
	}, nil
}

// Score is readable at any time, including after the quiz finished.
func (s *QuizSession) Score() int {
	return s.score
}

// Category returns the name the session was started with.
func (s *QuizSession) Category() string {
	return s.category
}

// Position is the number of questions answered so far.
func (s *QuizSession) Position() int {
	return s.position
}

// Total is the length of the active question list.
func (s *QuizSession) Total() int {
	return len(s.questions)
}

// Phase reports the lifecycle state derived from position and question count.
func (s *QuizSession) Phase() SessionPhase {
	switch {
	case !s.started:
		return PhaseNotStarted
	case s.position >= len(s.questions):
		return PhaseFinished
	default:
		return PhaseInProgress
	}
}
