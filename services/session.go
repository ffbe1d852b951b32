package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"docquiz/models"
)

// RevealDelay is how long the UI shows the correctness of the just-answered
// question before advancing. The transport decides whether this is a timer
// or an explicit continue tap; the session only gates on Advance.
const RevealDelay = time.Second

// EventEmitter receives session telemetry. Implementations must never
// block the play flow on delivery; failures are logged and swallowed.
type EventEmitter interface {
	Emit(ctx context.Context, eventType string, questionIndex *int, metadata map[string]interface{})
}

// SessionState is the lifecycle phase of a playthrough.
type SessionState int

const (
	SessionNotStarted SessionState = iota
	SessionInProgress
	SessionCompleted
)

func (s SessionState) String() string {
	switch s {
	case SessionNotStarted:
		return "not_started"
	case SessionInProgress:
		return "in_progress"
	case SessionCompleted:
		return "completed"
	}
	return "unknown"
}

// AnswerRecord holds one question's recorded answer; both fields are nil
// until the respondent answers.
type AnswerRecord struct {
	SelectedOption *int  `json:"selected_option"`
	IsCorrect      *bool `json:"is_correct"`
}

// AnswerResult summarizes the outcome of a single answer submission.
type AnswerResult struct {
	QuestionIndex int  `json:"question_index"`
	Selected      int  `json:"selected"`
	Correct       bool `json:"correct"`
	CorrectAnswer int  `json:"correct_answer"`
	Completed     bool `json:"completed"`
	Score         int  `json:"score"`
	Total         int  `json:"total"`
}

// SessionSnapshot is a transport-friendly view of the session.
type SessionSnapshot struct {
	State           string           `json:"state"`
	CurrentQuestion int              `json:"current_question"`
	Total           int              `json:"total"`
	Answers         []AnswerRecord   `json:"answers"`
	Question        *models.Question `json:"question,omitempty"`
	Score           int              `json:"score"`
	Percent         int              `json:"percent"`
	StartedAt       time.Time        `json:"started_at"`
}

// QuizSession drives a single respondent's playthrough of an experience.
// Transitions only move forward: NotStarted -> InProgress(0..n-1) ->
// Completed. Nothing is persisted; an abandoned session restarts from
// scratch.
type QuizSession struct {
	mu         sync.Mutex
	experience *models.TriviaExperience
	emitter    EventEmitter
	now        func() time.Time

	state     SessionState
	current   int
	answers   []AnswerRecord
	startedAt time.Time
}

// NewQuizSession builds a session over the experience's question set.
func NewQuizSession(experience *models.TriviaExperience, emitter EventEmitter) *QuizSession {
	return newQuizSessionWithClock(experience, emitter, time.Now)
}

// newQuizSessionWithClock allows deterministic timestamps in tests.
func newQuizSessionWithClock(experience *models.TriviaExperience, emitter EventEmitter, now func() time.Time) *QuizSession {
	return &QuizSession{
		experience: experience,
		emitter:    emitter,
		now:        now,
		state:      SessionNotStarted,
		answers:    make([]AnswerRecord, len(experience.Questions)),
	}
}

// Start moves the session into InProgress(0) and emits a start event.
// A question set with zero questions is not playable.
func (s *QuizSession) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionNotStarted {
		return fmt.Errorf("%w: session already started", models.ErrValidation)
	}
	if len(s.experience.Questions) == 0 {
		return models.ErrEmptyQuiz
	}

	s.state = SessionInProgress
	s.current = 0
	s.startedAt = s.now()
	s.emitter.Emit(ctx, models.EventStart, nil, nil)
	return nil
}

// SelectAnswer records the respondent's pick for the current question.
// First answer wins: a second call for an already-answered question is a
// no-op that re-reports the recorded outcome and emits nothing. Answering
// the last question completes the session and emits quiz_complete.
func (s *QuizSession) SelectAnswer(ctx context.Context, optionIndex int) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SessionNotStarted:
		return AnswerResult{}, models.ErrQuizNotStarted
	case SessionCompleted:
		return AnswerResult{}, models.ErrQuizCompleted
	}

	question := s.experience.Questions[s.current]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return AnswerResult{}, fmt.Errorf("%w: option %d outside question %d", models.ErrValidation, optionIndex, s.current)
	}

	index := s.current
	if existing := s.answers[index]; existing.SelectedOption != nil {
		// Duplicate submission: keep the first answer, emit nothing.
		return s.resultLocked(index, *existing.SelectedOption, *existing.IsCorrect), nil
	}

	correct := optionIndex == question.CorrectAnswer
	selected := optionIndex
	s.answers[index] = AnswerRecord{SelectedOption: &selected, IsCorrect: &correct}

	qi := index
	s.emitter.Emit(ctx, models.EventQuestionAnswer, &qi, map[string]interface{}{
		"selected": optionIndex,
		"correct":  correct,
	})

	if index == len(s.experience.Questions)-1 {
		s.state = SessionCompleted
		s.emitter.Emit(ctx, models.EventQuizComplete, nil, map[string]interface{}{
			"score": s.scoreLocked(),
			"total": len(s.experience.Questions),
		})
	}

	return s.resultLocked(index, selected, correct), nil
}

// Advance is the explicit continue gate after the reveal interval. It moves
// to the next question only once the current one has been answered; it is
// a no-op on a completed session.
func (s *QuizSession) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SessionNotStarted {
		return models.ErrQuizNotStarted
	}
	if s.state == SessionCompleted {
		return nil
	}
	if s.answers[s.current].SelectedOption == nil {
		return fmt.Errorf("%w: question %d not answered yet", models.ErrValidation, s.current)
	}
	// Completion happens inside SelectAnswer, so there is always a next
	// question here.
	s.current++
	return nil
}

// ExperienceID identifies the experience this session plays. The
// experience is fixed at creation, so no lock is needed.
func (s *QuizSession) ExperienceID() string {
	return s.experience.ID
}

// Score returns the count of correctly answered questions. Unanswered
// questions count as incorrect.
func (s *QuizSession) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreLocked()
}

// Percent returns the completion percentage, rounded.
func (s *QuizSession) Percent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.experience.Questions)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.scoreLocked()) / float64(total) * 100))
}

// Snapshot returns the session's current view for the transport layer.
func (s *QuizSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.experience.Questions)
	snap := SessionSnapshot{
		State:           s.state.String(),
		CurrentQuestion: s.current,
		Total:           total,
		Answers:         append([]AnswerRecord(nil), s.answers...),
		Score:           s.scoreLocked(),
		StartedAt:       s.startedAt,
	}
	if total > 0 {
		snap.Percent = int(math.Round(float64(snap.Score) / float64(total) * 100))
	}
	if s.state == SessionInProgress {
		q := s.experience.Questions[s.current]
		snap.Question = &q
	}
	return snap
}

func (s *QuizSession) scoreLocked() int {
	score := 0
	for _, a := range s.answers {
		if a.IsCorrect != nil && *a.IsCorrect {
			score++
		}
	}
	return score
}

func (s *QuizSession) resultLocked(index, selected int, correct bool) AnswerResult {
	return AnswerResult{
		QuestionIndex: index,
		Selected:      selected,
		Correct:       correct,
		CorrectAnswer: s.experience.Questions[index].CorrectAnswer,
		Completed:     s.state == SessionCompleted,
		Score:         s.scoreLocked(),
		Total:         len(s.experience.Questions),
	}
}
