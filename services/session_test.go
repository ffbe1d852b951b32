package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"docquiz/models"
)

type emittedEvent struct {
	eventType     string
	questionIndex *int
	metadata      map[string]interface{}
}

type fakeEmitter struct {
	events []emittedEvent
}

func (f *fakeEmitter) Emit(_ context.Context, eventType string, questionIndex *int, metadata map[string]interface{}) {
	f.events = append(f.events, emittedEvent{eventType: eventType, questionIndex: questionIndex, metadata: metadata})
}

func (f *fakeEmitter) count(eventType string) int {
	n := 0
	for _, e := range f.events {
		if e.eventType == eventType {
			n++
		}
	}
	return n
}

func twoQuestionExperience() *models.TriviaExperience {
	return &models.TriviaExperience{
		ID:        "exp-1",
		ProjectID: "proj-1",
		UserID:    "user-1",
		Title:     "Test Quiz",
		Questions: datatypes.NewJSONSlice([]models.Question{
			{Question: "First?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 1},
			{Question: "Second?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 3},
		}),
	}
}

func TestFullPlaythroughAllCorrect(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	session := NewQuizSession(twoQuestionExperience(), emitter)

	if err := session.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if emitter.count(models.EventStart) != 1 {
		t.Fatalf("expected 1 start event, got %d", emitter.count(models.EventStart))
	}

	result, err := session.SelectAnswer(ctx, 1)
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if !result.Correct || result.Completed {
		t.Fatalf("expected correct, in-progress result, got %+v", result)
	}

	if err := session.Advance(); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	result, err = session.SelectAnswer(ctx, 3)
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if !result.Completed {
		t.Fatalf("expected completion after last answer, got %+v", result)
	}
	if result.Score != 2 || result.Total != 2 {
		t.Fatalf("expected score 2/2, got %d/%d", result.Score, result.Total)
	}
	if session.Percent() != 100 {
		t.Fatalf("expected 100%%, got %d", session.Percent())
	}

	if got := emitter.count(models.EventQuestionAnswer); got != 2 {
		t.Fatalf("expected 2 question_answer events, got %d", got)
	}
	if got := emitter.count(models.EventQuizComplete); got != 1 {
		t.Fatalf("expected 1 quiz_complete event, got %d", got)
	}

	last := emitter.events[len(emitter.events)-1]
	if last.eventType != models.EventQuizComplete {
		t.Fatalf("expected final event quiz_complete, got %s", last.eventType)
	}
	if last.metadata["score"] != 2 || last.metadata["total"] != 2 {
		t.Fatalf("unexpected completion metadata: %+v", last.metadata)
	}
}

func TestPartiallyCorrectScore(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	session := NewQuizSession(twoQuestionExperience(), emitter)

	if err := session.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := session.SelectAnswer(ctx, 0); err != nil { // wrong
		t.Fatalf("answer failed: %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	result, err := session.SelectAnswer(ctx, 3) // right
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	if result.Score != 1 || result.Total != 2 {
		t.Fatalf("expected score 1/2, got %d/%d", result.Score, result.Total)
	}
	if session.Percent() != 50 {
		t.Fatalf("expected 50%%, got %d", session.Percent())
	}
}

func TestDuplicateAnswerKeepsFirstAndEmitsOnce(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	session := NewQuizSession(twoQuestionExperience(), emitter)

	if err := session.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	first, err := session.SelectAnswer(ctx, 1)
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	second, err := session.SelectAnswer(ctx, 2)
	if err != nil {
		t.Fatalf("duplicate answer errored: %v", err)
	}

	if second.Selected != first.Selected || !second.Correct {
		t.Fatalf("duplicate answer altered the record: first=%+v second=%+v", first, second)
	}
	if got := emitter.count(models.EventQuestionAnswer); got != 1 {
		t.Fatalf("expected 1 question_answer event after duplicate, got %d", got)
	}

	snap := session.Snapshot()
	if sel := snap.Answers[0].SelectedOption; sel == nil || *sel != 1 {
		t.Fatalf("expected recorded answer 1, got %v", snap.Answers[0])
	}
}

func TestAnswerMetadataCarriesSelectionAndCorrectness(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	session := NewQuizSession(twoQuestionExperience(), emitter)

	if err := session.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := session.SelectAnswer(ctx, 0); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	var answerEvent *emittedEvent
	for i := range emitter.events {
		if emitter.events[i].eventType == models.EventQuestionAnswer {
			answerEvent = &emitter.events[i]
		}
	}
	if answerEvent == nil {
		t.Fatal("no question_answer event emitted")
	}
	if answerEvent.questionIndex == nil || *answerEvent.questionIndex != 0 {
		t.Fatalf("expected question index 0, got %v", answerEvent.questionIndex)
	}
	if answerEvent.metadata["selected"] != 0 || answerEvent.metadata["correct"] != false {
		t.Fatalf("unexpected answer metadata: %+v", answerEvent.metadata)
	}
}

func TestStartRejectsEmptyQuiz(t *testing.T) {
	emitter := &fakeEmitter{}
	experience := &models.TriviaExperience{ID: "empty", Questions: datatypes.NewJSONSlice([]models.Question{})}
	session := NewQuizSession(experience, emitter)

	if err := session.Start(context.Background()); !errors.Is(err, models.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
	if len(emitter.events) != 0 {
		t.Fatalf("expected no events for rejected start, got %d", len(emitter.events))
	}
}

func TestAnswerBeforeStart(t *testing.T) {
	session := NewQuizSession(twoQuestionExperience(), &fakeEmitter{})

	if _, err := session.SelectAnswer(context.Background(), 0); !errors.Is(err, models.ErrQuizNotStarted) {
		t.Fatalf("expected ErrQuizNotStarted, got %v", err)
	}
}

func TestAnswerRejectsOutOfRangeOption(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	session := NewQuizSession(twoQuestionExperience(), emitter)

	if err := session.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := session.SelectAnswer(ctx, 4); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error for option 4, got %v", err)
	}
	if _, err := session.SelectAnswer(ctx, -1); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error for option -1, got %v", err)
	}
	if got := emitter.count(models.EventQuestionAnswer); got != 0 {
		t.Fatalf("rejected answers must not emit events, got %d", got)
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	ctx := context.Background()
	session := NewQuizSession(twoQuestionExperience(), &fakeEmitter{})

	if err := session.Advance(); !errors.Is(err, models.ErrQuizNotStarted) {
		t.Fatalf("expected ErrQuizNotStarted, got %v", err)
	}
	if err := session.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := session.Advance(); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error advancing unanswered question, got %v", err)
	}

	if _, err := session.SelectAnswer(ctx, 1); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("advance after answer failed: %v", err)
	}
	if snap := session.Snapshot(); snap.CurrentQuestion != 1 {
		t.Fatalf("expected current question 1, got %d", snap.CurrentQuestion)
	}
}

func TestCompletedSessionIgnoresFurtherActions(t *testing.T) {
	ctx := context.Background()
	emitter := &fakeEmitter{}
	session := NewQuizSession(twoQuestionExperience(), emitter)

	if err := session.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := session.SelectAnswer(ctx, 1); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if _, err := session.SelectAnswer(ctx, 3); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	if _, err := session.SelectAnswer(ctx, 0); !errors.Is(err, models.ErrQuizCompleted) {
		t.Fatalf("expected ErrQuizCompleted, got %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("advance on completed session should be a no-op, got %v", err)
	}
	if got := emitter.count(models.EventQuizComplete); got != 1 {
		t.Fatalf("expected exactly one quiz_complete, got %d", got)
	}
}
