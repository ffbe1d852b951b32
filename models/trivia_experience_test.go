package models

import (
	"errors"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3}, false},
		{"too few options", Question{Options: []string{"a", "b"}}, true},
		{"too many options", Question{Options: []string{"a", "b", "c", "d", "e"}}, true},
		{"negative answer", Question{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: -1}, true},
		{"answer past options", Question{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateQuestionsReportsIndex(t *testing.T) {
	questions := []Question{
		{Question: "ok", Options: []string{"a", "b", "c", "d"}},
		{Question: "broken", Options: []string{"a"}},
	}
	err := ValidateQuestions(questions)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := err.Error(); got == "" || got[:10] != "question 1" {
		t.Fatalf("expected error to name question 1, got %q", got)
	}
}

func TestPublished(t *testing.T) {
	var exp TriviaExperience
	if exp.Published() {
		t.Fatal("experience without slug must not be published")
	}

	empty := ""
	exp.ShareableSlug = &empty
	if exp.Published() {
		t.Fatal("empty slug must not count as published")
	}

	slug := "abc"
	exp.ShareableSlug = &slug
	if !exp.Published() {
		t.Fatal("expected published with slug set")
	}
}

func TestValidEventType(t *testing.T) {
	for _, valid := range []string{EventView, EventStart, EventQuestionAnswer, EventQuizComplete} {
		if !ValidEventType(valid) {
			t.Errorf("expected %q valid", valid)
		}
	}
	for _, invalid := range []string{"", "complete", "pause", "VIEW"} {
		if ValidEventType(invalid) {
			t.Errorf("expected %q invalid", invalid)
		}
	}
}
