package services

import (
	"fmt"

	"docquiz/models"
)

// Draft is an in-memory working copy of an experience's title and question
// list. Edits accumulate here and are persisted in one shot by a separate
// save call; nothing autosaves.
type Draft struct {
	title     string
	questions []models.Question
}

// NewDraft copies the given questions into a fresh working copy.
func NewDraft(title string, questions []models.Question) *Draft {
	copied := make([]models.Question, len(questions))
	for i, q := range questions {
		copied[i] = q
		copied[i].Options = append([]string(nil), q.Options...)
	}
	return &Draft{title: title, questions: copied}
}

// AddQuestion appends a blank question: empty text, four empty option
// slots, first option marked correct.
func (d *Draft) AddQuestion() {
	d.questions = append(d.questions, models.Question{
		Options: make([]string, models.OptionCount),
	})
}

// UpdateQuestionText replaces the question text at index.
func (d *Draft) UpdateQuestionText(index int, text string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.questions[index].Question = text
	return nil
}

// UpdateOption replaces one option's text. Option text and correctness are
// independently editable.
func (d *Draft) UpdateOption(index, optionIndex int, text string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= models.OptionCount {
		return fmt.Errorf("%w: option %d", models.ErrOutOfRange, optionIndex)
	}
	d.questions[index].Options[optionIndex] = text
	return nil
}

// SetCorrectOption marks which option is correct. Empty option text is
// allowed here.
func (d *Draft) SetCorrectOption(index, optionIndex int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= models.OptionCount {
		return fmt.Errorf("%w: option %d", models.ErrOutOfRange, optionIndex)
	}
	d.questions[index].CorrectAnswer = optionIndex
	return nil
}

// DeleteQuestion removes the question at index, shifting later questions
// down.
func (d *Draft) DeleteQuestion(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.questions = append(d.questions[:index], d.questions[index+1:]...)
	return nil
}

// SetTitle replaces the draft title.
func (d *Draft) SetTitle(title string) {
	d.title = title
}

// Title returns the draft title.
func (d *Draft) Title() string {
	return d.title
}

// Len returns the number of questions in the draft.
func (d *Draft) Len() int {
	return len(d.questions)
}

// Questions returns a copy of the working question list, suitable for
// handing to a save call.
func (d *Draft) Questions() []models.Question {
	copied := make([]models.Question, len(d.questions))
	for i, q := range d.questions {
		copied[i] = q
		copied[i].Options = append([]string(nil), q.Options...)
	}
	return copied
}

func (d *Draft) checkIndex(index int) error {
	if index < 0 || index >= len(d.questions) {
		return fmt.Errorf("%w: question %d", models.ErrOutOfRange, index)
	}
	return nil
}
