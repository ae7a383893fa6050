package grading

import (
	"testing"

	"campus-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func mcQuestion(text string, options []string, correct int) domain.Question {
	return domain.Question{
		Type:          domain.QuestionMultipleChoice,
		Text:          text,
		Options:       options,
		CorrectOption: correct,
		TimeLimit:     domain.DefaultQuestionTime,
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	quiz := &domain.Quiz{ID: "q1", Title: "Empty", PassingScore: 60}

	result := Grade(quiz, map[string]string{})

	assert.Equal(t, 0, result.Percentage)
	assert.False(t, result.Passed)
	assert.Equal(t, 0, result.TotalQuestions)
	assert.Empty(t, result.Breakdown)
}

func TestGradeMultipleChoice(t *testing.T) {
	quiz := &domain.Quiz{
		ID:           "q1",
		PassingScore: 60,
		Questions: []domain.Question{
			mcQuestion("Capital of France?", []string{"Paris", "Berlin", "Rome"}, 0),
		},
	}

	tests := []struct {
		name      string
		submitted map[string]string
		want      bool
	}{
		{"correct index", map[string]string{"0": "0"}, true},
		{"wrong index", map[string]string{"0": "2"}, false},
		{"unparsable index", map[string]string{"0": "banana"}, false},
		{"missing submission", map[string]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Grade(quiz, tt.submitted)
			assert.Equal(t, tt.want, result.Breakdown[0].IsCorrect)
		})
	}
}

func TestGradeTrueFalse(t *testing.T) {
	quiz := &domain.Quiz{
		PassingScore: 60,
		Questions: []domain.Question{
			{Type: domain.QuestionTrueFalse, Text: "The sky is blue.", AnswerKey: "true"},
		},
	}

	assert.True(t, Grade(quiz, map[string]string{"0": "true"}).Breakdown[0].IsCorrect)
	assert.True(t, Grade(quiz, map[string]string{"0": "TRUE"}).Breakdown[0].IsCorrect)
	assert.False(t, Grade(quiz, map[string]string{"0": "false"}).Breakdown[0].IsCorrect)
	assert.False(t, Grade(quiz, map[string]string{"0": "yes"}).Breakdown[0].IsCorrect)
}

func TestGradeShortAnswerExact(t *testing.T) {
	quiz := &domain.Quiz{
		PassingScore: 60,
		Questions: []domain.Question{
			{Type: domain.QuestionShortAnswer, Text: "Name the cell organelle.", AnswerKey: "Mitochondria"},
		},
	}

	result := Grade(quiz, map[string]string{"0": "  mitochondria "})
	assert.True(t, result.Breakdown[0].IsCorrect)
	assert.Empty(t, result.Breakdown[0].Annotation)
}

func TestGradeShortAnswerFuzzy(t *testing.T) {
	quiz := &domain.Quiz{
		PassingScore: 60,
		Questions: []domain.Question{
			{
				Type:      domain.QuestionShortAnswer,
				Text:      "What is the mitochondria?",
				AnswerKey: "Mitochondria is the powerhouse of the cell",
			},
		},
	}

	// Keywords longer than 3 chars: mitochondria, powerhouse, cell.
	result := Grade(quiz, map[string]string{"0": "mitochondria powerhouse cell"})
	assert.True(t, result.Breakdown[0].IsCorrect)
	assert.Equal(t, AnnotationPartial, result.Breakdown[0].Annotation)

	// Below the 80% keyword coverage bar.
	result = Grade(quiz, map[string]string{"0": "powerhouse"})
	assert.False(t, result.Breakdown[0].IsCorrect)
}

func TestGradeFillBlank(t *testing.T) {
	quiz := &domain.Quiz{
		PassingScore: 60,
		Questions: []domain.Question{
			{Type: domain.QuestionFillBlank, Text: "Plants make food via ____.", Blanks: []string{"Photosynthesis"}},
		},
	}

	result := Grade(quiz, map[string]string{"0": "photosynthesis"})
	assert.True(t, result.Breakdown[0].IsCorrect)
	assert.Empty(t, result.Breakdown[0].Annotation)

	// One-character typo: length diff <= 2 and char overlap >= 80%.
	result = Grade(quiz, map[string]string{"0": "Photosyntesis"})
	assert.True(t, result.Breakdown[0].IsCorrect)
	assert.Equal(t, AnnotationPartial, result.Breakdown[0].Annotation)

	result = Grade(quiz, map[string]string{"0": "respiration"})
	assert.False(t, result.Breakdown[0].IsCorrect)
}

func TestGradeMatching(t *testing.T) {
	quiz := &domain.Quiz{
		PassingScore: 60,
		Questions: []domain.Question{
			{
				Type:           domain.QuestionMatching,
				Text:           "Match the country to its capital.",
				LeftItems:      []string{"France", "Japan", "Egypt"},
				RightItems:     []string{"Cairo", "Paris", "Tokyo"},
				CorrectMatches: []int{1, 2, 0},
			},
		},
	}

	assert.True(t, Grade(quiz, map[string]string{"0": "1,2,0"}).Breakdown[0].IsCorrect)
	// Any single mismatched pair fails the whole question.
	assert.False(t, Grade(quiz, map[string]string{"0": "1,0,2"}).Breakdown[0].IsCorrect)
	assert.False(t, Grade(quiz, map[string]string{"0": "1,2"}).Breakdown[0].IsCorrect)
	assert.False(t, Grade(quiz, map[string]string{"0": "1,2,x"}).Breakdown[0].IsCorrect)
}

func TestGradeAggregateScore(t *testing.T) {
	quiz := &domain.Quiz{
		ID:           "end-to-end",
		PassingScore: 60,
		Questions: []domain.Question{
			mcQuestion("1+1?", []string{"1", "2"}, 1),
			mcQuestion("2+2?", []string{"4", "5"}, 0),
			mcQuestion("3+3?", []string{"5", "6"}, 1),
			mcQuestion("4+4?", []string{"8", "9"}, 0),
		},
	}

	// Three of four correct.
	result := Grade(quiz, map[string]string{"0": "1", "1": "0", "2": "1", "3": "1"})

	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 75, result.Percentage)
	assert.True(t, result.Passed)
}

func TestGradePartialSubmissionNeverFails(t *testing.T) {
	quiz := &domain.Quiz{
		PassingScore: 60,
		Questions: []domain.Question{
			mcQuestion("1+1?", []string{"1", "2"}, 1),
			{Type: domain.QuestionMatching, Text: "match", LeftItems: []string{"a"}, RightItems: []string{"b"}, CorrectMatches: []int{0}},
		},
	}

	// Only garbage and missing answers: grading still returns a full result.
	result := Grade(quiz, map[string]string{"0": "???"})
	assert.Len(t, result.Breakdown, 2)
	assert.Equal(t, 0, result.CorrectCount)
	assert.False(t, result.Passed)
}

func TestGradeCustomPassingThreshold(t *testing.T) {
	quiz := &domain.Quiz{
		PassingScore: 80,
		Questions: []domain.Question{
			mcQuestion("a", []string{"x", "y"}, 0),
			mcQuestion("b", []string{"x", "y"}, 0),
			mcQuestion("c", []string{"x", "y"}, 0),
			mcQuestion("d", []string{"x", "y"}, 0),
		},
	}

	result := Grade(quiz, map[string]string{"0": "0", "1": "0", "2": "0", "3": "1"})
	assert.Equal(t, 75, result.Percentage)
	assert.False(t, result.Passed)
}
