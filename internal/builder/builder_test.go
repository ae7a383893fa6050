package builder

import (
	"testing"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestionsFlatForm(t *testing.T) {
	fields := map[string][]string{
		"question_text_0":      {"Capital of France?"},
		"question_type_0":      {"multiple_choice"},
		"options_0[]":          {"Paris", "Berlin", "Rome"},
		"correct_answer_0":     {"0"},
		"time_limit_0":         {"45"},
		"question_text_1":      {"The sun is a star."},
		"question_type_1":      {"true_false"},
		"correct_answer_1":     {"true"},
		"question_text_2":      {"Match the pairs."},
		"question_type_2":      {"matching"},
		"left_items_2[]":       {"France", "Japan"},
		"right_items_2[]":      {"Tokyo", "Paris"},
		"correct_matches_2[]":  {"1", "0"},
	}

	questions, err := BuildQuestions(fields)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, domain.QuestionMultipleChoice, questions[0].Type)
	assert.Equal(t, 0, questions[0].CorrectOption)
	assert.Equal(t, 45, questions[0].TimeLimit)

	assert.Equal(t, domain.QuestionTrueFalse, questions[1].Type)
	assert.Equal(t, "true", questions[1].AnswerKey)
	assert.Equal(t, domain.DefaultQuestionTime, questions[1].TimeLimit)

	assert.Equal(t, domain.QuestionMatching, questions[2].Type)
	assert.Equal(t, []int{1, 0}, questions[2].CorrectMatches)
}

func TestBuildQuestionsNonContiguousIndices(t *testing.T) {
	// Indices from a form where rows were deleted: 3 and 7, not 0 and 1.
	fields := map[string][]string{
		"question_text_7":  {"Second question"},
		"question_type_7":  {"short_answer"},
		"correct_answer_7": {"gravity"},
		"question_text_3":  {"First question"},
		"question_type_3":  {"short_answer"},
		"correct_answer_3": {"photosynthesis"},
	}

	questions, err := BuildQuestions(fields)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	// Order is by ascending index.
	assert.Equal(t, "First question", questions[0].Text)
	assert.Equal(t, "Second question", questions[1].Text)
}

func TestBuildQuestionsLengthMismatch(t *testing.T) {
	fields := map[string][]string{
		"question_text_0": {"Only a text"},
		"question_text_1": {"Another text"},
		"question_type_0": {"short_answer"},
	}

	_, err := BuildQuestions(fields)
	require.Error(t, err)

	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.HasCode(domain.CodeMalformedSubmission))
}

func TestBuildQuestionsTypeWithoutText(t *testing.T) {
	fields := map[string][]string{
		"question_text_0": {"A question"},
		"question_type_1": {"short_answer"},
	}

	_, err := BuildQuestions(fields)
	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.HasCode(domain.CodeMalformedSubmission))
}

func TestFromSubmissionsInsufficientOptions(t *testing.T) {
	subs := []dto.QuestionSubmission{
		{Type: "multiple_choice", Text: "Pick one", Options: []string{"only"}, CorrectAnswer: "0"},
	}

	_, err := FromSubmissions(subs)
	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.HasCode(domain.CodeInsufficientOptions))
}

func TestFromSubmissionsUnparsableAnswerKey(t *testing.T) {
	subs := []dto.QuestionSubmission{
		{Type: "multiple_choice", Text: "Pick one", Options: []string{"a", "b"}, CorrectAnswer: "first"},
	}

	_, err := FromSubmissions(subs)
	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.HasCode(domain.CodeInvalidAnswerKey))
}

func TestFromSubmissionsAnswerIndexOutOfRange(t *testing.T) {
	subs := []dto.QuestionSubmission{
		{Type: "multiple_choice", Text: "Pick one", Options: []string{"a", "b"}, CorrectAnswer: "5"},
	}

	_, err := FromSubmissions(subs)
	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.HasCode(domain.CodeInvalidAnswerKey))
}

func TestFromSubmissionsMatchingCountMismatch(t *testing.T) {
	subs := []dto.QuestionSubmission{
		{
			Type:           "matching",
			Text:           "Match",
			LeftItems:      []string{"a", "b"},
			RightItems:     []string{"x", "y"},
			CorrectMatches: []string{"1"},
		},
	}

	_, err := FromSubmissions(subs)
	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.HasCode(domain.CodeInvalidAnswerKey))
}

func TestTimeLimitClamping(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"5", 10},
		{"9999", 300},
		{"abc", 30},
		{"", 30},
		{"60", 60},
	}
	for _, tt := range tests {
		subs := []dto.QuestionSubmission{
			{Type: "short_answer", Text: "q", CorrectAnswer: "a", TimeLimit: tt.raw},
		}
		questions, err := FromSubmissions(subs)
		require.NoError(t, err)
		assert.Equal(t, tt.want, questions[0].TimeLimit, "time limit %q", tt.raw)
	}
}

func TestFromSubmissionsFillBlankLegacyAnswerField(t *testing.T) {
	subs := []dto.QuestionSubmission{
		{Type: "fill_blank", Text: "Plants need ____", CorrectAnswer: "sunlight"},
	}

	questions, err := FromSubmissions(subs)
	require.NoError(t, err)
	assert.Equal(t, []string{"sunlight"}, questions[0].Blanks)
}

func TestFromSubmissionsIrrelevantFieldsIgnored(t *testing.T) {
	// A true/false question with a stray options list: not an error.
	subs := []dto.QuestionSubmission{
		{Type: "true_false", Text: "Water boils at 100C.", CorrectAnswer: "True", Options: []string{"left", "over"}},
	}

	questions, err := FromSubmissions(subs)
	require.NoError(t, err)
	assert.Equal(t, "true", questions[0].AnswerKey)
	assert.Empty(t, questions[0].Options)
}

func TestFromSubmissionsDeterministic(t *testing.T) {
	subs := []dto.QuestionSubmission{
		{Type: "short_answer", Text: "q1", CorrectAnswer: "a1"},
		{Type: "true_false", Text: "q2", CorrectAnswer: "false"},
	}

	first, err := FromSubmissions(subs)
	require.NoError(t, err)
	second, err := FromSubmissions(subs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
