// Package builder assembles a quiz's typed question list from admin panel
// submissions. It is the only constructor for domain.Question values, so a
// question that fails its type's shape rules never reaches the store.
//
// Two input encodings are supported: a structured list of question records
// (the preferred transport) and the legacy flattened form encoding, where a
// question's fields are named "{field}_{index}" ("{field}_{index}[]" for
// repeated values) and indices need not be contiguous or zero-based.
package builder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
)

// BuildQuestions decodes the flattened form encoding and validates every
// question. The transform is pure: no I/O, same input always yields the same
// output or the same error.
func BuildQuestions(fields map[string][]string) ([]domain.Question, error) {
	texts := indexedValues(fields, "question_text")
	types := indexedValues(fields, "question_type")

	if len(texts) != len(types) {
		return nil, domain.ValidationErrors{domain.NewMalformedSubmissionError(
			fmt.Sprintf("question text and type lists differ in length: %d vs %d", len(texts), len(types)))}
	}

	indices := make([]int, 0, len(texts))
	for idx := range texts {
		if _, ok := types[idx]; !ok {
			return nil, domain.ValidationErrors{domain.NewMalformedSubmissionError(
				fmt.Sprintf("question %d has a text but no type tag", idx))}
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	subs := make([]dto.QuestionSubmission, 0, len(indices))
	for _, idx := range indices {
		subs = append(subs, dto.QuestionSubmission{
			Type:           types[idx],
			Text:           texts[idx],
			Options:        fields[listKey("options", idx)],
			CorrectAnswer:  firstValue(fields, scalarKey("correct_answer", idx)),
			Blanks:         fields[listKey("blanks", idx)],
			LeftItems:      fields[listKey("left_items", idx)],
			RightItems:     fields[listKey("right_items", idx)],
			CorrectMatches: fields[listKey("correct_matches", idx)],
			TimeLimit:      firstValue(fields, scalarKey("time_limit", idx)),
		})
	}
	return FromSubmissions(subs)
}

// FromSubmissions validates structured question records and builds the typed
// question list in submission order.
func FromSubmissions(subs []dto.QuestionSubmission) ([]domain.Question, error) {
	var errs domain.ValidationErrors
	questions := make([]domain.Question, 0, len(subs))

	for i, sub := range subs {
		q, err := buildOne(i, sub)
		if err != nil {
			errs = append(errs, *err)
			continue
		}
		questions = append(questions, q)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return questions, nil
}

func buildOne(position int, sub dto.QuestionSubmission) (domain.Question, *domain.ValidationError) {
	label := fmt.Sprintf("question_%d", position)

	qType, err := domain.ParseQuestionType(sub.Type)
	if err != nil {
		ve := domain.NewInvalidFormatError(label+".type", sub.Type)
		return domain.Question{}, &ve
	}

	q := domain.Question{
		Type:      qType,
		Text:      strings.TrimSpace(sub.Text),
		TimeLimit: parseTimeLimit(sub.TimeLimit),
	}

	// Only the fields relevant to the type are read; the rest of the
	// submission is ignored, not an error.
	switch qType {
	case domain.QuestionMultipleChoice:
		q.Options = trimAll(sub.Options)
		if len(q.Options) < 2 {
			ve := domain.NewInsufficientOptionsError(label+".options", len(q.Options))
			return domain.Question{}, &ve
		}
		idx, err := strconv.Atoi(strings.TrimSpace(sub.CorrectAnswer))
		if err != nil {
			ve := domain.NewInvalidAnswerKeyError(label+".correct_answer",
				fmt.Sprintf("correct option index %q is not a number", sub.CorrectAnswer))
			return domain.Question{}, &ve
		}
		q.CorrectOption = idx

	case domain.QuestionTrueFalse:
		q.AnswerKey = strings.ToLower(strings.TrimSpace(sub.CorrectAnswer))

	case domain.QuestionShortAnswer:
		q.AnswerKey = strings.TrimSpace(sub.CorrectAnswer)

	case domain.QuestionFillBlank:
		q.Blanks = trimAll(sub.Blanks)
		if len(q.Blanks) == 0 && strings.TrimSpace(sub.CorrectAnswer) != "" {
			// legacy forms post a single blank through correct_answer
			q.Blanks = []string{strings.TrimSpace(sub.CorrectAnswer)}
		}

	case domain.QuestionMatching:
		q.LeftItems = trimAll(sub.LeftItems)
		q.RightItems = trimAll(sub.RightItems)
		if len(sub.CorrectMatches) != len(q.RightItems) {
			ve := domain.NewInvalidAnswerKeyError(label+".correct_matches",
				fmt.Sprintf("expected %d match indices, got %d", len(q.RightItems), len(sub.CorrectMatches)))
			return domain.Question{}, &ve
		}
		q.CorrectMatches = make([]int, len(sub.CorrectMatches))
		for i, m := range sub.CorrectMatches {
			idx, err := strconv.Atoi(strings.TrimSpace(m))
			if err != nil {
				ve := domain.NewInvalidAnswerKeyError(label+".correct_matches",
					fmt.Sprintf("match index %q is not a number", m))
				return domain.Question{}, &ve
			}
			q.CorrectMatches[i] = idx
		}
	}

	if err := q.Validate(); err != nil {
		if ve, ok := err.(domain.ValidationError); ok {
			ve.Field = label + "." + ve.Field
			return domain.Question{}, &ve
		}
		ve := domain.NewInvalidFormatError(label, err.Error())
		return domain.Question{}, &ve
	}
	return q, nil
}

// parseTimeLimit clamps into the allowed range silently; unparsable or
// missing values fall back to the default.
func parseTimeLimit(raw string) int {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return domain.DefaultQuestionTime
	}
	return domain.ClampTimeLimit(seconds)
}

// indexedValues collects "{prefix}_{i}" fields into an index-keyed map.
func indexedValues(fields map[string][]string, prefix string) map[int]string {
	out := make(map[int]string)
	for key, values := range fields {
		if !strings.HasPrefix(key, prefix+"_") || len(values) == 0 {
			continue
		}
		rest := strings.TrimPrefix(key, prefix+"_")
		idx, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		out[idx] = values[0]
	}
	return out
}

func scalarKey(field string, idx int) string {
	return fmt.Sprintf("%s_%d", field, idx)
}

func listKey(field string, idx int) string {
	return fmt.Sprintf("%s_%d[]", field, idx)
}

func firstValue(fields map[string][]string, key string) string {
	if values, ok := fields[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
