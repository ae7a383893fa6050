// Package grading scores a learner's submitted answers against a quiz's
// question list. Grading is a pure transform: malformed or missing answers
// degrade to incorrect, never to an error, so a partial or interrupted
// submission still produces a storable result.
package grading

import (
	"math"
	"strconv"
	"strings"

	"campus-quiz/internal/domain"
)

// AnnotationPartial marks answers accepted through a fuzzy fallback rather
// than an exact match.
const AnnotationPartial = "partially correct but accepted"

// strategy grades one question. submitted is the raw client value; it may be
// empty or garbage and the strategy must still return a verdict.
type strategy interface {
	grade(q domain.Question, submitted string) (bool, string)
}

var strategies = map[domain.QuestionType]strategy{
	domain.QuestionMultipleChoice: multipleChoiceStrategy{},
	domain.QuestionTrueFalse:      trueFalseStrategy{},
	domain.QuestionShortAnswer:    shortAnswerStrategy{},
	domain.QuestionFillBlank:      fillBlankStrategy{},
	domain.QuestionMatching:       matchingStrategy{},
}

// Grade evaluates every question in order. Submitted answers are keyed by the
// question's zero-based position rendered as a decimal string. Matching
// answers encode the chosen right-item indices as a comma-separated list.
func Grade(quiz *domain.Quiz, answers map[string]string) domain.AttemptResult {
	total := len(quiz.Questions)
	breakdown := make([]domain.QuestionResult, 0, total)
	correct := 0

	for i, q := range quiz.Questions {
		submitted := answers[strconv.Itoa(i)]

		isCorrect := false
		annotation := ""
		if strings.TrimSpace(submitted) != "" {
			if s, ok := strategies[q.Type]; ok {
				isCorrect, annotation = s.grade(q, submitted)
			}
		}
		if isCorrect {
			correct++
		}

		breakdown = append(breakdown, domain.QuestionResult{
			QuestionText: q.Text,
			Type:         q.Type,
			Submitted:    submitted,
			Expected:     expectedValue(q),
			IsCorrect:    isCorrect,
			Annotation:   annotation,
		})
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(correct) / float64(total)))
	}

	threshold := quiz.PassingScore
	if threshold <= 0 {
		threshold = domain.DefaultPassingScore
	}

	return domain.AttemptResult{
		CorrectCount:   correct,
		TotalQuestions: total,
		Percentage:     percentage,
		Passed:         total > 0 && percentage >= threshold,
		Breakdown:      breakdown,
	}
}

// expectedValue renders the reference answer for the per-question breakdown.
func expectedValue(q domain.Question) string {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		if q.CorrectOption >= 0 && q.CorrectOption < len(q.Options) {
			return q.Options[q.CorrectOption]
		}
		return strconv.Itoa(q.CorrectOption)
	case domain.QuestionTrueFalse, domain.QuestionShortAnswer:
		return q.AnswerKey
	case domain.QuestionFillBlank:
		if len(q.Blanks) > 0 {
			return q.Blanks[0]
		}
		return ""
	case domain.QuestionMatching:
		parts := make([]string, len(q.CorrectMatches))
		for i, m := range q.CorrectMatches {
			parts[i] = strconv.Itoa(m)
		}
		return strings.Join(parts, ",")
	}
	return ""
}

type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) grade(q domain.Question, submitted string) (bool, string) {
	idx, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil {
		return false, ""
	}
	return idx == q.CorrectOption, ""
}

type trueFalseStrategy struct{}

func (trueFalseStrategy) grade(q domain.Question, submitted string) (bool, string) {
	return strings.EqualFold(strings.TrimSpace(submitted), q.AnswerKey), ""
}

type shortAnswerStrategy struct{}

func (shortAnswerStrategy) grade(q domain.Question, submitted string) (bool, string) {
	got := normalize(submitted)
	want := normalize(q.AnswerKey)
	if got == want {
		return true, ""
	}

	// Fuzzy fallback: the reference's significant words (longer than 3
	// characters) must appear in the submission at 80% coverage or better.
	keywords := significantWords(want)
	if len(keywords) == 0 {
		return false, ""
	}
	have := wordSet(got)
	hits := 0
	for _, k := range keywords {
		if _, ok := have[k]; ok {
			hits++
		}
	}
	if float64(hits)/float64(len(keywords)) >= 0.8 {
		return true, AnnotationPartial
	}
	return false, ""
}

type fillBlankStrategy struct{}

func (fillBlankStrategy) grade(q domain.Question, submitted string) (bool, string) {
	if len(q.Blanks) == 0 {
		return false, ""
	}
	got := normalize(submitted)
	want := normalize(q.Blanks[0])
	if got == want {
		return true, ""
	}

	// Fuzzy fallback: near-equal length with heavy character overlap covers
	// one or two character typos.
	if lengthDelta(got, want) <= 2 && charOverlap(got, want) >= 0.8 {
		return true, AnnotationPartial
	}
	return false, ""
}

type matchingStrategy struct{}

func (matchingStrategy) grade(q domain.Question, submitted string) (bool, string) {
	parts := strings.Split(strings.TrimSpace(submitted), ",")
	if len(parts) != len(q.CorrectMatches) {
		return false, ""
	}
	// All pairs must match for credit.
	for i, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || idx != q.CorrectMatches[i] {
			return false, ""
		}
	}
	return true, ""
}
