package filestore

import "time"

// seedQuizzes returns the starter quiz set written on first run so a fresh
// deployment has something to serve before an admin authors content.
func seedQuizzes() []quizDoc {
	now := time.Now()
	return []quizDoc{
		{
			ID:           "seed-stem-foundations",
			Title:        "STEM Foundations",
			Description:  "Core science and math concepts every STEM student should know.",
			Topics:       []string{"biology", "physics"},
			Strand:       "STEM",
			Category:     "science",
			PassingScore: 60,
			Questions: []questionDoc{
				{
					Type:          "multiple_choice",
					Text:          "Which organelle is known as the powerhouse of the cell?",
					Options:       []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi apparatus"},
					CorrectOption: 1,
					TimeLimit:     30,
				},
				{
					Type:      "true_false",
					Text:      "Light travels faster than sound.",
					AnswerKey: "true",
					TimeLimit: 15,
				},
				{
					Type:      "fill_blank",
					Text:      "The process plants use to convert sunlight into energy is called ____.",
					Blanks:    []string{"photosynthesis"},
					TimeLimit: 45,
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           "seed-humss-society",
			Title:        "Society and Culture Basics",
			Description:  "Introductory questions on social science concepts.",
			Topics:       []string{"sociology"},
			Strand:       "HUMSS",
			Category:     "social_science",
			PassingScore: 60,
			Questions: []questionDoc{
				{
					Type:      "short_answer",
					Text:      "What do we call the shared beliefs and practices of a group of people?",
					AnswerKey: "culture",
					TimeLimit: 60,
				},
				{
					Type:           "matching",
					Text:           "Match each thinker to their field.",
					LeftItems:      []string{"Durkheim", "Adam Smith"},
					RightItems:     []string{"Sociology", "Economics"},
					CorrectMatches: []int{0, 1},
					TimeLimit:      60,
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           "seed-abm-business",
			Title:        "Business Essentials",
			Description:  "Fundamental business and accountancy questions.",
			Topics:       []string{"accounting"},
			Strand:       "ABM",
			Category:     "business",
			PassingScore: 60,
			Questions: []questionDoc{
				{
					Type:          "multiple_choice",
					Text:          "Assets minus liabilities equals what?",
					Options:       []string{"Revenue", "Equity", "Expenses"},
					CorrectOption: 1,
					TimeLimit:     30,
				},
				{
					Type:      "true_false",
					Text:      "Accounts payable is a liability.",
					AnswerKey: "true",
					TimeLimit: 15,
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
