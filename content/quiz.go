package content

// QuizQuestion is one item of the final resilience check. CorrectIndex is
// withheld from JSON so the API can return questions without answers.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
}

var quizQuestions = []QuizQuestion{
	{
		Question:     "When you feel a racing heart and sweaty palms before an exam, this is likely:",
		Options:      []string{"General weakness", "The Fight or Flight response", "A sign of heart disease", "Random memory loss"},
		CorrectIndex: 1,
	},
	{
		Question:     "In '4-7-8 Breathing', how many seconds do you hold your breath?",
		Options:      []string{"4 seconds", "7 seconds", "8 seconds", "10 seconds"},
		CorrectIndex: 1,
	},
	{
		Question:     "According to NVC (Non-Violent Communication), what is the first step?",
		Options:      []string{"Expressing your anger", "Making a strong demand", "Stating a factual observation", "Asking for an apology"},
		CorrectIndex: 2,
	},
	{
		Question:     "In the 'MindPlanet' concept, who belongs to the 'Core Ring'?",
		Options:      []string{"Principals and administrators", "Casual study partners", "Friends you can call for support at any time", "Strangers on the internet"},
		CorrectIndex: 2,
	},
	{
		Question:     "The primary goal of mindfulness meditation is to:",
		Options:      []string{"Clear every single thought away", "Force yourself to fall asleep", "Observe the present moment without judgment", "Recalling distant happy memories"},
		CorrectIndex: 2,
	},
}

// Quiz returns the resilience-check questions.
func Quiz() []QuizQuestion {
	return quizQuestions
}

// ScoreQuiz counts correct answers. The answers slice is indexed by
// question; missing or out-of-range entries score zero for that question.
func ScoreQuiz(answers []int) int {
	score := 0
	for i, q := range quizQuestions {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			score++
		}
	}
	return score
}

// Evaluate returns Nova's tiered evaluation for a quiz score.
func Evaluate(score int) string {
	switch {
	case score >= len(quizQuestions):
		return "Absolute Planet Guardian! You have mastered the orbits of resilience. Your inner world is in excellent hands, and you are ready to face the storms."
	case score >= 3:
		return "Great Navigator. You've got the essentials down. Keep practicing the 4-7-8 method—it's your best friend when things get turbulent."
	default:
		return "New Traveler. Don't worry! Mastery over the inner world takes time. Re-read the 'Masks of Stress' module to better understand your body's signals."
	}
}
