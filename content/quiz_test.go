package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizShape(t *testing.T) {
	questions := Quiz()
	require.Len(t, questions, 5)

	for i, q := range questions {
		assert.NotEmpty(t, q.Question, "question %d", i)
		assert.Len(t, q.Options, 4, "question %d", i)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0, "question %d", i)
		assert.Less(t, q.CorrectIndex, len(q.Options), "question %d", i)
	}
}

func TestScoreQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		want    int
	}{
		{"all correct", []int{1, 1, 2, 2, 2}, 5},
		{"all wrong", []int{0, 0, 0, 0, 0}, 0},
		{"partial", []int{1, 0, 2, 0, 2}, 3},
		{"short answer slice", []int{1, 1}, 2},
		{"empty", nil, 0},
		{"out of range answers", []int{9, -1, 2, 2, 2}, 3},
		{"extra answers ignored", []int{1, 1, 2, 2, 2, 3, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreQuiz(tt.answers))
		})
	}
}

func TestEvaluateTiers(t *testing.T) {
	assert.True(t, strings.HasPrefix(Evaluate(5), "Absolute Planet Guardian"))
	assert.True(t, strings.HasPrefix(Evaluate(4), "Great Navigator"))
	assert.True(t, strings.HasPrefix(Evaluate(3), "Great Navigator"))
	assert.True(t, strings.HasPrefix(Evaluate(2), "New Traveler"))
	assert.True(t, strings.HasPrefix(Evaluate(0), "New Traveler"))
}
