package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMathProblemAnswersMatch(t *testing.T) {
	s := NewCaptchaService()
	for i := 0; i < 200; i++ {
		question, answer := s.GenerateMathProblem()
		parts := strings.Fields(question)
		require.Len(t, parts, 3, question)

		a, err := strconv.Atoi(parts[0])
		require.NoError(t, err)
		b, err := strconv.Atoi(parts[2])
		require.NoError(t, err)

		var want int
		switch parts[1] {
		case "+":
			want = a + b
		case "-":
			want = a - b
		case "×":
			want = a * b
		default:
			t.Fatalf("unexpected operator in %q", question)
		}
		assert.Equal(t, want, answer, question)
		assert.GreaterOrEqual(t, answer, 0, question)
	}
}
