package services

import (
	"fmt"
	"math/rand"
)

// CaptchaService produces small arithmetic questions for the registration form.
type CaptchaService struct{}

func NewCaptchaService() *CaptchaService {
	return &CaptchaService{}
}

// GenerateMathProblem returns a display string (e.g. "3 + 5") and the integer answer.
// The answer goes into the session; the question is shown to the user.
func (s *CaptchaService) GenerateMathProblem() (string, int) {
	a := rand.Intn(10)
	b := rand.Intn(10)

	switch rand.Intn(3) {
	case 0:
		return fmt.Sprintf("%d + %d", a, b), a + b
	case 1:
		if a < b {
			a, b = b, a
		}
		return fmt.Sprintf("%d - %d", a, b), a - b
	default:
		return fmt.Sprintf("%d × %d", a, b), a * b
	}
}
