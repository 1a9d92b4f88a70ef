package review

import (
	"context"
	"errors"
	"fmt"
)

// CheckStatus returns the public fields of the record matching both codes.
// A wrong code and a wrong auth code produce the same NotFound error.
func (s *Service) CheckStatus(ctx context.Context, studentCode, authCode string) (StatusView, error) {
	if studentCode == "" || authCode == "" {
		return StatusView{}, badRequest("Student Code and Auth Code are required")
	}

	rec, err := s.store.FindByCodeAndAuth(ctx, studentCode, authCode)
	if errors.Is(err, ErrNotFound) {
		return StatusView{}, notFound("Invalid Student Code or Auth Code")
	}
	if err != nil {
		return StatusView{}, fmt.Errorf("looking up student %s: %w", studentCode, err)
	}

	return displayView(rec), nil
}

// displayView hides stored feedback while a resubmission waits for grading.
func displayView(rec Record) StatusView {
	view := StatusView{
		ResumeLink: rec.ResumeLink,
		Status:     rec.Status,
		Feedback:   rec.Feedback,
	}
	if rec.Status == StatusGradingPending {
		view.Feedback = string(StatusGradingPending)
	}
	return view
}
