package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resubmittedMessage = `Resume updated successfully. Status changed to "Grading Pending". Previous feedback has been preserved.`

// Resubmit replaces the resume link of a Not Cleared record and moves it to
// Grading Pending. Feedback is carried over untouched. Once validation passes
// the call succeeds even if no backend accepted the write.
func (s *Service) Resubmit(ctx context.Context, studentCode, newResumeLink string) (Receipt, error) {
	if studentCode == "" || newResumeLink == "" {
		return Receipt{}, badRequest("Student Code and new Resume Link are required")
	}
	if !strings.HasPrefix(newResumeLink, s.linkPrefix) {
		return Receipt{}, badRequest("Please provide a valid Google Drive link")
	}

	rec, source, err := s.store.FindByCode(ctx, studentCode)
	if errors.Is(err, ErrNotFound) {
		return Receipt{}, notFound("Student not found")
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("looking up student %s: %w", studentCode, err)
	}

	if rec.Status != StatusNotCleared {
		return Receipt{}, badRequest(`Resume can only be updated when status is "Not Cleared"`)
	}

	update := Update{
		ResumeLink: newResumeLink,
		Status:     StatusGradingPending,
		Feedback:   rec.Feedback,
	}
	backend, err := s.store.WriteUpdate(ctx, source, studentCode, update)
	if err != nil {
		s.log.Error("resubmission was not persisted",
			zap.String("student_code", studentCode),
			zap.Error(err),
		)
	} else {
		s.log.Info("resume resubmitted",
			zap.String("student_code", studentCode),
			zap.String("backend", backend),
		)
	}

	ev := Resubmission{
		ID:           uuid.New(),
		StudentCode:  studentCode,
		PreviousLink: rec.ResumeLink,
		NewLink:      newResumeLink,
		Feedback:     rec.Feedback,
		Backend:      backend,
		At:           s.now().UTC(),
	}
	if err == nil {
		for _, l := range s.listeners {
			l.ResumeResubmitted(ctx, ev)
		}
	}

	return Receipt{
		Message: resubmittedMessage,
		EventID: ev.ID,
		Backend: backend,
	}, nil
}
