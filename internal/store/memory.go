package store

import (
	"context"
	"slices"
	"sync"

	"github.com/muhammadolammi/resumestatus/internal/review"
)

// Memory is an in-process record table. It lives as long as the process;
// nothing written to it survives a restart.
type Memory struct {
	mu   sync.RWMutex
	rows []review.Record
}

func NewMemory(seed []review.Record) *Memory {
	return &Memory{rows: slices.Clone(seed)}
}

// SampleRecords is the fixed seed used for the fallback table and mock mode.
func SampleRecords() []review.Record {
	return []review.Record{
		{
			StudentCode: "IITRPRAI_24081034",
			AuthCode:    "123",
			ResumeLink:  "https://drive.google.com/open?id=1zp206_FU1OhxbPIDWY2z93KgSrGSY8KY",
			Status:      review.StatusNotCleared,
			Feedback:    "You have spelling mistakes",
		},
		{
			StudentCode: "S001",
			AuthCode:    "AUTH123",
			ResumeLink:  "https://drive.google.com/file/d/1ABC123DEF456/view?usp=sharing",
			Status:      review.StatusCleared,
			Feedback:    "Excellent resume! Well formatted and comprehensive.",
		},
		{
			StudentCode: "S002",
			AuthCode:    "AUTH456",
			ResumeLink:  "https://drive.google.com/file/d/2DEF456GHI789/view?usp=sharing",
			Status:      review.StatusNotCleared,
			Feedback:    "Please improve the formatting and add more details to experience section.",
		},
	}
}

func (m *Memory) Name() string { return "memory" }

// Records returns a copy of the table.
func (m *Memory) Records() []review.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rows)
}

func (m *Memory) find(fn matcher) (review.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rows {
		if fn(r) {
			return r, nil
		}
	}
	return review.Record{}, review.ErrNotFound
}

func (m *Memory) FindByCodeAndAuth(ctx context.Context, studentCode, authCode string) (review.Record, error) {
	if err := ctx.Err(); err != nil {
		return review.Record{}, err
	}
	return m.find(byCodeAndAuth(studentCode, authCode))
}

func (m *Memory) FindByCode(ctx context.Context, studentCode string) (review.Record, error) {
	if err := ctx.Err(); err != nil {
		return review.Record{}, err
	}
	return m.find(byCode(studentCode))
}

func (m *Memory) WriteUpdate(ctx context.Context, studentCode string, u review.Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].StudentCode != studentCode {
			continue
		}
		m.rows[i].ResumeLink = u.ResumeLink
		m.rows[i].Status = u.Status
		m.rows[i].Feedback = u.Feedback
		return nil
	}
	return review.ErrNotFound
}
