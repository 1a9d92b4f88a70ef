package review

import (
	"context"
	"errors"
	"sync"
)

// fakeStore is a first-match-wins table with optional failure hooks.
type fakeStore struct {
	mu      sync.Mutex
	rows    []Record
	writes  int
	ReadErr error
	// WriteFunc overrides WriteUpdate when set.
	WriteFunc func(ctx context.Context, source, studentCode string, u Update) (string, error)
}

func newFakeStore(rows ...Record) *fakeStore {
	return &fakeStore{rows: rows}
}

func (f *fakeStore) FindByCodeAndAuth(ctx context.Context, studentCode, authCode string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return Record{}, f.ReadErr
	}
	for _, r := range f.rows {
		if r.StudentCode == studentCode && r.AuthCode == authCode {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

func (f *fakeStore) FindByCode(ctx context.Context, studentCode string) (Record, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return Record{}, "", f.ReadErr
	}
	for _, r := range f.rows {
		if r.StudentCode == studentCode {
			return r, "fake", nil
		}
	}
	return Record{}, "", ErrNotFound
}

func (f *fakeStore) WriteUpdate(ctx context.Context, source, studentCode string, u Update) (string, error) {
	if f.WriteFunc != nil {
		return f.WriteFunc(ctx, source, studentCode, u)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].StudentCode == studentCode {
			f.rows[i].ResumeLink = u.ResumeLink
			f.rows[i].Status = u.Status
			f.rows[i].Feedback = u.Feedback
			f.writes++
			return "fake", nil
		}
	}
	return "", errors.New("row vanished")
}

func (f *fakeStore) get(studentCode string) Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.StudentCode == studentCode {
			return r
		}
	}
	return Record{}
}

type recordingListener struct {
	events []Resubmission
}

func (l *recordingListener) ResumeResubmitted(ctx context.Context, ev Resubmission) {
	l.events = append(l.events, ev)
}

func sampleRecords() []Record {
	return []Record{
		{
			StudentCode: "S001",
			AuthCode:    "AUTH123",
			ResumeLink:  "https://drive.google.com/file/d/1ABC123DEF456/view?usp=sharing",
			Status:      StatusCleared,
			Feedback:    "Excellent resume! Well formatted and comprehensive.",
		},
		{
			StudentCode: "S002",
			AuthCode:    "AUTH456",
			ResumeLink:  "https://drive.google.com/file/d/2DEF456GHI789/view?usp=sharing",
			Status:      StatusNotCleared,
			Feedback:    "Please improve the formatting and add more details to experience section.",
		},
		{
			StudentCode: "S003",
			AuthCode:    "AUTH789",
			ResumeLink:  "https://drive.google.com/file/d/3/view",
			Status:      StatusGradingPending,
			Feedback:    "Old feedback from the first round.",
		},
	}
}
