// Package review holds the student-facing resume review operations: status
// lookup and resubmission of a rejected resume.
package review

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultLinkPrefix is the only hosting location accepted for resubmitted resumes.
const DefaultLinkPrefix = "https://drive.google.com/"

// Store is the record store as seen by the review operations.
// FindByCode names the backend that answered; WriteUpdate is given that name
// as source so the write lands where the record was read, and reports the
// backend that accepted it.
type Store interface {
	FindByCodeAndAuth(ctx context.Context, studentCode, authCode string) (Record, error)
	FindByCode(ctx context.Context, studentCode string) (Record, string, error)
	WriteUpdate(ctx context.Context, source, studentCode string, u Update) (string, error)
}

// Listener is told about every accepted resubmission.
type Listener interface {
	ResumeResubmitted(ctx context.Context, ev Resubmission)
}

type Service struct {
	store      Store
	linkPrefix string
	listeners  []Listener
	log        *zap.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithLinkPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.linkPrefix = prefix
		}
	}
}

func WithListener(l Listener) Option {
	return func(s *Service) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		linkPrefix: DefaultLinkPrefix,
		log:        zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
