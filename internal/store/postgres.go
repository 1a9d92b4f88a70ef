package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/muhammadolammi/resumestatus/internal/database"
	"github.com/muhammadolammi/resumestatus/internal/review"
)

// Postgres is a Backend over the students table. The row with the lowest id
// wins when a student code is repeated, matching the spreadsheet backends.
type Postgres struct {
	q *database.Queries
}

func NewPostgres(q *database.Queries) *Postgres {
	return &Postgres{q: q}
}

func (p *Postgres) Name() string { return "postgres" }

func recordFromStudent(s database.Student) review.Record {
	return review.Record{
		StudentCode: s.StudentCode,
		AuthCode:    s.AuthCode,
		ResumeLink:  s.ResumeLink,
		Status:      review.Status(s.Status),
		Feedback:    s.Feedback,
	}
}

func (p *Postgres) FindByCodeAndAuth(ctx context.Context, studentCode, authCode string) (review.Record, error) {
	s, err := p.q.GetStudentByCodeAndAuth(ctx, database.GetStudentByCodeAndAuthParams{
		StudentCode: studentCode,
		AuthCode:    authCode,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return review.Record{}, review.ErrNotFound
	}
	if err != nil {
		return review.Record{}, err
	}
	return recordFromStudent(s), nil
}

func (p *Postgres) FindByCode(ctx context.Context, studentCode string) (review.Record, error) {
	s, err := p.q.GetStudentByCode(ctx, studentCode)
	if errors.Is(err, sql.ErrNoRows) {
		return review.Record{}, review.ErrNotFound
	}
	if err != nil {
		return review.Record{}, err
	}
	return recordFromStudent(s), nil
}

func (p *Postgres) WriteUpdate(ctx context.Context, studentCode string, u review.Update) error {
	n, err := p.q.UpdateStudentResume(ctx, database.UpdateStudentResumeParams{
		ResumeLink:  u.ResumeLink,
		Status:      string(u.Status),
		Feedback:    u.Feedback,
		StudentCode: studentCode,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return review.ErrNotFound
	}
	return nil
}
